package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the display state of one browser between an upload and a reset.
type Session struct {
	ID              uuid.UUID
	Stage           Stage
	FileName        string
	ValidationError string
	Error           string
	Analysis        *AnalysisResult
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
