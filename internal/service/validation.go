package service

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"ledger/pkg/config"

	"go.uber.org/zap"
)

const (
	pdfExtension   = ".pdf"
	pdfContentType = "application/pdf"
	defaultPDFName = "statement.pdf"
)

type ValidationReason string

const (
	ReasonUnsupportedType ValidationReason = "unsupported_type"
	ReasonEmpty           ValidationReason = "empty"
	ReasonTooLarge        ValidationReason = "too_large"
	ReasonUnreadable      ValidationReason = "unreadable"
)

// ValidationError is a local rejection of the selected file. No request is
// sent to the analysis backend when one is returned.
type ValidationError struct {
	Reason  ValidationReason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Upload is one selected file held in memory. Size is the length declared
// by the multipart part; Content is left empty when Size alone rules the
// file out.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     []byte
}

func (u Upload) size() int64 {
	if n := int64(len(u.Content)); n > 0 {
		return n
	}
	return u.Size
}

// PageCounter opens a document and reports its page count.
type PageCounter interface {
	CountPages(content []byte) (int, error)
}

type Validator struct {
	maxBytes  int64
	maxSizeMB int
	pages     PageCounter
	logger    *zap.Logger
}

// NewValidator builds the upload checks. pages may be nil to skip the
// preflight that opens the document.
func NewValidator(cfg *config.UploadConfig, pages PageCounter, logger *zap.Logger) *Validator {
	return &Validator{
		maxBytes:  cfg.MaxBytes(),
		maxSizeMB: cfg.MaxSizeMB,
		pages:     pages,
		logger:    logger,
	}
}

// Oversized reports whether size bytes exceed the upload limit.
func (v *Validator) Oversized(size int64) bool {
	return v.maxBytes > 0 && size > v.maxBytes
}

// IsPDF accepts a .pdf extension or an application/pdf media type.
func IsPDF(fileName, contentType string) bool {
	if strings.EqualFold(filepath.Ext(fileName), pdfExtension) {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == pdfContentType
}

// Validate checks the upload and returns it with a file name the backend
// will accept.
func (v *Validator) Validate(upload Upload) (Upload, error) {
	if !IsPDF(upload.FileName, upload.ContentType) {
		return upload, &ValidationError{
			Reason:  ReasonUnsupportedType,
			Message: "Unsupported File Format — only PDF bank statements accepted.",
		}
	}
	size := upload.size()
	if size == 0 {
		return upload, &ValidationError{Reason: ReasonEmpty, Message: "Uploaded file is empty."}
	}
	if v.Oversized(size) {
		return upload, &ValidationError{
			Reason:  ReasonTooLarge,
			Message: fmt.Sprintf("File exceeds %d MB limit.", v.maxSizeMB),
		}
	}

	if len(upload.Content) == 0 {
		return upload, &ValidationError{Reason: ReasonEmpty, Message: "Uploaded file is empty."}
	}

	if v.pages != nil {
		pages, err := v.pages.CountPages(upload.Content)
		if err != nil || pages == 0 {
			v.logger.Info("PDF preflight rejected upload",
				zap.String("file", upload.FileName),
				zap.Int("pages", pages),
				zap.Error(err),
			)
			return upload, &ValidationError{
				Reason:  ReasonUnreadable,
				Message: "The file could not be read as a PDF document.",
			}
		}
		v.logger.Debug("PDF preflight passed", zap.String("file", upload.FileName), zap.Int("pages", pages))
	}

	upload.FileName = forwardName(upload.FileName)
	return upload, nil
}

func forwardName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return defaultPDFName
	}
	if !strings.EqualFold(filepath.Ext(name), pdfExtension) {
		return name + pdfExtension
	}
	return name
}
