// Package backend talks to the external statement analysis service.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"ledger/internal/models"
	"ledger/pkg/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	analyzePath = "/api/analyze"
	healthPath  = "/api/health"
	fileField   = "file"
)

// ErrUnavailable is returned when the backend could not be reached at all.
var ErrUnavailable = errors.New("analysis backend unavailable")

// APIError is a non-2xx answer from the backend. Detail carries the
// backend's "detail" message when it sent one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("analysis backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("analysis backend returned %d", e.StatusCode)
}

type Health struct {
	Status    string `json:"status"`
	AIEnabled bool   `json:"ai_enabled"`
	Model     string `json:"model,omitempty"`
	Version   string `json:"version,omitempty"`
}

type Client struct {
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

func NewClient(cfg *config.BackendConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// Analyze uploads one statement as the multipart field "file" and decodes
// the analysis. A single attempt is made.
func (c *Client) Analyze(ctx context.Context, fileName string, content []byte) (*models.AnalysisResult, error) {
	agent := fiber.Post(c.baseURL + analyzePath).
		Timeout(c.requestTimeout(ctx)).
		FileData(&fiber.FormFile{
			Fieldname: fileField,
			Name:      fileName,
			Content:   content,
		}).
		MultipartForm(nil)

	start := time.Now()
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		c.logger.Warn("Analysis request failed",
			zap.String("file", fileName),
			zap.Errors("errors", errs),
		)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, errors.Join(errs...))
	}

	c.logger.Info("Analysis request completed",
		zap.String("file", fileName),
		zap.Int("status", code),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if code < 200 || code > 299 {
		return nil, &APIError{StatusCode: code, Detail: parseDetail(body)}
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	normalize(&result)
	c.checkCategoryTotals(&result)

	return &result, nil
}

// Health fetches the backend's health report.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	code, body, errs := fiber.Get(c.baseURL + healthPath).
		Timeout(c.requestTimeout(ctx)).
		Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, errors.Join(errs...))
	}
	if code < 200 || code > 299 {
		return nil, &APIError{StatusCode: code, Detail: parseDetail(body)}
	}

	var health Health
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, fmt.Errorf("failed to decode health: %w", err)
	}
	return &health, nil
}

func (c *Client) requestTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout || timeout <= 0 {
			timeout = remaining
		}
	}
	return timeout
}

func (c *Client) checkCategoryTotals(result *models.AnalysisResult) {
	var sum float64
	for _, cat := range result.Categories {
		sum += cat.Total
	}
	if math.Abs(sum-result.IdleCash.MonthlyBurn) > 0.01 {
		c.logger.Warn("Category totals do not match monthly burn",
			zap.Float64("categories_total", sum),
			zap.Float64("monthly_burn", result.IdleCash.MonthlyBurn),
		)
	}
}

// parseDetail extracts {"detail": "..."} from an error body. Structured
// details (lists of field errors) are not shown to users.
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return sanitizeUTF8(strings.TrimSpace(detail))
}

func normalize(result *models.AnalysisResult) {
	if result.Transactions == nil {
		result.Transactions = []models.Transaction{}
	}
	if result.Categories == nil {
		result.Categories = []models.CategorySummary{}
	}
	if result.Subscriptions == nil {
		result.Subscriptions = []models.Subscription{}
	}
	for i := range result.Transactions {
		result.Transactions[i].Desc = sanitizeUTF8(result.Transactions[i].Desc)
		result.Transactions[i].Category = sanitizeUTF8(result.Transactions[i].Category)
	}
	for i := range result.Subscriptions {
		result.Subscriptions[i].Desc = sanitizeUTF8(result.Subscriptions[i].Desc)
	}
	result.IdleCash.Recommendation = sanitizeUTF8(result.IdleCash.Recommendation)
}
