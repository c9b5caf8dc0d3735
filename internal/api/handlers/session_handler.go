package handlers

import (
	"errors"
	"io"
	"time"

	"ledger/internal/dto"
	"ledger/internal/models"
	"ledger/internal/service"
	"ledger/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionHandler struct {
	uploadService *service.UploadService
	sessions      *service.SessionStore
	logger        *zap.Logger
}

func NewSessionHandler(uploadService *service.UploadService, sessions *service.SessionStore, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		uploadService: uploadService,
		sessions:      sessions,
		logger:        logger,
	}
}

// GetSession godoc
// @Summary Current session state
// @Description Stage of the current upload, inline validation message and error banner
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /session [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	id, ok := middleware.SessionID(c)
	if !ok {
		return c.JSON(anonymousSession())
	}

	session, err := h.sessions.Get(id)
	if err != nil {
		return h.sessionError(c, err)
	}
	return c.JSON(toSessionResponse(session))
}

// Upload godoc
// @Summary Upload a bank statement
// @Description Validate a PDF statement and start its analysis. Poll GET /session for progress.
// @Tags session
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Bank statement (PDF)"
// @Success 202 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 415 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /session/upload [post]
func (h *SessionHandler) Upload(c *fiber.Ctx) error {
	id, err := getSessionID(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "File is required",
		})
	}

	upload := service.Upload{
		FileName:    file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Size:        file.Size,
	}

	// oversized files are rejected on the declared size without reading them
	if !h.uploadService.Oversized(file.Size) {
		src, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "Failed to open file",
			})
		}
		defer src.Close()

		// held in memory only; nothing touches disk
		upload.Content, err = io.ReadAll(src)
		if err != nil {
			h.logger.Error("Failed to read upload", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "Failed to read file",
			})
		}
	}

	session, err := h.uploadService.Submit(id, upload)
	if err != nil {
		return h.sessionError(c, err, session)
	}

	return c.Status(fiber.StatusAccepted).JSON(toSessionResponse(session))
}

// Reset godoc
// @Summary Reset the session
// @Description Clear the analysis and any messages and return to the upload screen
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /session/reset [post]
func (h *SessionHandler) Reset(c *fiber.Ctx) error {
	id, ok := middleware.SessionID(c)
	if !ok {
		return c.JSON(anonymousSession())
	}

	session, err := h.uploadService.Reset(id)
	if err != nil {
		return h.sessionError(c, err, session)
	}
	return c.JSON(toSessionResponse(session))
}

// DismissError godoc
// @Summary Dismiss the error banner
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /session/error [delete]
func (h *SessionHandler) DismissError(c *fiber.Ctx) error {
	id, ok := middleware.SessionID(c)
	if !ok {
		return c.JSON(anonymousSession())
	}

	session, err := h.uploadService.DismissError(id)
	if err != nil {
		return h.sessionError(c, err)
	}
	return c.JSON(toSessionResponse(session))
}

func (h *SessionHandler) sessionError(c *fiber.Ctx, err error, session ...models.Session) error {
	resp := dto.ErrorResponse{Error: err.Error()}
	if len(session) > 0 && session[0].ID != uuid.Nil {
		snap := toSessionResponse(session[0])
		resp.Session = &snap
	}

	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(validationStatus(vErr.Reason)).JSON(resp)
	case errors.Is(err, service.ErrUploadInProgress), errors.Is(err, service.ErrResetRequired):
		return c.Status(fiber.StatusConflict).JSON(resp)
	case errors.Is(err, service.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(resp)
	default:
		h.logger.Error("Session request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}
}

func validationStatus(reason service.ValidationReason) int {
	switch reason {
	case service.ReasonUnsupportedType:
		return fiber.StatusUnsupportedMediaType
	case service.ReasonTooLarge:
		return fiber.StatusRequestEntityTooLarge
	case service.ReasonUnreadable:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusBadRequest
	}
}

func toSessionResponse(s models.Session) dto.SessionResponse {
	return dto.SessionResponse{
		ID:              s.ID.String(),
		Stage:           string(s.Stage),
		FileName:        s.FileName,
		ValidationError: s.ValidationError,
		Error:           s.Error,
		HasResult:       s.Analysis != nil,
		UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
	}
}

// anonymousSession is shown to callers that have not uploaded anything yet.
func anonymousSession() dto.SessionResponse {
	return dto.SessionResponse{Stage: string(models.StageIdle)}
}

func getSessionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.SessionID(c)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return id, nil
}
