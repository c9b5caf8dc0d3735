// Package stub serves a stand-in for the external analysis backend. Every
// accepted PDF is answered with the summarised sample statement, so the
// full upload flow can run without the real extraction pipeline.
package stub

import (
	"fmt"
	"path/filepath"
	"strings"

	"ledger/internal/analytics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const version = "2.0.0"

type Options struct {
	MaxSizeMB int
	Analytics analytics.Options
}

func NewApp(opts Options, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "ledger-stub-backend",
		BodyLimit:             (opts.MaxSizeMB + 1) * 1024 * 1024,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":     "ok",
			"ai_enabled": false,
			"model":      "sample",
			"version":    version,
		})
	})

	app.Post("/api/analyze", func(c *fiber.Ctx) error {
		file, err := c.FormFile("file")
		if err != nil {
			return detail(c, fiber.StatusUnprocessableEntity, "Field 'file' is required.")
		}
		if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
			return detail(c, fiber.StatusUnsupportedMediaType, "Unsupported File Format — only PDF bank statements accepted.")
		}
		if file.Size == 0 {
			return detail(c, fiber.StatusBadRequest, "Uploaded file is empty.")
		}
		if file.Size > int64(opts.MaxSizeMB)*1024*1024 {
			return detail(c, fiber.StatusRequestEntityTooLarge, fmt.Sprintf("File exceeds %d MB limit.", opts.MaxSizeMB))
		}

		result := analytics.Summarize(analytics.SampleTransactions(), opts.Analytics)
		logger.Info("Answered with sample analysis",
			zap.String("file", file.Filename),
			zap.Int64("bytes", file.Size),
			zap.Int("transactions", result.TransactionCount),
		)
		return c.JSON(result)
	})

	return app
}

func detail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"detail": message})
}
