package api

import (
	_ "ledger/docs"
	"ledger/internal/api/handlers"
	"ledger/pkg/auth"
	"ledger/pkg/config"
	"ledger/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Session   *handlers.SessionHandler
	Dashboard *handlers.DashboardHandler
	Health    *handlers.HealthHandler
}

func SetupRouter(
	cfg *config.Config,
	h Handlers,
	tokens *auth.TokenManager,
	sessions middleware.Sessions,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "ledger",
		BodyLimit:    cfg.Upload.BodyLimit(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		ExposeHeaders:    middleware.SessionTokenHeader,
		AllowCredentials: cfg.Server.AllowOrigins != "*",
	}))
	app.Use(middleware.RequestLogger(appLogger))

	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")
	api.Get("/health", h.Health.Health)

	// Only an upload opens a session; the other routes read one if presented.
	withSession := middleware.SessionMiddleware(tokens, sessions, &cfg.Session, appLogger)
	maybeSession := middleware.OptionalSession(tokens, sessions, &cfg.Session, appLogger)

	session := api.Group("/session")
	session.Get("", maybeSession, h.Session.GetSession)
	session.Post("/upload", withSession, h.Session.Upload)
	session.Post("/reset", maybeSession, h.Session.Reset)
	session.Delete("/error", maybeSession, h.Session.DismissError)

	api.Get("/dashboard", maybeSession, h.Dashboard.GetDashboard)

	return app
}
