package api

import (
	"os"
	"path/filepath"

	"hotel-concierge/internal/api/handlers"
	"hotel-concierge/pkg/auth"
	"hotel-concierge/pkg/config"
	"hotel-concierge/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	bookingHandler *handlers.BookingHandler,
	jwtManager *auth.JWTManager,
	sessionCfg *config.SessionConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
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
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	webStaticPath := findWebStaticPath(appLogger)
	if webStaticPath != "" {
		app.Static("/static", webStaticPath)
	} else {
		appLogger.Warn("Web static directory not found, static files will not be served")
	}

	// Public auth routes
	app.Get("/login", func(c *fiber.Ctx) error {
		return sendPage(c, webStaticPath, "login.html")
	})
	app.Post("/login", authHandler.Login)
	app.Get("/logout", authHandler.Logout)

	// Protected routes: each one is guarded before dispatch
	session := middleware.SessionRequired(jwtManager, sessionCfg.CookieName, appLogger)
	app.Get("/", session, func(c *fiber.Ctx) error {
		return sendPage(c, webStaticPath, "index.html")
	})
	app.Post("/ask", session, chatHandler.Ask)
	app.Get("/bookings", session, bookingHandler.List)

	return app
}

// findWebStaticPath locates the web/static directory relative to the
// working directory or the binary.
func findWebStaticPath(logger *zap.Logger) string {
	paths := []string{
		"./web/static",
		"web/static",
		"../web/static",
		"../../web/static",
	}

	for _, path := range paths {
		if fileExists(filepath.Join(path, "index.html")) {
			logger.Info("Serving static files", zap.String("path", path))
			return path
		}
	}

	return ""
}

func sendPage(c *fiber.Ctx, staticPath, name string) error {
	if staticPath != "" {
		page := filepath.Join(staticPath, name)
		if fileExists(page) {
			return c.SendFile(page)
		}
	}
	return c.Status(fiber.StatusNotFound).SendString("Page not found. Please ensure web/static exists.")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
