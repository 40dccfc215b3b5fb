package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"vitrine/internal/config"
	"vitrine/internal/http/handlers"
	applog "vitrine/internal/log"
	"vitrine/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and answer generically; never leak internals
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong. Please try again.",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			// Heartbeats arrive every 10s per open tab; don't throttle telemetry
			return strings.HasPrefix(c.Path(), "/api/sessions/")
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg)

	// Visit-session telemetry
	app.Post("/api/sessions/start", deps.SessionHandler.Start)
	app.Post("/api/sessions/heartbeat", deps.SessionHandler.Heartbeat)
	app.Post("/api/sessions/end", deps.SessionHandler.End)

	// Admin (verify throttled like a login)
	app.Post("/api/admin/verify-password", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.verify.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts"})
		},
	}), deps.AdminHandler.VerifyPassword)
	app.Post("/api/admin/orders/:id/status", deps.AdminHandler.RequirePassword, deps.AdminHandler.UpdateOrderStatus)

	// Orders
	app.Post("/api/orders", deps.OrderHandler.Create)
	app.Get("/api/orders/:id", deps.OrderHandler.Get)
	app.Get("/order/:id", deps.OrderHandler.View)

	// Catalog (read-only)
	app.Get("/api/categories", deps.CatalogHandler.ListCategories)
	app.Get("/api/products", deps.CatalogHandler.ListProducts)
	app.Get("/api/products/:id", deps.CatalogHandler.GetProduct)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
