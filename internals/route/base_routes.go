// file: internals/route/base_routes.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startedAt = time.Now()

// BaseRoutes: endpoint dasar tanpa auth (root + health check).
func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Sistem Perpustakaan API",
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "ok"
		if sqlDB, err := db.DB(); err != nil {
			dbStatus = "error"
		} else if err := sqlDB.PingContext(c.UserContext()); err != nil {
			dbStatus = "error"
		}

		status := fiber.StatusOK
		if dbStatus != "ok" {
			status = fiber.StatusServiceUnavailable
		}

		return c.Status(status).JSON(fiber.Map{
			"success":   dbStatus == "ok",
			"database":  dbStatus,
			"uptime":    time.Since(startedAt).Round(time.Second).String(),
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
}
