package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/tsalisacamila/sistemperpus/internals/configs"
)

// LoggerMiddleware mencatat ringkasan tiap request sirkulasi.
// Zona waktu bisa dioverride lewat ENV LOG_TIMEZONE.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   configs.GetEnv("LOG_TIMEZONE", "Asia/Jakarta"),
		Format:     "[perpus] ${time} ${ip} ${method} ${path} ${status} ${latency}\n",
	})
}
