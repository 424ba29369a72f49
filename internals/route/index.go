// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookRoute "github.com/tsalisacamila/sistemperpus/internals/features/library/books/route"
	loanRoute "github.com/tsalisacamila/sistemperpus/internals/features/library/loans/route"
	memberRoute "github.com/tsalisacamila/sistemperpus/internals/features/library/members/route"
	staffRoute "github.com/tsalisacamila/sistemperpus/internals/features/staffs/route"
)

// SetupRoutes mendaftarkan semua route aplikasi.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app, db)

	api := app.Group("/api")

	staffRoute.AuthRoutes(api, db)
	staffRoute.StaffRoutes(api, db)
	bookRoute.BookRoutes(api, db)
	memberRoute.MemberRoutes(api, db)
	loanRoute.LoanRoutes(api, db)

	// fallback 404 dengan envelope standar
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route tidak ditemukan",
		})
	})
}
