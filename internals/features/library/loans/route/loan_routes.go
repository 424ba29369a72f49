// file: internals/features/library/loans/route/loan_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "github.com/tsalisacamila/sistemperpus/internals/features/library/loans/controller"
	"github.com/tsalisacamila/sistemperpus/internals/middlewares/auth"
)

// LoanRoutes: sirkulasi peminjaman. Sub-route statis (active/overdue/
// statistics) didaftarkan sebelum /:id supaya tidak tertelan param.
func LoanRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewLoanController(db)

	loans := api.Group("/loans", auth.AuthMiddleware(db))
	loans.Get("/", ctrl.GetLoans)
	loans.Get("/active", ctrl.GetActiveLoans)
	loans.Get("/overdue", ctrl.GetOverdueLoans)
	loans.Get("/statistics", ctrl.GetLoanStatistics)
	loans.Get("/:id", ctrl.GetLoanByID)
	loans.Post("/", ctrl.CreateLoan)
	loans.Put("/:id/return", ctrl.ReturnLoan)
}
