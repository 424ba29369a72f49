// file: internals/features/staffs/route/staff_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "github.com/tsalisacamila/sistemperpus/internals/features/staffs/controller"
	middlewares "github.com/tsalisacamila/sistemperpus/internals/middlewares"
	"github.com/tsalisacamila/sistemperpus/internals/middlewares/auth"
)

// AuthRoutes: login publik (rate limit ketat), sisanya butuh token.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)

	protected := authGroup.Group("", auth.AuthMiddleware(db))
	protected.Get("/profile", ctrl.GetProfile)
	protected.Put("/change-password", ctrl.ChangePassword)
	protected.Post("/logout", ctrl.Logout)
}

// StaffRoutes: manajemen petugas, seluruhnya khusus admin.
func StaffRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStaffController(db)

	staffs := api.Group("/staffs", auth.AuthMiddleware(db), auth.RequireAdmin())
	staffs.Get("/", ctrl.GetStaffs)
	staffs.Get("/statistics", ctrl.GetStaffStatistics)
	staffs.Get("/:id", ctrl.GetStaffByID)
	staffs.Post("/", ctrl.CreateStaff)
	staffs.Put("/:id", ctrl.UpdateStaff)
	staffs.Put("/:id/reset-password", ctrl.ResetStaffPassword)
	staffs.Delete("/:id", ctrl.DeleteStaff)
}
