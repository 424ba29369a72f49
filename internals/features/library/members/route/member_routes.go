// file: internals/features/library/members/route/member_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "github.com/tsalisacamila/sistemperpus/internals/features/library/members/controller"
	"github.com/tsalisacamila/sistemperpus/internals/middlewares/auth"
)

// MemberRoutes: keanggotaan. Hapus anggota khusus admin.
func MemberRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewMemberController(db)

	members := api.Group("/members", auth.AuthMiddleware(db))
	members.Get("/", ctrl.GetMembers)
	members.Get("/:id", ctrl.GetMemberByID)
	members.Post("/", ctrl.CreateMember)
	members.Put("/:id", ctrl.UpdateMember)
	members.Delete("/:id", auth.RequireAdmin(), ctrl.DeleteMember)
}
