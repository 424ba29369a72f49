// file: internals/features/library/books/route/book_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "github.com/tsalisacamila/sistemperpus/internals/features/library/books/controller"
	"github.com/tsalisacamila/sistemperpus/internals/middlewares/auth"
)

// BookRoutes: katalog buku. Hapus buku khusus admin.
func BookRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewBookController(db)

	books := api.Group("/books", auth.AuthMiddleware(db))
	books.Get("/", ctrl.GetBooks)
	books.Get("/categories", ctrl.GetBookCategories)
	books.Get("/:id", ctrl.GetBookByID)
	books.Post("/", ctrl.CreateBook)
	books.Put("/:id", ctrl.UpdateBook)
	books.Delete("/:id", auth.RequireAdmin(), ctrl.DeleteBook)
}
