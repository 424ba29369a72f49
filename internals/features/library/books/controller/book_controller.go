// file: internals/features/library/books/controller/book_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tsalisacamila/sistemperpus/internals/features/library/books/dto"
	model "github.com/tsalisacamila/sistemperpus/internals/features/library/books/model"
	inventory "github.com/tsalisacamila/sistemperpus/internals/features/library/books/service"
	loanModel "github.com/tsalisacamila/sistemperpus/internals/features/library/loans/model"
	helper "github.com/tsalisacamila/sistemperpus/internals/helpers"
)

type BookController struct {
	DB *gorm.DB
}

func NewBookController(db *gorm.DB) *BookController {
	return &BookController{DB: db}
}

var validate = validator.New()

// GetBooks: daftar buku + filter pencarian.
// Query: ?search= (judul/penulis/isbn), ?category=, ?available=true, ?page=, ?per_page=
func (ctrl *BookController) GetBooks(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.BookModel{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		// LOWER LIKE supaya jalan di Postgres maupun SQLite
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(book_title) LIKE ? OR LOWER(book_author) LIKE ? OR LOWER(COALESCE(book_isbn, '')) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		q = q.Where("book_category = ?", category)
	}
	if c.Query("available") == "true" {
		q = q.Where("book_available_copies > 0")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data buku")
	}

	var books []model.BookModel
	if err := q.Order("book_title ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&books).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data buku")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar buku berhasil diambil", dto.FromBookModels(books), pagination)
}

// GetBookCategories: daftar kategori katalog yang dikenal.
func (ctrl *BookController) GetBookCategories(c *fiber.Ctx) error {
	return helper.JsonOK(c, "Daftar kategori berhasil diambil", model.BookCategories)
}

// GetBookByID: detail satu buku.
func (ctrl *BookController) GetBookByID(c *fiber.Ctx) error {
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID buku tidak valid")
	}

	var book model.BookModel
	if err := ctrl.DB.First(&book, "book_id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonErrorCode(c, fiber.StatusNotFound, "BOOK_NOT_FOUND", "Buku tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data buku")
	}

	resp := dto.FromBookModel(&book)
	return helper.JsonOK(c, "Detail buku berhasil diambil", resp)
}

// CreateBook: tambah buku baru ke katalog. Semua salinan langsung tersedia.
func (ctrl *BookController) CreateBook(c *fiber.Ctx) error {
	var req dto.BookCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	book := req.ToModel()

	if book.BookISBN != nil {
		var count int64
		if err := ctrl.DB.Model(&model.BookModel{}).
			Where("book_isbn = ?", *book.BookISBN).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan buku")
		}
		if count > 0 {
			return helper.JsonErrorCode(c, fiber.StatusConflict, "ISBN_EXISTS", "ISBN sudah terdaftar")
		}
	}

	if err := ctrl.DB.Create(book).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan buku")
	}

	return helper.JsonCreated(c, "Buku berhasil ditambahkan", dto.FromBookModel(book))
}

// UpdateBook: ubah data katalog. Perubahan total_copies dijalankan lewat
// resize ledger supaya jumlah yang sedang dipinjam tetap terhitung.
func (ctrl *BookController) UpdateBook(c *fiber.Ctx) error {
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID buku tidak valid")
	}

	var req dto.BookUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var book model.BookModel
		if err := tx.First(&book, "book_id = ?", bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return inventory.ErrBookNotFound
			}
			return err
		}

		if req.BookISBN != nil && *req.BookISBN != "" {
			var count int64
			if err := tx.Model(&model.BookModel{}).
				Where("book_isbn = ? AND book_id <> ?", strings.TrimSpace(*req.BookISBN), bookID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return helper.ErrConflict("ISBN_EXISTS", "ISBN sudah terdaftar")
			}
		}

		req.Apply(&book)
		// simpan hanya field katalog; kolom stok tidak boleh ikut tertulis
		// dari struct yang dibaca sebelum borrow/return lain commit
		if err := inventory.SaveCatalogFields(tx, &book); err != nil {
			return err
		}

		if req.BookTotalCopies != nil && *req.BookTotalCopies != book.BookTotalCopies {
			if err := inventory.Resize(tx, bookID, *req.BookTotalCopies); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.JsonServiceError(c, err)
	}

	var book model.BookModel
	if err := ctrl.DB.First(&book, "book_id = ?", bookID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data buku")
	}
	return helper.JsonUpdated(c, "Buku berhasil diperbarui", dto.FromBookModel(&book))
}

// DeleteBook: soft delete. Ditolak bila masih ada peminjaman aktif.
func (ctrl *BookController) DeleteBook(c *fiber.Ctx) error {
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID buku tidak valid")
	}

	var book model.BookModel
	if err := ctrl.DB.First(&book, "book_id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonErrorCode(c, fiber.StatusNotFound, "BOOK_NOT_FOUND", "Buku tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus buku")
	}

	var activeLoans int64
	if err := ctrl.DB.Model(&loanModel.LoanModel{}).
		Where("loan_book_id = ? AND loan_status IN ?", bookID,
			[]string{loanModel.LoanStatusBorrowed, loanModel.LoanStatusOverdue}).
		Count(&activeLoans).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus buku")
	}
	if activeLoans > 0 {
		return helper.JsonErrorCode(c, fiber.StatusConflict, "BOOK_HAS_ACTIVE_LOANS",
			"Buku tidak bisa dihapus karena masih ada peminjaman aktif")
	}

	if err := ctrl.DB.Delete(&book).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus buku")
	}

	return helper.JsonDeleted(c, "Buku berhasil dihapus", fiber.Map{"book_id": bookID})
}
