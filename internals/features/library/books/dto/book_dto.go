// file: internals/features/library/books/dto/book_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "github.com/tsalisacamila/sistemperpus/internals/features/library/books/model"
)

/* =========================================
   REQUEST DTOs
   ========================================= */

type BookCreateRequest struct {
	BookTitle  string  `json:"book_title"  validate:"required,min=1,max=255"`
	BookAuthor string  `json:"book_author" validate:"required,min=1,max=255"`
	BookISBN   *string `json:"book_isbn,omitempty" validate:"omitempty,max=20"`

	BookCategory        *string `json:"book_category,omitempty" validate:"omitempty,oneof=Programming Database Management 'Computer Science' 'Web Development' 'Mobile Development' Other"`
	BookPublisher       *string `json:"book_publisher,omitempty" validate:"omitempty,max=255"`
	BookPublicationYear *int    `json:"book_publication_year,omitempty" validate:"omitempty,min=1900"`

	BookTotalCopies *int    `json:"book_total_copies,omitempty" validate:"omitempty,min=1"`
	BookDescription *string `json:"book_description,omitempty"`
}

type BookUpdateRequest struct {
	BookTitle  *string `json:"book_title,omitempty"  validate:"omitempty,min=1,max=255"`
	BookAuthor *string `json:"book_author,omitempty" validate:"omitempty,min=1,max=255"`
	BookISBN   *string `json:"book_isbn,omitempty"   validate:"omitempty,max=20"`

	BookCategory        *string `json:"book_category,omitempty" validate:"omitempty,oneof=Programming Database Management 'Computer Science' 'Web Development' 'Mobile Development' Other"`
	BookPublisher       *string `json:"book_publisher,omitempty" validate:"omitempty,max=255"`
	BookPublicationYear *int    `json:"book_publication_year,omitempty" validate:"omitempty,min=1900"`

	// Perubahan total memicu resize availability proporsional di controller.
	BookTotalCopies *int    `json:"book_total_copies,omitempty" validate:"omitempty,min=1"`
	BookDescription *string `json:"book_description,omitempty"`
}

/* =========================================
   RESPONSE DTO
   ========================================= */

type BookResponse struct {
	BookID uuid.UUID `json:"book_id"`

	BookTitle  string  `json:"book_title"`
	BookAuthor string  `json:"book_author"`
	BookISBN   *string `json:"book_isbn,omitempty"`

	BookCategory        *string `json:"book_category,omitempty"`
	BookPublisher       *string `json:"book_publisher,omitempty"`
	BookPublicationYear *int    `json:"book_publication_year,omitempty"`

	BookTotalCopies     int  `json:"book_total_copies"`
	BookAvailableCopies int  `json:"book_available_copies"`
	BookIsAvailable     bool `json:"book_is_available"`

	BookDescription *string `json:"book_description,omitempty"`

	BookCreatedAt time.Time `json:"book_created_at"`
	BookUpdatedAt time.Time `json:"book_updated_at"`
}

/* =========================================
   MAPPERS
   ========================================= */

func (r BookCreateRequest) ToModel() *model.BookModel {
	total := 1
	if r.BookTotalCopies != nil {
		total = *r.BookTotalCopies
	}
	return &model.BookModel{
		BookID:              uuid.New(),
		BookTitle:           strings.TrimSpace(r.BookTitle),
		BookAuthor:          strings.TrimSpace(r.BookAuthor),
		BookISBN:            trimPtr(r.BookISBN),
		BookCategory:        trimPtr(r.BookCategory),
		BookPublisher:       trimPtr(r.BookPublisher),
		BookPublicationYear: r.BookPublicationYear,
		BookTotalCopies:     total,
		// buku baru: semua salinan tersedia
		BookAvailableCopies: total,
		BookDescription:     r.BookDescription,
	}
}

// Apply menerapkan field non-stok ke model. total_copies TIDAK di-apply di
// sini; resize availability ditangani service inventory.
func (r BookUpdateRequest) Apply(dst *model.BookModel) {
	if r.BookTitle != nil {
		dst.BookTitle = strings.TrimSpace(*r.BookTitle)
	}
	if r.BookAuthor != nil {
		dst.BookAuthor = strings.TrimSpace(*r.BookAuthor)
	}
	if r.BookISBN != nil {
		dst.BookISBN = trimPtr(r.BookISBN)
	}
	if r.BookCategory != nil {
		dst.BookCategory = trimPtr(r.BookCategory)
	}
	if r.BookPublisher != nil {
		dst.BookPublisher = trimPtr(r.BookPublisher)
	}
	if r.BookPublicationYear != nil {
		dst.BookPublicationYear = r.BookPublicationYear
	}
	if r.BookDescription != nil {
		dst.BookDescription = r.BookDescription
	}
}

func FromBookModel(m *model.BookModel) BookResponse {
	return BookResponse{
		BookID:              m.BookID,
		BookTitle:           m.BookTitle,
		BookAuthor:          m.BookAuthor,
		BookISBN:            m.BookISBN,
		BookCategory:        m.BookCategory,
		BookPublisher:       m.BookPublisher,
		BookPublicationYear: m.BookPublicationYear,
		BookTotalCopies:     m.BookTotalCopies,
		BookAvailableCopies: m.BookAvailableCopies,
		BookIsAvailable:     m.IsAvailable(),
		BookDescription:     m.BookDescription,
		BookCreatedAt:       m.BookCreatedAt,
		BookUpdatedAt:       m.BookUpdatedAt,
	}
}

func FromBookModels(ms []model.BookModel) []BookResponse {
	out := make([]BookResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromBookModel(&ms[i]))
	}
	return out
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
