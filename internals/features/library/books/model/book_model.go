// file: internals/features/library/books/model/book_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookModel struct {
	BookID uuid.UUID `gorm:"type:uuid;primaryKey;column:book_id" json:"book_id"`

	BookTitle  string  `gorm:"type:varchar(255);not null;column:book_title" json:"book_title"`
	BookAuthor string  `gorm:"type:varchar(255);not null;column:book_author" json:"book_author"`
	BookISBN   *string `gorm:"type:varchar(20);uniqueIndex;column:book_isbn" json:"book_isbn,omitempty"`

	BookCategory        *string `gorm:"type:varchar(100);index;column:book_category" json:"book_category,omitempty"`
	BookPublisher       *string `gorm:"type:varchar(255);column:book_publisher" json:"book_publisher,omitempty"`
	BookPublicationYear *int    `gorm:"column:book_publication_year" json:"book_publication_year,omitempty"`

	// Invariant ledger: 0 <= available <= total. Mutasi hanya lewat
	// service inventory (borrow/return/resize) atau create katalog.
	BookTotalCopies     int `gorm:"not null;default:1;column:book_total_copies" json:"book_total_copies"`
	BookAvailableCopies int `gorm:"not null;default:1;column:book_available_copies" json:"book_available_copies"`

	BookDescription *string `gorm:"type:text;column:book_description" json:"book_description,omitempty"`

	BookCreatedAt time.Time      `gorm:"not null;autoCreateTime;column:book_created_at" json:"book_created_at"`
	BookUpdatedAt time.Time      `gorm:"not null;autoUpdateTime;column:book_updated_at" json:"book_updated_at"`
	BookDeletedAt gorm.DeletedAt `gorm:"column:book_deleted_at;index" json:"book_deleted_at,omitempty"`
}

func (BookModel) TableName() string { return "books" }

// IsAvailable: true bila masih ada salinan yang bisa dipinjam.
func (b *BookModel) IsAvailable() bool { return b.BookAvailableCopies > 0 }

// Kategori katalog yang dikenal (selaras dengan validasi create/update).
var BookCategories = []string{
	"Programming",
	"Database",
	"Management",
	"Computer Science",
	"Web Development",
	"Mobile Development",
	"Other",
}
