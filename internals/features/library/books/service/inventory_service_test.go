package service_test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	database "github.com/tsalisacamila/sistemperpus/internals/databases"
	model "github.com/tsalisacamila/sistemperpus/internals/features/library/books/model"
	service "github.com/tsalisacamila/sistemperpus/internals/features/library/books/service"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_txlock=immediate&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedBook(t *testing.T, db *gorm.DB, total, available int) *model.BookModel {
	t.Helper()
	book := &model.BookModel{
		BookID:              uuid.New(),
		BookTitle:           "Belajar Go",
		BookAuthor:          "Budi Santoso",
		BookTotalCopies:     total,
		BookAvailableCopies: available,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

func reloadBook(t *testing.T, db *gorm.DB, id uuid.UUID) *model.BookModel {
	t.Helper()
	var book model.BookModel
	require.NoError(t, db.First(&book, "book_id = ?", id).Error)
	return &book
}

func TestBorrowDecrementsAvailable(t *testing.T) {
	db := setupTestDB(t)
	book := seedBook(t, db, 3, 3)

	require.NoError(t, service.Borrow(db, book.BookID))

	got := reloadBook(t, db, book.BookID)
	assert.Equal(t, 2, got.BookAvailableCopies)
	assert.Equal(t, 3, got.BookTotalCopies)
}

func TestBorrowFailsWhenNoCopiesLeft(t *testing.T) {
	db := setupTestDB(t)
	book := seedBook(t, db, 1, 1)

	require.NoError(t, service.Borrow(db, book.BookID))

	err := service.Borrow(db, book.BookID)
	assert.ErrorIs(t, err, service.ErrBookUnavailable)

	// stok tidak boleh pernah negatif
	got := reloadBook(t, db, book.BookID)
	assert.Equal(t, 0, got.BookAvailableCopies)
}

func TestBorrowUnknownBook(t *testing.T) {
	db := setupTestDB(t)

	err := service.Borrow(db, uuid.New())
	assert.ErrorIs(t, err, service.ErrBookNotFound)
}

func TestReturnCopyIncrementsAvailable(t *testing.T) {
	db := setupTestDB(t)
	book := seedBook(t, db, 3, 1)

	require.NoError(t, service.ReturnCopy(db, book.BookID))

	got := reloadBook(t, db, book.BookID)
	assert.Equal(t, 2, got.BookAvailableCopies)
}

func TestReturnCopyFailsWhenAllCopiesOnShelf(t *testing.T) {
	db := setupTestDB(t)
	book := seedBook(t, db, 2, 2)

	err := service.ReturnCopy(db, book.BookID)
	assert.ErrorIs(t, err, service.ErrOverReturn)

	// available tidak boleh melebihi total
	got := reloadBook(t, db, book.BookID)
	assert.Equal(t, 2, got.BookAvailableCopies)
}

func TestResizeKeepsLentCount(t *testing.T) {
	db := setupTestDB(t)
	// 5 total, 2 di rak → 3 sedang dipinjam
	book := seedBook(t, db, 5, 2)

	require.NoError(t, service.Resize(db, book.BookID, 10))

	got := reloadBook(t, db, book.BookID)
	assert.Equal(t, 10, got.BookTotalCopies)
	assert.Equal(t, 7, got.BookAvailableCopies)
}

func TestResizeClampsAvailableAtZero(t *testing.T) {
	db := setupTestDB(t)
	// 3 dipinjam, total diciutkan jadi 2 → available 0, bukan -1
	book := seedBook(t, db, 5, 2)

	require.NoError(t, service.Resize(db, book.BookID, 2))

	got := reloadBook(t, db, book.BookID)
	assert.Equal(t, 2, got.BookTotalCopies)
	assert.Equal(t, 0, got.BookAvailableCopies)
}

func TestSaveCatalogFieldsKeepsConcurrentStockChange(t *testing.T) {
	db := setupTestDB(t)
	book := seedBook(t, db, 5, 5)

	// edit katalog membaca row dulu
	var stale model.BookModel
	require.NoError(t, db.First(&stale, "book_id = ?", book.BookID).Error)

	// borrow lain commit di antara read dan save
	require.NoError(t, service.Borrow(db, book.BookID))

	stale.BookTitle = "Belajar Go (Edisi Revisi)"
	require.NoError(t, service.SaveCatalogFields(db, &stale))

	// decrement borrow tidak boleh tertimpa nilai stok basi
	got := reloadBook(t, db, book.BookID)
	assert.Equal(t, "Belajar Go (Edisi Revisi)", got.BookTitle)
	assert.Equal(t, 5, got.BookTotalCopies)
	assert.Equal(t, 4, got.BookAvailableCopies)
}

func TestResizeUnknownBook(t *testing.T) {
	db := setupTestDB(t)

	err := service.Resize(db, uuid.New(), 5)
	assert.ErrorIs(t, err, service.ErrBookNotFound)
}
