// file: internals/features/library/books/service/inventory_service.go
//
// Ledger stok buku. Satu-satunya titik yang boleh mengubah
// book_available_copies saat pinjam/kembali. Semua mutasi berupa
// conditional UPDATE dengan cek RowsAffected, sehingga dua request
// bersamaan untuk salinan terakhir tidak bisa sama-sama lolos:
// precondition divalidasi ulang di saat mutasi, bukan di read sebelumnya.
package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookModel "github.com/tsalisacamila/sistemperpus/internals/features/library/books/model"
	helper "github.com/tsalisacamila/sistemperpus/internals/helpers"
)

var (
	ErrBookNotFound = helper.ErrNotFound("BOOK_NOT_FOUND", "Buku tidak ditemukan")

	// Stok habis saat borrow; satu-satunya penjaga race pinjam.
	ErrBookUnavailable = helper.ErrConflict("BOOK_UNAVAILABLE", "Buku tidak tersedia untuk dipinjam")

	// Guard defensif: increment saat semua salinan sudah di rak.
	// Seharusnya tidak tercapai bila pembukuan loan benar.
	ErrOverReturn = helper.ErrConflict("OVER_RETURN", "Semua salinan buku sudah dikembalikan")
)

// Borrow mengurangi stok tersedia 1 salinan, atomik.
// Gagal dengan BOOK_UNAVAILABLE bila stok sudah nol.
func Borrow(tx *gorm.DB, bookID uuid.UUID) error {
	res := tx.Model(&bookModel.BookModel{}).
		Where("book_id = ? AND book_available_copies > 0", bookID).
		UpdateColumn("book_available_copies", gorm.Expr("book_available_copies - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// bedakan buku hilang vs stok habis
		if err := ensureBookExists(tx, bookID); err != nil {
			return err
		}
		return ErrBookUnavailable
	}
	return nil
}

// ReturnCopy menambah stok tersedia 1 salinan, atomik.
// Gagal dengan OVER_RETURN bila available sudah sama dengan total.
func ReturnCopy(tx *gorm.DB, bookID uuid.UUID) error {
	res := tx.Model(&bookModel.BookModel{}).
		Where("book_id = ? AND book_available_copies < book_total_copies", bookID).
		UpdateColumn("book_available_copies", gorm.Expr("book_available_copies + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if err := ensureBookExists(tx, bookID); err != nil {
			return err
		}
		return ErrOverReturn
	}
	return nil
}

// Resize mengubah total salinan sambil mempertahankan jumlah yang sedang
// dipinjam: available = max(0, newTotal - (total - available)).
// Dipakai saat katalog mengubah total_copies. Optimistic update dengan
// retry kecil karena borrow/return bisa menyela di antara read dan write.
func Resize(tx *gorm.DB, bookID uuid.UUID, newTotal int) error {
	for attempt := 0; attempt < 3; attempt++ {
		var b bookModel.BookModel
		if err := tx.First(&b, "book_id = ?", bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		lent := b.BookTotalCopies - b.BookAvailableCopies
		newAvailable := newTotal - lent
		if newAvailable < 0 {
			newAvailable = 0
		}

		res := tx.Model(&bookModel.BookModel{}).
			Where("book_id = ? AND book_total_copies = ? AND book_available_copies = ?",
				bookID, b.BookTotalCopies, b.BookAvailableCopies).
			UpdateColumns(map[string]any{
				"book_total_copies":     newTotal,
				"book_available_copies": newAvailable,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		// stok berubah di tengah jalan, baca ulang
	}
	return helper.ErrConflict("BOOK_RESIZE_CONFLICT", "Stok buku berubah terus, coba lagi")
}

// SaveCatalogFields menyimpan perubahan field katalog tanpa menyentuh kolom
// stok. Struct yang dibawa caller bisa saja basi terhadap borrow/return yang
// commit setelah dia dibaca; kolom stok di-omit supaya counter ledger tidak
// tertimpa nilai lama. Mutasi stok hanya lewat Borrow/ReturnCopy/Resize.
func SaveCatalogFields(tx *gorm.DB, book *bookModel.BookModel) error {
	return tx.Omit("book_total_copies", "book_available_copies").Save(book).Error
}

func ensureBookExists(tx *gorm.DB, bookID uuid.UUID) error {
	var count int64
	if err := tx.Model(&bookModel.BookModel{}).
		Where("book_id = ?", bookID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrBookNotFound
	}
	return nil
}
