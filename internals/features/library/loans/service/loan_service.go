// file: internals/features/library/loans/service/loan_service.go
//
// Siklus hidup peminjaman. Create dan Return masing-masing satu transaksi:
// mutasi ledger stok dan baris loan commit bersama atau tidak sama sekali.
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	inventory "github.com/tsalisacamila/sistemperpus/internals/features/library/books/service"
	loanModel "github.com/tsalisacamila/sistemperpus/internals/features/library/loans/model"
	memberModel "github.com/tsalisacamila/sistemperpus/internals/features/library/members/model"
	sequence "github.com/tsalisacamila/sistemperpus/internals/features/library/sequence/service"
	staffModel "github.com/tsalisacamila/sistemperpus/internals/features/staffs/model"
	helper "github.com/tsalisacamila/sistemperpus/internals/helpers"
	"github.com/tsalisacamila/sistemperpus/internals/helpers/dbtime"
)

var (
	ErrMemberNotFound = helper.ErrNotFound("MEMBER_NOT_FOUND", "Anggota tidak ditemukan")
	ErrMemberInactive = helper.ErrConflict("MEMBER_INACTIVE", "Anggota tidak aktif")
	ErrMemberOverdue  = helper.ErrConflict("MEMBER_HAS_OVERDUE",
		"Anggota memiliki peminjaman yang terlambat. Harap kembalikan buku terlebih dahulu.")
	ErrStaffNotFound   = helper.ErrNotFound("STAFF_NOT_FOUND", "Petugas tidak ditemukan")
	ErrLoanNotFound    = helper.ErrNotFound("LOAN_NOT_FOUND", "Data peminjaman tidak ditemukan")
	ErrAlreadyReturned = helper.ErrConflict("ALREADY_RETURNED", "Buku sudah dikembalikan sebelumnya")
)

type CreateLoanInput struct {
	MemberID uuid.UUID
	BookID   uuid.UUID
	StaffID  uuid.UUID
	LoanDate *time.Time // nil = hari ini
	Notes    *string
}

// CreateLoan mencatat peminjaman baru.
//
// Urutan dalam satu transaksi:
//  1. reklasifikasi overdue milik anggota (status di DB tidak boleh basi
//     saat cek kelayakan)
//  2. cek kelayakan: anggota aktif, tanpa overdue, buku ada & tersedia.
//     Ini advisory read; penegak sebenarnya adalah decrement bersyarat
//  3. cetak kode loan dari counter atomik
//  4. decrement stok (inventory.Borrow memvalidasi ulang stok > 0)
//  5. simpan baris loan, due_date = loan_date + 7 hari (input due date
//     dari client selalu diabaikan)
func CreateLoan(db *gorm.DB, in CreateLoanInput) (*loanModel.LoanModel, error) {
	now := time.Now()
	loanDate := dbtime.DateOnly(now)
	if in.LoanDate != nil {
		loanDate = dbtime.DateOnly(*in.LoanDate)
	}
	dueDate := loanDate.AddDate(0, 0, loanModel.LoanPeriodDays)

	loan := &loanModel.LoanModel{
		LoanID:       uuid.New(),
		LoanMemberID: in.MemberID,
		LoanBookID:   in.BookID,
		LoanStaffID:  in.StaffID,
		LoanDate:     dbtime.ToDate(loanDate),
		LoanDueDate:  dbtime.ToDate(dueDate),
		LoanStatus:   loanModel.LoanStatusBorrowed,
		LoanNotes:    trimPtr(in.Notes),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := sweepMemberOverdue(tx, in.MemberID, now); err != nil {
			return err
		}

		var member memberModel.MemberModel
		if err := tx.First(&member, "member_id = ?", in.MemberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}
		if !member.IsActive() {
			return ErrMemberInactive
		}

		var overdueCount int64
		if err := tx.Model(&loanModel.LoanModel{}).
			Where("loan_member_id = ? AND loan_status = ?", in.MemberID, loanModel.LoanStatusOverdue).
			Count(&overdueCount).Error; err != nil {
			return err
		}
		if overdueCount > 0 {
			return ErrMemberOverdue
		}

		var staffCount int64
		if err := tx.Model(&staffModel.StaffModel{}).
			Where("staff_id = ?", in.StaffID).
			Count(&staffCount).Error; err != nil {
			return err
		}
		if staffCount == 0 {
			return ErrStaffNotFound
		}

		code, err := sequence.NextCode(tx, sequence.LoanCode)
		if err != nil {
			return err
		}
		loan.LoanCode = code

		// titik penegakan: decrement bersyarat, gagal = rollback total
		if err := inventory.Borrow(tx, in.BookID); err != nil {
			return err
		}

		return tx.Create(loan).Error
	})
	if err != nil {
		return nil, err
	}

	return findLoanWithDetails(db, loan.LoanID)
}

// ReturnLoan mengembalikan buku. Tidak idempoten: pengembalian kedua gagal
// dengan ALREADY_RETURNED dan stok tidak berubah.
func ReturnLoan(db *gorm.DB, loanID uuid.UUID, notes *string) (*loanModel.LoanModel, error) {
	now := time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		var loan loanModel.LoanModel
		if err := tx.First(&loan, "loan_id = ?", loanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLoanNotFound
			}
			return err
		}

		updates := map[string]any{
			"loan_status":      loanModel.LoanStatusReturned,
			"loan_return_date": dbtime.DateOnly(now),
		}
		if n := trimPtr(notes); n != nil {
			updates["loan_notes"] = *n
		}

		// flip status bersyarat; RowsAffected 0 berarti sudah returned
		res := tx.Model(&loanModel.LoanModel{}).
			Where("loan_id = ? AND loan_status <> ?", loanID, loanModel.LoanStatusReturned).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyReturned
		}

		// increment stok dalam transaksi yang sama; gagal = flip ikut batal
		return inventory.ReturnCopy(tx, loan.LoanBookID)
	})
	if err != nil {
		return nil, err
	}

	return findLoanWithDetails(db, loanID)
}

// SweepOverdue mereklasifikasi semua loan borrowed yang due_date-nya sudah
// lewat (strictly sebelum hari ini). Idempoten; tidak menyentuh ledger.
func SweepOverdue(db *gorm.DB) (int64, error) {
	res := db.Model(&loanModel.LoanModel{}).
		Where("loan_status = ? AND loan_due_date < ?", loanModel.LoanStatusBorrowed, dbtime.DateOnly(time.Now())).
		UpdateColumn("loan_status", loanModel.LoanStatusOverdue)
	return res.RowsAffected, res.Error
}

func sweepMemberOverdue(tx *gorm.DB, memberID uuid.UUID, now time.Time) error {
	return tx.Model(&loanModel.LoanModel{}).
		Where("loan_member_id = ? AND loan_status = ? AND loan_due_date < ?",
			memberID, loanModel.LoanStatusBorrowed, dbtime.DateOnly(now)).
		UpdateColumn("loan_status", loanModel.LoanStatusOverdue).Error
}

func findLoanWithDetails(db *gorm.DB, loanID uuid.UUID) (*loanModel.LoanModel, error) {
	var loan loanModel.LoanModel
	if err := db.Preload("Member").Preload("Book").Preload("Staff").
		First(&loan, "loan_id = ?", loanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// FindLoanWithDetails dipakai controller untuk GET detail.
func FindLoanWithDetails(db *gorm.DB, loanID uuid.UUID) (*loanModel.LoanModel, error) {
	return findLoanWithDetails(db, loanID)
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
