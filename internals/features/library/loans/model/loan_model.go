// file: internals/features/library/loans/model/loan_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	bookModel "github.com/tsalisacamila/sistemperpus/internals/features/library/books/model"
	memberModel "github.com/tsalisacamila/sistemperpus/internals/features/library/members/model"
	staffModel "github.com/tsalisacamila/sistemperpus/internals/features/staffs/model"
	"github.com/tsalisacamila/sistemperpus/internals/helpers/dbtime"
)

// Status peminjaman:
//   - borrowed → returned (final)
//   - borrowed → overdue  (reklasifikasi saat due_date lewat; masih bisa returned)
const (
	LoanStatusBorrowed = "borrowed"
	LoanStatusReturned = "returned"
	LoanStatusOverdue  = "overdue"
)

// Masa pinjam tetap: due_date = loan_date + 7 hari, selalu dihitung server.
const LoanPeriodDays = 7

type LoanModel struct {
	LoanID uuid.UUID `gorm:"type:uuid;primaryKey;column:loan_id" json:"loan_id"`

	// Kode human-readable (LN000001, ...), dibuat dari counter atomik.
	LoanCode string `gorm:"type:varchar(20);uniqueIndex;not null;column:loan_code" json:"loan_code"`

	LoanMemberID uuid.UUID `gorm:"type:uuid;not null;index;column:loan_member_id" json:"loan_member_id"`
	LoanBookID   uuid.UUID `gorm:"type:uuid;not null;index;column:loan_book_id" json:"loan_book_id"`
	LoanStaffID  uuid.UUID `gorm:"type:uuid;not null;column:loan_staff_id" json:"loan_staff_id"`

	LoanDate       datatypes.Date  `gorm:"not null;index:idx_loans_dates;column:loan_date" json:"loan_date"`
	LoanDueDate    datatypes.Date  `gorm:"not null;index:idx_loans_dates;column:loan_due_date" json:"loan_due_date"`
	LoanReturnDate *datatypes.Date `gorm:"column:loan_return_date" json:"loan_return_date,omitempty"`

	LoanStatus string  `gorm:"type:varchar(10);not null;default:borrowed;index;column:loan_status" json:"loan_status"`
	LoanNotes  *string `gorm:"type:text;column:loan_notes" json:"loan_notes,omitempty"`

	LoanCreatedAt time.Time      `gorm:"not null;autoCreateTime;column:loan_created_at" json:"loan_created_at"`
	LoanUpdatedAt time.Time      `gorm:"not null;autoUpdateTime;column:loan_updated_at" json:"loan_updated_at"`
	LoanDeletedAt gorm.DeletedAt `gorm:"column:loan_deleted_at;index" json:"loan_deleted_at,omitempty"`

	// Relasi non-owning, dipreload untuk response
	Member *memberModel.MemberModel `gorm:"foreignKey:LoanMemberID;references:MemberID" json:"member,omitempty"`
	Book   *bookModel.BookModel     `gorm:"foreignKey:LoanBookID;references:BookID" json:"book,omitempty"`
	Staff  *staffModel.StaffModel   `gorm:"foreignKey:LoanStaffID;references:StaffID" json:"staff,omitempty"`
}

func (LoanModel) TableName() string { return "loans" }

// IsOverdue: derived, bukan stored. False untuk loan yang sudah kembali;
// selain itu true bila due_date lewat (perbandingan level tanggal).
func (l *LoanModel) IsOverdue(now time.Time) bool {
	if l.LoanStatus == LoanStatusReturned {
		return false
	}
	return dbtime.DateOnly(now).After(dbtime.FromDate(l.LoanDueDate))
}

// DaysOverdue: jumlah hari penuh lewat due_date (0 bila belum/ sudah kembali).
func (l *LoanModel) DaysOverdue(now time.Time) int {
	if l.LoanStatus == LoanStatusReturned {
		return 0
	}
	due := dbtime.FromDate(l.LoanDueDate)
	today := dbtime.DateOnly(now)
	if !today.After(due) {
		return 0
	}
	return int(today.Sub(due).Hours() / 24)
}
