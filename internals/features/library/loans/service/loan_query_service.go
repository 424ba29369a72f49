// file: internals/features/library/loans/service/loan_query_service.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	loanModel "github.com/tsalisacamila/sistemperpus/internals/features/library/loans/model"
)

type LoanFilter struct {
	Status   string
	MemberID uuid.UUID
	BookID   uuid.UUID
}

// ListLoans mengambil daftar loan (terbaru dulu) + total untuk pagination.
// Sweep overdue dijalankan dulu supaya status yang dilaporkan tidak basi.
func ListLoans(db *gorm.DB, f LoanFilter, offset, limit int) ([]loanModel.LoanModel, int64, error) {
	if _, err := SweepOverdue(db); err != nil {
		return nil, 0, err
	}

	q := db.Model(&loanModel.LoanModel{})
	if f.Status != "" {
		q = q.Where("loan_status = ?", f.Status)
	}
	if f.MemberID != uuid.Nil {
		q = q.Where("loan_member_id = ?", f.MemberID)
	}
	if f.BookID != uuid.Nil {
		q = q.Where("loan_book_id = ?", f.BookID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var loans []loanModel.LoanModel
	err := q.Preload("Member").Preload("Book").Preload("Staff").
		Order("loan_date DESC").
		Offset(offset).Limit(limit).
		Find(&loans).Error
	return loans, total, err
}

// ActiveLoans: borrowed ∪ overdue, opsional difilter per anggota.
func ActiveLoans(db *gorm.DB, memberID uuid.UUID) ([]loanModel.LoanModel, error) {
	if _, err := SweepOverdue(db); err != nil {
		return nil, err
	}

	q := db.Where("loan_status IN ?", []string{loanModel.LoanStatusBorrowed, loanModel.LoanStatusOverdue})
	if memberID != uuid.Nil {
		q = q.Where("loan_member_id = ?", memberID)
	}

	var loans []loanModel.LoanModel
	err := q.Preload("Member").Preload("Book").Preload("Staff").
		Order("loan_date DESC").
		Find(&loans).Error
	return loans, err
}

// OverdueLoans: urut due_date naik (paling telat duluan).
func OverdueLoans(db *gorm.DB) ([]loanModel.LoanModel, error) {
	if _, err := SweepOverdue(db); err != nil {
		return nil, err
	}

	var loans []loanModel.LoanModel
	err := db.Where("loan_status = ?", loanModel.LoanStatusOverdue).
		Preload("Member").Preload("Book").Preload("Staff").
		Order("loan_due_date ASC").
		Find(&loans).Error
	return loans, err
}

type LoanStatistics struct {
	Borrowed int64 `json:"borrowed"`
	Overdue  int64 `json:"overdue"`
	Returned int64 `json:"returned"`
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
}

// Statistics menghitung agregat per status. Active = borrowed + overdue.
// Satu query GROUP BY supaya semua angka berasal dari snapshot yang sama;
// total dihitung dari baris yang sama, bukan query terpisah.
func Statistics(db *gorm.DB) (*LoanStatistics, error) {
	if _, err := SweepOverdue(db); err != nil {
		return nil, err
	}

	var rows []struct {
		LoanStatus string
		N          int64
	}
	if err := db.Model(&loanModel.LoanModel{}).
		Select("loan_status, COUNT(*) AS n").
		Group("loan_status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &LoanStatistics{}
	for _, r := range rows {
		switch r.LoanStatus {
		case loanModel.LoanStatusBorrowed:
			stats.Borrowed = r.N
		case loanModel.LoanStatusOverdue:
			stats.Overdue = r.N
		case loanModel.LoanStatusReturned:
			stats.Returned = r.N
		}
		stats.Total += r.N
	}
	stats.Active = stats.Borrowed + stats.Overdue
	return stats, nil
}
