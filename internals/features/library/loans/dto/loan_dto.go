// file: internals/features/library/loans/dto/loan_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "github.com/tsalisacamila/sistemperpus/internals/features/library/loans/model"
	"github.com/tsalisacamila/sistemperpus/internals/helpers/dbtime"
)

/* =========================================
   REQUEST DTOs
   ========================================= */

// LoanCreateRequest sengaja tidak punya field due date: due_date selalu
// dihitung server (loan_date + 7 hari), input client diabaikan.
type LoanCreateRequest struct {
	LoanMemberID uuid.UUID `json:"loan_member_id" validate:"required"`
	LoanBookID   uuid.UUID `json:"loan_book_id"   validate:"required"`
	LoanDate     *string   `json:"loan_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LoanNotes    *string   `json:"loan_notes,omitempty"`
}

type LoanReturnRequest struct {
	LoanNotes *string `json:"loan_notes,omitempty"`
}

// ParseLoanDate mengembalikan nil bila loan_date tidak dikirim (default: hari ini).
func (r LoanCreateRequest) ParseLoanDate() (*time.Time, error) {
	if r.LoanDate == nil || *r.LoanDate == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *r.LoanDate)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

/* =========================================
   RESPONSE DTOs
   ========================================= */

type LoanMemberSummary struct {
	MemberID    uuid.UUID `json:"member_id"`
	MemberCode  string    `json:"member_code"`
	MemberName  string    `json:"member_name"`
	MemberEmail string    `json:"member_email"`
}

type LoanBookSummary struct {
	BookID     uuid.UUID `json:"book_id"`
	BookTitle  string    `json:"book_title"`
	BookAuthor string    `json:"book_author"`
	BookISBN   *string   `json:"book_isbn,omitempty"`
}

type LoanStaffSummary struct {
	StaffID   uuid.UUID `json:"staff_id"`
	StaffCode string    `json:"staff_code"`
	StaffName string    `json:"staff_name"`
}

type LoanResponse struct {
	LoanID   uuid.UUID `json:"loan_id"`
	LoanCode string    `json:"loan_code"`

	LoanDate       string  `json:"loan_date"`
	LoanDueDate    string  `json:"loan_due_date"`
	LoanReturnDate *string `json:"loan_return_date,omitempty"`

	LoanStatus string  `json:"loan_status"`
	LoanNotes  *string `json:"loan_notes,omitempty"`

	LoanIsOverdue   bool `json:"loan_is_overdue"`
	LoanDaysOverdue int  `json:"loan_days_overdue"`

	Member *LoanMemberSummary `json:"member,omitempty"`
	Book   *LoanBookSummary   `json:"book,omitempty"`
	Staff  *LoanStaffSummary  `json:"staff,omitempty"`

	LoanCreatedAt time.Time `json:"loan_created_at"`
	LoanUpdatedAt time.Time `json:"loan_updated_at"`
}

/* =========================================
   MAPPERS
   ========================================= */

func FromLoanModel(m *model.LoanModel) LoanResponse {
	now := time.Now()
	resp := LoanResponse{
		LoanID:          m.LoanID,
		LoanCode:        m.LoanCode,
		LoanDate:        dbtime.FormatDate(m.LoanDate),
		LoanDueDate:     dbtime.FormatDate(m.LoanDueDate),
		LoanStatus:      m.LoanStatus,
		LoanNotes:       m.LoanNotes,
		LoanIsOverdue:   m.IsOverdue(now),
		LoanDaysOverdue: m.DaysOverdue(now),
		LoanCreatedAt:   m.LoanCreatedAt,
		LoanUpdatedAt:   m.LoanUpdatedAt,
	}
	if m.LoanReturnDate != nil {
		s := dbtime.FormatDate(*m.LoanReturnDate)
		resp.LoanReturnDate = &s
	}
	if m.Member != nil {
		resp.Member = &LoanMemberSummary{
			MemberID:    m.Member.MemberID,
			MemberCode:  m.Member.MemberCode,
			MemberName:  m.Member.MemberName,
			MemberEmail: m.Member.MemberEmail,
		}
	}
	if m.Book != nil {
		resp.Book = &LoanBookSummary{
			BookID:     m.Book.BookID,
			BookTitle:  m.Book.BookTitle,
			BookAuthor: m.Book.BookAuthor,
			BookISBN:   m.Book.BookISBN,
		}
	}
	if m.Staff != nil {
		resp.Staff = &LoanStaffSummary{
			StaffID:   m.Staff.StaffID,
			StaffCode: m.Staff.StaffCode,
			StaffName: m.Staff.StaffName,
		}
	}
	return resp
}

func FromLoanModels(ms []model.LoanModel) []LoanResponse {
	out := make([]LoanResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromLoanModel(&ms[i]))
	}
	return out
}
