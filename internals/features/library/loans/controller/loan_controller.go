// file: internals/features/library/loans/controller/loan_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tsalisacamila/sistemperpus/internals/features/library/loans/dto"
	service "github.com/tsalisacamila/sistemperpus/internals/features/library/loans/service"
	helper "github.com/tsalisacamila/sistemperpus/internals/helpers"
	"github.com/tsalisacamila/sistemperpus/internals/middlewares/auth"
)

type LoanController struct {
	DB *gorm.DB
}

func NewLoanController(db *gorm.DB) *LoanController {
	return &LoanController{DB: db}
}

var validate = validator.New()

// GetLoans: daftar peminjaman (terbaru dulu).
// Query: ?status=, ?member_id=, ?book_id=, ?page=, ?per_page=
func (ctrl *LoanController) GetLoans(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	filter := service.LoanFilter{
		Status: strings.TrimSpace(c.Query("status")),
	}
	if raw := strings.TrimSpace(c.Query("member_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "member_id tidak valid")
		}
		filter.MemberID = id
	}
	if raw := strings.TrimSpace(c.Query("book_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "book_id tidak valid")
		}
		filter.BookID = id
	}

	loans, total, err := service.ListLoans(ctrl.DB, filter, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data peminjaman")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar peminjaman berhasil diambil", dto.FromLoanModels(loans), pagination)
}

// GetActiveLoans: peminjaman yang belum kembali (borrowed + overdue).
// Query opsional: ?member_id=
func (ctrl *LoanController) GetActiveLoans(c *fiber.Ctx) error {
	memberID := uuid.Nil
	if raw := strings.TrimSpace(c.Query("member_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "member_id tidak valid")
		}
		memberID = id
	}

	loans, err := service.ActiveLoans(ctrl.DB, memberID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil peminjaman aktif")
	}
	return helper.JsonOK(c, "Peminjaman aktif berhasil diambil", dto.FromLoanModels(loans))
}

// GetOverdueLoans: peminjaman terlambat, paling telat duluan.
func (ctrl *LoanController) GetOverdueLoans(c *fiber.Ctx) error {
	loans, err := service.OverdueLoans(ctrl.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil peminjaman terlambat")
	}
	return helper.JsonOK(c, "Peminjaman terlambat berhasil diambil", dto.FromLoanModels(loans))
}

// GetLoanStatistics: agregat jumlah per status.
func (ctrl *LoanController) GetLoanStatistics(c *fiber.Ctx) error {
	stats, err := service.Statistics(ctrl.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung statistik peminjaman")
	}
	return helper.JsonOK(c, "Statistik peminjaman berhasil diambil", stats)
}

// GetLoanByID: detail satu peminjaman (dengan anggota, buku, petugas).
func (ctrl *LoanController) GetLoanByID(c *fiber.Ctx) error {
	loanID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID peminjaman tidak valid")
	}

	loan, err := service.FindLoanWithDetails(ctrl.DB, loanID)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}
	return helper.JsonOK(c, "Detail peminjaman berhasil diambil", dto.FromLoanModel(loan))
}

// CreateLoan: catat peminjaman baru. Petugas pencatat diambil dari token,
// bukan dari body.
func (ctrl *LoanController) CreateLoan(c *fiber.Ctx) error {
	staffID, err := auth.StaffIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi petugas tidak valid")
	}

	var req dto.LoanCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	loanDate, err := req.ParseLoanDate()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format loan_date harus YYYY-MM-DD")
	}

	loan, err := service.CreateLoan(ctrl.DB, service.CreateLoanInput{
		MemberID: req.LoanMemberID,
		BookID:   req.LoanBookID,
		StaffID:  staffID,
		LoanDate: loanDate,
		Notes:    req.LoanNotes,
	})
	if err != nil {
		return helper.JsonServiceError(c, err)
	}

	return helper.JsonCreated(c, "Peminjaman berhasil dicatat", dto.FromLoanModel(loan))
}

// ReturnLoan: catat pengembalian. Pengembalian kedua ditolak ALREADY_RETURNED.
func (ctrl *LoanController) ReturnLoan(c *fiber.Ctx) error {
	loanID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID peminjaman tidak valid")
	}

	var req dto.LoanReturnRequest
	// body boleh kosong
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
		}
	}

	loan, err := service.ReturnLoan(ctrl.DB, loanID, req.LoanNotes)
	if err != nil {
		return helper.JsonServiceError(c, err)
	}

	return helper.JsonUpdated(c, "Buku berhasil dikembalikan", dto.FromLoanModel(loan))
}
