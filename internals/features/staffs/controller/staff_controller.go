// file: internals/features/staffs/controller/staff_controller.go
//
// CRUD petugas, khusus admin.
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	loanModel "github.com/tsalisacamila/sistemperpus/internals/features/library/loans/model"
	sequence "github.com/tsalisacamila/sistemperpus/internals/features/library/sequence/service"
	"github.com/tsalisacamila/sistemperpus/internals/features/staffs/dto"
	model "github.com/tsalisacamila/sistemperpus/internals/features/staffs/model"
	service "github.com/tsalisacamila/sistemperpus/internals/features/staffs/service"
	helper "github.com/tsalisacamila/sistemperpus/internals/helpers"
	"github.com/tsalisacamila/sistemperpus/internals/middlewares/auth"
)

type StaffController struct {
	DB *gorm.DB
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{DB: db}
}

// GetStaffs: daftar petugas.
// Query: ?search= (nama/email/kode), ?role=, ?status=, ?page=, ?per_page=
func (ctrl *StaffController) GetStaffs(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.StaffModel{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(staff_name) LIKE ? OR LOWER(staff_email) LIKE ? OR LOWER(staff_code) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		q = q.Where("staff_role = ?", role)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("staff_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data petugas")
	}

	var staffs []model.StaffModel
	if err := q.Order("staff_code ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&staffs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data petugas")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar petugas berhasil diambil", dto.FromStaffModels(staffs), pagination)
}

// GetStaffStatistics: agregat petugas per role & status.
func (ctrl *StaffController) GetStaffStatistics(c *fiber.Ctx) error {
	stats := dto.StaffStatistics{}
	counts := []struct {
		col, val string
		dst      *int64
	}{
		{"staff_role", model.StaffRoleAdmin, &stats.Admin},
		{"staff_role", model.StaffRoleLibrarian, &stats.Librarian},
		{"staff_status", model.StaffStatusActive, &stats.Active},
		{"staff_status", model.StaffStatusInactive, &stats.Inactive},
	}
	for _, cnt := range counts {
		if err := ctrl.DB.Model(&model.StaffModel{}).
			Where(cnt.col+" = ?", cnt.val).
			Count(cnt.dst).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung statistik petugas")
		}
	}
	if err := ctrl.DB.Model(&model.StaffModel{}).Count(&stats.Total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung statistik petugas")
	}

	return helper.JsonOK(c, "Statistik petugas berhasil diambil", stats)
}

// GetStaffByID: detail satu petugas.
func (ctrl *StaffController) GetStaffByID(c *fiber.Ctx) error {
	staffID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID petugas tidak valid")
	}

	var staff model.StaffModel
	if err := ctrl.DB.First(&staff, "staff_id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonErrorCode(c, fiber.StatusNotFound, "STAFF_NOT_FOUND", "Petugas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data petugas")
	}

	return helper.JsonOK(c, "Detail petugas berhasil diambil", dto.FromStaffModel(&staff))
}

// CreateStaff: tambah petugas. Kode STF dicetak dari counter atomik, password
// di-hash sebelum insert, semuanya dalam satu transaksi.
func (ctrl *StaffController) CreateStaff(c *fiber.Ctx) error {
	var req dto.StaffCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	staff := req.ToModel()

	hashed, err := service.HashPassword(req.StaffPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}
	staff.StaffPassword = hashed

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.StaffModel{}).
			Where("staff_email = ?", staff.StaffEmail).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return helper.ErrConflict("EMAIL_EXISTS", "Email sudah terdaftar")
		}

		code, err := sequence.NextCode(tx, sequence.StaffCode)
		if err != nil {
			return err
		}
		staff.StaffCode = code

		return tx.Create(staff).Error
	})
	if err != nil {
		return helper.JsonServiceError(c, err)
	}

	return helper.JsonCreated(c, "Petugas berhasil ditambahkan", dto.FromStaffModel(staff))
}

// UpdateStaff: ubah data petugas.
func (ctrl *StaffController) UpdateStaff(c *fiber.Ctx) error {
	staffID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID petugas tidak valid")
	}

	var req dto.StaffUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var staff model.StaffModel
	if err := ctrl.DB.First(&staff, "staff_id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonErrorCode(c, fiber.StatusNotFound, "STAFF_NOT_FOUND", "Petugas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui petugas")
	}

	if req.StaffEmail != nil {
		var count int64
		if err := ctrl.DB.Model(&model.StaffModel{}).
			Where("staff_email = ? AND staff_id <> ?", strings.ToLower(strings.TrimSpace(*req.StaffEmail)), staffID).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui petugas")
		}
		if count > 0 {
			return helper.JsonErrorCode(c, fiber.StatusConflict, "EMAIL_EXISTS", "Email sudah terdaftar")
		}
	}

	req.Apply(&staff)
	if err := ctrl.DB.Save(&staff).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui petugas")
	}

	return helper.JsonUpdated(c, "Petugas berhasil diperbarui", dto.FromStaffModel(&staff))
}

// ResetStaffPassword: admin reset password petugas lain tanpa password lama.
func (ctrl *StaffController) ResetStaffPassword(c *fiber.Ctx) error {
	staffID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID petugas tidak valid")
	}

	var req dto.StaffResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var staff model.StaffModel
	if err := ctrl.DB.First(&staff, "staff_id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonErrorCode(c, fiber.StatusNotFound, "STAFF_NOT_FOUND", "Petugas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal reset password")
	}

	hashed, err := service.HashPassword(req.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	if err := ctrl.DB.Model(&staff).
		UpdateColumn("staff_password", hashed).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan password baru")
	}

	return helper.JsonOK(c, "Password petugas berhasil direset", nil)
}

// DeleteStaff: soft delete. Admin tidak bisa menghapus dirinya sendiri, dan
// petugas yang tercatat di peminjaman aktif tidak bisa dihapus.
func (ctrl *StaffController) DeleteStaff(c *fiber.Ctx) error {
	staffID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID petugas tidak valid")
	}

	currentID, err := auth.StaffIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi petugas tidak valid")
	}
	if currentID == staffID {
		return helper.JsonErrorCode(c, fiber.StatusConflict, "CANNOT_DELETE_SELF",
			"Tidak bisa menghapus akun sendiri")
	}

	var staff model.StaffModel
	if err := ctrl.DB.First(&staff, "staff_id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonErrorCode(c, fiber.StatusNotFound, "STAFF_NOT_FOUND", "Petugas tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus petugas")
	}

	var activeLoans int64
	if err := ctrl.DB.Model(&loanModel.LoanModel{}).
		Where("loan_staff_id = ? AND loan_status IN ?", staffID,
			[]string{loanModel.LoanStatusBorrowed, loanModel.LoanStatusOverdue}).
		Count(&activeLoans).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus petugas")
	}
	if activeLoans > 0 {
		return helper.JsonErrorCode(c, fiber.StatusConflict, "STAFF_HAS_ACTIVE_LOANS",
			"Petugas tidak bisa dihapus karena tercatat di peminjaman aktif")
	}

	if err := ctrl.DB.Delete(&staff).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus petugas")
	}

	return helper.JsonDeleted(c, "Petugas berhasil dihapus", fiber.Map{"staff_id": staffID})
}
