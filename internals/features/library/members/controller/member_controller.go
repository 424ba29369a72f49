// file: internals/features/library/members/controller/member_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	loanModel "github.com/tsalisacamila/sistemperpus/internals/features/library/loans/model"
	"github.com/tsalisacamila/sistemperpus/internals/features/library/members/dto"
	model "github.com/tsalisacamila/sistemperpus/internals/features/library/members/model"
	sequence "github.com/tsalisacamila/sistemperpus/internals/features/library/sequence/service"
	helper "github.com/tsalisacamila/sistemperpus/internals/helpers"
)

type MemberController struct {
	DB *gorm.DB
}

func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{DB: db}
}

var validate = validator.New()

// GetMembers: daftar anggota.
// Query: ?search= (nama/email/kode), ?status=, ?page=, ?per_page=
func (ctrl *MemberController) GetMembers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.MemberModel{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(member_name) LIKE ? OR LOWER(member_email) LIKE ? OR LOWER(member_code) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("member_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data anggota")
	}

	var members []model.MemberModel
	if err := q.Order("member_code ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&members).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data anggota")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar anggota berhasil diambil", dto.FromMemberModels(members), pagination)
}

// GetMemberByID: detail satu anggota.
func (ctrl *MemberController) GetMemberByID(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID anggota tidak valid")
	}

	var member model.MemberModel
	if err := ctrl.DB.First(&member, "member_id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonErrorCode(c, fiber.StatusNotFound, "MEMBER_NOT_FOUND", "Anggota tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data anggota")
	}

	return helper.JsonOK(c, "Detail anggota berhasil diambil", dto.FromMemberModel(&member))
}

// CreateMember: daftarkan anggota baru. Kode MBR dicetak dari counter atomik
// dalam transaksi yang sama dengan insert, jadi tidak ada kode ganda meski
// pendaftaran bersamaan.
func (ctrl *MemberController) CreateMember(c *fiber.Ctx) error {
	var req dto.MemberCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	member := req.ToModel(time.Now())

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.MemberModel{}).
			Where("member_email = ?", member.MemberEmail).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return helper.ErrConflict("EMAIL_EXISTS", "Email sudah terdaftar")
		}

		code, err := sequence.NextCode(tx, sequence.MemberCode)
		if err != nil {
			return err
		}
		member.MemberCode = code

		return tx.Create(member).Error
	})
	if err != nil {
		return helper.JsonServiceError(c, err)
	}

	return helper.JsonCreated(c, "Anggota berhasil didaftarkan", dto.FromMemberModel(member))
}

// UpdateMember: ubah data anggota.
func (ctrl *MemberController) UpdateMember(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID anggota tidak valid")
	}

	var req dto.MemberUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var member model.MemberModel
	if err := ctrl.DB.First(&member, "member_id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonErrorCode(c, fiber.StatusNotFound, "MEMBER_NOT_FOUND", "Anggota tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui anggota")
	}

	if req.MemberEmail != nil {
		var count int64
		if err := ctrl.DB.Model(&model.MemberModel{}).
			Where("member_email = ? AND member_id <> ?", strings.ToLower(strings.TrimSpace(*req.MemberEmail)), memberID).
			Count(&count).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui anggota")
		}
		if count > 0 {
			return helper.JsonErrorCode(c, fiber.StatusConflict, "EMAIL_EXISTS", "Email sudah terdaftar")
		}
	}

	req.Apply(&member)
	if err := ctrl.DB.Save(&member).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui anggota")
	}

	return helper.JsonUpdated(c, "Anggota berhasil diperbarui", dto.FromMemberModel(&member))
}

// DeleteMember: soft delete. Ditolak bila masih ada peminjaman aktif.
func (ctrl *MemberController) DeleteMember(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID anggota tidak valid")
	}

	var member model.MemberModel
	if err := ctrl.DB.First(&member, "member_id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonErrorCode(c, fiber.StatusNotFound, "MEMBER_NOT_FOUND", "Anggota tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus anggota")
	}

	var activeLoans int64
	if err := ctrl.DB.Model(&loanModel.LoanModel{}).
		Where("loan_member_id = ? AND loan_status IN ?", memberID,
			[]string{loanModel.LoanStatusBorrowed, loanModel.LoanStatusOverdue}).
		Count(&activeLoans).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus anggota")
	}
	if activeLoans > 0 {
		return helper.JsonErrorCode(c, fiber.StatusConflict, "MEMBER_HAS_ACTIVE_LOANS",
			"Anggota tidak bisa dihapus karena masih ada peminjaman aktif")
	}

	if err := ctrl.DB.Delete(&member).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus anggota")
	}

	return helper.JsonDeleted(c, "Anggota berhasil dihapus", fiber.Map{"member_id": memberID})
}
