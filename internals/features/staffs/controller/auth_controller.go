// file: internals/features/staffs/controller/auth_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/tsalisacamila/sistemperpus/internals/features/staffs/dto"
	model "github.com/tsalisacamila/sistemperpus/internals/features/staffs/model"
	service "github.com/tsalisacamila/sistemperpus/internals/features/staffs/service"
	helper "github.com/tsalisacamila/sistemperpus/internals/helpers"
	"github.com/tsalisacamila/sistemperpus/internals/middlewares/auth"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

var validate = validator.New()

// Login: email + password → JWT. Pesan error sengaja sama untuk email tidak
// ditemukan dan password salah.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.StaffEmail))

	var staff model.StaffModel
	if err := ctrl.DB.First(&staff, "staff_email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonErrorCode(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Email atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses login")
	}

	if !staff.IsActive() {
		return helper.JsonErrorCode(c, fiber.StatusForbidden, "STAFF_INACTIVE", "Akun petugas telah dinonaktifkan")
	}

	if err := service.CheckPassword(staff.StaffPassword, req.StaffPassword); err != nil {
		return helper.JsonErrorCode(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Email atau password salah")
	}

	token, err := service.GenerateToken(&staff)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		Token: token,
		Staff: dto.FromStaffModel(&staff),
	})
}

// GetProfile: data petugas yang sedang login.
func (ctrl *AuthController) GetProfile(c *fiber.Ctx) error {
	staffID, err := auth.StaffIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi petugas tidak valid")
	}

	var staff model.StaffModel
	if err := ctrl.DB.First(&staff, "staff_id = ?", staffID).Error; err != nil {
		return helper.JsonErrorCode(c, fiber.StatusNotFound, "STAFF_NOT_FOUND", "Petugas tidak ditemukan")
	}

	return helper.JsonOK(c, "Profil berhasil diambil", dto.FromStaffModel(&staff))
}

// ChangePassword: petugas mengganti password sendiri. Token lama diblacklist
// supaya sesi berjalan ikut gugur.
func (ctrl *AuthController) ChangePassword(c *fiber.Ctx) error {
	staffID, err := auth.StaffIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi petugas tidak valid")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var staff model.StaffModel
	if err := ctrl.DB.First(&staff, "staff_id = ?", staffID).Error; err != nil {
		return helper.JsonErrorCode(c, fiber.StatusNotFound, "STAFF_NOT_FOUND", "Petugas tidak ditemukan")
	}

	if err := service.CheckPassword(staff.StaffPassword, req.CurrentPassword); err != nil {
		return helper.JsonErrorCode(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Password saat ini salah")
	}

	hashed, err := service.HashPassword(req.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password baru")
	}

	if err := ctrl.DB.Model(&staff).
		UpdateColumn("staff_password", hashed).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan password baru")
	}

	if tokenString, _ := c.Locals("token_string").(string); tokenString != "" {
		if err := service.BlacklistToken(ctrl.DB, tokenString); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Password diganti, tapi gagal menutup sesi lama")
		}
	}

	return helper.JsonOK(c, "Password berhasil diganti, silakan login ulang", nil)
}

// Logout: blacklist token sampai kadaluarsa alaminya.
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	tokenString, _ := c.Locals("token_string").(string)
	if tokenString == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak ditemukan")
	}

	if err := service.BlacklistToken(ctrl.DB, tokenString); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
	}

	return helper.JsonOK(c, "Logout berhasil", nil)
}
