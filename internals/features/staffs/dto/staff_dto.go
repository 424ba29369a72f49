// file: internals/features/staffs/dto/staff_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "github.com/tsalisacamila/sistemperpus/internals/features/staffs/model"
)

/* =========================================
   REQUEST DTOs
   ========================================= */

type LoginRequest struct {
	StaffEmail    string `json:"staff_email"    validate:"required,email"`
	StaffPassword string `json:"staff_password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6,max=255"`
}

type StaffCreateRequest struct {
	StaffName     string  `json:"staff_name"     validate:"required,min=2,max=255"`
	StaffEmail    string  `json:"staff_email"    validate:"required,email,max=255"`
	StaffPassword string  `json:"staff_password" validate:"required,min=6,max=255"`
	StaffRole     *string `json:"staff_role,omitempty" validate:"omitempty,oneof=admin librarian"`
}

type StaffUpdateRequest struct {
	StaffName   *string `json:"staff_name,omitempty"   validate:"omitempty,min=2,max=255"`
	StaffEmail  *string `json:"staff_email,omitempty"  validate:"omitempty,email,max=255"`
	StaffRole   *string `json:"staff_role,omitempty"   validate:"omitempty,oneof=admin librarian"`
	StaffStatus *string `json:"staff_status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type StaffResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6,max=255"`
}

/* =========================================
   RESPONSE DTOs
   ========================================= */

type StaffResponse struct {
	StaffID   uuid.UUID `json:"staff_id"`
	StaffCode string    `json:"staff_code"`

	StaffName  string `json:"staff_name"`
	StaffEmail string `json:"staff_email"`

	StaffRole   string `json:"staff_role"`
	StaffStatus string `json:"staff_status"`

	StaffCreatedAt time.Time `json:"staff_created_at"`
	StaffUpdatedAt time.Time `json:"staff_updated_at"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	Staff StaffResponse `json:"staff"`
}

type StaffStatistics struct {
	Admin     int64 `json:"admin"`
	Librarian int64 `json:"librarian"`
	Active    int64 `json:"active"`
	Inactive  int64 `json:"inactive"`
	Total     int64 `json:"total"`
}

/* =========================================
   MAPPERS
   ========================================= */

// ToModel membangun model baru. StaffCode + hash password diisi controller
// sebagai langkah eksplisit sebelum create (bukan hook).
func (r StaffCreateRequest) ToModel() *model.StaffModel {
	role := model.StaffRoleLibrarian
	if r.StaffRole != nil {
		role = *r.StaffRole
	}
	return &model.StaffModel{
		StaffID:     uuid.New(),
		StaffName:   strings.TrimSpace(r.StaffName),
		StaffEmail:  strings.ToLower(strings.TrimSpace(r.StaffEmail)),
		StaffRole:   role,
		StaffStatus: model.StaffStatusActive,
	}
}

func (r StaffUpdateRequest) Apply(dst *model.StaffModel) {
	if r.StaffName != nil {
		dst.StaffName = strings.TrimSpace(*r.StaffName)
	}
	if r.StaffEmail != nil {
		dst.StaffEmail = strings.ToLower(strings.TrimSpace(*r.StaffEmail))
	}
	if r.StaffRole != nil {
		dst.StaffRole = *r.StaffRole
	}
	if r.StaffStatus != nil {
		dst.StaffStatus = *r.StaffStatus
	}
}

func FromStaffModel(m *model.StaffModel) StaffResponse {
	return StaffResponse{
		StaffID:        m.StaffID,
		StaffCode:      m.StaffCode,
		StaffName:      m.StaffName,
		StaffEmail:     m.StaffEmail,
		StaffRole:      m.StaffRole,
		StaffStatus:    m.StaffStatus,
		StaffCreatedAt: m.StaffCreatedAt,
		StaffUpdatedAt: m.StaffUpdatedAt,
	}
}

func FromStaffModels(ms []model.StaffModel) []StaffResponse {
	out := make([]StaffResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromStaffModel(&ms[i]))
	}
	return out
}
