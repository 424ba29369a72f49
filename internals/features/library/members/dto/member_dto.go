// file: internals/features/library/members/dto/member_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "github.com/tsalisacamila/sistemperpus/internals/features/library/members/model"
	"github.com/tsalisacamila/sistemperpus/internals/helpers/dbtime"
)

/* =========================================
   REQUEST DTOs
   ========================================= */

type MemberCreateRequest struct {
	MemberName    string  `json:"member_name"  validate:"required,min=2,max=255"`
	MemberEmail   string  `json:"member_email" validate:"required,email,max=255"`
	MemberPhone   *string `json:"member_phone,omitempty" validate:"omitempty,max=20"`
	MemberAddress *string `json:"member_address,omitempty"`
}

type MemberUpdateRequest struct {
	MemberName    *string `json:"member_name,omitempty"  validate:"omitempty,min=2,max=255"`
	MemberEmail   *string `json:"member_email,omitempty" validate:"omitempty,email,max=255"`
	MemberPhone   *string `json:"member_phone,omitempty" validate:"omitempty,max=20"`
	MemberAddress *string `json:"member_address,omitempty"`
	MemberStatus  *string `json:"member_status,omitempty" validate:"omitempty,oneof=active inactive"`
}

/* =========================================
   RESPONSE DTO
   ========================================= */

type MemberResponse struct {
	MemberID   uuid.UUID `json:"member_id"`
	MemberCode string    `json:"member_code"`

	MemberName    string  `json:"member_name"`
	MemberEmail   string  `json:"member_email"`
	MemberPhone   *string `json:"member_phone,omitempty"`
	MemberAddress *string `json:"member_address,omitempty"`

	MemberJoinDate string `json:"member_join_date"`
	MemberStatus   string `json:"member_status"`

	MemberCreatedAt time.Time `json:"member_created_at"`
	MemberUpdatedAt time.Time `json:"member_updated_at"`
}

/* =========================================
   MAPPERS
   ========================================= */

// ToModel membangun model baru. MemberCode diisi service dari counter.
func (r MemberCreateRequest) ToModel(now time.Time) *model.MemberModel {
	return &model.MemberModel{
		MemberID:       uuid.New(),
		MemberName:     strings.TrimSpace(r.MemberName),
		MemberEmail:    strings.ToLower(strings.TrimSpace(r.MemberEmail)),
		MemberPhone:    trimPtr(r.MemberPhone),
		MemberAddress:  r.MemberAddress,
		MemberJoinDate: dbtime.ToDate(now),
		MemberStatus:   model.MemberStatusActive,
	}
}

func (r MemberUpdateRequest) Apply(dst *model.MemberModel) {
	if r.MemberName != nil {
		dst.MemberName = strings.TrimSpace(*r.MemberName)
	}
	if r.MemberEmail != nil {
		dst.MemberEmail = strings.ToLower(strings.TrimSpace(*r.MemberEmail))
	}
	if r.MemberPhone != nil {
		dst.MemberPhone = trimPtr(r.MemberPhone)
	}
	if r.MemberAddress != nil {
		dst.MemberAddress = r.MemberAddress
	}
	if r.MemberStatus != nil {
		dst.MemberStatus = *r.MemberStatus
	}
}

func FromMemberModel(m *model.MemberModel) MemberResponse {
	return MemberResponse{
		MemberID:        m.MemberID,
		MemberCode:      m.MemberCode,
		MemberName:      m.MemberName,
		MemberEmail:     m.MemberEmail,
		MemberPhone:     m.MemberPhone,
		MemberAddress:   m.MemberAddress,
		MemberJoinDate:  dbtime.FormatDate(m.MemberJoinDate),
		MemberStatus:    m.MemberStatus,
		MemberCreatedAt: m.MemberCreatedAt,
		MemberUpdatedAt: m.MemberUpdatedAt,
	}
}

func FromMemberModels(ms []model.MemberModel) []MemberResponse {
	out := make([]MemberResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromMemberModel(&ms[i]))
	}
	return out
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
