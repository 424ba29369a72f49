// file: internals/features/library/members/model/member_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MemberStatusActive   = "active"
	MemberStatusInactive = "inactive"
)

type MemberModel struct {
	MemberID uuid.UUID `gorm:"type:uuid;primaryKey;column:member_id" json:"member_id"`

	// Kode human-readable (MBR001, MBR002, ...), dibuat dari counter atomik.
	MemberCode string `gorm:"type:varchar(20);uniqueIndex;not null;column:member_code" json:"member_code"`

	MemberName    string  `gorm:"type:varchar(255);not null;column:member_name" json:"member_name"`
	MemberEmail   string  `gorm:"type:varchar(255);uniqueIndex;not null;column:member_email" json:"member_email"`
	MemberPhone   *string `gorm:"type:varchar(20);column:member_phone" json:"member_phone,omitempty"`
	MemberAddress *string `gorm:"type:text;column:member_address" json:"member_address,omitempty"`

	MemberJoinDate datatypes.Date `gorm:"not null;column:member_join_date" json:"member_join_date"`
	MemberStatus   string         `gorm:"type:varchar(10);not null;default:active;column:member_status" json:"member_status"`

	MemberCreatedAt time.Time      `gorm:"not null;autoCreateTime;column:member_created_at" json:"member_created_at"`
	MemberUpdatedAt time.Time      `gorm:"not null;autoUpdateTime;column:member_updated_at" json:"member_updated_at"`
	MemberDeletedAt gorm.DeletedAt `gorm:"column:member_deleted_at;index" json:"member_deleted_at,omitempty"`
}

func (MemberModel) TableName() string { return "members" }

func (m *MemberModel) IsActive() bool { return m.MemberStatus == MemberStatusActive }
