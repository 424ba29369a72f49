// file: internals/features/staffs/model/staff_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StaffRoleAdmin     = "admin"
	StaffRoleLibrarian = "librarian"

	StaffStatusActive   = "active"
	StaffStatusInactive = "inactive"
)

type StaffModel struct {
	StaffID uuid.UUID `gorm:"type:uuid;primaryKey;column:staff_id" json:"staff_id"`

	StaffCode string `gorm:"type:varchar(20);uniqueIndex;not null;column:staff_code" json:"staff_code"`

	StaffName  string `gorm:"type:varchar(255);not null;column:staff_name" json:"staff_name"`
	StaffEmail string `gorm:"type:varchar(255);uniqueIndex;not null;column:staff_email" json:"staff_email"`

	// bcrypt hash, tidak pernah keluar lewat JSON
	StaffPassword string `gorm:"type:varchar(255);not null;column:staff_password" json:"-"`

	StaffRole   string `gorm:"type:varchar(10);not null;default:librarian;column:staff_role" json:"staff_role"`
	StaffStatus string `gorm:"type:varchar(10);not null;default:active;column:staff_status" json:"staff_status"`

	StaffCreatedAt time.Time      `gorm:"not null;autoCreateTime;column:staff_created_at" json:"staff_created_at"`
	StaffUpdatedAt time.Time      `gorm:"not null;autoUpdateTime;column:staff_updated_at" json:"staff_updated_at"`
	StaffDeletedAt gorm.DeletedAt `gorm:"column:staff_deleted_at;index" json:"staff_deleted_at,omitempty"`
}

func (StaffModel) TableName() string { return "staff" }

func (s *StaffModel) IsActive() bool { return s.StaffStatus == StaffStatusActive }
func (s *StaffModel) IsAdmin() bool  { return s.StaffRole == StaffRoleAdmin }
