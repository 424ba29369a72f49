// file: internals/features/staffs/model/token_blacklist_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenBlacklistModel menampung token yang sudah di-logout sampai kadaluarsa,
// dibersihkan berkala oleh scheduler.
type TokenBlacklistModel struct {
	TokenBlacklistID uuid.UUID `gorm:"type:uuid;primaryKey;column:token_blacklist_id" json:"token_blacklist_id"`

	Token     string    `gorm:"type:text;not null;index;column:token" json:"token"`
	ExpiredAt time.Time `gorm:"not null;column:expired_at" json:"expired_at"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"created_at"`
}

func (TokenBlacklistModel) TableName() string { return "token_blacklists" }
