// file: internals/features/staffs/service/token_service.go
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tsalisacamila/sistemperpus/internals/configs"
	model "github.com/tsalisacamila/sistemperpus/internals/features/staffs/model"
)

const tokenTTL = 24 * time.Hour

// GenerateToken membuat access token HS256 untuk petugas.
func GenerateToken(staff *model.StaffModel) (string, error) {
	secret := configs.JWTSecret
	if secret == "" {
		return "", errors.New("JWT_SECRET belum diset")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"staff_id": staff.StaffID.String(),
		"role":     staff.StaffRole,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// BlacklistToken menandai token sebagai tidak berlaku (logout) sampai
// kadaluarsa alaminya; scheduler membersihkan entri lama.
func BlacklistToken(db *gorm.DB, tokenString string) error {
	expiredAt := time.Now().Add(tokenTTL)

	// pakai exp asli token bila masih bisa dibaca
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(exp), 0)
		}
	}

	return db.Create(&model.TokenBlacklistModel{
		TokenBlacklistID: uuid.New(),
		Token:            tokenString,
		ExpiredAt:        expiredAt,
	}).Error
}
