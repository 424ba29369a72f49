// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tsalisacamila/sistemperpus/internals/configs"
	staffModel "github.com/tsalisacamila/sistemperpus/internals/features/staffs/model"
)

// AuthMiddleware memverifikasi JWT petugas, cek blacklist, dan menaruh
// staff_id + staff_role ke Locals untuk dipakai controller.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// Cek blacklist (sekali per request)
		if c.Locals("token_checked") == nil {
			var existing staffModel.TokenBlacklistModel
			if err := db.Where("token = ?", tokenString).First(&existing).Error; err == nil {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Println("[ERROR] DB error saat cek blacklist:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			c.Locals("token_checked", true)
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		staffID, err := extractStaffID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing staff ID")
		}

		// Petugas harus masih ada & aktif
		var staff staffModel.StaffModel
		if err := db.First(&staff, "staff_id = ?", staffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Staff not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if staff.StaffStatus != staffModel.StaffStatusActive {
			return fiber.NewError(fiber.StatusForbidden, "Akun petugas telah dinonaktifkan")
		}

		c.Locals("staff_id", staff.StaffID.String())
		c.Locals("staff_role", staff.StaffRole)
		c.Locals("token_string", tokenString)
		return c.Next()
	}
}

// RequireAdmin membatasi route hanya untuk role admin.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("staff_role").(string)
		if role != staffModel.StaffRoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Akses ditolak. Hanya admin yang diizinkan.")
		}
		return c.Next()
	}
}

// StaffIDFromLocals membaca staff_id yang dipasang AuthMiddleware.
func StaffIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	v, _ := c.Locals("staff_id").(string)
	if v == "" {
		return uuid.Nil, errors.New("staff_id tidak ada di context")
	}
	return uuid.Parse(v)
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := strings.TrimSpace(c.Get("Authorization"))
	if h == "" {
		return "", errors.New("Token akses diperlukan")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("Format Authorization harus: Bearer <token>")
	}
	return strings.TrimSpace(parts[1]), nil
}

func extractStaffID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, _ := claims["staff_id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errors.New("staff_id claim invalid")
	}
	// exp wajib ada dan belum lewat
	if exp, ok := claims["exp"].(float64); !ok || time.Now().After(time.Unix(int64(exp), 0)) {
		return uuid.Nil, errors.New("token expired")
	}
	return id, nil
}
