package service_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tsalisacamila/sistemperpus/internals/configs"
	database "github.com/tsalisacamila/sistemperpus/internals/databases"
	model "github.com/tsalisacamila/sistemperpus/internals/features/staffs/model"
	service "github.com/tsalisacamila/sistemperpus/internals/features/staffs/service"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_txlock=immediate&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := service.HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", hashed)

	assert.NoError(t, service.CheckPassword(hashed, "rahasia123"))
	assert.Error(t, service.CheckPassword(hashed, "salah"))
}

func TestGenerateTokenCarriesStaffClaims(t *testing.T) {
	configs.JWTSecret = "test-secret"

	staff := &model.StaffModel{
		StaffID:   uuid.New(),
		StaffRole: model.StaffRoleAdmin,
	}

	tokenString, err := service.GenerateToken(staff)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	assert.Equal(t, staff.StaffID.String(), claims["staff_id"])
	assert.Equal(t, model.StaffRoleAdmin, claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.True(t, time.Unix(int64(exp), 0).After(time.Now()))
}

func TestGenerateTokenWithoutSecret(t *testing.T) {
	configs.JWTSecret = ""

	_, err := service.GenerateToken(&model.StaffModel{StaffID: uuid.New()})
	assert.Error(t, err)
}

func TestBlacklistTokenStoresTokenExpiry(t *testing.T) {
	configs.JWTSecret = "test-secret"
	db := setupTestDB(t)

	staff := &model.StaffModel{StaffID: uuid.New(), StaffRole: model.StaffRoleLibrarian}
	tokenString, err := service.GenerateToken(staff)
	require.NoError(t, err)

	require.NoError(t, service.BlacklistToken(db, tokenString))

	var entry model.TokenBlacklistModel
	require.NoError(t, db.First(&entry, "token = ?", tokenString).Error)
	// expired_at mengikuti exp token, bukan waktu insert
	assert.True(t, entry.ExpiredAt.After(time.Now().Add(23*time.Hour)))
}
