package service_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	database "github.com/tsalisacamila/sistemperpus/internals/databases"
	model "github.com/tsalisacamila/sistemperpus/internals/features/library/sequence/model"
	service "github.com/tsalisacamila/sistemperpus/internals/features/library/sequence/service"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_txlock=immediate&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func TestNextCodeFirstValues(t *testing.T) {
	db := setupTestDB(t)

	member, err := service.NextCode(db, service.MemberCode)
	require.NoError(t, err)
	assert.Equal(t, "MBR001", member)

	loan, err := service.NextCode(db, service.LoanCode)
	require.NoError(t, err)
	assert.Equal(t, "LN000001", loan)

	staff, err := service.NextCode(db, service.StaffCode)
	require.NoError(t, err)
	assert.Equal(t, "STF001", staff)
}

func TestNextCodeIncrementsPerKind(t *testing.T) {
	db := setupTestDB(t)

	first, err := service.NextCode(db, service.MemberCode)
	require.NoError(t, err)
	second, err := service.NextCode(db, service.MemberCode)
	require.NoError(t, err)

	assert.Equal(t, "MBR001", first)
	assert.Equal(t, "MBR002", second)

	// counter lain tidak ikut naik
	loan, err := service.NextCode(db, service.LoanCode)
	require.NoError(t, err)
	assert.Equal(t, "LN000001", loan)
}

func TestNextCodeGrowsPastPadWidth(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&model.CodeCounterModel{
		CounterKey:   service.MemberCode.Key,
		CounterValue: 999,
	}).Error)

	code, err := service.NextCode(db, service.MemberCode)
	require.NoError(t, err)
	assert.Equal(t, "MBR1000", code)
}

func TestNextCodeConcurrentUnique(t *testing.T) {
	db := setupTestDB(t)

	const n = 20
	codes := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := service.NextCode(db, service.LoanCode)
			assert.NoError(t, err)
			codes <- code
		}()
	}
	wg.Wait()
	close(codes)

	seen := map[string]bool{}
	for code := range codes {
		assert.False(t, seen[code], "kode ganda: %s", code)
		seen[code] = true
	}
	assert.Len(t, seen, n)
}
