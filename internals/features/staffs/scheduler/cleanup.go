package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	model "github.com/tsalisacamila/sistemperpus/internals/features/staffs/model"
)

// StartBlacklistCleanupScheduler menghapus token blacklist yang sudah lama
// kadaluarsa supaya tabel tidak tumbuh terus.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ttlDays := 7
		if val := os.Getenv("TOKEN_BLACKLIST_TTL_DAYS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil {
				ttlDays = parsed
			}
		}

		for {
			deleteBefore := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)

			res := db.Where("expired_at < ?", deleteBefore).
				Delete(&model.TokenBlacklistModel{})
			if res.Error != nil {
				log.Printf("[CLEANUP ERROR] Gagal hapus token kadaluarsa: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] %d token kadaluarsa dihapus", res.RowsAffected)
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}
