package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	loanService "github.com/tsalisacamila/sistemperpus/internals/features/library/loans/service"
)

// StartOverdueScheduler menjalankan sweep overdue berkala di background.
// Listing/statistik juga sweep sendiri sebelum membaca, jadi scheduler ini
// hanya menjaga status tidak basi lebih lama dari intervalnya.
func StartOverdueScheduler(db *gorm.DB) {
	go func() {
		intervalMinutes := 60
		if val := os.Getenv("OVERDUE_SWEEP_INTERVAL_MINUTES"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalMinutes = parsed
			}
		}

		for {
			updated, err := loanService.SweepOverdue(db)
			if err != nil {
				log.Printf("[SWEEP ERROR] Gagal update status overdue: %v", err)
			} else if updated > 0 {
				log.Printf("[SWEEP] %d peminjaman ditandai overdue", updated)
			}

			time.Sleep(time.Duration(intervalMinutes) * time.Minute)
		}
	}()
}
