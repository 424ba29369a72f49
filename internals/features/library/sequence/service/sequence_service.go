// file: internals/features/library/sequence/service/sequence_service.go
package service

import (
	"fmt"

	"gorm.io/gorm"
)

// Jenis kode yang dikenal. Prefix + lebar zero-padding mengikuti format lama
// (MBR001, LN000001, STF001); angka bisa melebihi lebar pad tanpa masalah.
type CodeKind struct {
	Key    string
	Prefix string
	Width  int
}

var (
	MemberCode = CodeKind{Key: "member", Prefix: "MBR", Width: 3}
	LoanCode   = CodeKind{Key: "loan", Prefix: "LN", Width: 6}
	StaffCode  = CodeKind{Key: "staff", Prefix: "STF", Width: 3}
)

// NextCode mencetak kode berikutnya untuk satu jenis entitas lewat
// upsert-increment atomik. Aman dipanggil dari transaksi yang lebih besar:
// ikut rollback bila transaksi gagal.
func NextCode(tx *gorm.DB, kind CodeKind) (string, error) {
	var n int64
	err := tx.Raw(`
		INSERT INTO code_counters (counter_key, counter_value)
		VALUES (?, 1)
		ON CONFLICT (counter_key)
		DO UPDATE SET counter_value = counter_value + 1
		RETURNING counter_value
	`, kind.Key).Scan(&n).Error
	if err != nil {
		return "", fmt.Errorf("next code %s: %w", kind.Key, err)
	}
	return fmt.Sprintf("%s%0*d", kind.Prefix, kind.Width, n), nil
}
