package dbtime

import (
	"time"

	"gorm.io/datatypes"
)

// DateOnly memotong timestamp ke tengah malam UTC (kolom DATE).
// UTC supaya selisih hari selalu kelipatan 24 jam (bebas DST).
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ToDate mengubah timestamp ke datatypes.Date (DATEONLY).
func ToDate(t time.Time) datatypes.Date {
	return datatypes.Date(DateOnly(t))
}

// FromDate mengembalikan time.Time tengah malam dari datatypes.Date.
func FromDate(d datatypes.Date) time.Time {
	return DateOnly(time.Time(d))
}

// FormatDate menghasilkan representasi "YYYY-MM-DD" untuk response API.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format("2006-01-02")
}
