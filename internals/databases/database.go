package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	bookModel "github.com/tsalisacamila/sistemperpus/internals/features/library/books/model"
	loanModel "github.com/tsalisacamila/sistemperpus/internals/features/library/loans/model"
	memberModel "github.com/tsalisacamila/sistemperpus/internals/features/library/members/model"
	seqModel "github.com/tsalisacamila/sistemperpus/internals/features/library/sequence/model"
	staffModel "github.com/tsalisacamila/sistemperpus/internals/features/staffs/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=sistemperpus&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func Migrate() {
	if err := AutoMigrate(DB); err != nil {
		log.Fatalf("❌ Gagal migrasi DB: %v", err)
	}
	log.Println("✅ Migrasi DB selesai.")
}

// AutoMigrate dipakai juga oleh test setup dengan DB terpisah.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&bookModel.BookModel{},
		&memberModel.MemberModel{},
		&staffModel.StaffModel{},
		&staffModel.TokenBlacklistModel{},
		&loanModel.LoanModel{},
		&seqModel.CodeCounterModel{},
	)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
