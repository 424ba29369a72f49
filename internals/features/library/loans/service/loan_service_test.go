package service_test

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	database "github.com/tsalisacamila/sistemperpus/internals/databases"
	bookModel "github.com/tsalisacamila/sistemperpus/internals/features/library/books/model"
	inventory "github.com/tsalisacamila/sistemperpus/internals/features/library/books/service"
	loanModel "github.com/tsalisacamila/sistemperpus/internals/features/library/loans/model"
	service "github.com/tsalisacamila/sistemperpus/internals/features/library/loans/service"
	memberModel "github.com/tsalisacamila/sistemperpus/internals/features/library/members/model"
	staffModel "github.com/tsalisacamila/sistemperpus/internals/features/staffs/model"
	"github.com/tsalisacamila/sistemperpus/internals/helpers/dbtime"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_txlock=immediate&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedBook(t *testing.T, db *gorm.DB, total int) *bookModel.BookModel {
	t.Helper()
	book := &bookModel.BookModel{
		BookID:              uuid.New(),
		BookTitle:           "Pemrograman Go",
		BookAuthor:          "Budi Santoso",
		BookTotalCopies:     total,
		BookAvailableCopies: total,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

func seedMember(t *testing.T, db *gorm.DB, code, status string) *memberModel.MemberModel {
	t.Helper()
	member := &memberModel.MemberModel{
		MemberID:       uuid.New(),
		MemberCode:     code,
		MemberName:     "Siti Rahma",
		MemberEmail:    code + "@example.com",
		MemberJoinDate: dbtime.ToDate(time.Now()),
		MemberStatus:   status,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func seedStaff(t *testing.T, db *gorm.DB) *staffModel.StaffModel {
	t.Helper()
	staff := &staffModel.StaffModel{
		StaffID:       uuid.New(),
		StaffCode:     "STF001",
		StaffName:     "Andi Wijaya",
		StaffEmail:    "andi@example.com",
		StaffPassword: "hashed",
		StaffRole:     staffModel.StaffRoleLibrarian,
		StaffStatus:   staffModel.StaffStatusActive,
	}
	require.NoError(t, db.Create(staff).Error)
	return staff
}

func availableCopies(t *testing.T, db *gorm.DB, bookID uuid.UUID) int {
	t.Helper()
	var book bookModel.BookModel
	require.NoError(t, db.First(&book, "book_id = ?", bookID).Error)
	return book.BookAvailableCopies
}

func daysAgo(n int) *time.Time {
	d := time.Now().AddDate(0, 0, -n)
	return &d
}

func TestCreateLoanSetsDueDateAndDecrementsStock(t *testing.T) {
	db := setupTestDB(t)
	book := seedBook(t, db, 2)
	member := seedMember(t, db, "MBR001", memberModel.MemberStatusActive)
	staff := seedStaff(t, db)

	loan, err := service.CreateLoan(db, service.CreateLoanInput{
		MemberID: member.MemberID,
		BookID:   book.BookID,
		StaffID:  staff.StaffID,
	})
	require.NoError(t, err)

	assert.Equal(t, "LN000001", loan.LoanCode)
	assert.Equal(t, loanModel.LoanStatusBorrowed, loan.LoanStatus)

	// due date selalu loan date + 7 hari
	expectedDue := dbtime.FromDate(loan.LoanDate).AddDate(0, 0, 7)
	assert.Equal(t, expectedDue, dbtime.FromDate(loan.LoanDueDate))

	assert.Equal(t, 1, availableCopies(t, db, book.BookID))

	// relasi ikut dimuat untuk response
	require.NotNil(t, loan.Member)
	require.NotNil(t, loan.Book)
	require.NotNil(t, loan.Staff)
	assert.Equal(t, member.MemberID, loan.Member.MemberID)
}

func TestCreateLoanFailsWhenBookUnavailable(t *testing.T) {
	db := setupTestDB(t)
	book := seedBook(t, db, 1)
	staff := seedStaff(t, db)
	m1 := seedMember(t, db, "MBR001", memberModel.MemberStatusActive)
	m2 := seedMember(t, db, "MBR002", memberModel.MemberStatusActive)

	_, err := service.CreateLoan(db, service.CreateLoanInput{
		MemberID: m1.MemberID, BookID: book.BookID, StaffID: staff.StaffID,
	})
	require.NoError(t, err)

	_, err = service.CreateLoan(db, service.CreateLoanInput{
		MemberID: m2.MemberID, BookID: book.BookID, StaffID: staff.StaffID,
	})
	assert.ErrorIs(t, err, inventory.ErrBookUnavailable)

	// transaksi gagal tidak meninggalkan baris loan
	var count int64
	require.NoError(t, db.Model(&loanModel.LoanModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 0, availableCopies(t, db, book.BookID))
}

func TestCreateLoanRejectsInactiveMember(t *testing.T) {
	db := setupTestDB(t)
	book := seedBook(t, db, 1)
	staff := seedStaff(t, db)
	member := seedMember(t, db, "MBR001", memberModel.MemberStatusInactive)

	_, err := service.CreateLoan(db, service.CreateLoanInput{
		MemberID: member.MemberID, BookID: book.BookID, StaffID: staff.StaffID,
	})
	assert.ErrorIs(t, err, service.ErrMemberInactive)

	// stok tidak tersentuh
	assert.Equal(t, 1, availableCopies(t, db, book.BookID))
}

func TestCreateLoanRejectsUnknownMemberAndStaff(t *testing.T) {
	db := setupTestDB(t)
	book := seedBook(t, db, 1)
	staff := seedStaff(t, db)
	member := seedMember(t, db, "MBR001", memberModel.MemberStatusActive)

	_, err := service.CreateLoan(db, service.CreateLoanInput{
		MemberID: uuid.New(), BookID: book.BookID, StaffID: staff.StaffID,
	})
	assert.ErrorIs(t, err, service.ErrMemberNotFound)

	_, err = service.CreateLoan(db, service.CreateLoanInput{
		MemberID: member.MemberID, BookID: book.BookID, StaffID: uuid.New(),
	})
	assert.ErrorIs(t, err, service.ErrStaffNotFound)
}

func TestReturnLoanRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	book := seedBook(t, db, 1)
	staff := seedStaff(t, db)
	member := seedMember(t, db, "MBR001", memberModel.MemberStatusActive)

	loan, err := service.CreateLoan(db, service.CreateLoanInput{
		MemberID: member.MemberID, BookID: book.BookID, StaffID: staff.StaffID,
	})
	require.NoError(t, err)
	require.Equal(t, 0, availableCopies(t, db, book.BookID))

	notes := "kondisi baik"
	returned, err := service.ReturnLoan(db, loan.LoanID, &notes)
	require.NoError(t, err)

	assert.Equal(t, loanModel.LoanStatusReturned, returned.LoanStatus)
	require.NotNil(t, returned.LoanReturnDate)
	assert.Equal(t, dbtime.DateOnly(time.Now()), dbtime.FromDate(*returned.LoanReturnDate))
	require.NotNil(t, returned.LoanNotes)
	assert.Equal(t, "kondisi baik", *returned.LoanNotes)

	assert.Equal(t, 1, availableCopies(t, db, book.BookID))
}

func TestReturnLoanTwiceIsRejected(t *testing.T) {
	db := setupTestDB(t)
	book := seedBook(t, db, 1)
	staff := seedStaff(t, db)
	member := seedMember(t, db, "MBR001", memberModel.MemberStatusActive)

	loan, err := service.CreateLoan(db, service.CreateLoanInput{
		MemberID: member.MemberID, BookID: book.BookID, StaffID: staff.StaffID,
	})
	require.NoError(t, err)

	_, err = service.ReturnLoan(db, loan.LoanID, nil)
	require.NoError(t, err)

	// pengembalian kedua ditolak dan stok tidak naik dua kali
	_, err = service.ReturnLoan(db, loan.LoanID, nil)
	assert.ErrorIs(t, err, service.ErrAlreadyReturned)
	assert.Equal(t, 1, availableCopies(t, db, book.BookID))
}

func TestReturnLoanUnknown(t *testing.T) {
	db := setupTestDB(t)

	_, err := service.ReturnLoan(db, uuid.New(), nil)
	assert.ErrorIs(t, err, service.ErrLoanNotFound)
}

func TestOverdueMemberBlockedUntilReturn(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db)
	member := seedMember(t, db, "MBR001", memberModel.MemberStatusActive)
	oldBook := seedBook(t, db, 1)
	newBook := seedBook(t, db, 1)

	// pinjaman 10 hari lalu → due 3 hari lalu
	oldLoan, err := service.CreateLoan(db, service.CreateLoanInput{
		MemberID: member.MemberID, BookID: oldBook.BookID, StaffID: staff.StaffID,
		LoanDate: daysAgo(10),
	})
	require.NoError(t, err)

	// pinjaman baru ditolak meski sweeper background belum jalan:
	// reklasifikasi per-anggota terjadi di dalam transaksi create
	_, err = service.CreateLoan(db, service.CreateLoanInput{
		MemberID: member.MemberID, BookID: newBook.BookID, StaffID: staff.StaffID,
	})
	assert.ErrorIs(t, err, service.ErrMemberOverdue)

	// setelah dikembalikan, anggota bisa pinjam lagi
	_, err = service.ReturnLoan(db, oldLoan.LoanID, nil)
	require.NoError(t, err)

	_, err = service.CreateLoan(db, service.CreateLoanInput{
		MemberID: member.MemberID, BookID: newBook.BookID, StaffID: staff.StaffID,
	})
	assert.NoError(t, err)
}

func TestSweepOverdueReclassifies(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db)
	member := seedMember(t, db, "MBR001", memberModel.MemberStatusActive)
	book := seedBook(t, db, 1)

	loan, err := service.CreateLoan(db, service.CreateLoanInput{
		MemberID: member.MemberID, BookID: book.BookID, StaffID: staff.StaffID,
		LoanDate: daysAgo(10),
	})
	require.NoError(t, err)

	n, err := service.SweepOverdue(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := service.FindLoanWithDetails(db, loan.LoanID)
	require.NoError(t, err)
	assert.Equal(t, loanModel.LoanStatusOverdue, got.LoanStatus)
	assert.True(t, got.IsOverdue(time.Now()))
	assert.Equal(t, 3, got.DaysOverdue(time.Now()))

	// sweep idempoten
	n, err = service.SweepOverdue(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestSweepLeavesCurrentLoansAlone(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db)
	member := seedMember(t, db, "MBR001", memberModel.MemberStatusActive)
	book := seedBook(t, db, 1)

	loan, err := service.CreateLoan(db, service.CreateLoanInput{
		MemberID: member.MemberID, BookID: book.BookID, StaffID: staff.StaffID,
	})
	require.NoError(t, err)

	n, err := service.SweepOverdue(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	got, err := service.FindLoanWithDetails(db, loan.LoanID)
	require.NoError(t, err)
	assert.Equal(t, loanModel.LoanStatusBorrowed, got.LoanStatus)
	assert.False(t, got.IsOverdue(time.Now()))
	assert.Equal(t, 0, got.DaysOverdue(time.Now()))
}

func TestStatisticsCountsPerStatus(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db)
	m1 := seedMember(t, db, "MBR001", memberModel.MemberStatusActive)
	m2 := seedMember(t, db, "MBR002", memberModel.MemberStatusActive)
	m3 := seedMember(t, db, "MBR003", memberModel.MemberStatusActive)
	book := seedBook(t, db, 3)

	// m1: terlambat
	_, err := service.CreateLoan(db, service.CreateLoanInput{
		MemberID: m1.MemberID, BookID: book.BookID, StaffID: staff.StaffID,
		LoanDate: daysAgo(10),
	})
	require.NoError(t, err)

	// m2: masih jalan
	_, err = service.CreateLoan(db, service.CreateLoanInput{
		MemberID: m2.MemberID, BookID: book.BookID, StaffID: staff.StaffID,
	})
	require.NoError(t, err)

	// m3: sudah kembali
	loan3, err := service.CreateLoan(db, service.CreateLoanInput{
		MemberID: m3.MemberID, BookID: book.BookID, StaffID: staff.StaffID,
	})
	require.NoError(t, err)
	_, err = service.ReturnLoan(db, loan3.LoanID, nil)
	require.NoError(t, err)

	stats, err := service.Statistics(db)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.Borrowed)
	assert.Equal(t, int64(1), stats.Overdue)
	assert.Equal(t, int64(1), stats.Returned)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Active)

	// agregat harus konsisten internal: total = jumlah semua status
	assert.Equal(t, stats.Borrowed+stats.Overdue+stats.Returned, stats.Total)
}

func TestListAndActiveAndOverdueQueries(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db)
	m1 := seedMember(t, db, "MBR001", memberModel.MemberStatusActive)
	m2 := seedMember(t, db, "MBR002", memberModel.MemberStatusActive)
	book := seedBook(t, db, 2)

	_, err := service.CreateLoan(db, service.CreateLoanInput{
		MemberID: m1.MemberID, BookID: book.BookID, StaffID: staff.StaffID,
		LoanDate: daysAgo(10),
	})
	require.NoError(t, err)
	_, err = service.CreateLoan(db, service.CreateLoanInput{
		MemberID: m2.MemberID, BookID: book.BookID, StaffID: staff.StaffID,
	})
	require.NoError(t, err)

	all, total, err := service.ListLoans(db, service.LoanFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	onlyM1, total, err := service.ListLoans(db, service.LoanFilter{MemberID: m1.MemberID}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, onlyM1, 1)
	assert.Equal(t, m1.MemberID, onlyM1[0].LoanMemberID)

	active, err := service.ActiveLoans(db, uuid.Nil)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	overdue, err := service.OverdueLoans(db)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, m1.MemberID, overdue[0].LoanMemberID)
}

func TestConcurrentBorrowLastCopy(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db)
	m1 := seedMember(t, db, "MBR001", memberModel.MemberStatusActive)
	m2 := seedMember(t, db, "MBR002", memberModel.MemberStatusActive)
	book := seedBook(t, db, 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, member := range []*memberModel.MemberModel{m1, m2} {
		wg.Add(1)
		go func(i int, memberID uuid.UUID) {
			defer wg.Done()
			_, errs[i] = service.CreateLoan(db, service.CreateLoanInput{
				MemberID: memberID, BookID: book.BookID, StaffID: staff.StaffID,
			})
		}(i, member.MemberID)
	}
	wg.Wait()

	// tepat satu yang berhasil; salinan terakhir tidak bisa terpinjam dua kali
	var okCount, unavailableCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case assert.ErrorIs(t, err, inventory.ErrBookUnavailable):
			unavailableCount++
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, unavailableCount)

	assert.Equal(t, 0, availableCopies(t, db, book.BookID))

	var count int64
	require.NoError(t, db.Model(&loanModel.LoanModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
