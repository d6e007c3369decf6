package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"barberbook/internal/domain"
	"barberbook/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func newTestEngine(t *testing.T) (BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := BookingService{
		Bookings: repositories.BookingRepository{DB: db},
		Haircuts: repositories.HaircutRepository{DB: db},
		Calendar: CalendarService{OpenHour: 9, CloseHour: 17},
		Payments: PaymentService{Now: fixedClock},
		HoldTTL:  15 * time.Minute,
		Now:      fixedClock,
	}
	return svc, mock, func() { db.Close() }
}

func TestHoldRejectsMalformedInput(t *testing.T) {
	svc, _, done := newTestEngine(t)
	defer done()

	if _, err := svc.Hold("01-06-2025", "10:00", 1); !domain.IsValidation(err) {
		t.Fatalf("bad date should be validation error, got %v", err)
	}
	if _, err := svc.Hold("2025-06-01", "10:30", 1); !domain.IsValidation(err) {
		t.Fatalf("off-hour slot should be validation error, got %v", err)
	}
	if _, err := svc.Hold("2025-06-01", "08:00", 1); !domain.IsValidation(err) {
		t.Fatalf("slot before opening should be validation error, got %v", err)
	}
	if _, err := svc.Hold("2025-06-01", "17:00", 1); !domain.IsValidation(err) {
		t.Fatalf("slot at closing should be validation error, got %v", err)
	}
	if _, err := svc.Hold("2025-06-01", "10:00", 0); !domain.IsValidation(err) {
		t.Fatalf("missing customer should be validation error, got %v", err)
	}
}

func TestHoldCanonicalizesSlotLabel(t *testing.T) {
	svc, mock, done := newTestEngine(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	b, err := svc.Hold("2025-06-01", "9:00", 1)
	if err != nil {
		t.Fatalf("hold returned error: %v", err)
	}
	if b.Slot != "09:00" {
		t.Fatalf("slot not canonicalized: %q", b.Slot)
	}
}

func TestHoldSurfacesSlotUnavailableWithoutRetry(t *testing.T) {
	svc, mock, done := newTestEngine(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(duplicateKeyErr())
	mock.ExpectRollback()

	_, err := svc.Hold("2025-06-01", "10:00", 1)
	if !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}

	// Exactly one transaction: business rejections must not be retried.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHoldRetriesOnceThenPersistenceError(t *testing.T) {
	svc, mock, done := newTestEngine(t)
	defer done()

	mock.ExpectBegin().WillReturnError(fmt.Errorf("connection lost"))
	mock.ExpectBegin().WillReturnError(fmt.Errorf("connection lost"))

	_, err := svc.Hold("2025-06-01", "10:00", 1)
	if !domain.IsPersistence(err) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHoldRecoversOnRetry(t *testing.T) {
	svc, mock, done := newTestEngine(t)
	defer done()

	mock.ExpectBegin().WillReturnError(fmt.Errorf("connection lost"))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	b, err := svc.Hold("2025-06-01", "10:00", 1)
	if err != nil {
		t.Fatalf("hold should succeed on retry, got %v", err)
	}
	if b.ID != 4 {
		t.Fatalf("unexpected booking id %d", b.ID)
	}
}

func TestConfirmBadCardTouchesNoBookingRow(t *testing.T) {
	svc, mock, done := newTestEngine(t)
	defer done()

	mock.ExpectQuery("SELECT .* FROM haircuts WHERE id=").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "duration_min"}).
			AddRow(2, "Skin Fade", 3000, 45))

	_, err := svc.Confirm(context.Background(), "tok-a", 2, Card{Number: "123", CVC: "123", Expiry: "06/27"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for short card number, got %v", err)
	}

	// No booking statement may have run.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("booking rows were touched: %v", err)
	}
}

func TestConfirmPaymentDeclineLeavesHoldIntact(t *testing.T) {
	svc, mock, done := newTestEngine(t)
	defer done()
	svc.Payments.Authorizer = declineAll{}

	mock.ExpectQuery("SELECT .* FROM haircuts WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "duration_min"}).
			AddRow(2, "Skin Fade", 3000, 45))

	_, err := svc.Confirm(context.Background(), "tok-a", 2, Card{Number: "4242424242424242", CVC: "123", Expiry: "06/27"})
	if !errors.Is(err, domain.ErrPaymentRejected) {
		t.Fatalf("expected ErrPaymentRejected, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("booking rows were touched: %v", err)
	}
}

func TestConfirmUnknownHaircutIsValidation(t *testing.T) {
	svc, mock, done := newTestEngine(t)
	defer done()

	mock.ExpectQuery("SELECT .* FROM haircuts WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "duration_min"}))

	_, err := svc.Confirm(context.Background(), "tok-a", 99, Card{Number: "4242424242424242", CVC: "123", Expiry: "06/27"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestConfirmSuccess(t *testing.T) {
	svc, mock, done := newTestEngine(t)
	defer done()

	now := fixedClock()

	mock.ExpectQuery("SELECT .* FROM haircuts WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "duration_min"}).
			AddRow(2, "Skin Fade", 3000, 45))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM bookings WHERE hold_token=.* FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "booking_date", "slot_time", "customer_id", "status", "expires_at"},
		).AddRow(7, "2025-06-01", "10:00", 1, "pending", now.Add(5*time.Minute)))
	mock.ExpectExec("UPDATE bookings SET status=").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	b, err := svc.Confirm(context.Background(), "tok-a", 2, Card{Number: "4242424242424242", CVC: "123", Expiry: "06/27"})
	if err != nil {
		t.Fatalf("confirm returned error: %v", err)
	}
	if b.Status != "confirmed" {
		t.Fatalf("unexpected status %q", b.Status)
	}
}

func duplicateKeyErr() error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '2025-07-01-10:00' for key 'uniq_date_slot'"}
}
