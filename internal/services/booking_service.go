package services

import (
	"context"
	"fmt"
	"time"

	"barberbook/internal/domain"
	"barberbook/internal/domain/models"
	"barberbook/internal/repositories"
	"barberbook/internal/utils"

	"github.com/google/uuid"
)

const defaultHoldTTL = 15 * time.Minute

// BookingService is the reservation engine: it grants temporary holds,
// converts holds into confirmed bookings, and reclaims expired holds. Every
// mutation is a single short transaction in the repository; no lock spans the
// hold-then-confirm sequence.
type BookingService struct {
	Bookings  repositories.BookingRepository
	Haircuts  repositories.HaircutRepository
	Calendar  CalendarService
	Payments  PaymentService
	HoldTTL   time.Duration
	RequestID string
	Now       func() time.Time
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BookingService) ttl() time.Duration {
	if s.HoldTTL > 0 {
		return s.HoldTTL
	}
	return defaultHoldTTL
}

// Hold claims (date, slot) for the customer and returns the pending booking
// with its hold token and expiry. A slot already held or confirmed returns
// ErrSlotUnavailable.
func (s BookingService) Hold(date, slot string, customerID int64) (models.Booking, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return models.Booking{}, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD", Err: err}
	}
	hour, err := utils.ParseSlot(slot)
	if err != nil || !s.Calendar.ValidSlot(slot) {
		return models.Booking{}, domain.ValidationError{Field: "slot", Msg: "must be HH:00 within business hours"}
	}
	// Canonical label so "9:00" and "09:00" cannot claim the same slot twice.
	slot = utils.SlotLabel(hour)
	if customerID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "customer_id", Msg: "required"}
	}

	now := s.now()
	token := uuid.NewString()
	b, err := s.withRetry("hold", func() (models.Booking, error) {
		return s.Bookings.Hold(date, slot, customerID, token, now, now.Add(s.ttl()))
	})
	if err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "hold", fmt.Sprintf("date=%s slot=%s booking_id=%d", date, slot, b.ID))
	return b, nil
}

// Confirm validates the payment first and only then flips the hold. A failed
// payment leaves the hold intact so the customer may retry before expiry; a
// hold at or past its TTL returns ErrHoldExpired and the customer must start
// over at Hold.
func (s BookingService) Confirm(ctx context.Context, token string, haircutID int64, card Card) (models.Booking, error) {
	if token == "" {
		return models.Booking{}, domain.ValidationError{Field: "hold_token", Msg: "required"}
	}
	if _, err := s.Haircuts.GetByID(haircutID); err != nil {
		if domain.IsNotFound(err) {
			return models.Booking{}, domain.ValidationError{Field: "haircut_id", Msg: "unknown haircut"}
		}
		return models.Booking{}, err
	}

	if err := s.Payments.Charge(ctx, card); err != nil {
		return models.Booking{}, err
	}

	b, err := s.withRetry("confirm", func() (models.Booking, error) {
		return s.Bookings.Confirm(token, haircutID, s.now())
	})
	if err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "confirm", fmt.Sprintf("booking_id=%d", b.ID))
	return b, nil
}

// Cancel is explicit customer abandonment of a pending hold.
func (s BookingService) Cancel(token string) error {
	if token == "" {
		return domain.ValidationError{Field: "hold_token", Msg: "required"}
	}
	_, err := s.withRetry("cancel", func() (models.Booking, error) {
		return models.Booking{}, s.Bookings.Cancel(token)
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "booking", "cancel", "hold released")
	return nil
}

// ReclaimExpired removes every pending hold whose expiry has passed and
// returns the count. Safe to run concurrently with Hold and Confirm.
func (s BookingService) ReclaimExpired() (int64, error) {
	var count int64
	_, err := s.withRetry("reclaim", func() (models.Booking, error) {
		n, err := s.Bookings.ReclaimExpired(s.now())
		count = n
		return models.Booking{}, err
	})
	if err != nil {
		return 0, err
	}
	if count > 0 {
		utils.LogEvent(s.RequestID, "booking", "reclaim", fmt.Sprintf("reclaimed=%d", count))
	}
	return count, nil
}

// withRetry runs op, retrying once on a storage failure. Business outcomes
// pass through untouched; a second storage failure becomes PersistenceError.
func (s BookingService) withRetry(op string, fn func() (models.Booking, error)) (models.Booking, error) {
	b, err := fn()
	if err == nil || domain.IsBusiness(err) {
		return b, err
	}
	utils.LogEvent(s.RequestID, "booking", op, "storage failure, retrying once: "+err.Error())
	b, err = fn()
	if err == nil || domain.IsBusiness(err) {
		return b, err
	}
	return models.Booking{}, domain.PersistenceError{Op: op, Err: err}
}
