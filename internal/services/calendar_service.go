package services

import (
	"time"

	"barberbook/internal/domain"
	"barberbook/internal/repositories"
	"barberbook/internal/utils"
)

// CalendarService computes the bookable slots for a business day: the fixed
// hourly sequence between opening and closing, minus slots occupied by a
// confirmed booking or a live pending hold. Advisory for display; Hold
// performs the authoritative check.
type CalendarService struct {
	Bookings  repositories.BookingRepository
	OpenHour  int
	CloseHour int
	Now       func() time.Time
}

func (s CalendarService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s CalendarService) hours() (open, close int) {
	open, close = s.OpenHour, s.CloseHour
	if open <= 0 && close <= 0 {
		open, close = 9, 17
	}
	return open, close
}

// Slots returns the full ordered slot sequence for any business day.
func (s CalendarService) Slots() []string {
	open, close := s.hours()
	out := make([]string, 0, close-open)
	for h := open; h < close; h++ {
		out = append(out, utils.SlotLabel(h))
	}
	return out
}

// ValidSlot reports whether a label names a slot within business hours.
func (s CalendarService) ValidSlot(slot string) bool {
	hour, err := utils.ParseSlot(slot)
	if err != nil {
		return false
	}
	open, close := s.hours()
	return hour >= open && hour < close
}

// AvailableSlots returns the open slots for a date in order.
func (s CalendarService) AvailableSlots(date string) ([]string, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD", Err: err}
	}

	occupied, err := s.Bookings.OccupiedSlots(date, s.now())
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(occupied))
	for _, slot := range occupied {
		taken[slot] = true
	}

	out := []string{}
	for _, slot := range s.Slots() {
		if !taken[slot] {
			out = append(out, slot)
		}
	}
	return out, nil
}
