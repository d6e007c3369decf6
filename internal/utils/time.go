package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	layoutDate = "2006-01-02"
	layoutSlot = "15:04"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(layoutDate, strings.TrimSpace(s))
}

// FormatDate formats time to YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// ParseSlot parses an HH:00 slot label and returns the hour.
func ParseSlot(s string) (int, error) {
	t, err := time.Parse(layoutSlot, strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if t.Minute() != 0 {
		return 0, fmt.Errorf("slot must be on the hour")
	}
	return t.Hour(), nil
}

// SlotLabel renders an hour as an HH:00 slot label.
func SlotLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// ValidBirthDate checks DD/MM/YYYY with day 1-31, month 1-12, year 1900-2025.
func ValidBirthDate(s string) bool {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 || len(parts[0]) != 2 || len(parts[1]) != 2 || len(parts[2]) != 4 {
		return false
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || year < 1900 || year > 2025 {
		return false
	}
	return true
}
