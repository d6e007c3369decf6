package models

import "time"

// Booking status values. A row only ever exists as pending or confirmed;
// cancelled and reclaimed holds are deleted outright.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

type Customer struct {
	ID             int64  `json:"id"`
	Surname        string `json:"surname"`
	FirstName      string `json:"first_name"`
	Email          string `json:"email"`
	PasswordDigest string `json:"-"`
	Salt           string `json:"-"`
	DateOfBirth    string `json:"date_of_birth"`
}

type Haircut struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	DurationMin int    `json:"duration_min"`
}

type Booking struct {
	ID         int64      `json:"id"`
	Date       string     `json:"date"`
	Slot       string     `json:"slot"`
	CustomerID int64      `json:"customer_id"`
	HaircutID  int64      `json:"haircut_id,omitempty"`
	Status     string     `json:"status"`
	HoldToken  string     `json:"hold_token,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

type Staff struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	PasswordDigest string `json:"-"`
	Salt           string `json:"-"`
}
