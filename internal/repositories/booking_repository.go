package repositories

import (
	"database/sql"
	"errors"
	"time"

	intconfig "barberbook/internal/config"
	"barberbook/internal/domain"
	"barberbook/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

// BookingRepository owns every mutation of the bookings table. All writes run
// as single transactions so the one-live-row-per-(date,slot) invariant holds
// under concurrent access; the UNIQUE KEY uniq_date_slot is the authoritative
// guard, this code only keeps it covering live rows.
type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Hold atomically claims (date, slot) for a customer. An expired pending row
// still occupying the slot is deleted in the same transaction, so the unique
// key rejects only genuinely live competition. A duplicate-key error maps to
// ErrSlotUnavailable.
func (r BookingRepository) Hold(date, slot string, customerID int64, token string, now, expiresAt time.Time) (models.Booking, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return models.Booking{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.Exec(
		`DELETE FROM bookings WHERE booking_date=? AND slot_time=? AND status=? AND expires_at <= ?`,
		date, slot, models.StatusPending, now,
	)
	if err != nil {
		return models.Booking{}, err
	}

	res, err := tx.Exec(
		`INSERT INTO bookings (booking_date, slot_time, customer_id, status, hold_token, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		date, slot, customerID, models.StatusPending, token, expiresAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			err = domain.ErrSlotUnavailable
		}
		return models.Booking{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Booking{}, err
	}
	if err = tx.Commit(); err != nil {
		return models.Booking{}, err
	}

	exp := expiresAt
	return models.Booking{
		ID:         id,
		Date:       date,
		Slot:       slot,
		CustomerID: customerID,
		Status:     models.StatusPending,
		HoldToken:  token,
		ExpiresAt:  &exp,
	}, nil
}

// Confirm flips a pending hold to confirmed. The row is locked for the length
// of the transaction and expiry is re-checked under that lock; a hold at or
// past its expiry returns ErrHoldExpired and is left for the sweeper.
func (r BookingRepository) Confirm(token string, haircutID int64, now time.Time) (models.Booking, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return models.Booking{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var b models.Booking
	var expiresAt sql.NullTime
	err = tx.QueryRow(
		`SELECT id, booking_date, slot_time, customer_id, status, expires_at
		 FROM bookings WHERE hold_token=? FOR UPDATE`,
		token,
	).Scan(&b.ID, &b.Date, &b.Slot, &b.CustomerID, &b.Status, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.NotFoundError{Resource: "hold"}
		}
		return models.Booking{}, err
	}

	if b.Status != models.StatusPending {
		err = domain.ConflictError{Resource: "booking", Msg: "already confirmed"}
		return models.Booking{}, err
	}
	if !expiresAt.Valid || !expiresAt.Time.After(now) {
		err = domain.ErrHoldExpired
		return models.Booking{}, err
	}

	_, err = tx.Exec(
		`UPDATE bookings SET status=?, haircut_id=?, expires_at=NULL WHERE id=?`,
		models.StatusConfirmed, haircutID, b.ID,
	)
	if err != nil {
		return models.Booking{}, err
	}
	if err = tx.Commit(); err != nil {
		return models.Booking{}, err
	}

	b.Status = models.StatusConfirmed
	b.HaircutID = haircutID
	b.ExpiresAt = nil
	b.HoldToken = token
	return b, nil
}

// Cancel deletes a pending hold. Confirmed bookings are not cancellable here.
func (r BookingRepository) Cancel(token string) error {
	res, err := r.db().Exec(
		`DELETE FROM bookings WHERE hold_token=? AND status=?`,
		token, models.StatusPending,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "hold"}
	}
	return nil
}

// ReclaimExpired deletes pending rows whose expiry is at or before now and
// returns how many were removed. Idempotent; safe alongside Hold/Confirm
// because it only touches rows the statement itself determines to be expired.
func (r BookingRepository) ReclaimExpired(now time.Time) (int64, error) {
	res, err := r.db().Exec(
		`DELETE FROM bookings WHERE status=? AND expires_at <= ?`,
		models.StatusPending, now,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// OccupiedSlots returns the slot labels held by a confirmed booking or a
// live pending hold on the given date. Read-only and advisory; the
// authoritative check happens inside Hold.
func (r BookingRepository) OccupiedSlots(date string, now time.Time) ([]string, error) {
	rows, err := r.db().Query(
		`SELECT slot_time FROM bookings
		 WHERE booking_date=? AND (status=? OR (status=? AND expires_at > ?))`,
		date, models.StatusConfirmed, models.StatusPending, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return out, err
		}
		out = append(out, slot)
	}
	return out, rows.Err()
}

// GetByID fetches a single booking row for receipts and staff tooling.
func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	var b models.Booking
	var haircutID sql.NullInt64
	var expiresAt sql.NullTime
	err := r.db().QueryRow(
		`SELECT id, booking_date, slot_time, customer_id, haircut_id, status, expires_at
		 FROM bookings WHERE id=? LIMIT 1`,
		id,
	).Scan(&b.ID, &b.Date, &b.Slot, &b.CustomerID, &haircutID, &b.Status, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.Booking{}, err
	}
	if haircutID.Valid {
		b.HaircutID = haircutID.Int64
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		b.ExpiresAt = &t
	}
	return b, nil
}

// List returns all bookings ordered by date and slot, for the staff surface.
func (r BookingRepository) List() ([]models.Booking, error) {
	rows, err := r.db().Query(
		`SELECT id, booking_date, slot_time, customer_id, haircut_id, status, expires_at
		 FROM bookings ORDER BY booking_date ASC, slot_time ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		var haircutID sql.NullInt64
		var expiresAt sql.NullTime
		if err := rows.Scan(&b.ID, &b.Date, &b.Slot, &b.CustomerID, &haircutID, &b.Status, &expiresAt); err != nil {
			return out, err
		}
		if haircutID.Valid {
			b.HaircutID = haircutID.Int64
		}
		if expiresAt.Valid {
			t := expiresAt.Time
			b.ExpiresAt = &t
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Delete removes a booking by id. Administrative cancel for staff tooling;
// not part of the reservation state machine.
func (r BookingRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM bookings WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
