package repositories

import (
	"database/sql"
	"errors"

	intconfig "barberbook/internal/config"
	"barberbook/internal/domain"
	"barberbook/internal/domain/models"
)

// StaffRepository backs staff login, a plain membership check against the
// staff table. Staff auth sits outside the reservation invariants.
type StaffRepository struct {
	DB *sql.DB
}

func (r StaffRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r StaffRepository) GetByEmail(email string) (models.Staff, error) {
	var s models.Staff
	err := r.db().QueryRow(
		`SELECT id, name, email, password_digest, salt FROM staff WHERE email=? LIMIT 1`,
		email,
	).Scan(&s.ID, &s.Name, &s.Email, &s.PasswordDigest, &s.Salt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Staff{}, domain.NotFoundError{Resource: "staff"}
		}
		return models.Staff{}, err
	}
	return s, nil
}

func (r StaffRepository) List() ([]models.Staff, error) {
	rows, err := r.db().Query(`SELECT id, name, email, password_digest, salt FROM staff ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Staff{}
	for rows.Next() {
		var s models.Staff
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.PasswordDigest, &s.Salt); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
