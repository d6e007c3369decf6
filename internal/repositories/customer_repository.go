package repositories

import (
	"database/sql"
	"errors"

	intconfig "barberbook/internal/config"
	"barberbook/internal/domain"
	"barberbook/internal/domain/models"
)

// CustomerRepository is the credential store: the customers table is the
// single source of truth for salts and digests, nothing is cached in memory.
type CustomerRepository struct {
	DB *sql.DB
}

func (r CustomerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Create inserts a customer row. The unique key on email backstops the
// pre-check in the service; a duplicate maps to ErrDuplicateEmail.
func (r CustomerRepository) Create(c models.Customer) (int64, error) {
	res, err := r.db().Exec(
		`INSERT INTO customers (surname, first_name, email, password_digest, salt, date_of_birth)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.Surname, c.FirstName, c.Email, c.PasswordDigest, c.Salt, c.DateOfBirth,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, domain.ErrDuplicateEmail
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r CustomerRepository) GetByEmail(email string) (models.Customer, error) {
	var c models.Customer
	err := r.db().QueryRow(
		`SELECT id, surname, first_name, email, password_digest, salt, date_of_birth
		 FROM customers WHERE email=? LIMIT 1`,
		email,
	).Scan(&c.ID, &c.Surname, &c.FirstName, &c.Email, &c.PasswordDigest, &c.Salt, &c.DateOfBirth)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Customer{}, domain.NotFoundError{Resource: "customer"}
		}
		return models.Customer{}, err
	}
	return c, nil
}

func (r CustomerRepository) GetByID(id int64) (models.Customer, error) {
	var c models.Customer
	err := r.db().QueryRow(
		`SELECT id, surname, first_name, email, password_digest, salt, date_of_birth
		 FROM customers WHERE id=? LIMIT 1`,
		id,
	).Scan(&c.ID, &c.Surname, &c.FirstName, &c.Email, &c.PasswordDigest, &c.Salt, &c.DateOfBirth)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Customer{}, domain.NotFoundError{Resource: "customer"}
		}
		return models.Customer{}, err
	}
	return c, nil
}

// UpdateCredential rotates a customer's salt and digest together.
func (r CustomerRepository) UpdateCredential(id int64, salt, digest string) error {
	res, err := r.db().Exec(
		`UPDATE customers SET salt=?, password_digest=? WHERE id=?`,
		salt, digest, id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "customer"}
	}
	return nil
}

func (r CustomerRepository) List() ([]models.Customer, error) {
	rows, err := r.db().Query(
		`SELECT id, surname, first_name, email, password_digest, salt, date_of_birth
		 FROM customers ORDER BY id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Customer{}
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Surname, &c.FirstName, &c.Email, &c.PasswordDigest, &c.Salt, &c.DateOfBirth); err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CustomerRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM customers WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "customer"}
	}
	return nil
}
