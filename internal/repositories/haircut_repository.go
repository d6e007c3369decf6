package repositories

import (
	"database/sql"
	"errors"

	intconfig "barberbook/internal/config"
	"barberbook/internal/domain"
	"barberbook/internal/domain/models"
)

// HaircutRepository reads and maintains the service catalog. The catalog is a
// read-only input to the reservation engine; writes exist for staff tooling.
type HaircutRepository struct {
	DB *sql.DB
}

func (r HaircutRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r HaircutRepository) GetByID(id int64) (models.Haircut, error) {
	var h models.Haircut
	err := r.db().QueryRow(
		`SELECT id, name, price, duration_min FROM haircuts WHERE id=? LIMIT 1`,
		id,
	).Scan(&h.ID, &h.Name, &h.Price, &h.DurationMin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Haircut{}, domain.NotFoundError{Resource: "haircut"}
		}
		return models.Haircut{}, err
	}
	return h, nil
}

func (r HaircutRepository) List() ([]models.Haircut, error) {
	rows, err := r.db().Query(`SELECT id, name, price, duration_min FROM haircuts ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Haircut{}
	for rows.Next() {
		var h models.Haircut
		if err := rows.Scan(&h.ID, &h.Name, &h.Price, &h.DurationMin); err != nil {
			return out, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r HaircutRepository) Create(h models.Haircut) (int64, error) {
	res, err := r.db().Exec(
		`INSERT INTO haircuts (name, price, duration_min) VALUES (?, ?, ?)`,
		h.Name, h.Price, h.DurationMin,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r HaircutRepository) Update(h models.Haircut) error {
	res, err := r.db().Exec(
		`UPDATE haircuts SET name=?, price=?, duration_min=? WHERE id=?`,
		h.Name, h.Price, h.DurationMin, h.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "haircut"}
	}
	return nil
}

func (r HaircutRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM haircuts WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "haircut"}
	}
	return nil
}
