// Package db owns the schema for the reservation engine. The uniqueness key on
// bookings (booking_date, slot_time) is what enforces the one-live-row-per-slot
// invariant; pending rows are deleted on cancel or reclaim, never soft-flagged,
// so the key always covers exactly the live rows.
package db

import "database/sql"

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		surname VARCHAR(100) NOT NULL,
		first_name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_digest CHAR(64) NOT NULL,
		salt CHAR(16) NOT NULL,
		date_of_birth VARCHAR(10) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_customer_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS haircuts (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		price BIGINT NOT NULL,
		duration_min INT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		booking_date VARCHAR(10) NOT NULL,
		slot_time VARCHAR(5) NOT NULL,
		customer_id BIGINT NOT NULL,
		haircut_id BIGINT NULL,
		status VARCHAR(20) NOT NULL,
		hold_token CHAR(36) NOT NULL,
		expires_at DATETIME NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_date_slot (booking_date, slot_time),
		UNIQUE KEY uniq_hold_token (hold_token),
		KEY idx_status_expiry (status, expires_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS staff (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_digest CHAR(64) NOT NULL,
		salt CHAR(16) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_staff_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}

// EnsureSchema creates the tables the service owns.
func EnsureSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

// SeedHaircuts inserts a default catalog when the table is empty so a fresh
// install has something bookable.
func SeedHaircuts(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM haircuts`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	seed := []struct {
		name     string
		price    int64
		duration int
	}{
		{"Classic Cut", 2500, 30},
		{"Skin Fade", 3000, 45},
		{"Beard Trim", 1500, 20},
		{"Cut & Beard", 4000, 60},
	}
	for _, h := range seed {
		if _, err := db.Exec(`INSERT INTO haircuts (name, price, duration_min) VALUES (?, ?, ?)`, h.name, h.price, h.duration); err != nil {
			return err
		}
	}
	return nil
}
