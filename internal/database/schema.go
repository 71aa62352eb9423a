package database

import (
	"context"
	"database/sql"
	"time"
)

// schema holds the DDL for all tables, applied in dependency order.
// CREATE TABLE IF NOT EXISTS keeps startup idempotent so the server
// can run against a fresh or an existing database.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(191) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'CUSTOMER',
		password_hash VARCHAR(100) NULL,
		loyalty_points BIGINT NOT NULL DEFAULT 0,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_phone (phone)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS services (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(191) NOT NULL,
		price_cents BIGINT UNSIGNED NOT NULL,
		duration_min INT UNSIGNED NOT NULL,
		description TEXT NULL,
		category VARCHAR(64) NOT NULL DEFAULT 'Other',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_services_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS appointments (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id BIGINT UNSIGNED NOT NULL,
		service_id BIGINT UNSIGNED NOT NULL,
		date VARCHAR(10) NOT NULL,
		time VARCHAR(5) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'booked',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_appt_user (user_id),
		KEY idx_appt_slot (user_id, service_id, date, time, status),
		CONSTRAINT fk_appt_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_appt_service FOREIGN KEY (service_id) REFERENCES services (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS loyalty_transactions (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id BIGINT UNSIGNED NOT NULL,
		delta BIGINT NOT NULL,
		reason VARCHAR(32) NOT NULL,
		appointment_id BIGINT UNSIGNED NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_loyalty_user (user_id, created_at),
		CONSTRAINT fk_loyalty_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_refresh_hash (token_hash),
		KEY idx_refresh_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// seedServices is inserted only when the services table is empty so a
// fresh install has a browsable catalog. Prices are in cents.
var seedServices = []struct {
	Name        string
	PriceCents  uint64
	DurationMin uint32
	Description string
	Category    string
}{
	{"Haircut & Styling", 49900, 60, "Professional haircut with blow dry and styling", "Hair"},
	{"Hair Coloring", 149900, 120, "Full hair coloring service with conditioning treatment", "Hair"},
	{"Hair Spa Treatment", 99900, 90, "Deep conditioning and scalp massage treatment", "Hair"},
	{"Facial Treatment", 89900, 75, "Custom facial with cleansing and moisturizing", "Skin"},
	{"Waxing Full Legs", 59900, 45, "Complete leg waxing with soothing lotion", "Waxing"},
	{"Eyebrow Threading", 9900, 30, "Precision eyebrow shaping with threading", "Waxing"},
	{"Manicure", 49900, 45, "Classic nail care with polish", "Nails"},
	{"Pedicure", 59900, 60, "Luxury foot care with massage and polish", "Nails"},
	{"Makeup Application", 199900, 60, "Professional makeup for special occasions", "Makeup"},
	{"Bridal Makeup", 999900, 120, "Complete bridal makeup with trial session", "Makeup"},
}

// InitSchema creates all tables and seeds the default service catalog
// when it is empty. It is safe to call on every startup.
func InitSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	var n int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM services").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, s := range seedServices {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO services (name, price_cents, duration_min, description, category) VALUES (?,?,?,?,?)",
			s.Name, s.PriceCents, s.DurationMin, s.Description, s.Category); err != nil {
			return err
		}
	}
	return nil
}
