package database

import (
	"context"
	"database/sql"
)

// schema holds the DDL for the three application tables. Statements use
// IF NOT EXISTS so EnsureSchema is safe to run on every boot. InnoDB is
// required: the registration ledger relies on row locks taken with
// SELECT ... FOR UPDATE to serialize seat accounting per event.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name          VARCHAR(255)    NOT NULL,
		email         VARCHAR(255)    NOT NULL,
		password_hash VARCHAR(255)    NOT NULL,
		created_at    DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS events (
		id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name            VARCHAR(255)    NOT NULL,
		organizer       VARCHAR(255)    NOT NULL,
		location        VARCHAR(255)    NOT NULL,
		date            DATETIME        NOT NULL,
		description     TEXT            NOT NULL,
		capacity        INT             NOT NULL,
		available_seats INT             NOT NULL,
		category        VARCHAR(100)    NOT NULL,
		created_at      DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_events_date (date),
		CONSTRAINT chk_events_seats CHECK (available_seats >= 0 AND available_seats <= capacity),
		CONSTRAINT chk_events_capacity CHECK (capacity >= 1)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS registrations (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id    BIGINT UNSIGNED NOT NULL,
		event_id   BIGINT UNSIGNED NOT NULL,
		status     ENUM('registered','cancelled') NOT NULL DEFAULT 'registered',
		created_at DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_registrations_user (user_id),
		KEY idx_registrations_event_user (event_id, user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the application tables when they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
