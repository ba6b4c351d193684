package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema lists the tables this service reads and writes.  bookings and
// booking_tables are owned by the reservations side of the product; the
// statements only create them on empty development databases.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS seating_areas (
		id               CHAR(36)     NOT NULL PRIMARY KEY,
		restaurant_id    VARCHAR(64)  NOT NULL,
		name             VARCHAR(255) NOT NULL,
		bookable         TINYINT(1)   NOT NULL DEFAULT 1,
		bookable_online  TINYINT(1)   NOT NULL DEFAULT 1,
		booking_priority TINYINT      NOT NULL DEFAULT 5,
		note             TEXT         NOT NULL,
		internal_note    TEXT         NOT NULL,
		created_by       VARCHAR(64)  NOT NULL,
		created_at       DATETIME(3)  NOT NULL,
		updated_by       VARCHAR(64)  NULL,
		updated_at       DATETIME(3)  NULL,
		KEY idx_seating_areas_restaurant (restaurant_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id            VARCHAR(64) NOT NULL PRIMARY KEY,
		restaurant_id VARCHAR(64) NOT NULL,
		date_time     DATETIME(3) NOT NULL,
		KEY idx_bookings_restaurant_date (restaurant_id, date_time)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS booking_tables (
		booking_id         VARCHAR(64)  NOT NULL,
		position           INT          NOT NULL,
		table_id           VARCHAR(64)  NOT NULL,
		area_id            CHAR(36)     NULL,
		area_name          VARCHAR(255) NULL,
		area_internal_note TEXT         NULL,
		PRIMARY KEY (booking_id, position),
		KEY idx_booking_tables_area (area_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS restaurant_user_capabilities (
		restaurant_id VARCHAR(64) NOT NULL,
		user_id       VARCHAR(64) NOT NULL,
		capability    VARCHAR(32) NOT NULL,
		PRIMARY KEY (restaurant_id, user_id, capability)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS restaurant_apps (
		restaurant_id VARCHAR(64) NOT NULL,
		app           VARCHAR(64) NOT NULL,
		active        TINYINT(1)  NOT NULL DEFAULT 0,
		PRIMARY KEY (restaurant_id, app)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates any missing table.  Existing tables are left as they are.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}
	return nil
}
