package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/seating-areas/internal/database"
	"github.com/iliyamo/seating-areas/internal/model"
)

// BookingRepo reads bookings and patches the seating area snapshots stored
// on their table entries.
type BookingRepo struct {
	db *sqlx.DB
}

// NewBookingRepo constructs a BookingRepo with the provided DB handle.
func NewBookingRepo(db *sqlx.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// SyncAreaSnapshot copies name and internalNote onto every table entry of
// the restaurant's bookings later than now whose embedded area is areaID
// and whose copy differs.  Entries without an area, entries of other areas
// and entries already in sync are not touched.  A single statement covers
// all bookings.  It returns the number of table entries rewritten.
func (r *BookingRepo) SyncAreaSnapshot(ctx context.Context, restaurantID, areaID, name, internalNote string, now time.Time) (int64, error) {
	// <=> keeps the comparison NULL-safe for snapshots written without notes
	const q = `UPDATE booking_tables bt
		JOIN bookings b ON b.id = bt.booking_id
		SET bt.area_name = ?, bt.area_internal_note = ?
		WHERE b.restaurant_id = ?
		  AND b.date_time > ?
		  AND bt.area_id = ?
		  AND (NOT (bt.area_name <=> ?) OR NOT (bt.area_internal_note <=> ?))`
	res, err := database.Executor(ctx, r.db).ExecContext(ctx, q,
		name, internalNote, restaurantID, now, areaID, name, internalNote)
	if err != nil {
		return 0, fmt.Errorf("sync area snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sync area snapshot: rows affected: %w", err)
	}
	return n, nil
}

type bookingTableRow struct {
	BookingID        string         `db:"booking_id"`
	RestaurantID     string         `db:"restaurant_id"`
	DateTime         time.Time      `db:"date_time"`
	Position         int            `db:"position"`
	TableID          string         `db:"table_id"`
	AreaID           sql.NullString `db:"area_id"`
	AreaName         sql.NullString `db:"area_name"`
	AreaInternalNote sql.NullString `db:"area_internal_note"`
}

// ListUpcomingByArea returns the restaurant's bookings later than now that
// have at least one table in areaID, with their full table lists, ordered
// by date.
func (r *BookingRepo) ListUpcomingByArea(ctx context.Context, restaurantID, areaID string, now time.Time) ([]model.Booking, error) {
	const q = `SELECT b.id AS booking_id, b.restaurant_id, b.date_time,
		       bt.position, bt.table_id, bt.area_id, bt.area_name, bt.area_internal_note
		FROM bookings b
		JOIN booking_tables bt ON bt.booking_id = b.id
		WHERE b.restaurant_id = ?
		  AND b.date_time > ?
		  AND EXISTS (SELECT 1 FROM booking_tables x WHERE x.booking_id = b.id AND x.area_id = ?)
		ORDER BY b.date_time, b.id, bt.position`
	var rows []bookingTableRow
	if err := sqlx.SelectContext(ctx, database.Executor(ctx, r.db), &rows, q, restaurantID, now, areaID); err != nil {
		return nil, fmt.Errorf("list upcoming bookings: %w", err)
	}

	out := []model.Booking{}
	for _, row := range rows {
		if len(out) == 0 || out[len(out)-1].ID != row.BookingID {
			out = append(out, model.Booking{
				ID:           row.BookingID,
				RestaurantID: row.RestaurantID,
				DateTime:     row.DateTime,
			})
		}
		t := model.BookingTable{BookingID: row.BookingID, Position: row.Position, TableID: row.TableID}
		if row.AreaID.Valid {
			t.Area = &model.AreaSnapshot{
				ID:           row.AreaID.String,
				Name:         row.AreaName.String,
				InternalNote: row.AreaInternalNote.String,
			}
		}
		cur := &out[len(out)-1]
		cur.Tables = append(cur.Tables, t)
	}
	return out, nil
}
