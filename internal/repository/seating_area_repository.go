package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/seating-areas/internal/database"
	"github.com/iliyamo/seating-areas/internal/model"
)

const seatingAreaColumns = `id, restaurant_id, name, bookable, bookable_online, booking_priority,
	note, internal_note, created_by, created_at, updated_by, updated_at`

// SeatingAreaRepo encapsulates all queries on the seating_areas table.
// Writes join a transaction when one is present in the context.
type SeatingAreaRepo struct {
	db *sqlx.DB
}

// NewSeatingAreaRepo constructs a SeatingAreaRepo with the provided DB handle.
func NewSeatingAreaRepo(db *sqlx.DB) *SeatingAreaRepo {
	return &SeatingAreaRepo{db: db}
}

// Insert stores a new area.  ID and the created audit fields must already
// be set by the caller.
func (r *SeatingAreaRepo) Insert(ctx context.Context, a *model.SeatingArea) error {
	const q = `INSERT INTO seating_areas
		(id, restaurant_id, name, bookable, bookable_online, booking_priority,
		 note, internal_note, created_by, created_at)
		VALUES (:id, :restaurant_id, :name, :bookable, :bookable_online, :booking_priority,
		 :note, :internal_note, :created_by, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, database.Executor(ctx, r.db), q, a); err != nil {
		return fmt.Errorf("insert seating area: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of the area matching both a.ID and
// a.RestaurantID and stamps updated_by/updated_at.  It returns the number
// of matched rows; zero means no such area for this restaurant.
func (r *SeatingAreaRepo) Update(ctx context.Context, a *model.SeatingArea) (int64, error) {
	const q = `UPDATE seating_areas
		SET name = :name,
		    bookable = :bookable,
		    bookable_online = :bookable_online,
		    booking_priority = :booking_priority,
		    note = :note,
		    internal_note = :internal_note,
		    updated_by = :updated_by,
		    updated_at = :updated_at
		WHERE id = :id AND restaurant_id = :restaurant_id`
	res, err := sqlx.NamedExecContext(ctx, database.Executor(ctx, r.db), q, a)
	if err != nil {
		return 0, fmt.Errorf("update seating area: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update seating area: rows affected: %w", err)
	}
	return n, nil
}

// GetByIDAndRestaurant fetches one area scoped to its restaurant.  It
// returns ErrSeatingAreaNotFound if the area does not exist there.
func (r *SeatingAreaRepo) GetByIDAndRestaurant(ctx context.Context, id, restaurantID string) (*model.SeatingArea, error) {
	q := `SELECT ` + seatingAreaColumns + ` FROM seating_areas WHERE id = ? AND restaurant_id = ?`
	var a model.SeatingArea
	if err := sqlx.GetContext(ctx, database.Executor(ctx, r.db), &a, q, id, restaurantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatingAreaNotFound
		}
		return nil, fmt.Errorf("get seating area: %w", err)
	}
	return &a, nil
}

// ListByRestaurant returns every area of a restaurant, highest booking
// priority first and then by name.
func (r *SeatingAreaRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]model.SeatingArea, error) {
	q := `SELECT ` + seatingAreaColumns + ` FROM seating_areas
		WHERE restaurant_id = ?
		ORDER BY booking_priority DESC, name ASC`
	out := []model.SeatingArea{}
	if err := sqlx.SelectContext(ctx, database.Executor(ctx, r.db), &out, q, restaurantID); err != nil {
		return nil, fmt.Errorf("list seating areas: %w", err)
	}
	return out, nil
}
