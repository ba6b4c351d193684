package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// AccessRepo answers capability questions from the
// restaurant_user_capabilities table, which is maintained by the account
// management side of the product.
type AccessRepo struct {
	db *sqlx.DB
}

// NewAccessRepo constructs an AccessRepo with the provided DB handle.
func NewAccessRepo(db *sqlx.DB) *AccessRepo {
	return &AccessRepo{db: db}
}

// HasAnyCapability reports whether userID holds at least one of
// capabilities on restaurantID.
func (r *AccessRepo) HasAnyCapability(ctx context.Context, restaurantID, userID string, capabilities []string) (bool, error) {
	if len(capabilities) == 0 {
		return false, nil
	}
	q, args, err := sqlx.In(`SELECT COUNT(*) FROM restaurant_user_capabilities
		WHERE restaurant_id = ? AND user_id = ? AND capability IN (?)`,
		restaurantID, userID, capabilities)
	if err != nil {
		return false, fmt.Errorf("build capability query: %w", err)
	}
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(q), args...); err != nil {
		return false, fmt.Errorf("check capability: %w", err)
	}
	return n > 0, nil
}

// IsAppActive reports whether app is switched on for restaurantID in the
// restaurant_apps table.
func (r *AccessRepo) IsAppActive(ctx context.Context, restaurantID, app string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM restaurant_apps
		WHERE restaurant_id = ? AND app = ? AND active = 1`, restaurantID, app)
	if err != nil {
		return false, fmt.Errorf("check app %s: %w", app, err)
	}
	return n > 0, nil
}
