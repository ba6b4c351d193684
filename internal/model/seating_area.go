package model

import "time"

// SeatingArea is a named zone of a restaurant's floor plan that tables
// belong to.  It corresponds to a row in the `seating_areas` table.
//
// Fields:
//  ID              – opaque identifier generated on insert.
//  RestaurantID    – owning restaurant, never changed after insert.
//  Name            – display label shown to staff and guests.
//  Bookable        – whether the area accepts bookings at all.
//  BookableOnline  – whether the area accepts online bookings.  Always
//                    false when Bookable is false for rows written by
//                    this service.
//  BookingPriority – 1 (low) to 10 (high), used when auto-assigning tables.
//  Note            – customer-facing note.
//  InternalNote    – staff-only note.
//  CreatedBy/At    – stamped once on insert.
//  UpdatedBy/At    – stamped on every update, nil until the first one.
type SeatingArea struct {
	ID              string     `db:"id" json:"id"`
	RestaurantID    string     `db:"restaurant_id" json:"restaurant_id"`
	Name            string     `db:"name" json:"name"`
	Bookable        bool       `db:"bookable" json:"bookable"`
	BookableOnline  bool       `db:"bookable_online" json:"bookable_online"`
	BookingPriority int        `db:"booking_priority" json:"booking_priority"`
	Note            string     `db:"note" json:"note"`
	InternalNote    string     `db:"internal_note" json:"internal_note"`
	CreatedBy       string     `db:"created_by" json:"created_by"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedBy       *string    `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt       *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// Snapshot returns the denormalized copy of the area that bookings embed
// in their table entries.
func (a SeatingArea) Snapshot() AreaSnapshot {
	return AreaSnapshot{ID: a.ID, Name: a.Name, InternalNote: a.InternalNote}
}
