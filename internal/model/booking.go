package model

import "time"

// Booking is owned by the reservations part of the product.  Only the
// fields this service reads or patches are modelled here.
type Booking struct {
	ID           string         `db:"id" json:"id"`
	RestaurantID string         `db:"restaurant_id" json:"restaurant_id"`
	DateTime     time.Time      `db:"date_time" json:"date_time"`
	Tables       []BookingTable `db:"-" json:"tables"`
}

// BookingTable is one entry of a booking's ordered table list
// (`booking_tables` row).  Area is nil when the table was assigned
// without an area.
type BookingTable struct {
	BookingID string        `db:"booking_id" json:"-"`
	Position  int           `db:"position" json:"position"`
	TableID   string        `db:"table_id" json:"table_id"`
	Area      *AreaSnapshot `db:"-" json:"area,omitempty"`
}

// AreaSnapshot is the copy of a seating area's display fields stored on a
// booking table entry at assignment time.
type AreaSnapshot struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	InternalNote string `json:"internal_note"`
}
