// Package repository contains the MySQL data access for seating areas, the
// booking snapshots that embed them and the capability lookup used for
// restaurant-scoped authorization.
package repository

import "errors"

// ErrSeatingAreaNotFound is returned by lookups when no area with the
// given id exists for the restaurant.  Handlers translate it into 404.
var ErrSeatingAreaNotFound = errors.New("seating area not found")
