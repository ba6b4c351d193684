// Package queue defines the seating area change events exchanged over
// RabbitMQ, their publisher and the audit consumer.
package queue

// SeatingAreaChangedQueue is the durable queue change events go to.
const SeatingAreaChangedQueue = "seating_area.changed"

// Change actions carried by SeatingAreaChangedEvent.
const (
	ActionAdded   = "added"
	ActionUpdated = "updated"
)

// SeatingAreaChangedEvent is published after an area was inserted or
// updated.  BookingTablesUpdated is the number of booking table entries
// whose embedded area copy was rewritten by the same operation.
type SeatingAreaChangedEvent struct {
	Action               string `json:"action"`
	SeatingAreaID        string `json:"seating_area_id"`
	RestaurantID         string `json:"restaurant_id"`
	Name                 string `json:"name"`
	Bookable             bool   `json:"bookable"`
	BookableOnline       bool   `json:"bookable_online"`
	BookingPriority      int    `json:"booking_priority"`
	ActorID              string `json:"actor_id"`
	BookingTablesUpdated int64  `json:"booking_tables_updated"`
	CorrelationID        string `json:"correlation_id,omitempty"`
	OccurredAt           string `json:"occurred_at"`
}
