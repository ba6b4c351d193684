// Package service holds the seating area use cases: validated insert and
// update, the booking snapshot cascade that follows an update, and the
// scoped reads.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/seating-areas/internal/clock"
	"github.com/iliyamo/seating-areas/internal/logging"
	"github.com/iliyamo/seating-areas/internal/metrics"
	"github.com/iliyamo/seating-areas/internal/model"
	"github.com/iliyamo/seating-areas/internal/queue"
	"github.com/iliyamo/seating-areas/internal/repository"
)

type SeatingAreaRepository interface {
	Insert(ctx context.Context, a *model.SeatingArea) error
	Update(ctx context.Context, a *model.SeatingArea) (int64, error)
	GetByIDAndRestaurant(ctx context.Context, id, restaurantID string) (*model.SeatingArea, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]model.SeatingArea, error)
}

type BookingRepository interface {
	SyncAreaSnapshot(ctx context.Context, restaurantID, areaID, name, internalNote string, now time.Time) (int64, error)
	ListUpcomingByArea(ctx context.Context, restaurantID, areaID string, now time.Time) ([]model.Booking, error)
}

// Transactor runs fn in a transaction carried by the context it passes on.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type EventPublisher interface {
	PublishSeatingAreaChanged(ctx context.Context, ev queue.SeatingAreaChangedEvent) error
}

// UpdateResult reports how many areas matched (0 or 1) and how many
// booking table entries had their area copy rewritten.
type UpdateResult struct {
	Matched              int64 `json:"matched"`
	BookingTablesUpdated int64 `json:"booking_tables_updated"`
}

// SeatingAreaService implements the seating area operations.  A nil
// Transactor makes Update write the area and sync bookings as two
// independent statements; a nil EventPublisher disables change events.
type SeatingAreaService struct {
	areas     SeatingAreaRepository
	bookings  BookingRepository
	tx        Transactor
	publisher EventPublisher
	clock     clock.Clock
}

func NewSeatingAreaService(areas SeatingAreaRepository, bookings BookingRepository, tx Transactor, publisher EventPublisher, clk clock.Clock) *SeatingAreaService {
	if areas == nil || bookings == nil {
		panic("nil repository passed to NewSeatingAreaService")
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &SeatingAreaService{areas: areas, bookings: bookings, tx: tx, publisher: publisher, clock: clk}
}

// Insert validates in, stores a new area owned by restaurantID and returns
// its id.  bookableOnline is stored false when bookable is false.
func (s *SeatingAreaService) Insert(ctx context.Context, restaurantID, actorID string, in SeatingAreaInput) (id string, err error) {
	defer s.observe(OpInsert, time.Now(), &err)

	if strings.TrimSpace(restaurantID) == "" {
		return "", validationError(OpInsert, "restaurantId is required")
	}
	if err := in.Validate(OpInsert); err != nil {
		return "", err
	}

	area := apply(&model.SeatingArea{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		CreatedBy:    actorID,
		CreatedAt:    s.clock.Now(),
	}, in)

	if err := s.areas.Insert(ctx, area); err != nil {
		return "", persistenceError(OpInsert, err, details(restaurantID, "", actorID))
	}

	logging.FromContext(ctx).WithFields(logrus.Fields{
		"seating_area_id": area.ID,
		"restaurant_id":   restaurantID,
		"actor_id":        actorID,
	}).Info("seating area inserted")

	s.publish(ctx, queue.ActionAdded, area, actorID, 0)
	return area.ID, nil
}

// Update replaces the mutable fields of the area (areaID, restaurantID)
// and then rewrites the area copy embedded in the restaurant's future
// bookings.  The sync runs even when no area matched; an unknown area is
// not an error and no change event is published for it.
func (s *SeatingAreaService) Update(ctx context.Context, restaurantID, areaID, actorID string, in SeatingAreaInput) (res UpdateResult, err error) {
	defer s.observe(OpUpdate, time.Now(), &err)

	if strings.TrimSpace(restaurantID) == "" {
		return res, validationError(OpUpdate, "restaurantId is required")
	}
	if strings.TrimSpace(areaID) == "" {
		return res, validationError(OpUpdate, "seatingAreaId is required")
	}
	if err := in.Validate(OpUpdate); err != nil {
		return res, err
	}

	now := s.clock.Now()
	area := apply(&model.SeatingArea{
		ID:           areaID,
		RestaurantID: restaurantID,
		UpdatedBy:    &actorID,
		UpdatedAt:    &now,
	}, in)

	run := func(ctx context.Context) error {
		matched, err := s.areas.Update(ctx, area)
		if err != nil {
			return err
		}
		res.Matched = matched
		synced, err := s.bookings.SyncAreaSnapshot(ctx, restaurantID, areaID, area.Name, area.InternalNote, now)
		if err != nil {
			return err
		}
		res.BookingTablesUpdated = synced
		return nil
	}

	if s.tx != nil {
		err = s.tx.WithinTx(ctx, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return UpdateResult{}, persistenceError(OpUpdate, err, details(restaurantID, areaID, actorID))
	}

	metrics.SnapshotEntriesSynced.Add(float64(res.BookingTablesUpdated))
	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"seating_area_id":        areaID,
		"restaurant_id":          restaurantID,
		"actor_id":               actorID,
		"booking_tables_updated": res.BookingTablesUpdated,
	})
	if res.Matched == 0 {
		log.Info("seating area update matched no area")
		return res, nil
	}
	log.Info("seating area updated")

	s.publish(ctx, queue.ActionUpdated, area, actorID, res.BookingTablesUpdated)
	return res, nil
}

// Get returns one area of the restaurant.
func (s *SeatingAreaService) Get(ctx context.Context, restaurantID, areaID string) (area *model.SeatingArea, err error) {
	defer s.observe(OpGet, time.Now(), &err)
	return s.get(ctx, OpGet, restaurantID, areaID)
}

func (s *SeatingAreaService) get(ctx context.Context, op, restaurantID, areaID string) (*model.SeatingArea, error) {
	area, err := s.areas.GetByIDAndRestaurant(ctx, areaID, restaurantID)
	if errors.Is(err, repository.ErrSeatingAreaNotFound) {
		return nil, notFoundError(op, err)
	}
	if err != nil {
		return nil, persistenceError(op, err, details(restaurantID, areaID, ""))
	}
	return area, nil
}

// List returns the restaurant's areas, highest priority first.
func (s *SeatingAreaService) List(ctx context.Context, restaurantID string) (areas []model.SeatingArea, err error) {
	defer s.observe(OpList, time.Now(), &err)

	areas, err = s.areas.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, persistenceError(OpList, err, details(restaurantID, "", ""))
	}
	return areas, nil
}

// UpcomingBookings returns the restaurant's future bookings that have a
// table in the area, with the area copies they currently embed.
func (s *SeatingAreaService) UpcomingBookings(ctx context.Context, restaurantID, areaID string) (bookings []model.Booking, err error) {
	defer s.observe(OpBookings, time.Now(), &err)

	if _, err := s.get(ctx, OpBookings, restaurantID, areaID); err != nil {
		return nil, err
	}
	bookings, err = s.bookings.ListUpcomingByArea(ctx, restaurantID, areaID, s.clock.Now())
	if err != nil {
		return nil, persistenceError(OpBookings, err, details(restaurantID, areaID, ""))
	}
	return bookings, nil
}

// apply copies the validated input onto a.
func apply(a *model.SeatingArea, in SeatingAreaInput) *model.SeatingArea {
	a.Name = *in.Name
	a.Bookable = *in.Bookable
	a.BookableOnline = *in.Bookable && *in.BookableOnline
	a.BookingPriority = *in.BookingPriority
	a.Note = *in.Note
	a.InternalNote = *in.InternalNote
	return a
}

func details(restaurantID, areaID, actorID string) string {
	parts := []string{"restaurantId: " + restaurantID}
	if areaID != "" {
		parts = append(parts, "seatingAreaId: "+areaID)
	}
	if actorID != "" {
		parts = append(parts, "userId: "+actorID)
	}
	return strings.Join(parts, " ")
}

func (s *SeatingAreaService) observe(op string, start time.Time, err *error) {
	result := "ok"
	if *err != nil {
		result = string(KindOf(*err))
	}
	metrics.Operations.WithLabelValues(op, result).Inc()
	metrics.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// publish sends the change event.  Failures are logged only.
func (s *SeatingAreaService) publish(ctx context.Context, action string, area *model.SeatingArea, actorID string, synced int64) {
	if s.publisher == nil {
		return
	}
	ev := queue.SeatingAreaChangedEvent{
		Action:               action,
		SeatingAreaID:        area.ID,
		RestaurantID:         area.RestaurantID,
		Name:                 area.Name,
		Bookable:             area.Bookable,
		BookableOnline:       area.BookableOnline,
		BookingPriority:      area.BookingPriority,
		ActorID:              actorID,
		BookingTablesUpdated: synced,
		CorrelationID:        logging.CorrelationIDFromContext(ctx),
		OccurredAt:           s.clock.Now().Format(time.RFC3339),
	}
	if err := s.publisher.PublishSeatingAreaChanged(ctx, ev); err != nil {
		logging.FromContext(ctx).WithError(err).WithField("seating_area_id", area.ID).
			Warn(fmt.Sprintf("%s event not published", action))
	}
}
