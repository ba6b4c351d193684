package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/seating-areas/internal/model"
	"github.com/iliyamo/seating-areas/internal/queue"
	"github.com/iliyamo/seating-areas/internal/repository"
)

// memStore keeps areas and bookings in memory and implements both
// repositories with the same matching rules as the SQL ones.
type memStore struct {
	mu        sync.Mutex
	areas     map[string]model.SeatingArea
	bookings  []model.Booking
	insertErr error
	updateErr error
	syncErr   error
	syncCalls int
}

func newMemStore() *memStore {
	return &memStore{areas: map[string]model.SeatingArea{}}
}

func (m *memStore) Insert(_ context.Context, a *model.SeatingArea) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.areas[a.ID] = *a
	return nil
}

func (m *memStore) Update(_ context.Context, a *model.SeatingArea) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return 0, m.updateErr
	}
	cur, ok := m.areas[a.ID]
	if !ok || cur.RestaurantID != a.RestaurantID {
		return 0, nil
	}
	cur.Name = a.Name
	cur.Bookable = a.Bookable
	cur.BookableOnline = a.BookableOnline
	cur.BookingPriority = a.BookingPriority
	cur.Note = a.Note
	cur.InternalNote = a.InternalNote
	cur.UpdatedBy = a.UpdatedBy
	cur.UpdatedAt = a.UpdatedAt
	m.areas[a.ID] = cur
	return 1, nil
}

func (m *memStore) GetByIDAndRestaurant(_ context.Context, id, restaurantID string) (*model.SeatingArea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.areas[id]
	if !ok || a.RestaurantID != restaurantID {
		return nil, repository.ErrSeatingAreaNotFound
	}
	return &a, nil
}

func (m *memStore) ListByRestaurant(_ context.Context, restaurantID string) ([]model.SeatingArea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.SeatingArea{}
	for _, a := range m.areas {
		if a.RestaurantID == restaurantID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookingPriority != out[j].BookingPriority {
			return out[i].BookingPriority > out[j].BookingPriority
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *memStore) SyncAreaSnapshot(_ context.Context, restaurantID, areaID, name, internalNote string, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncCalls++
	if m.syncErr != nil {
		return 0, m.syncErr
	}
	var n int64
	for i := range m.bookings {
		b := &m.bookings[i]
		if b.RestaurantID != restaurantID || !b.DateTime.After(now) {
			continue
		}
		for j := range b.Tables {
			area := b.Tables[j].Area
			if area == nil || area.ID != areaID {
				continue
			}
			if area.Name == name && area.InternalNote == internalNote {
				continue
			}
			area.Name = name
			area.InternalNote = internalNote
			n++
		}
	}
	return n, nil
}

func (m *memStore) ListUpcomingByArea(_ context.Context, restaurantID, areaID string, now time.Time) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Booking{}
	for _, b := range m.bookings {
		if b.RestaurantID != restaurantID || !b.DateTime.After(now) {
			continue
		}
		for _, t := range b.Tables {
			if t.Area != nil && t.Area.ID == areaID {
				out = append(out, b)
				break
			}
		}
	}
	return out, nil
}

func (m *memStore) snapshot() (map[string]model.SeatingArea, []model.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	areas := make(map[string]model.SeatingArea, len(m.areas))
	for k, v := range m.areas {
		areas[k] = v
	}
	bookings := make([]model.Booking, len(m.bookings))
	for i, b := range m.bookings {
		tables := make([]model.BookingTable, len(b.Tables))
		for j, t := range b.Tables {
			if t.Area != nil {
				cp := *t.Area
				t.Area = &cp
			}
			tables[j] = t
		}
		b.Tables = tables
		bookings[i] = b
	}
	return areas, bookings
}

func (m *memStore) restore(areas map[string]model.SeatingArea, bookings []model.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.areas = areas
	m.bookings = bookings
}

func (m *memStore) booking(id string) model.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ID == id {
			return b
		}
	}
	return model.Booking{}
}

// memTx restores the store when fn fails.
type memTx struct {
	store     *memStore
	commits   int
	rollbacks int
}

func (t *memTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	areas, bookings := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(areas, bookings)
		t.rollbacks++
		return err
	}
	t.commits++
	return nil
}

type recordingPublisher struct {
	events []queue.SeatingAreaChangedEvent
	err    error
}

func (p *recordingPublisher) PublishSeatingAreaChanged(_ context.Context, ev queue.SeatingAreaChangedEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

var errBoom = errors.New("boom")
