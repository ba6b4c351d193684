package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/seating-areas/internal/model"
	"github.com/iliyamo/seating-areas/internal/service"
)

// stubService records its inputs and returns canned results.
type stubService struct {
	calls        int
	restaurantID string
	areaID       string
	actorID      string
	input        service.SeatingAreaInput

	id       string
	result   service.UpdateResult
	area     *model.SeatingArea
	areas    []model.SeatingArea
	bookings []model.Booking
	err      error
}

func (s *stubService) Insert(_ context.Context, restaurantID, actorID string, in service.SeatingAreaInput) (string, error) {
	s.calls++
	s.restaurantID, s.actorID, s.input = restaurantID, actorID, in
	return s.id, s.err
}

func (s *stubService) Update(_ context.Context, restaurantID, areaID, actorID string, in service.SeatingAreaInput) (service.UpdateResult, error) {
	s.calls++
	s.restaurantID, s.areaID, s.actorID, s.input = restaurantID, areaID, actorID, in
	return s.result, s.err
}

func (s *stubService) Get(_ context.Context, restaurantID, areaID string) (*model.SeatingArea, error) {
	s.calls++
	s.restaurantID, s.areaID = restaurantID, areaID
	return s.area, s.err
}

func (s *stubService) List(_ context.Context, restaurantID string) ([]model.SeatingArea, error) {
	s.calls++
	s.restaurantID = restaurantID
	return s.areas, s.err
}

func (s *stubService) UpcomingBookings(_ context.Context, restaurantID, areaID string) ([]model.Booking, error) {
	s.calls++
	s.restaurantID, s.areaID = restaurantID, areaID
	return s.bookings, s.err
}

const validBody = `{"name":"Patio","bookable":true,"bookable_online":true,"booking_priority":5,"note":"","internal_note":"n1"}`

func newServer(svc SeatingAreaService) *echo.Echo {
	h := NewSeatingAreaHandler(svc)
	e := echo.New()
	g := e.Group("/v1/restaurants/:restaurantId/seating-areas", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_id", "u1")
			return next(c)
		}
	})
	g.POST("", h.Insert)
	g.GET("", h.List)
	g.GET("/form", h.NewForm)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.GET("/:id/form", h.EditForm)
	g.GET("/:id/bookings", h.Bookings)
	return e
}

func call(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestInsert_Created(t *testing.T) {
	svc := &stubService{id: "A1"}
	rec := call(newServer(svc), http.MethodPost, "/v1/restaurants/r1/seating-areas", validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "A1", decode(t, rec)["id"])
	assert.Equal(t, "r1", svc.restaurantID)
	assert.Equal(t, "u1", svc.actorID)
	assert.Equal(t, "Patio", *svc.input.Name)
}

func TestInsert_NonNumericPriorityIsRejectedBeforeService(t *testing.T) {
	svc := &stubService{}
	body := strings.Replace(validBody, `"booking_priority":5`, `"booking_priority":"five"`, 1)

	rec := call(newServer(svc), http.MethodPost, "/v1/restaurants/r1/seating-areas", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	m := decode(t, rec)
	assert.Equal(t, "validation", m["error"])
	assert.Equal(t, service.OpInsert, m["operation"])
	assert.Zero(t, svc.calls)
}

func TestUpdate(t *testing.T) {
	t.Run("reports matches", func(t *testing.T) {
		svc := &stubService{result: service.UpdateResult{Matched: 1, BookingTablesUpdated: 3}}
		rec := call(newServer(svc), http.MethodPut, "/v1/restaurants/r1/seating-areas/A1", validBody)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"matched":1,"booking_tables_updated":3}`, rec.Body.String())
		assert.Equal(t, "A1", svc.areaID)
	})

	t.Run("unknown area is not an error", func(t *testing.T) {
		rec := call(newServer(&stubService{}), http.MethodPut, "/v1/restaurants/r1/seating-areas/nope", validBody)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"matched":0,"booking_tables_updated":0}`, rec.Body.String())
	})

	t.Run("persistence failure", func(t *testing.T) {
		svc := &stubService{err: &service.Error{
			Kind:    service.KindPersistence,
			Op:      service.OpUpdate,
			Message: "sync area snapshot: deadlock",
			Details: "restaurantId: r1 seatingAreaId: A1 userId: u1",
		}}
		rec := call(newServer(svc), http.MethodPut, "/v1/restaurants/r1/seating-areas/A1", validBody)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{
			"error": "persistence",
			"operation": "seatingAreas.update",
			"message": "sync area snapshot: deadlock",
			"details": "restaurantId: r1 seatingAreaId: A1 userId: u1"
		}`, rec.Body.String())
	})

	t.Run("unknown field", func(t *testing.T) {
		body := strings.Replace(validBody, `"note":""`, `"notes":""`, 1)
		rec := call(newServer(&stubService{}), http.MethodPut, "/v1/restaurants/r1/seating-areas/A1", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &stubService{area: &model.SeatingArea{ID: "A1", RestaurantID: "r1", Name: "Patio", CreatedAt: time.Unix(0, 0).UTC()}}
		rec := call(newServer(svc), http.MethodGet, "/v1/restaurants/r1/seating-areas/A1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Patio", decode(t, rec)["name"])
	})

	t.Run("not found", func(t *testing.T) {
		svc := &stubService{err: &service.Error{Kind: service.KindNotFound, Op: service.OpGet, Message: "seating area not found"}}
		rec := call(newServer(svc), http.MethodGet, "/v1/restaurants/r1/seating-areas/A1", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unexpected error", func(t *testing.T) {
		svc := &stubService{err: errors.New("boom")}
		rec := call(newServer(svc), http.MethodGet, "/v1/restaurants/r1/seating-areas/A1", "")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal", decode(t, rec)["error"])
	})
}

func TestList(t *testing.T) {
	svc := &stubService{areas: []model.SeatingArea{{ID: "A1", Name: "Bar"}, {ID: "A2", Name: "Patio"}}}
	rec := call(newServer(svc), http.MethodGet, "/v1/restaurants/r1/seating-areas", "")

	require.Equal(t, http.StatusOK, rec.Code)
	items, ok := decode(t, rec)["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestBookings(t *testing.T) {
	svc := &stubService{bookings: []model.Booking{{ID: "B1", RestaurantID: "r1", Tables: []model.BookingTable{
		{TableID: "T1", Area: &model.AreaSnapshot{ID: "A1", Name: "Patio"}},
	}}}}
	rec := call(newServer(svc), http.MethodGet, "/v1/restaurants/r1/seating-areas/A1/bookings", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"area":{"id":"A1","name":"Patio","internal_note":""}`)
	assert.Equal(t, "A1", svc.areaID)
}

func TestForms(t *testing.T) {
	t.Run("new", func(t *testing.T) {
		rec := call(newServer(&stubService{}), http.MethodGet, "/v1/restaurants/r1/seating-areas/form", "")

		require.Equal(t, http.StatusOK, rec.Code)
		m := decode(t, rec)
		assert.Equal(t, "settings.tables.area.add", m["title_key"])
		assert.Equal(t, "added", m["action"])
	})

	t.Run("edit", func(t *testing.T) {
		svc := &stubService{area: &model.SeatingArea{ID: "A1", Name: "Patio", Bookable: true, BookingPriority: 8}}
		rec := call(newServer(svc), http.MethodGet, "/v1/restaurants/r1/seating-areas/A1/form", "")

		require.Equal(t, http.StatusOK, rec.Code)
		m := decode(t, rec)
		assert.Equal(t, "settings.tables.area.edit", m["title_key"])
		values := m["values"].(map[string]any)
		assert.Equal(t, "Patio", values["name"])
		assert.Equal(t, "8", values["booking_priority"])
	})
}

type stubApps struct {
	active map[string]bool
	err    error
}

func (a stubApps) IsAppActive(_ context.Context, restaurantID, app string) (bool, error) {
	return a.active[restaurantID+"/"+app], a.err
}

func TestForms_ReserveWithGoogle(t *testing.T) {
	serve := func(apps AppChecker, target string) map[string]any {
		svc := &stubService{area: &model.SeatingArea{ID: "A1", Name: "Patio", BookingPriority: 5}}
		h := &SeatingAreaHandler{Areas: svc, Apps: apps}
		e := echo.New()
		e.GET("/v1/restaurants/:restaurantId/seating-areas/form", h.NewForm)
		e.GET("/v1/restaurants/:restaurantId/seating-areas/:id/form", h.EditForm)
		rec := call(e, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, rec.Code)
		return decode(t, rec)
	}
	apps := stubApps{active: map[string]bool{"r1/reserveWithGoogle": true}}

	assert.Equal(t, true, serve(apps, "/v1/restaurants/r1/seating-areas/form")["rwg_success"])
	assert.Equal(t, true, serve(apps, "/v1/restaurants/r1/seating-areas/A1/form")["rwg_success"])
	assert.Equal(t, false, serve(apps, "/v1/restaurants/r2/seating-areas/form")["rwg_success"])
	assert.Equal(t, false, serve(nil, "/v1/restaurants/r1/seating-areas/form")["rwg_success"])
	assert.Equal(t, false, serve(stubApps{err: errors.New("down")}, "/v1/restaurants/r1/seating-areas/form")["rwg_success"])
}

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	e := echo.New()
	e.GET("/up", Health(pinger{}))
	e.GET("/down", Health(pinger{err: errors.New("refused")}))

	assert.Equal(t, http.StatusOK, call(e, http.MethodGet, "/up", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, call(e, http.MethodGet, "/down", "").Code)
}
