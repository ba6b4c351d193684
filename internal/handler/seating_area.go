package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seating-areas/internal/middleware"
	"github.com/iliyamo/seating-areas/internal/model"
	"github.com/iliyamo/seating-areas/internal/service"
)

// maxBodyBytes bounds insert and update payloads.
const maxBodyBytes = 64 << 10

// SeatingAreaService is what the handlers need from service.SeatingAreaService.
type SeatingAreaService interface {
	Insert(ctx context.Context, restaurantID, actorID string, in service.SeatingAreaInput) (string, error)
	Update(ctx context.Context, restaurantID, areaID, actorID string, in service.SeatingAreaInput) (service.UpdateResult, error)
	Get(ctx context.Context, restaurantID, areaID string) (*model.SeatingArea, error)
	List(ctx context.Context, restaurantID string) ([]model.SeatingArea, error)
	UpcomingBookings(ctx context.Context, restaurantID, areaID string) ([]model.Booking, error)
}

// AppChecker reports which restaurant apps are switched on.
type AppChecker interface {
	IsAppActive(ctx context.Context, restaurantID, app string) (bool, error)
}

// SeatingAreaHandler serves /v1/restaurants/:restaurantId/seating-areas.
// Routes are expected behind JWTAuth and RequireRestaurantAccess.  Apps is
// optional; without it the forms never flag Reserve with Google.
type SeatingAreaHandler struct {
	Areas SeatingAreaService
	Apps  AppChecker
}

// NewSeatingAreaHandler panics when svc is nil.
func NewSeatingAreaHandler(svc SeatingAreaService) *SeatingAreaHandler {
	if svc == nil {
		panic("nil service passed to NewSeatingAreaHandler")
	}
	return &SeatingAreaHandler{Areas: svc}
}

type insertResp struct {
	ID string `json:"id"`
}

// Insert: POST /v1/restaurants/:restaurantId/seating-areas
func (h *SeatingAreaHandler) Insert(c echo.Context) error {
	in, err := decodeBody(c, service.OpInsert)
	if err != nil {
		return writeError(c, service.OpInsert, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Areas.Insert(ctx, c.Param("restaurantId"), middleware.ActorID(c), in)
	if err != nil {
		return writeError(c, service.OpInsert, err)
	}
	return c.JSON(http.StatusCreated, insertResp{ID: id})
}

// Update: PUT /v1/restaurants/:restaurantId/seating-areas/:id
// Zero matched areas is still 200; the body tells the caller.
func (h *SeatingAreaHandler) Update(c echo.Context) error {
	in, err := decodeBody(c, service.OpUpdate)
	if err != nil {
		return writeError(c, service.OpUpdate, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Areas.Update(ctx, c.Param("restaurantId"), c.Param("id"), middleware.ActorID(c), in)
	if err != nil {
		return writeError(c, service.OpUpdate, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Get: GET /v1/restaurants/:restaurantId/seating-areas/:id
func (h *SeatingAreaHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	area, err := h.Areas.Get(ctx, c.Param("restaurantId"), c.Param("id"))
	if err != nil {
		return writeError(c, service.OpGet, err)
	}
	return c.JSON(http.StatusOK, area)
}

// List: GET /v1/restaurants/:restaurantId/seating-areas
func (h *SeatingAreaHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	areas, err := h.Areas.List(ctx, c.Param("restaurantId"))
	if err != nil {
		return writeError(c, service.OpList, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": areas})
}

// Bookings: GET /v1/restaurants/:restaurantId/seating-areas/:id/bookings
func (h *SeatingAreaHandler) Bookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Areas.UpcomingBookings(ctx, c.Param("restaurantId"), c.Param("id"))
	if err != nil {
		return writeError(c, service.OpBookings, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": bookings})
}

func decodeBody(c echo.Context, op string) (service.SeatingAreaInput, error) {
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes+1))
	if err != nil {
		return service.SeatingAreaInput{}, service.NewValidationError(op, "could not read request body")
	}
	if len(raw) > maxBodyBytes {
		return service.SeatingAreaInput{}, service.NewValidationError(op, "request body too large")
	}
	return service.DecodeSeatingAreaInput(op, raw)
}
