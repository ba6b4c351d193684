package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seating-areas/internal/form"
	"github.com/iliyamo/seating-areas/internal/logging"
	"github.com/iliyamo/seating-areas/internal/service"
)

// NewForm: GET /v1/restaurants/:restaurantId/seating-areas/form
// Returns the dialog for adding an area, filled with defaults.
func (h *SeatingAreaHandler) NewForm(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	return c.JSON(http.StatusOK, form.New().Descriptor(h.reserveWithGoogle(ctx, c.Param("restaurantId"))))
}

// EditForm: GET /v1/restaurants/:restaurantId/seating-areas/:id/form
// Returns the dialog for editing a stored area.
func (h *SeatingAreaHandler) EditForm(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	area, err := h.Areas.Get(ctx, c.Param("restaurantId"), c.Param("id"))
	if err != nil {
		return writeError(c, service.OpGet, err)
	}
	return c.JSON(http.StatusOK, form.FromArea(*area).Descriptor(h.reserveWithGoogle(ctx, c.Param("restaurantId"))))
}

// reserveWithGoogle only changes the success message, so a failed lookup
// is logged and treated as inactive.
func (h *SeatingAreaHandler) reserveWithGoogle(ctx context.Context, restaurantID string) bool {
	if h.Apps == nil {
		return false
	}
	ok, err := h.Apps.IsAppActive(ctx, restaurantID, form.ReserveWithGoogleApp)
	if err != nil {
		logging.FromContext(ctx).WithError(err).WithField("restaurant_id", restaurantID).Warn("app lookup failed")
		return false
	}
	return ok
}
