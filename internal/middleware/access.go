package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seating-areas/internal/logging"
	"github.com/iliyamo/seating-areas/internal/service"
)

// CapabilityChecker answers whether a user holds any of the capabilities
// on a restaurant.
type CapabilityChecker interface {
	HasAnyCapability(ctx context.Context, restaurantID, userID string, capabilities []string) (bool, error)
}

// RequireRestaurantAccess rejects requests whose user holds none of the
// capabilities on the restaurant named by the :restaurantId path param.
// It must run after JWTAuth.
func RequireRestaurantAccess(checker CapabilityChecker, capabilities ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			op := OperationName(c)
			actor := ActorID(c)
			if actor == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": service.KindAuthorization, "operation": op, "message": "not authenticated",
				})
			}
			restaurantID := c.Param("restaurantId")
			ok, err := checker.HasAnyCapability(c.Request().Context(), restaurantID, actor, capabilities)
			if err != nil {
				logging.FromContext(c.Request().Context()).WithError(err).Error("capability lookup failed")
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"error": service.KindPersistence, "operation": op, "message": "capability lookup failed",
				})
			}
			if !ok {
				return c.JSON(http.StatusForbidden, echo.Map{
					"error":     service.KindAuthorization,
					"operation": op,
					"message":   "user may not manage seating areas of this restaurant",
					"details":   "restaurantId: " + restaurantID + " userId: " + actor,
				})
			}
			return next(c)
		}
	}
}

// OperationName maps a seating area route to its operation name.
func OperationName(c echo.Context) string {
	path := c.Path()
	switch {
	case c.Request().Method == http.MethodPost:
		return service.OpInsert
	case c.Request().Method == http.MethodPut:
		return service.OpUpdate
	case strings.HasSuffix(path, "/bookings"):
		return service.OpBookings
	case strings.HasSuffix(path, "/:id"), strings.HasSuffix(path, "/:id/form"):
		return service.OpGet
	default:
		return service.OpList
	}
}
