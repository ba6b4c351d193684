package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v3"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/seating-areas/internal/logging"
)

// CorrelationIDHeader carries the request correlation id in and out.
const CorrelationIDHeader = "Correlation-ID"

// RequestLogger attaches a correlation id and a logrus entry carrying it
// to the request context, then logs the finished request.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			correlationID := req.Header.Get(CorrelationIDHeader)
			if correlationID == "" {
				correlationID = shortuuid.New()
			}
			c.Response().Header().Set(CorrelationIDHeader, correlationID)

			entry := logrus.WithField("correlation_id", correlationID)
			ctx := logging.ContextWithCorrelationID(req.Context(), correlationID)
			ctx = logging.ToContext(ctx, entry)
			c.SetRequest(req.WithContext(ctx))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			entry.WithFields(logrus.Fields{
				"method":   req.Method,
				"path":     c.Path(),
				"status":   c.Response().Status,
				"duration": time.Since(start).String(),
				"user_id":  ActorID(c),
			}).Info("request handled")
			return nil
		}
	}
}
