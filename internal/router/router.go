package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/seating-areas/internal/config"
	"github.com/iliyamo/seating-areas/internal/handler"    // import the handlers that serve seating areas
	"github.com/iliyamo/seating-areas/internal/middleware" // import middleware for JWT authentication, access checks, rate limit and cache
)

// Capabilities that allow managing a restaurant's seating areas.  Any one
// of them is enough.
var SeatingAreaCapabilities = []string{"tables", "apps"}

// RegisterRoutes registers routes that do not require authentication:
// the health check and the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// SeatingAreaDeps bundles what the seating area routes need.
type SeatingAreaDeps struct {
	Handler   *handler.SeatingAreaHandler
	Access    middleware.CapabilityChecker
	JWTSecret string
	Redis     *redis.Client // nil disables rate limiting and caching
	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig
}

// RegisterSeatingAreas registers /v1/restaurants/:restaurantId/seating-areas.
// Every route needs a valid token and a restaurant capability.  Reads are
// cached per restaurant; writes drop that cache.  Only inserts are rate
// limited.
func RegisterSeatingAreas(e *echo.Echo, d SeatingAreaDeps) {
	g := e.Group("/v1/restaurants/:restaurantId/seating-areas")
	g.Use(middleware.JWTAuth(d.JWTSecret))
	g.Use(middleware.RequireRestaurantAccess(d.Access, SeatingAreaCapabilities...))
	g.Use(middleware.NewRedisCache(d.Cache, d.Redis))
	g.Use(middleware.NewCacheInvalidator(d.Cache, d.Redis))

	h := d.Handler
	// Inserts go through the fixed-window limiter keyed by user and route.
	g.POST("", h.Insert, middleware.NewFixedWindow(d.RateLimit, d.Redis))
	g.GET("", h.List)
	g.GET("/form", h.NewForm)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.GET("/:id/form", h.EditForm)
	g.GET("/:id/bookings", h.Bookings)
}
