package middleware

// identity.go holds the helpers that read the authenticated user placed in
// the Echo context by JWTAuth.

import (
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// ActorID returns the authenticated user's id, or "" when the request did
// not pass through JWTAuth.
func ActorID(c echo.Context) string {
	if s, ok := c.Get(userIDKey).(string); ok {
		return s
	}
	return ""
}

// userID is ActorID with a placeholder for anonymous callers, used when
// building rate limit keys.
func userID(c echo.Context) string {
	if s := ActorID(c); s != "" {
		return s
	}
	return "anon"
}
