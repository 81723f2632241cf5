package middleware

// identity.go provides helpers shared across middleware files. subject
// extracts the authenticated user's identifier placed in context by
// JWTAuth; the cache middleware folds it into cache keys so per-user
// responses are never served to another tenant.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// subject returns the user identifier stored under "user_id", or
// "guest" when the request is unauthenticated. JWT numeric claims
// arrive as float64; tests and handlers may store native ints.
func subject(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return "guest"
}
