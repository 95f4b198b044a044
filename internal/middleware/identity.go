package middleware

// identity.go defines helpers shared across middleware files. The rate
// limiter keys on the requesting user when one is authenticated; requests
// that never passed the gate are bucketed together as "anon".

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's ID as a string, or "anon"
// when the request carries no verified identity.
func currentUserID(c echo.Context) string {
	if v, ok := c.Get(CtxUserID).(uint64); ok && v > 0 {
		return strconv.FormatUint(v, 10)
	}
	return "anon"
}
