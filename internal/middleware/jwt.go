package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/okandemir/student-info-api/internal/utils" // token verification and Identity type
)

// Context keys under which the gate stores the verified identity.  Handlers
// read them back via c.Get.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the verified identity into the request context.  The provided
// secret must match the one used when issuing tokens.
//
// The gate distinguishes two failure classes:
//   - no usable Authorization header at all -> 401 {"error":"Unauthorized"}
//   - a token was supplied but failed verification (malformed, tampered or
//     expired) -> 403 {"error":"Forbidden"}
//
// Handlers behind this middleware can rely on c.Get(CtxUserID) and
// c.Get(CtxRole) being populated.  No token refresh happens here; an expired
// token is simply rejected.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}

			id, err := utils.VerifyAccessToken(secret, raw)
			if err != nil {
				// Token present but unusable.  The concrete cause (expired,
				// bad signature, garbage) is deliberately not leaked to the
				// client.
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Forbidden"})
			}

			c.Set(CtxUserID, id.UserID)
			c.Set(CtxRole, id.Role)
			return next(c)
		}
	}
}

// IdentityFrom rebuilds the Identity stored in context by JWTAuth.  The
// boolean result is false when the middleware did not run for this route.
func IdentityFrom(c echo.Context) (utils.Identity, bool) {
	uid, ok := c.Get(CtxUserID).(uint64)
	if !ok {
		return utils.Identity{}, false
	}
	role, ok := c.Get(CtxRole).(string)
	if !ok || role == "" {
		return utils.Identity{}, false
	}
	return utils.Identity{UserID: uid, Role: role}, true
}
