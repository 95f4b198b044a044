package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/okandemir/student-info-api/internal/middleware"
	"github.com/okandemir/student-info-api/internal/policy"
	"github.com/okandemir/student-info-api/internal/repository"
)

// UserHandler serves the user management endpoints behind the gate.  Every
// operation consults the authorization policy with the identity the gate
// attached to the request; the policy's deny reason becomes the 403 body.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(u *repository.UserRepo) *UserHandler {
	return &UserHandler{Users: u}
}

// List handles GET /api/users.  Admin only.
func (h *UserHandler) List(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	if err := policy.Authorize(id, policy.ActionListUsers, policy.Resource{}); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		c.Logger().Errorf("users: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, viewOf(u))
	}
	return c.JSON(http.StatusOK, out)
}

// GetByID handles GET /api/users/:id.  Admin or the account owner.
func (h *UserHandler) GetByID(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	target, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := policy.Authorize(id, policy.ActionReadUser, policy.Resource{OwnerID: target}); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, target)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		c.Logger().Errorf("users: get failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, viewOf(u))
}

// Update handles PUT /api/users/:id.  Admin or the account owner; only
// username and email are writable.  Role changes have no endpoint.
func (h *UserHandler) Update(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	target, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := policy.Authorize(id, policy.ActionUpdateUser, policy.Resource{OwnerID: target}); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	}

	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	body.Username = strings.TrimSpace(body.Username)
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	if len(body.Username) < 3 || len(body.Username) > 30 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "username must be between 3 and 30 characters"})
	}
	if body.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Update(ctx, target, body.Username, body.Email); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		case errors.Is(err, repository.ErrUsernameExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "username already exists"})
		default:
			c.Logger().Errorf("users: update failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
		}
	}
	u, err := h.Users.GetByID(ctx, target)
	if err != nil {
		c.Logger().Errorf("users: reload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, viewOf(u))
}

// Delete handles DELETE /api/users/:id.  Admin only.
func (h *UserHandler) Delete(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	target, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := policy.Authorize(id, policy.ActionDeleteUser, policy.Resource{OwnerID: target}); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Delete(ctx, target); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		c.Logger().Errorf("users: delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}
