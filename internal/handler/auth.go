package handler

import (
	"context"   // bounded contexts for DB calls
	"errors"    // sentinel comparisons against repository errors
	"net/http"  // HTTP status codes and primitives
	"strings"   // string manipulation utilities
	"time"      // event timestamps

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/okandemir/student-info-api/internal/config"          // app configuration
	"github.com/okandemir/student-info-api/internal/middleware"      // gate context keys
	"github.com/okandemir/student-info-api/internal/policy"          // authorization rules
	"github.com/okandemir/student-info-api/internal/queue"           // domain event payloads
	"github.com/okandemir/student-info-api/internal/repository"      // DB repositories
	queue_publisher "github.com/okandemir/student-info-api/internal/service" // event publishing
	"github.com/okandemir/student-info-api/internal/utils"           // hashing and token issuing
)

// AuthHandler bundles dependencies for the authentication endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo

	// publishRegistered defaults to the queue publisher; tests swap it out.
	publishRegistered func(context.Context, queue.UserRegisteredEvent) error
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, publishRegistered: queue_publisher.PublishUserRegistered}
}

// ----- DTOs -----

type signupReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type verifyPasswordReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type changePasswordReq struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type userView struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func viewOf(u repository.User) userView {
	return userView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Signup handles POST /api/users: validate, create the user, return the
// created record without the password hash.  Creating an admin account is
// only allowed when the request carries a valid admin bearer token; the
// route itself is otherwise unauthenticated.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))

	if len(req.Username) < 3 || len(req.Username) > 30 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "username must be between 3 and 30 characters"})
	}
	if len(req.Password) < utils.MinPasswordLength {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "password must be at least 8 characters"})
	}
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email is required"})
	}
	if !policy.ValidRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "role must be admin, teacher or student"})
	}

	// Elevation check: only an authenticated admin may create another admin.
	// The gate middleware does not run on this route, so the token (if any)
	// is verified inline.
	if req.Role == policy.RoleAdmin {
		id, ok := h.bearerIdentity(c)
		if !ok {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "only admins may create admin accounts"})
		}
		if err := policy.Authorize(id, policy.ActionCreateAdmin, policy.Resource{}); err != nil {
			return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, req.Password, req.Email, req.Role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			// 400 rather than 409: existing clients treat duplicates as a
			// validation failure.
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "username already exists"})
		}
		c.Logger().Errorf("signup: create user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		c.Logger().Errorf("signup: load created user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}

	// Audit event; losing it must not fail the signup.
	ev := queue.UserRegisteredEvent{
		UserID:       u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		RegisteredAt: time.Now().UTC().Format(time.RFC3339),
	}
	// Detached context: the request context is canceled as soon as the
	// handler returns, which would kill the publish mid-flight.
	go func() { _ = h.publishRegistered(context.Background(), ev) }()

	return c.JSON(http.StatusCreated, viewOf(u))
}

// Login handles POST /api/users/login: verify the credentials and issue a
// bearer token.  An unknown username and a wrong password produce exactly
// the same response so usernames cannot be enumerated; the unknown-user path
// burns a bcrypt comparison to keep timing uniform.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "username and password are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.BurnPasswordCheck(req.Password)
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
		}
		c.Logger().Errorf("login: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.TokenTTLHours)
	if err != nil {
		c.Logger().Errorf("login: issue token failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":  access.Token,
		"userId": u.ID,
	})
}

// VerifyPassword handles POST /api/users/verify-password: the pre-check the
// frontend runs before showing the change-password form.  Same comparison
// semantics as login, but no token is issued.
func (h *AuthHandler) VerifyPassword(c echo.Context) error {
	var req verifyPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if !h.checkCredentials(ctx, req.Username, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true})
}

// ChangePassword handles POST /api/users/change-password.  The current
// password must verify before anything is written; on a failed verify the
// stored hash is left untouched.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if len(req.NewPassword) < utils.MinPasswordLength {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "password must be at least 8 characters"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.BurnPasswordCheck(req.CurrentPassword)
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
		}
		c.Logger().Errorf("change-password: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}

	if err := h.Users.UpdatePassword(ctx, u.ID, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		c.Logger().Errorf("change-password: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully"})
}

// Protected handles GET /api/users/protected: a smoke-test endpoint behind
// the gate that echoes the verified identity back to the caller.
func (h *AuthHandler) Protected(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "You have access to this protected route!",
		"user": echo.Map{
			"userId": c.Get(middleware.CtxUserID),
			"role":   c.Get(middleware.CtxRole),
		},
	})
}

// checkCredentials performs the shared lookup-and-compare used by
// VerifyPassword.  The unknown-user path burns a bcrypt comparison so the
// two failure modes cost the same.
func (h *AuthHandler) checkCredentials(ctx context.Context, username, password string) bool {
	u, err := h.Users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		utils.BurnPasswordCheck(password)
		return false
	}
	return utils.VerifyPassword(u.PasswordHash, password)
}

// bearerIdentity verifies an optional Authorization header outside the gate
// middleware.  Used by Signup for the admin elevation check.
func (h *AuthHandler) bearerIdentity(c echo.Context) (utils.Identity, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return utils.Identity{}, false
	}
	id, err := utils.VerifyAccessToken(h.Cfg.JWTSecret, strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		return utils.Identity{}, false
	}
	return id, true
}
