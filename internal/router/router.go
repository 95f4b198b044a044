package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/okandemir/student-info-api/internal/handler"    // import the handlers that implement business logic
	"github.com/okandemir/student-info-api/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The health endpoint is used by load balancers and monitoring systems
	// to verify that the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterUsers registers the user and authentication endpoints.
//
// The public subset (signup, login, verify-password, change-password) lives
// outside the gate: signup and login by definition happen before a token
// exists, and the two password endpoints authenticate by the password itself.
// The login route additionally carries the rate limiter.
//
// The protected subset (list, get, update, delete, the protected echo route)
// sits behind the JWT gate; per-action rules are enforced by the
// authorization policy inside the handlers.
func RegisterUsers(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler, jwtSecret string, loginLimiter echo.MiddlewareFunc) {
	g := e.Group("/api/users")

	// Unauthenticated operations.
	g.POST("", a.Signup)
	g.POST("/login", a.Login, loginLimiter)
	g.POST("/verify-password", a.VerifyPassword)
	g.POST("/change-password", a.ChangePassword)

	// Gate-protected operations.  The gate returns 401 when no token is
	// supplied and 403 when a supplied token fails verification.
	gate := middleware.JWTAuth(jwtSecret)
	g.GET("/protected", a.Protected, gate)
	g.GET("", u.List, gate)
	g.GET("/:id", u.GetByID, gate)
	g.PUT("/:id", u.Update, gate)
	g.DELETE("/:id", u.Delete, gate)
}

// RegisterRoster registers the roster CRUD endpoints (students, teachers,
// courses, grades, attendances) and the stats endpoint.  All of them require
// a valid access token; beyond that, any authenticated identity may read and
// mutate roster records.  The cache middleware serves repeated GETs from
// Redis.
func RegisterRoster(
	e *echo.Echo,
	st *handler.StudentHandler,
	te *handler.TeacherHandler,
	co *handler.CourseHandler,
	gr *handler.GradeHandler,
	at *handler.AttendanceHandler,
	sh *handler.StatsHandler,
	jwtSecret string,
	cache echo.MiddlewareFunc,
) {
	g := e.Group(
		"/api",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin", "teacher", "student"),
		cache,
	)

	// ---- Students ----
	g.GET("/students", st.List)
	g.GET("/students/:id", st.GetByID)
	g.POST("/students", st.Create)
	g.PUT("/students/:id", st.Update)
	g.DELETE("/students/:id", st.Delete)

	// ---- Teachers ----
	g.GET("/teachers", te.List)
	g.GET("/teachers/:id", te.GetByID)
	g.POST("/teachers", te.Create)
	g.PUT("/teachers/:id", te.Update)
	g.DELETE("/teachers/:id", te.Delete)

	// ---- Courses ----
	g.GET("/courses", co.List)
	g.GET("/courses/:id", co.GetByID)
	g.POST("/courses", co.Create)
	g.PUT("/courses/:id", co.Update)
	g.DELETE("/courses/:id", co.Delete)
	g.POST("/courses/:id/students", co.AddStudent)
	g.DELETE("/courses/:id/students/:studentId", co.RemoveStudent)
	g.POST("/courses/:id/teachers", co.AddTeacher)

	// ---- Grades ----
	g.GET("/grades", gr.List)
	g.GET("/grades/:id", gr.GetByID)
	g.POST("/grades", gr.Create)
	g.PUT("/grades/:id", gr.Update)
	g.DELETE("/grades/:id", gr.Delete)

	// ---- Attendances ----
	g.GET("/attendances", at.List)
	g.GET("/attendances/:id", at.GetByID)
	g.POST("/attendances", at.Create)
	g.PUT("/attendances/:id", at.Update)
	g.DELETE("/attendances/:id", at.Delete)

	// ---- Stats ----
	g.GET("/stats", sh.Totals)
}
