package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/okandemir/student-info-api/internal/repository"
)

// AttendanceHandler serves attendance CRUD.
type AttendanceHandler struct {
	Attendances *repository.AttendanceRepo
}

func NewAttendanceHandler(a *repository.AttendanceRepo) *AttendanceHandler {
	return &AttendanceHandler{Attendances: a}
}

type attendanceReq struct {
	StudentID uint64 `json:"studentId"`
	CourseID  uint64 `json:"courseId"`
	Date      string `json:"date"` // YYYY-MM-DD
	Status    string `json:"status"`
}

func (r *attendanceReq) validate() (time.Time, string) {
	if r.StudentID == 0 || r.CourseID == 0 {
		return time.Time{}, "studentId and courseId are required"
	}
	if !repository.ValidAttendanceStatus(r.Status) {
		return time.Time{}, "status must be present, absent or late"
	}
	d, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return time.Time{}, "date must be in YYYY-MM-DD format"
	}
	return d, ""
}

// List handles GET /api/attendances.
func (h *AttendanceHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	entries, err := h.Attendances.List(ctx)
	if err != nil {
		c.Logger().Errorf("attendances: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, entries)
}

// GetByID handles GET /api/attendances/:id.
func (h *AttendanceHandler) GetByID(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.Attendances.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Attendance record not found"})
		}
		c.Logger().Errorf("attendances: get failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, a)
}

// Create handles POST /api/attendances.
func (h *AttendanceHandler) Create(c echo.Context) error {
	var req attendanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	date, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	a := repository.Attendance{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Date:      date,
		Status:    req.Status,
	}
	if err := h.Attendances.Create(ctx, &a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Student or course not found"})
		}
		c.Logger().Errorf("attendances: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusCreated, a)
}

// Update handles PUT /api/attendances/:id.  Only the date and status can
// change.
func (h *AttendanceHandler) Update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req attendanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if !repository.ValidAttendanceStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "status must be present, absent or late"})
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "date must be in YYYY-MM-DD format"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	a := repository.Attendance{ID: id, Date: date, Status: req.Status}
	if err := h.Attendances.Update(ctx, &a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Attendance record not found"})
		}
		c.Logger().Errorf("attendances: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, a)
}

// Delete handles DELETE /api/attendances/:id.
func (h *AttendanceHandler) Delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Attendances.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Attendance record not found"})
		}
		c.Logger().Errorf("attendances: delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Attendance record deleted successfully"})
}
