package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/okandemir/student-info-api/internal/queue"
	"github.com/okandemir/student-info-api/internal/repository"
	queue_publisher "github.com/okandemir/student-info-api/internal/service"
)

// GradeHandler serves grade CRUD.  Creating a grade also publishes a
// grade.recorded event for the audit consumer.
type GradeHandler struct {
	Grades *repository.GradeRepo
}

func NewGradeHandler(g *repository.GradeRepo) *GradeHandler {
	return &GradeHandler{Grades: g}
}

type gradeReq struct {
	StudentID uint64  `json:"studentId"`
	CourseID  uint64  `json:"courseId"`
	Grade     float64 `json:"grade"`
	Term      string  `json:"term"`
}

func (r *gradeReq) validate() string {
	if r.StudentID == 0 || r.CourseID == 0 {
		return "studentId and courseId are required"
	}
	if r.Grade < 0 || r.Grade > 100 {
		return "grade must be between 0 and 100"
	}
	return ""
}

// List handles GET /api/grades.
func (h *GradeHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	grades, err := h.Grades.List(ctx)
	if err != nil {
		c.Logger().Errorf("grades: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, grades)
}

// GetByID handles GET /api/grades/:id.
func (h *GradeHandler) GetByID(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	g, err := h.Grades.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Grade not found"})
		}
		c.Logger().Errorf("grades: get failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, g)
}

// Create handles POST /api/grades.
func (h *GradeHandler) Create(c echo.Context) error {
	var req gradeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	g := repository.Grade{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Grade:     req.Grade,
		Term:      req.Term,
	}
	if err := h.Grades.Create(ctx, &g); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Student or course not found"})
		}
		c.Logger().Errorf("grades: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}

	ev := queue.GradeRecordedEvent{
		GradeID:    g.ID,
		StudentID:  g.StudentID,
		CourseID:   g.CourseID,
		Grade:      g.Grade,
		Term:       g.Term,
		RecordedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = queue_publisher.PublishGradeRecorded(context.Background(), ev) }()

	return c.JSON(http.StatusCreated, g)
}

// Update handles PUT /api/grades/:id.  Only the score and term can change;
// re-pointing a grade at a different student is done by delete + create.
func (h *GradeHandler) Update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req gradeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if req.Grade < 0 || req.Grade > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "grade must be between 0 and 100"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	g := repository.Grade{ID: id, Grade: req.Grade, Term: req.Term}
	if err := h.Grades.Update(ctx, &g); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Grade not found"})
		}
		c.Logger().Errorf("grades: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, g)
}

// Delete handles DELETE /api/grades/:id.
func (h *GradeHandler) Delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Grades.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Grade not found"})
		}
		c.Logger().Errorf("grades: delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Grade deleted successfully"})
}
