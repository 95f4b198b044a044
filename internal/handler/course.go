package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/okandemir/student-info-api/internal/repository"
)

// minDescriptionLen mirrors the length rule the course form enforces.
const minDescriptionLen = 150

// CourseHandler serves course CRUD plus membership management (enrolling
// and removing students, assigning teachers).
type CourseHandler struct {
	Courses *repository.CourseRepo
}

func NewCourseHandler(r *repository.CourseRepo) *CourseHandler {
	return &CourseHandler{Courses: r}
}

type courseReq struct {
	Abbreviation string `json:"abbreviation"`
	CourseName   string `json:"courseName"`
	Description  string `json:"description"`
}

// List handles GET /api/courses.
func (h *CourseHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	courses, err := h.Courses.List(ctx)
	if err != nil {
		c.Logger().Errorf("courses: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, courses)
}

// GetByID handles GET /api/courses/:id.
func (h *CourseHandler) GetByID(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	course, err := h.Courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Course not found"})
		}
		c.Logger().Errorf("courses: get failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, course)
}

// Create handles POST /api/courses.  New courses need an abbreviation, a
// name, and a description long enough to be useful on the course page.
func (h *CourseHandler) Create(c echo.Context) error {
	var req courseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	req.Abbreviation = strings.TrimSpace(req.Abbreviation)
	req.CourseName = strings.TrimSpace(req.CourseName)
	if req.Abbreviation == "" || req.CourseName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "abbreviation and courseName are required"})
	}
	if len(req.Description) < minDescriptionLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "description must be at least 150 characters"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	course := repository.Course{
		Abbreviation: req.Abbreviation,
		CourseName:   req.CourseName,
		Description:  req.Description,
	}
	if err := h.Courses.Create(ctx, &course); err != nil {
		if errors.Is(err, repository.ErrCourseExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "A course with this abbreviation already exists"})
		}
		c.Logger().Errorf("courses: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusCreated, course)
}

// Update handles PUT /api/courses/:id.
func (h *CourseHandler) Update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req courseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	req.Abbreviation = strings.TrimSpace(req.Abbreviation)
	req.CourseName = strings.TrimSpace(req.CourseName)
	if req.Abbreviation == "" || req.CourseName == "" || req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "abbreviation, courseName and description are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	course := repository.Course{
		ID:           id,
		Abbreviation: req.Abbreviation,
		CourseName:   req.CourseName,
		Description:  req.Description,
	}
	if err := h.Courses.Update(ctx, &course); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Course not found"})
		case errors.Is(err, repository.ErrCourseExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "A course with this abbreviation already exists"})
		default:
			c.Logger().Errorf("courses: update failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
		}
	}
	return c.JSON(http.StatusOK, course)
}

// Delete handles DELETE /api/courses/:id.
func (h *CourseHandler) Delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Course not found"})
		}
		c.Logger().Errorf("courses: delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Course deleted successfully"})
}

// AddStudent handles POST /api/courses/:id/students with body {studentId}.
func (h *CourseHandler) AddStudent(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var body struct {
		StudentID uint64 `json:"studentId"`
	}
	if err := c.Bind(&body); err != nil || body.StudentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "studentId is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Courses.AddStudent(ctx, id, body.StudentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Course or student not found"})
		}
		c.Logger().Errorf("courses: add student failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Student added to course"})
}

// RemoveStudent handles DELETE /api/courses/:id/students/:studentId.
func (h *CourseHandler) RemoveStudent(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	studentID, ok := parseIDParam(c, "studentId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid studentId"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Courses.RemoveStudent(ctx, id, studentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Student is not enrolled in this course"})
		}
		c.Logger().Errorf("courses: remove student failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Student removed from course"})
}

// AddTeacher handles POST /api/courses/:id/teachers with body {teacherId}.
func (h *CourseHandler) AddTeacher(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var body struct {
		TeacherID uint64 `json:"teacherId"`
	}
	if err := c.Bind(&body); err != nil || body.TeacherID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "teacherId is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Courses.AddTeacher(ctx, id, body.TeacherID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Course or teacher not found"})
		}
		c.Logger().Errorf("courses: add teacher failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Teacher added to course"})
}
