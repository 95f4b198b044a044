package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/okandemir/student-info-api/internal/repository"
)

// StudentHandler serves roster CRUD for students.  Every route sits behind
// the gate; any authenticated identity may read and mutate the roster.
type StudentHandler struct {
	Students *repository.StudentRepo
}

func NewStudentHandler(s *repository.StudentRepo) *StudentHandler {
	return &StudentHandler{Students: s}
}

var phonePattern = regexp.MustCompile(`^\d{10}$`)

func validGender(g string) bool {
	return g == "Male" || g == "Female" || g == "Other"
}

type studentReq struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	GradeLevel string `json:"gradeLevel"`
}

func (r *studentReq) validate() string {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.FirstName == "" || r.LastName == "" || r.Age == 0 || r.Gender == "" || r.Email == "" || r.Phone == "" {
		return "All fields are required"
	}
	if r.Age < 1 {
		return "age must be positive"
	}
	if !validGender(r.Gender) {
		return "gender must be Male, Female or Other"
	}
	if !phonePattern.MatchString(r.Phone) {
		return "phone must be 10 digits"
	}
	return ""
}

// List handles GET /api/students, sorted by first name.
func (h *StudentHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	students, err := h.Students.List(ctx)
	if err != nil {
		c.Logger().Errorf("students: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, students)
}

// GetByID handles GET /api/students/:id.
func (h *StudentHandler) GetByID(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Student not found"})
		}
		c.Logger().Errorf("students: get failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, s)
}

// Create handles POST /api/students.
func (h *StudentHandler) Create(c echo.Context) error {
	var req studentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s := repository.Student{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Age:        req.Age,
		Gender:     req.Gender,
		Email:      req.Email,
		Phone:      req.Phone,
		GradeLevel: req.GradeLevel,
	}
	if err := h.Students.Create(ctx, &s); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "A student with this email already exists"})
		}
		c.Logger().Errorf("students: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusCreated, s)
}

// Update handles PUT /api/students/:id.  All fields are required, matching
// the full-row edit the roster table performs.
func (h *StudentHandler) Update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req studentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s := repository.Student{
		ID:         id,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Age:        req.Age,
		Gender:     req.Gender,
		Email:      req.Email,
		Phone:      req.Phone,
		GradeLevel: req.GradeLevel,
	}
	if err := h.Students.Update(ctx, &s); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Student not found"})
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email already exists"})
		default:
			c.Logger().Errorf("students: update failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
		}
	}
	return c.JSON(http.StatusOK, s)
}

// Delete handles DELETE /api/students/:id.
func (h *StudentHandler) Delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Students.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Student not found"})
		}
		c.Logger().Errorf("students: delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Student deleted successfully"})
}
