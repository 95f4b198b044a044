package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/okandemir/student-info-api/internal/repository"
)

// TeacherHandler serves roster CRUD for teachers.
type TeacherHandler struct {
	Teachers *repository.TeacherRepo
}

func NewTeacherHandler(t *repository.TeacherRepo) *TeacherHandler {
	return &TeacherHandler{Teachers: t}
}

type teacherReq struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	Degree         string `json:"degree"`
	Experience     int    `json:"experience"`
	Salary         int    `json:"salary"`
	EmploymentType string `json:"employmentType"`
	Subject        string `json:"subject"`
}

func (r *teacherReq) validate() string {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.FirstName == "" || r.LastName == "" || r.Email == "" || r.Subject == "" {
		return "firstName, lastName, email and subject are required"
	}
	if r.Age < 0 || r.Experience < 0 || r.Salary < 0 {
		return "age, experience and salary must not be negative"
	}
	if r.Gender != "" && !validGender(r.Gender) {
		return "gender must be Male, Female or Other"
	}
	if r.Phone != "" && !phonePattern.MatchString(r.Phone) {
		return "phone must be 10 digits"
	}
	return ""
}

func (r *teacherReq) toModel(id uint64) repository.Teacher {
	return repository.Teacher{
		ID:             id,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Phone:          r.Phone,
		Age:            r.Age,
		Gender:         r.Gender,
		Degree:         r.Degree,
		Experience:     r.Experience,
		Salary:         r.Salary,
		EmploymentType: r.EmploymentType,
		Subject:        r.Subject,
	}
}

// List handles GET /api/teachers.
func (h *TeacherHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	teachers, err := h.Teachers.List(ctx)
	if err != nil {
		c.Logger().Errorf("teachers: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, teachers)
}

// GetByID handles GET /api/teachers/:id.
func (h *TeacherHandler) GetByID(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	t, err := h.Teachers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Teacher not found"})
		}
		c.Logger().Errorf("teachers: get failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, t)
}

// Create handles POST /api/teachers.
func (h *TeacherHandler) Create(c echo.Context) error {
	var req teacherReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	t := req.toModel(0)
	if err := h.Teachers.Create(ctx, &t); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "A teacher with this email already exists"})
		}
		c.Logger().Errorf("teachers: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusCreated, t)
}

// Update handles PUT /api/teachers/:id.
func (h *TeacherHandler) Update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req teacherReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	t := req.toModel(id)
	if err := h.Teachers.Update(ctx, &t); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Teacher not found"})
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Email already exists"})
		default:
			c.Logger().Errorf("teachers: update failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
		}
	}
	return c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /api/teachers/:id.
func (h *TeacherHandler) Delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Teachers.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Teacher not found"})
		}
		c.Logger().Errorf("teachers: delete failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Teacher deleted successfully"})
}
