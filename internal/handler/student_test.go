package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okandemir/student-info-api/internal/repository"
)

const studentCols = "id,first_name,last_name,age,gender,email,phone,grade_level,created_at,updated_at"

func newStudentHarness(t *testing.T) (*StudentHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStudentHandler(repository.NewStudentRepo(db)), mock
}

func errDuplicate1062() error {
	return errors.New("Error 1062 (23000): Duplicate entry")
}

func mockStudentRow(id uint64, first, last string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(strings.Split(studentCols, ",")).
		AddRow(id, first, last, 16, "Female", strings.ToLower(first)+"@school.edu", "5551234567", "10th", now, now)
}

func TestStudentListSorted(t *testing.T) {
	h, mock := newStudentHarness(t)

	rows := mockStudentRow(1, "Ada", "Lovelace")
	now := time.Now()
	rows.AddRow(2, "Grace", "Hopper", 17, "Female", "grace@school.edu", "5559876543", "11th", now, now)
	mock.ExpectQuery("SELECT " + studentCols + " FROM students ORDER BY first_name ASC").
		WillReturnRows(rows)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []repository.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Ada", got[0].FirstName)
	assert.Equal(t, "Grace", got[1].FirstName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentCreateValidation(t *testing.T) {
	h, _ := newStudentHarness(t)

	cases := []struct {
		name, body, want string
	}{
		{"missing fields", `{"firstName":"Ada"}`, "All fields are required"},
		{"bad gender", `{"firstName":"Ada","lastName":"L","age":16,"gender":"Unknown","email":"a@b.c","phone":"5551234567"}`, "gender must be Male, Female or Other"},
		{"bad phone", `{"firstName":"Ada","lastName":"L","age":16,"gender":"Female","email":"a@b.c","phone":"555-123"}`, "phone must be 10 digits"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.Create, "/api/students", tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestStudentCreateDuplicateEmail(t *testing.T) {
	h, mock := newStudentHarness(t)

	mock.ExpectExec("INSERT INTO students (first_name,last_name,age,gender,email,phone,grade_level) VALUES (?,?,?,?,?,?,?)").
		WillReturnError(errDuplicate1062())

	rec := postJSON(t, h.Create, "/api/students",
		`{"firstName":"Ada","lastName":"Lovelace","age":16,"gender":"Female","email":"ada@school.edu","phone":"5551234567"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"A student with this email already exists"}`, rec.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentGetNotFound(t *testing.T) {
	h, mock := newStudentHarness(t)

	mock.ExpectQuery("SELECT " + studentCols + " FROM students WHERE id=?").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/students/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.GetByID(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Student not found"}`, rec.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentDeleteInvalidID(t *testing.T) {
	h, _ := newStudentHarness(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/students/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"invalid id"}`, rec.Body.String())
}
