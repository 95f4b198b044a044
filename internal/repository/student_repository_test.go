package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var studentColNames = []string{
	"id", "first_name", "last_name", "age", "gender", "email", "phone", "grade_level", "created_at", "updated_at",
}

func studentRow(id uint64, first, last string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(studentColNames).
		AddRow(id, first, last, 16, "Female", first+"@school.edu", "5551234567", "10th", now, now)
}

func TestStudentRepoCreate(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewStudentRepo(db)

	mock.ExpectExec("INSERT INTO students (first_name,last_name,age,gender,email,phone,grade_level) VALUES (?,?,?,?,?,?,?)").
		WithArgs("Ada", "Lovelace", 16, "Female", "ada@school.edu", "5551234567", "N/A").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("SELECT " + studentCols + " FROM students WHERE id=?").
		WithArgs(uint64(3)).
		WillReturnRows(studentRow(3, "Ada", "Lovelace"))

	s := Student{FirstName: "Ada", LastName: "Lovelace", Age: 16, Gender: "Female", Email: "Ada@School.edu", Phone: "5551234567"}
	require.NoError(t, repo.Create(context.Background(), &s))
	assert.Equal(t, uint64(3), s.ID)
	assert.False(t, s.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepoCreateDuplicateEmail(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewStudentRepo(db)

	mock.ExpectExec("INSERT INTO students (first_name,last_name,age,gender,email,phone,grade_level) VALUES (?,?,?,?,?,?,?)").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'ada@school.edu' for key 'uq_students_email'"))

	s := Student{FirstName: "Ada", LastName: "Lovelace", Age: 16, Gender: "Female", Email: "ada@school.edu", Phone: "5551234567"}
	assert.ErrorIs(t, repo.Create(context.Background(), &s), ErrEmailExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepoList(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewStudentRepo(db)

	rows := studentRow(1, "Ada", "Lovelace")
	now := time.Now()
	rows.AddRow(2, "Grace", "Hopper", 17, "Female", "grace@school.edu", "5559876543", "11th", now, now)
	mock.ExpectQuery("SELECT " + studentCols + " FROM students ORDER BY first_name ASC").
		WillReturnRows(rows)

	out, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Ada", out[0].FirstName)
	assert.Equal(t, "Grace", out[1].FirstName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepoGetByIDNotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewStudentRepo(db)

	mock.ExpectQuery("SELECT " + studentCols + " FROM students WHERE id=?").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepoUpdateVanishedRow(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewStudentRepo(db)

	mock.ExpectExec("UPDATE students SET first_name=?,last_name=?,age=?,gender=?,email=?,phone=?,grade_level=? WHERE id=?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM students WHERE id=?").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	s := Student{ID: 99, FirstName: "Ada", LastName: "Lovelace", Age: 16, Gender: "Female", Email: "ada@school.edu", Phone: "5551234567", GradeLevel: "10th"}
	assert.ErrorIs(t, repo.Update(context.Background(), &s), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
