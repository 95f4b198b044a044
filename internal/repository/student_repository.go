// This file defines the Student model and repository methods for roster CRUD.
// Students are listed alphabetically by first name, matching what the roster
// table in the frontend expects.
package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Student represents a row in the `students` table.
type Student struct {
	ID         uint64    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Age        int       `json:"age"`
	Gender     string    `json:"gender"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	GradeLevel string    `json:"gradeLevel"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type StudentRepo struct{ DB *sql.DB }

func NewStudentRepo(db *sql.DB) *StudentRepo { return &StudentRepo{DB: db} }

const studentCols = "id,first_name,last_name,age,gender,email,phone,grade_level,created_at,updated_at"

func scanStudent(row interface{ Scan(...any) error }, s *Student) error {
	return row.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Age, &s.Gender,
		&s.Email, &s.Phone, &s.GradeLevel, &s.CreatedAt, &s.UpdatedAt)
}

// Create inserts a new student.  On success the ID and timestamp fields are
// populated by a follow-up select.
func (r *StudentRepo) Create(ctx context.Context, s *Student) error {
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	if s.GradeLevel == "" {
		s.GradeLevel = "N/A"
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO students (first_name,last_name,age,gender,email,phone,grade_level) VALUES (?,?,?,?,?,?,?)",
		s.FirstName, s.LastName, s.Age, s.Gender, s.Email, s.Phone, s.GradeLevel)
	if err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return scanStudent(r.DB.QueryRowContext(ctx,
		"SELECT "+studentCols+" FROM students WHERE id=?", s.ID), s)
}

// GetByID fetches a student or ErrNotFound.
func (r *StudentRepo) GetByID(ctx context.Context, id uint64) (Student, error) {
	var s Student
	err := scanStudent(r.DB.QueryRowContext(ctx,
		"SELECT "+studentCols+" FROM students WHERE id=?", id), &s)
	if err == sql.ErrNoRows {
		return Student{}, ErrNotFound
	}
	return s, err
}

// List returns all students sorted by first name ascending.
func (r *StudentRepo) List(ctx context.Context) ([]Student, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+studentCols+" FROM students ORDER BY first_name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Student{}
	for rows.Next() {
		var s Student
		if err := scanStudent(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update overwrites all mutable fields of a student.
func (r *StudentRepo) Update(ctx context.Context, s *Student) error {
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE students SET first_name=?,last_name=?,age=?,gender=?,email=?,phone=?,grade_level=? WHERE id=?",
		s.FirstName, s.LastName, s.Age, s.Gender, s.Email, s.Phone, s.GradeLevel, s.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the row is gone or nothing changed; distinguish the two.
		var exists int
		if err := r.DB.QueryRowContext(ctx,
			"SELECT 1 FROM students WHERE id=?", s.ID).Scan(&exists); err == sql.ErrNoRows {
			return ErrNotFound
		} else if err != nil {
			return err
		}
	}
	return scanStudent(r.DB.QueryRowContext(ctx,
		"SELECT "+studentCols+" FROM students WHERE id=?", s.ID), s)
}

// Delete removes a student row.
func (r *StudentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM students WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
