package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Teacher represents a row in the `teachers` table.  The field set follows
// the staff roster: qualification, seniority and employment data alongside
// the basic contact columns.
type Teacher struct {
	ID             uint64    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Age            int       `json:"age"`
	Gender         string    `json:"gender"`
	Degree         string    `json:"degree"`
	Experience     int       `json:"experience"`
	Salary         int       `json:"salary"`
	EmploymentType string    `json:"employmentType"`
	Subject        string    `json:"subject"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type TeacherRepo struct{ DB *sql.DB }

func NewTeacherRepo(db *sql.DB) *TeacherRepo { return &TeacherRepo{DB: db} }

const teacherCols = "id,first_name,last_name,email,phone,age,gender,degree,experience,salary,employment_type,subject,created_at,updated_at"

func scanTeacher(row interface{ Scan(...any) error }, t *Teacher) error {
	return row.Scan(&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.Age,
		&t.Gender, &t.Degree, &t.Experience, &t.Salary, &t.EmploymentType,
		&t.Subject, &t.CreatedAt, &t.UpdatedAt)
}

// Create inserts a new teacher and populates ID and timestamps.
func (r *TeacherRepo) Create(ctx context.Context, t *Teacher) error {
	t.Email = strings.ToLower(strings.TrimSpace(t.Email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO teachers (first_name,last_name,email,phone,age,gender,degree,experience,salary,employment_type,subject) VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		t.FirstName, t.LastName, t.Email, t.Phone, t.Age, t.Gender, t.Degree,
		t.Experience, t.Salary, t.EmploymentType, t.Subject)
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
	t.ID = uint64(id)
	return scanTeacher(r.DB.QueryRowContext(ctx,
		"SELECT "+teacherCols+" FROM teachers WHERE id=?", t.ID), t)
}

// GetByID fetches a teacher or ErrNotFound.
func (r *TeacherRepo) GetByID(ctx context.Context, id uint64) (Teacher, error) {
	var t Teacher
	err := scanTeacher(r.DB.QueryRowContext(ctx,
		"SELECT "+teacherCols+" FROM teachers WHERE id=?", id), &t)
	if err == sql.ErrNoRows {
		return Teacher{}, ErrNotFound
	}
	return t, err
}

// List returns all teachers sorted by first name ascending.
func (r *TeacherRepo) List(ctx context.Context) ([]Teacher, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+teacherCols+" FROM teachers ORDER BY first_name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Teacher{}
	for rows.Next() {
		var t Teacher
		if err := scanTeacher(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update overwrites all mutable fields of a teacher.
func (r *TeacherRepo) Update(ctx context.Context, t *Teacher) error {
	t.Email = strings.ToLower(strings.TrimSpace(t.Email))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE teachers SET first_name=?,last_name=?,email=?,phone=?,age=?,gender=?,degree=?,experience=?,salary=?,employment_type=?,subject=? WHERE id=?",
		t.FirstName, t.LastName, t.Email, t.Phone, t.Age, t.Gender, t.Degree,
		t.Experience, t.Salary, t.EmploymentType, t.Subject, t.ID)
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
		var exists int
		if err := r.DB.QueryRowContext(ctx,
			"SELECT 1 FROM teachers WHERE id=?", t.ID).Scan(&exists); err == sql.ErrNoRows {
			return ErrNotFound
		} else if err != nil {
			return err
		}
	}
	return scanTeacher(r.DB.QueryRowContext(ctx,
		"SELECT "+teacherCols+" FROM teachers WHERE id=?", t.ID), t)
}

// Delete removes a teacher row.
func (r *TeacherRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM teachers WHERE id=?", id)
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
