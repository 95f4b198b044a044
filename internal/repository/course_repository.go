// This file defines the Course model and repository methods.  Besides plain
// CRUD, courses own two membership sets (enrolled students and assigned
// teachers) kept in join tables.
package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Course represents a row in the `courses` table plus its membership sets.
type Course struct {
	ID           uint64    `json:"id"`
	Abbreviation string    `json:"abbreviation"`
	CourseName   string    `json:"courseName"`
	Description  string    `json:"description"`
	StudentIDs   []uint64  `json:"students"`
	TeacherIDs   []uint64  `json:"teachers"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CourseRepo struct{ DB *sql.DB }

func NewCourseRepo(db *sql.DB) *CourseRepo { return &CourseRepo{DB: db} }

// Create inserts a new course.  Membership sets start empty.
func (r *CourseRepo) Create(ctx context.Context, c *Course) error {
	c.Abbreviation = strings.ToUpper(strings.TrimSpace(c.Abbreviation))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO courses (abbreviation,course_name,description) VALUES (?,?,?)",
		c.Abbreviation, c.CourseName, c.Description)
	if err != nil {
		if isDuplicate(err) {
			return ErrCourseExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	if err := r.DB.QueryRowContext(ctx,
		"SELECT created_at,updated_at FROM courses WHERE id=?", c.ID).
		Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return err
	}
	c.StudentIDs = []uint64{}
	c.TeacherIDs = []uint64{}
	return nil
}

// GetByID fetches a course together with its membership sets.
func (r *CourseRepo) GetByID(ctx context.Context, id uint64) (Course, error) {
	var c Course
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,abbreviation,course_name,description,created_at,updated_at FROM courses WHERE id=?",
		id).Scan(&c.ID, &c.Abbreviation, &c.CourseName, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return Course{}, ErrNotFound
	}
	if err != nil {
		return Course{}, err
	}
	if c.StudentIDs, err = r.memberIDs(ctx, "course_students", "student_id", id); err != nil {
		return Course{}, err
	}
	if c.TeacherIDs, err = r.memberIDs(ctx, "course_teachers", "teacher_id", id); err != nil {
		return Course{}, err
	}
	return c, nil
}

// List returns all courses ordered by abbreviation, membership sets included.
func (r *CourseRepo) List(ctx context.Context) ([]Course, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,abbreviation,course_name,description,created_at,updated_at FROM courses ORDER BY abbreviation ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Course{}
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.Abbreviation, &c.CourseName, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].StudentIDs, err = r.memberIDs(ctx, "course_students", "student_id", out[i].ID); err != nil {
			return nil, err
		}
		if out[i].TeacherIDs, err = r.memberIDs(ctx, "course_teachers", "teacher_id", out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Update overwrites the course's scalar fields.  Membership is managed by
// AddStudent/RemoveStudent, not here.
func (r *CourseRepo) Update(ctx context.Context, c *Course) error {
	c.Abbreviation = strings.ToUpper(strings.TrimSpace(c.Abbreviation))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE courses SET abbreviation=?,course_name=?,description=? WHERE id=?",
		c.Abbreviation, c.CourseName, c.Description, c.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrCourseExists
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
			"SELECT 1 FROM courses WHERE id=?", c.ID).Scan(&exists); err == sql.ErrNoRows {
			return ErrNotFound
		} else if err != nil {
			return err
		}
	}
	fresh, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = fresh
	return nil
}

// Delete removes a course.  The join tables cascade on delete.
func (r *CourseRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM courses WHERE id=?", id)
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

// AddStudent enrolls a student into a course.  Re-enrolling an already
// enrolled student is a no-op.
func (r *CourseRepo) AddStudent(ctx context.Context, courseID, studentID uint64) error {
	if err := r.requireRow(ctx, "courses", courseID); err != nil {
		return err
	}
	if err := r.requireRow(ctx, "students", studentID); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO course_students (course_id, student_id) VALUES (?,?)",
		courseID, studentID)
	return err
}

// RemoveStudent drops a student from a course roster.
func (r *CourseRepo) RemoveStudent(ctx context.Context, courseID, studentID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM course_students WHERE course_id=? AND student_id=?",
		courseID, studentID)
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

// AddTeacher assigns a teacher to a course.
func (r *CourseRepo) AddTeacher(ctx context.Context, courseID, teacherID uint64) error {
	if err := r.requireRow(ctx, "courses", courseID); err != nil {
		return err
	}
	if err := r.requireRow(ctx, "teachers", teacherID); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO course_teachers (course_id, teacher_id) VALUES (?,?)",
		courseID, teacherID)
	return err
}

func (r *CourseRepo) memberIDs(ctx context.Context, table, col string, courseID uint64) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+col+" FROM "+table+" WHERE course_id=? ORDER BY "+col, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := []uint64{}
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *CourseRepo) requireRow(ctx context.Context, table string, id uint64) error {
	var one int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id=?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}
