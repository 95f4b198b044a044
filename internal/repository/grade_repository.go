package repository

import (
	"context"
	"database/sql"
	"time"
)

// Grade represents a row in the `grades` table: a score a student earned in
// a course for a given term.
type Grade struct {
	ID        uint64    `json:"id"`
	StudentID uint64    `json:"studentId"`
	CourseID  uint64    `json:"courseId"`
	Grade     float64   `json:"grade"`
	Term      string    `json:"term"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type GradeRepo struct{ DB *sql.DB }

func NewGradeRepo(db *sql.DB) *GradeRepo { return &GradeRepo{DB: db} }

const gradeCols = "id,student_id,course_id,grade,term,created_at,updated_at"

func scanGrade(row interface{ Scan(...any) error }, g *Grade) error {
	return row.Scan(&g.ID, &g.StudentID, &g.CourseID, &g.Grade, &g.Term,
		&g.CreatedAt, &g.UpdatedAt)
}

// Create records a grade.  Foreign keys catch dangling student/course IDs;
// the driver reports them as errno 1452, surfaced here as ErrNotFound.
func (r *GradeRepo) Create(ctx context.Context, g *Grade) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO grades (student_id,course_id,grade,term) VALUES (?,?,?,?)",
		g.StudentID, g.CourseID, g.Grade, g.Term)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return scanGrade(r.DB.QueryRowContext(ctx,
		"SELECT "+gradeCols+" FROM grades WHERE id=?", g.ID), g)
}

// GetByID fetches a grade or ErrNotFound.
func (r *GradeRepo) GetByID(ctx context.Context, id uint64) (Grade, error) {
	var g Grade
	err := scanGrade(r.DB.QueryRowContext(ctx,
		"SELECT "+gradeCols+" FROM grades WHERE id=?", id), &g)
	if err == sql.ErrNoRows {
		return Grade{}, ErrNotFound
	}
	return g, err
}

// List returns all grades, newest first.
func (r *GradeRepo) List(ctx context.Context) ([]Grade, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+gradeCols+" FROM grades ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Grade{}
	for rows.Next() {
		var g Grade
		if err := scanGrade(rows, &g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Update overwrites the score and term of an existing grade.
func (r *GradeRepo) Update(ctx context.Context, g *Grade) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE grades SET grade=?, term=? WHERE id=?", g.Grade, g.Term, g.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		if err := r.DB.QueryRowContext(ctx,
			"SELECT 1 FROM grades WHERE id=?", g.ID).Scan(&exists); err == sql.ErrNoRows {
			return ErrNotFound
		} else if err != nil {
			return err
		}
	}
	return scanGrade(r.DB.QueryRowContext(ctx,
		"SELECT "+gradeCols+" FROM grades WHERE id=?", g.ID), g)
}

// Delete removes a grade row.
func (r *GradeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM grades WHERE id=?", id)
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
