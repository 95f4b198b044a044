package repository

import (
	"context"
	"database/sql"
	"time"
)

// Attendance status values stored in the `attendances.status` column.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

// ValidAttendanceStatus reports whether s is a known status value.
func ValidAttendanceStatus(s string) bool {
	return s == AttendancePresent || s == AttendanceAbsent || s == AttendanceLate
}

// Attendance represents a row in the `attendances` table: one student's
// presence record for one course on one date.
type Attendance struct {
	ID        uint64    `json:"id"`
	StudentID uint64    `json:"studentId"`
	CourseID  uint64    `json:"courseId"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AttendanceRepo struct{ DB *sql.DB }

func NewAttendanceRepo(db *sql.DB) *AttendanceRepo { return &AttendanceRepo{DB: db} }

const attendanceCols = "id,student_id,course_id,date,status,created_at,updated_at"

func scanAttendance(row interface{ Scan(...any) error }, a *Attendance) error {
	return row.Scan(&a.ID, &a.StudentID, &a.CourseID, &a.Date, &a.Status,
		&a.CreatedAt, &a.UpdatedAt)
}

// Create records an attendance entry.
func (r *AttendanceRepo) Create(ctx context.Context, a *Attendance) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO attendances (student_id,course_id,date,status) VALUES (?,?,?,?)",
		a.StudentID, a.CourseID, a.Date, a.Status)
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
	a.ID = uint64(id)
	return scanAttendance(r.DB.QueryRowContext(ctx,
		"SELECT "+attendanceCols+" FROM attendances WHERE id=?", a.ID), a)
}

// GetByID fetches an attendance entry or ErrNotFound.
func (r *AttendanceRepo) GetByID(ctx context.Context, id uint64) (Attendance, error) {
	var a Attendance
	err := scanAttendance(r.DB.QueryRowContext(ctx,
		"SELECT "+attendanceCols+" FROM attendances WHERE id=?", id), &a)
	if err == sql.ErrNoRows {
		return Attendance{}, ErrNotFound
	}
	return a, err
}

// List returns all attendance entries, most recent date first.
func (r *AttendanceRepo) List(ctx context.Context) ([]Attendance, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+attendanceCols+" FROM attendances ORDER BY date DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Attendance{}
	for rows.Next() {
		var a Attendance
		if err := scanAttendance(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update overwrites the date and status of an existing entry.
func (r *AttendanceRepo) Update(ctx context.Context, a *Attendance) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE attendances SET date=?, status=? WHERE id=?", a.Date, a.Status, a.ID)
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
			"SELECT 1 FROM attendances WHERE id=?", a.ID).Scan(&exists); err == sql.ErrNoRows {
			return ErrNotFound
		} else if err != nil {
			return err
		}
	}
	return scanAttendance(r.DB.QueryRowContext(ctx,
		"SELECT "+attendanceCols+" FROM attendances WHERE id=?", a.ID), a)
}

// Delete removes an attendance row.
func (r *AttendanceRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM attendances WHERE id=?", id)
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
