package repository

import (
	"context"
	"database/sql"
)

// Stats aggregates the dashboard counters.  The json field names match what
// the stats page consumes.
type Stats struct {
	TotalStudents uint64 `json:"totalStudents"`
	TotalTeachers uint64 `json:"totalTeachers"`
	TotalAdmins   uint64 `json:"totalAdmins"`
	TotalCourses  uint64 `json:"totalCourses"`
}

type StatsRepo struct{ DB *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{DB: db} }

// Totals computes the four dashboard counts.  A single round trip keeps the
// numbers from one snapshot instead of four racing queries.
func (r *StatsRepo) Totals(ctx context.Context) (Stats, error) {
	const q = `SELECT
		(SELECT COUNT(*) FROM students),
		(SELECT COUNT(*) FROM teachers),
		(SELECT COUNT(*) FROM users WHERE role='admin'),
		(SELECT COUNT(*) FROM courses)`
	var s Stats
	err := r.DB.QueryRowContext(ctx, q).
		Scan(&s.TotalStudents, &s.TotalTeachers, &s.TotalAdmins, &s.TotalCourses)
	return s, err
}
