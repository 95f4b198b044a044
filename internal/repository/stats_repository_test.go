package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepoTotals(t *testing.T) {
	t.Parallel()

	// Default regexp matcher here; the aggregate query spans several lines.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"students", "teachers", "admins", "courses"}).
			AddRow(120, 14, 2, 9))

	s, err := NewStatsRepo(db).Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{TotalStudents: 120, TotalTeachers: 14, TotalAdmins: 2, TotalCourses: 9}, s)
	require.NoError(t, mock.ExpectationsWereMet())
}
