package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}

func TestHandleMessageWritesAuditLines(t *testing.T) {
	chdirTemp(t)

	ub, err := json.Marshal(UserRegisteredEvent{
		UserID:       7,
		Username:     "alice",
		Email:        "alice@school.edu",
		Role:         "student",
		RegisteredAt: "2026-09-01T10:00:00Z",
	})
	require.NoError(t, err)
	require.NoError(t, handleMessage(UserRegisteredQueue, ub))

	gb, err := json.Marshal(GradeRecordedEvent{
		GradeID:    2,
		StudentID:  7,
		CourseID:   3,
		Grade:      91.5,
		Term:       "fall",
		RecordedAt: "2026-09-01T11:00:00Z",
	})
	require.NoError(t, err)
	require.NoError(t, handleMessage(GradeRecordedQueue, gb))

	data, err := os.ReadFile(filepath.Join("logs", "audit.log"))
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "User registered")
	assert.Contains(t, out, `username="alice"`)
	assert.Contains(t, out, "Grade recorded")
	assert.Contains(t, out, "grade=91.50")
}

func TestHandleMessageRejects(t *testing.T) {
	chdirTemp(t)

	require.Error(t, handleMessage(UserRegisteredQueue, []byte("{")))
	require.Error(t, handleMessage(GradeRecordedQueue, []byte("not json")))
	require.Error(t, handleMessage("unknown.queue", []byte("{}")))
	_, err := os.Stat(filepath.Join("logs", "audit.log"))
	assert.True(t, os.IsNotExist(err))
}
