// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into audit log lines.
package queue

// Queue names used for domain events.  Publishers and the consumer must
// agree on these.
const (
	UserRegisteredQueue = "user.registered"
	GradeRecordedQueue  = "grade.recorded"
)

// UserRegisteredEvent is published after a signup commits.  It carries no
// password material; downstream consumers only need the public identity.
type UserRegisteredEvent struct {
	UserID       uint64 `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	RegisteredAt string `json:"registered_at"`
}

// GradeRecordedEvent is published when a grade is created so downstream
// consumers can notify or aggregate without querying the primary database.
type GradeRecordedEvent struct {
	GradeID    uint64  `json:"grade_id"`
	StudentID  uint64  `json:"student_id"`
	CourseID   uint64  `json:"course_id"`
	Grade      float64 `json:"grade"`
	Term       string  `json:"term"`
	RecordedAt string  `json:"recorded_at"`
}
