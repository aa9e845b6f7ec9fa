package models

import "time"

// Enrollment links a student to a course. The (course, student) pair is
// unique. Submission creation is gated on membership in this relation.
type Enrollment struct {
	CourseID  string    `json:"course_id" db:"course_id"`
	StudentID string    `json:"student_id" db:"student_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
