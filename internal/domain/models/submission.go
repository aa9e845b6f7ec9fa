package models

import "time"

// Submission is created by the owning student for an Assignment.
// Grade is nullable until the course's instructor assigns one.
// Content and grade are mutated through separate allow-listed
// operations: the student may edit content, only the instructor may
// set the grade.
type Submission struct {
	ID           string    `json:"id" db:"id"`
	AssignmentID string    `json:"assignment_id" db:"assignment_id"`
	StudentID    string    `json:"student_id" db:"student_id"`
	Content      string    `json:"content" db:"content"`
	Grade        *float64  `json:"grade" db:"grade"`
	SubmittedAt  time.Time `json:"submitted_at" db:"submitted_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
