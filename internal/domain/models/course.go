package models

import "time"

// Course is owned by exactly one instructor. InstructorID must
// reference a User with role instructor; the user service enforces
// this on create and reassignment.
type Course struct {
	ID           string    `json:"id" db:"id"`
	Subject      string    `json:"subject" db:"subject"`
	Number       string    `json:"number" db:"number"`
	Title        string    `json:"title" db:"title"`
	Term         string    `json:"term" db:"term"`
	InstructorID string    `json:"instructor_id" db:"instructor_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
