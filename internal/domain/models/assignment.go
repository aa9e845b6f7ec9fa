package models

import "time"

// Assignment belongs to a Course. It is the anchor for submission
// creation and listing: both resolve the owning instructor through it.
type Assignment struct {
	ID        string    `json:"id" db:"id"`
	CourseID  string    `json:"course_id" db:"course_id"`
	Title     string    `json:"title" db:"title"`
	Points    int       `json:"points" db:"points"`
	Due       time.Time `json:"due" db:"due"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
