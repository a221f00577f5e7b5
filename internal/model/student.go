package model

import "time"

// Student represents a student profile.
// AppliedColleges and TestResults are projections filled in by the service.
type Student struct {
	ID              string       `json:"id" bson:"_id"`
	ProfileID       string       `json:"profileId" bson:"profile_id"`
	Name            string       `json:"name" bson:"name"`
	Email           string       `json:"email" bson:"email"`
	AppliedColleges []string     `json:"appliedColleges" bson:"-"`
	TestResults     []TestResult `json:"testResults" bson:"-"`
	CreatedAt       time.Time    `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time    `json:"updatedAt" bson:"updated_at"`
}

// UpdateStudentRequest is the payload for PUT /students/:id.
type UpdateStudentRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
}
