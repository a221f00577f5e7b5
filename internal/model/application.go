package model

import "time"

// ApplicationStatus enumerates the states of an application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// IsDecision reports whether s is a terminal status a college may set.
func (s ApplicationStatus) IsDecision() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// Application is a student's application to a course.
type Application struct {
	ID        string            `json:"id" bson:"_id"`
	StudentID string            `json:"studentId" bson:"student_id"`
	CourseID  string            `json:"courseId" bson:"course_id"`
	CollegeID string            `json:"collegeId" bson:"college_id"`
	Status    ApplicationStatus `json:"status" bson:"status"`
	CreatedAt time.Time         `json:"createdAt" bson:"created_at"`
	DecidedAt *time.Time        `json:"decidedAt,omitempty" bson:"decided_at,omitempty"`
}

// ApplyRequest is the payload for POST /students/:id/applications.
type ApplyRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}

// DecisionRequest is the payload for POST /applications/:id/decision.
type DecisionRequest struct {
	Decision ApplicationStatus `json:"decision" binding:"required"`
}
