package model

import "time"

// TestStatus enumerates the possible states of a test definition.
type TestStatus string

const (
	TestStatusDraft     TestStatus = "draft"
	TestStatusPublished TestStatus = "published"
)

// Test is an aptitude test assembled from questions.
type Test struct {
	ID              string     `json:"id" bson:"_id"`
	CollegeID       string     `json:"collegeId" bson:"college_id"`
	Title           string     `json:"title" bson:"title"`
	Description     string     `json:"description,omitempty" bson:"description,omitempty"`
	QuestionIDs     []string   `json:"questionIds" bson:"question_ids"`
	DurationMinutes int        `json:"durationMinutes" bson:"duration_minutes"`
	Status          TestStatus `json:"status" bson:"status"`
	CreatedAt       time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" bson:"updated_at"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty" bson:"published_at,omitempty"`
}

// TestInput is the payload for creating or updating a test.
type TestInput struct {
	CollegeID       string   `json:"collegeId" binding:"required"`
	Title           string   `json:"title" binding:"required,min=3,max=255"`
	Description     string   `json:"description" binding:"omitempty,max=4000"`
	QuestionIDs     []string `json:"questionIds" binding:"omitempty,max=500,dive,required"`
	DurationMinutes int      `json:"durationMinutes" binding:"omitempty,min=1,max=480"`
}

// SubmittedAnswer is a student's answer to one question.
// Selected holds option ids or option texts for mcq questions;
// Text holds the free-text answer otherwise.
type SubmittedAnswer struct {
	QuestionID string   `json:"questionId" bson:"question_id" binding:"required"`
	Selected   []string `json:"selected,omitempty" bson:"selected,omitempty"`
	Text       string   `json:"text,omitempty" bson:"text,omitempty"`
}

// SubmitTestRequest is the payload for POST /tests/:id/submit.
type SubmitTestRequest struct {
	StudentID string            `json:"studentId"`
	Answers   []SubmittedAnswer `json:"answers" binding:"dive"`
}

// TestResult is the immutable outcome of one student's submission.
type TestResult struct {
	ID            string            `json:"id" bson:"_id"`
	TestID        string            `json:"testId" bson:"test_id"`
	StudentID     string            `json:"studentId" bson:"student_id"`
	Score         float64           `json:"score" bson:"score"`
	MaxScore      float64           `json:"maxScore" bson:"max_score"`
	PendingReview int               `json:"pendingReview" bson:"pending_review"`
	Answers       []SubmittedAnswer `json:"answers,omitempty" bson:"answers"`
	Date          time.Time         `json:"date" bson:"date"`
}
