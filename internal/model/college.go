package model

import "time"

// College is an institution offering courses.
type College struct {
	ID          string    `json:"id" bson:"_id"`
	ProfileID   string    `json:"profileId" bson:"profile_id"`
	Name        string    `json:"name" bson:"name"`
	Location    string    `json:"location" bson:"location"`
	Country     string    `json:"country" bson:"country"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	LogoURL     string    `json:"logoUrl,omitempty" bson:"logo_url,omitempty"`
	IsVerified  bool      `json:"isVerified" bson:"is_verified"`
	Courses     []string  `json:"courses" bson:"-"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// Course is a programme offered by exactly one College.
type Course struct {
	ID             string    `json:"id" bson:"_id"`
	CollegeID      string    `json:"collegeId" bson:"college_id"`
	Name           string    `json:"name" bson:"name"`
	Description    string    `json:"description,omitempty" bson:"description,omitempty"`
	DurationMonths int       `json:"durationMonths,omitempty" bson:"duration_months,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at"`
}

// CollegeRequest is the payload for creating or updating a college profile.
type CollegeRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=255"`
	Location    string `json:"location" binding:"required,max=255"`
	Country     string `json:"country" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=10000"`
	LogoURL     string `json:"logoUrl" binding:"omitempty,url"`
}

// CourseRequest is the payload for POST /colleges/:id/courses.
type CourseRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=255"`
	Description    string `json:"description" binding:"omitempty,max=10000"`
	DurationMonths int    `json:"durationMonths" binding:"omitempty,min=1,max=120"`
}
