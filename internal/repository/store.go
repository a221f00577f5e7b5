// Package repository declares the storage collaborators used by the services.
// Implementations live in the postgres, mongo and memory subpackages and share
// one error contract: absent rows yield model.ErrNotFound, unique violations
// model.ErrConflict, timeouts and network failures model.ErrRemoteUnavailable,
// and conditional writes against a row in another state model.ErrInvalidState.
package repository

import (
	"context"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/model"
)

// QuestionStore persists questions. A non-nil collegeID restricts the call
// to that college's partition.
type QuestionStore interface {
	List(ctx context.Context, collegeID *string) ([]model.Question, error)
	Get(ctx context.Context, id string, collegeID *string) (*model.Question, error)
	// GetMany returns the questions that exist among ids, in ids order.
	GetMany(ctx context.Context, ids []string) ([]model.Question, error)
	Create(ctx context.Context, q *model.Question) error
	Update(ctx context.Context, q *model.Question) error
	Delete(ctx context.Context, id string, collegeID *string) error
}

// TestFilter narrows TestStore.List.
type TestFilter struct {
	CollegeID     string
	PublishedOnly bool
}

// TestStore persists test definitions. Update and Delete only touch drafts.
type TestStore interface {
	List(ctx context.Context, f TestFilter) ([]model.Test, error)
	Get(ctx context.Context, id string) (*model.Test, error)
	Create(ctx context.Context, t *model.Test) error
	Update(ctx context.Context, t *model.Test) error
	Delete(ctx context.Context, id string) error
	// Publish moves a draft to published in a single conditional write.
	Publish(ctx context.Context, id string, at time.Time) (*model.Test, error)
}

// ResultStore persists test results, at most one per (testID, studentID).
type ResultStore interface {
	Create(ctx context.Context, r *model.TestResult) error
	Get(ctx context.Context, testID, studentID string) (*model.TestResult, error)
	ListByTest(ctx context.Context, testID string) ([]model.TestResult, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.TestResult, error)
}

// ApplicationStore persists applications, at most one per (studentID, courseID).
type ApplicationStore interface {
	Create(ctx context.Context, a *model.Application) error
	Get(ctx context.Context, id string) (*model.Application, error)
	// Transition sets status to `to` only if it currently equals `from`.
	Transition(ctx context.Context, id string, from, to model.ApplicationStatus, at time.Time) (*model.Application, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Application, error)
	ListByCollege(ctx context.Context, collegeID string) ([]model.Application, error)
}

// CollegeFilter narrows CollegeStore.Search. Empty fields match everything.
type CollegeFilter struct {
	Term    string
	Country string
}

// CollegeStore persists colleges. Delete also removes the college's courses.
type CollegeStore interface {
	List(ctx context.Context) ([]model.College, error)
	// Search returns verified colleges matching f, ordered by name.
	Search(ctx context.Context, f CollegeFilter) ([]model.College, error)
	Get(ctx context.Context, id string) (*model.College, error)
	GetByProfileID(ctx context.Context, profileID string) (*model.College, error)
	Create(ctx context.Context, c *model.College) error
	Update(ctx context.Context, c *model.College) error
	Delete(ctx context.Context, id string) error
}

// CourseStore persists courses.
type CourseStore interface {
	ListByCollege(ctx context.Context, collegeID string) ([]model.Course, error)
	Get(ctx context.Context, id string) (*model.Course, error)
	Create(ctx context.Context, c *model.Course) error
}

// StudentStore persists student profiles.
type StudentStore interface {
	List(ctx context.Context) ([]model.Student, error)
	Get(ctx context.Context, id string) (*model.Student, error)
	GetByProfileID(ctx context.Context, profileID string) (*model.Student, error)
	Create(ctx context.Context, s *model.Student) error
	Update(ctx context.Context, s *model.Student) error
	Delete(ctx context.Context, id string) error
}

// Stores bundles one implementation of every store.
type Stores struct {
	Questions    QuestionStore
	Tests        TestStore
	Results      ResultStore
	Applications ApplicationStore
	Colleges     CollegeStore
	Courses      CourseStore
	Students     StudentStore
}
