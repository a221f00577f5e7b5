package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ApplicationService tracks student applications and college decisions.
type ApplicationService struct {
	applications repository.ApplicationStore
	students     repository.StudentStore
	courses      repository.CourseStore
	colleges     repository.CollegeStore
	log          zerolog.Logger
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(stores repository.Stores, log zerolog.Logger) *ApplicationService {
	return &ApplicationService{
		applications: stores.Applications,
		students:     stores.Students,
		courses:      stores.Courses,
		colleges:     stores.Colleges,
		log:          log.With().Str("component", "application_service").Logger(),
	}
}

// Apply records a pending application of studentID to courseID.
func (s *ApplicationService) Apply(ctx context.Context, studentID, courseID string) (*model.Application, error) {
	if _, err := s.students.Get(ctx, studentID); err != nil {
		return nil, fmt.Errorf("student: %w", err)
	}
	course, err := s.courses.Get(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("course: %w", err)
	}

	app := &model.Application{
		ID:        uuid.NewString(),
		StudentID: studentID,
		CourseID:  courseID,
		CollegeID: course.CollegeID,
		Status:    model.ApplicationPending,
		CreatedAt: now(),
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Decide approves or rejects a pending application on behalf of the college
// that owns it.
func (s *ApplicationService) Decide(ctx context.Context, applicationID string, decision model.ApplicationStatus, principal *model.Principal) (*model.Application, error) {
	if !decision.IsDecision() {
		return nil, model.NewValidationError("decision", "decision must be one of [approved rejected]")
	}
	if principal == nil {
		return nil, model.ErrUnauthenticated
	}

	app, err := s.applications.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if principal.Role != model.RoleCollege {
		return nil, fmt.Errorf("%w: only colleges decide on applications", model.ErrForbidden)
	}
	college, err := s.colleges.GetByProfileID(ctx, principal.Subject)
	if errors.Is(err, model.ErrNotFound) || (err == nil && college.ID != app.CollegeID) {
		return nil, fmt.Errorf("%w: application belongs to another college", model.ErrForbidden)
	}
	if err != nil {
		return nil, err
	}

	decided, err := s.applications.Transition(ctx, applicationID, model.ApplicationPending, decision, now())
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("application_id", applicationID).
		Str("decision", string(decision)).
		Msg("Application decided")

	return decided, nil
}

// ListForStudent returns a student's applications, newest first.
func (s *ApplicationService) ListForStudent(ctx context.Context, studentID string) ([]model.Application, error) {
	if _, err := s.students.Get(ctx, studentID); err != nil {
		return nil, err
	}
	return s.applications.ListByStudent(ctx, studentID)
}

// ListForCollege returns the applications a college received, newest first.
func (s *ApplicationService) ListForCollege(ctx context.Context, collegeID string) ([]model.Application, error) {
	if _, err := s.colleges.Get(ctx, collegeID); err != nil {
		return nil, err
	}
	return s.applications.ListByCollege(ctx, collegeID)
}
