package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StudentService manages student profiles and their projections.
type StudentService struct {
	students     repository.StudentStore
	applications repository.ApplicationStore
	results      repository.ResultStore
	log          zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(stores repository.Stores, log zerolog.Logger) *StudentService {
	return &StudentService{
		students:     stores.Students,
		applications: stores.Applications,
		results:      stores.Results,
		log:          log.With().Str("component", "student_service").Logger(),
	}
}

// project fills appliedColleges (distinct, most recent first) and testResults
// (newest first) of st.
func (s *StudentService) project(ctx context.Context, st *model.Student) error {
	apps, err := s.applications.ListByStudent(ctx, st.ID)
	if err != nil {
		return err
	}
	st.AppliedColleges = make([]string, 0, len(apps))
	seen := make(map[string]struct{}, len(apps))
	for _, a := range apps {
		if _, ok := seen[a.CollegeID]; ok {
			continue
		}
		seen[a.CollegeID] = struct{}{}
		st.AppliedColleges = append(st.AppliedColleges, a.CollegeID)
	}

	results, err := s.results.ListByStudent(ctx, st.ID)
	if err != nil {
		return err
	}
	st.TestResults = results
	return nil
}

// List returns every student with projections.
func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range students {
		if err := s.project(ctx, &students[i]); err != nil {
			return nil, err
		}
	}
	return students, nil
}

// Get returns a student with projections.
func (s *StudentService) Get(ctx context.Context, id string) (*model.Student, error) {
	st, err := s.students.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.project(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// GetByProfileID returns the student owned by an identity.
func (s *StudentService) GetByProfileID(ctx context.Context, profileID string) (*model.Student, error) {
	return s.students.GetByProfileID(ctx, profileID)
}

// Create stores a student profile owned by profileID.
func (s *StudentService) Create(ctx context.Context, profileID, name, email string) (*model.Student, error) {
	ts := now()
	st := &model.Student{
		ID:              uuid.NewString(),
		ProfileID:       profileID,
		Name:            strings.TrimSpace(name),
		Email:           strings.ToLower(strings.TrimSpace(email)),
		AppliedColleges: []string{},
		TestResults:     []model.TestResult{},
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
	if err := s.students.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Update replaces a student's name and email.
func (s *StudentService) Update(ctx context.Context, id string, req model.UpdateStudentRequest) (*model.Student, error) {
	st, err := s.students.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	st.Name = strings.TrimSpace(req.Name)
	st.Email = strings.ToLower(strings.TrimSpace(req.Email))
	st.UpdatedAt = now()

	if err := s.students.Update(ctx, st); err != nil {
		return nil, err
	}
	if err := s.project(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Delete removes a student who never applied anywhere.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	apps, err := s.applications.ListByStudent(ctx, id)
	if err != nil {
		return err
	}
	if len(apps) > 0 {
		return fmt.Errorf("%w: student has %d applications", model.ErrConflict, len(apps))
	}
	return s.students.Delete(ctx, id)
}
