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

// CollegeService manages college profiles, their courses and the public directory.
type CollegeService struct {
	colleges     repository.CollegeStore
	courses      repository.CourseStore
	applications repository.ApplicationStore
	log          zerolog.Logger
}

// NewCollegeService creates a new CollegeService.
func NewCollegeService(stores repository.Stores, log zerolog.Logger) *CollegeService {
	return &CollegeService{
		colleges:     stores.Colleges,
		courses:      stores.Courses,
		applications: stores.Applications,
		log:          log.With().Str("component", "college_service").Logger(),
	}
}

// withCourses fills the course-id projection of c.
func (s *CollegeService) withCourses(ctx context.Context, c *model.College) error {
	courses, err := s.courses.ListByCollege(ctx, c.ID)
	if err != nil {
		return err
	}
	c.Courses = make([]string, 0, len(courses))
	for _, course := range courses {
		c.Courses = append(c.Courses, course.ID)
	}
	return nil
}

// Search lists verified colleges whose name or description contains term
// and whose country equals country, both case-insensitively. Empty
// arguments match everything.
func (s *CollegeService) Search(ctx context.Context, term, country string) ([]model.College, error) {
	colleges, err := s.colleges.Search(ctx, repository.CollegeFilter{Term: term, Country: country})
	if err != nil {
		return nil, err
	}
	for i := range colleges {
		if err := s.withCourses(ctx, &colleges[i]); err != nil {
			return nil, err
		}
	}
	return colleges, nil
}

// Get returns a college. Unverified colleges are only visible to their own account.
func (s *CollegeService) Get(ctx context.Context, viewer *model.Principal, id string) (*model.College, error) {
	c, err := s.colleges.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsVerified && (viewer == nil || viewer.Subject != c.ProfileID) {
		return nil, model.ErrNotFound
	}
	if err := s.withCourses(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByProfileID returns the college owned by an identity.
func (s *CollegeService) GetByProfileID(ctx context.Context, profileID string) (*model.College, error) {
	return s.colleges.GetByProfileID(ctx, profileID)
}

// Create stores an unverified college owned by profileID.
func (s *CollegeService) Create(ctx context.Context, profileID string, req model.CollegeRequest) (*model.College, error) {
	ts := now()
	c := &model.College{
		ID:          uuid.NewString(),
		ProfileID:   profileID,
		Name:        strings.TrimSpace(req.Name),
		Location:    strings.TrimSpace(req.Location),
		Country:     strings.TrimSpace(req.Country),
		Description: strings.TrimSpace(req.Description),
		LogoURL:     strings.TrimSpace(req.LogoURL),
		Courses:     []string{},
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := s.colleges.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the editable profile fields of a college.
func (s *CollegeService) Update(ctx context.Context, id string, req model.CollegeRequest) (*model.College, error) {
	c, err := s.colleges.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(req.Name)
	c.Location = strings.TrimSpace(req.Location)
	c.Country = strings.TrimSpace(req.Country)
	c.Description = strings.TrimSpace(req.Description)
	c.LogoURL = strings.TrimSpace(req.LogoURL)
	c.UpdatedAt = now()

	if err := s.colleges.Update(ctx, c); err != nil {
		return nil, err
	}
	if err := s.withCourses(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetVerified lists or delists a college in the public directory.
func (s *CollegeService) SetVerified(ctx context.Context, id string, verified bool) (*model.College, error) {
	c, err := s.colleges.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.IsVerified = verified
	c.UpdatedAt = now()
	if err := s.colleges.Update(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info().Str("college_id", id).Bool("verified", verified).Msg("College verification changed")
	return c, nil
}

// Delete removes a college and its courses. Colleges that received
// applications are kept, since applications are never deleted.
func (s *CollegeService) Delete(ctx context.Context, id string) error {
	apps, err := s.applications.ListByCollege(ctx, id)
	if err != nil {
		return err
	}
	if len(apps) > 0 {
		return fmt.Errorf("%w: college has %d applications", model.ErrConflict, len(apps))
	}
	return s.colleges.Delete(ctx, id)
}

// ListCourses returns the courses of a college.
func (s *CollegeService) ListCourses(ctx context.Context, collegeID string) ([]model.Course, error) {
	if _, err := s.colleges.Get(ctx, collegeID); err != nil {
		return nil, err
	}
	return s.courses.ListByCollege(ctx, collegeID)
}

// AddCourse creates a course offered by collegeID.
func (s *CollegeService) AddCourse(ctx context.Context, collegeID string, req model.CourseRequest) (*model.Course, error) {
	if _, err := s.colleges.Get(ctx, collegeID); err != nil {
		return nil, err
	}
	c := &model.Course{
		ID:             uuid.NewString(),
		CollegeID:      collegeID,
		Name:           strings.TrimSpace(req.Name),
		Description:    strings.TrimSpace(req.Description),
		DurationMonths: req.DurationMonths,
		CreatedAt:      now(),
	}
	if err := s.courses.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
