package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TestService drives the test lifecycle: draft, publish, submit and score.
type TestService struct {
	tests     repository.TestStore
	questions repository.QuestionStore
	results   repository.ResultStore
	colleges  repository.CollegeStore
	students  repository.StudentStore
	grader    Grader
	log       zerolog.Logger
}

// NewTestService creates a new TestService.
func NewTestService(stores repository.Stores, grader Grader, log zerolog.Logger) *TestService {
	if grader == nil {
		grader = DeferredGrader{}
	}
	return &TestService{
		tests:     stores.Tests,
		questions: stores.Questions,
		results:   stores.Results,
		colleges:  stores.Colleges,
		students:  stores.Students,
		grader:    grader,
		log:       log.With().Str("component", "test_service").Logger(),
	}
}

// studentView reports whether viewer only sees published tests.
func studentView(viewer *model.Principal) bool {
	return viewer == nil || viewer.Role == model.RoleStudent
}

// List returns the tests visible to viewer, optionally limited to one college.
func (s *TestService) List(ctx context.Context, viewer *model.Principal, collegeID string) ([]model.Test, error) {
	return s.tests.List(ctx, repository.TestFilter{
		CollegeID:     collegeID,
		PublishedOnly: studentView(viewer),
	})
}

// Get returns a test. Drafts are NotFound for students.
func (s *TestService) Get(ctx context.Context, viewer *model.Principal, id string) (*model.Test, error) {
	t, err := s.tests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if studentView(viewer) && t.Status != model.TestStatusPublished {
		return nil, model.ErrNotFound
	}
	return t, nil
}

// checkQuestionIDs rejects duplicate or unknown question references.
func (s *TestService) checkQuestionIDs(ctx context.Context, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return model.NewValidationError("questionIds", fmt.Sprintf("question %s is listed twice", id))
		}
		seen[id] = struct{}{}
	}
	if len(ids) == 0 {
		return nil
	}

	found, err := s.questions.GetMany(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) == len(ids) {
		return nil
	}

	known := make(map[string]struct{}, len(found))
	for _, q := range found {
		known[q.ID] = struct{}{}
	}
	var missing []string
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return model.NewValidationError("questionIds", "unknown questions: "+strings.Join(missing, ", "))
}

// CreateTest stores a new draft test.
func (s *TestService) CreateTest(ctx context.Context, in model.TestInput) (*model.Test, error) {
	if _, err := s.colleges.Get(ctx, in.CollegeID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewValidationError("collegeId", "unknown college")
		}
		return nil, err
	}
	if err := s.checkQuestionIDs(ctx, in.QuestionIDs); err != nil {
		return nil, err
	}

	ts := now()
	t := &model.Test{
		ID:              uuid.NewString(),
		CollegeID:       in.CollegeID,
		Title:           strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		QuestionIDs:     append([]string{}, in.QuestionIDs...),
		DurationMinutes: in.DurationMinutes,
		Status:          model.TestStatusDraft,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
	if err := s.tests.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTest replaces the definition of a draft test. The owning college
// cannot change.
func (s *TestService) UpdateTest(ctx context.Context, id string, in model.TestInput) (*model.Test, error) {
	t, err := s.tests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != model.TestStatusDraft {
		return nil, fmt.Errorf("%w: test is %s", model.ErrInvalidState, t.Status)
	}
	if err := s.checkQuestionIDs(ctx, in.QuestionIDs); err != nil {
		return nil, err
	}

	t.Title = strings.TrimSpace(in.Title)
	t.Description = strings.TrimSpace(in.Description)
	t.QuestionIDs = append([]string{}, in.QuestionIDs...)
	t.DurationMinutes = in.DurationMinutes
	t.UpdatedAt = now()

	if err := s.tests.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTest removes a draft test.
func (s *TestService) DeleteTest(ctx context.Context, id string) error {
	return s.tests.Delete(ctx, id)
}

// Publish moves a draft with at least one question to published.
func (s *TestService) Publish(ctx context.Context, id string) (*model.Test, error) {
	t, err := s.tests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != model.TestStatusDraft {
		return nil, fmt.Errorf("%w: test is already %s", model.ErrInvalidState, t.Status)
	}
	if len(t.QuestionIDs) == 0 {
		return nil, model.NewValidationError("questionIds", "a test needs at least one question to be published")
	}

	published, err := s.tests.Publish(ctx, id, now())
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("test_id", id).Msg("Test published")
	return published, nil
}

// Submit scores the answers of studentID and records the result. A student
// submits a test at most once.
func (s *TestService) Submit(ctx context.Context, testID, studentID string, answers []model.SubmittedAnswer) (*model.TestResult, error) {
	t, err := s.tests.Get(ctx, testID)
	if err != nil {
		return nil, err
	}
	if t.Status != model.TestStatusPublished {
		return nil, fmt.Errorf("%w: test is not published", model.ErrInvalidState)
	}
	if _, err := s.students.Get(ctx, studentID); err != nil {
		return nil, err
	}

	done, err := s.Completed(ctx, testID, studentID)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, fmt.Errorf("%w: test already submitted", model.ErrConflict)
	}

	if err := checkAnswers(t, answers); err != nil {
		return nil, err
	}

	questions, err := s.questions.GetMany(ctx, t.QuestionIDs)
	if err != nil {
		return nil, err
	}
	score, pending, err := s.score(ctx, questions, answers)
	if err != nil {
		return nil, err
	}

	result := &model.TestResult{
		ID:            uuid.NewString(),
		TestID:        testID,
		StudentID:     studentID,
		Score:         score,
		MaxScore:      float64(len(t.QuestionIDs)),
		PendingReview: pending,
		Answers:       answers,
		Date:          now(),
	}
	if result.Answers == nil {
		result.Answers = []model.SubmittedAnswer{}
	}
	if err := s.results.Create(ctx, result); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("test_id", testID).
		Str("student_id", studentID).
		Float64("score", score).
		Int("pending_review", pending).
		Msg("Test submitted")

	return result, nil
}

// checkAnswers rejects answers to questions outside t and repeated answers.
func checkAnswers(t *model.Test, answers []model.SubmittedAnswer) error {
	inTest := make(map[string]struct{}, len(t.QuestionIDs))
	for _, id := range t.QuestionIDs {
		inTest[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(answers))
	for i, a := range answers {
		field := fmt.Sprintf("answers[%d].questionId", i)
		if _, ok := inTest[a.QuestionID]; !ok {
			return model.NewValidationError(field, "question is not part of this test")
		}
		if _, dup := seen[a.QuestionID]; dup {
			return model.NewValidationError(field, "question answered twice")
		}
		seen[a.QuestionID] = struct{}{}
	}
	return nil
}

// score awards one point per correctly answered question. Free-text answers
// go to the grader; pending counts those awaiting review.
func (s *TestService) score(ctx context.Context, questions []model.Question, answers []model.SubmittedAnswer) (float64, int, error) {
	byQuestion := make(map[string]model.SubmittedAnswer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	var (
		total   float64
		pending int
	)
	for _, q := range questions {
		a, answered := byQuestion[q.ID]
		if !answered {
			continue
		}
		if q.Type.IsMCQ() {
			if mcqCorrect(q, a.Selected) {
				total++
			}
			continue
		}
		if strings.TrimSpace(a.Text) == "" {
			continue
		}
		points, isPending, err := s.grader.Grade(ctx, q, a)
		if err != nil {
			return 0, 0, fmt.Errorf("grade question %s: %w", q.ID, err)
		}
		total += points
		if isPending {
			pending++
		}
	}
	return total, pending, nil
}

// GetResults returns the results of a test, newest first.
func (s *TestService) GetResults(ctx context.Context, testID string) ([]model.TestResult, error) {
	if _, err := s.tests.Get(ctx, testID); err != nil {
		return nil, err
	}
	return s.results.ListByTest(ctx, testID)
}

// Completed reports whether studentID has a recorded result for testID.
func (s *TestService) Completed(ctx context.Context, testID, studentID string) (bool, error) {
	_, err := s.results.Get(ctx, testID, studentID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, model.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
