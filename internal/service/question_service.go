package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"github.com/careerbridge/careerbridge-backend/internal/validator"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// QuestionService handles question business logic.
type QuestionService struct {
	questions repository.QuestionStore
	tests     repository.TestStore
	log       zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions repository.QuestionStore, tests repository.TestStore, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questions: questions,
		tests:     tests,
		log:       log.With().Str("component", "question_service").Logger(),
	}
}

// List returns every question, or only those of collegeID when it is set.
func (s *QuestionService) List(ctx context.Context, collegeID *string) ([]model.Question, error) {
	return s.questions.List(ctx, collegeID)
}

// Get returns a question. A question outside collegeID's partition is NotFound.
func (s *QuestionService) Get(ctx context.Context, id string, collegeID *string) (*model.Question, error) {
	return s.questions.Get(ctx, id, collegeID)
}

// Create validates in and stores it as a new question.
func (s *QuestionService) Create(ctx context.Context, in model.QuestionInput) (*model.Question, error) {
	ts := now()
	q, err := buildQuestion(in, uuid.NewString(), ts, ts)
	if err != nil {
		return nil, err
	}
	if err := s.questions.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// locked rejects changes to a question a published test refers to, since
// submissions to that test are scored against its current answer key.
func (s *QuestionService) locked(ctx context.Context, id string) error {
	published, err := s.tests.List(ctx, repository.TestFilter{PublishedOnly: true})
	if err != nil {
		return err
	}
	for _, t := range published {
		for _, qid := range t.QuestionIDs {
			if qid == id {
				return fmt.Errorf("%w: question is used by published test %s", model.ErrInvalidState, t.ID)
			}
		}
	}
	return nil
}

// Update replaces the content of question id. Its id, collegeId and
// createdAt are preserved.
func (s *QuestionService) Update(ctx context.Context, id string, in model.QuestionInput) (*model.Question, error) {
	existing, err := s.questions.Get(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	if err := s.locked(ctx, id); err != nil {
		return nil, err
	}

	in.CollegeID = existing.CollegeID
	q, err := buildQuestion(in, existing.ID, existing.CreatedAt, now())
	if err != nil {
		return nil, err
	}
	if err := s.questions.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Delete removes a question. Deleting an absent question is not an error.
func (s *QuestionService) Delete(ctx context.Context, id string, collegeID *string) error {
	if err := s.locked(ctx, id); err != nil {
		return err
	}
	err := s.questions.Delete(ctx, id, collegeID)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	return err
}

// BulkUpload validates and inserts every item on its own; a failing item is
// reported and never aborts the rest of the batch. Items without a
// collegeId inherit collegeID.
func (s *QuestionService) BulkUpload(ctx context.Context, items []model.QuestionInput, collegeID *string) *model.BulkResult {
	res := &model.BulkResult{Failed: []model.BulkFailure{}}

	for i, in := range items {
		if in.CollegeID == nil {
			in.CollegeID = collegeID
		}
		if _, err := s.Create(ctx, in); err != nil {
			failure := model.BulkFailure{Index: i, Reason: model.ErrorKind(err)}
			var ve *model.ValidationError
			if errors.As(err, &ve) {
				failure.Fields = ve.Fields
			}
			res.Failed = append(res.Failed, failure)
			continue
		}
		res.Created++
	}

	s.log.Info().
		Int("created", res.Created).
		Int("failed", len(res.Failed)).
		Msg("Bulk question upload finished")

	return res
}

// buildQuestion turns client input into a validated Question. Options without
// an id get one; option ids must be unique within the question.
func buildQuestion(in model.QuestionInput, id string, createdAt, updatedAt time.Time) (*model.Question, error) {
	q := &model.Question{
		ID:              id,
		CollegeID:       in.CollegeID,
		Type:            in.Type,
		Text:            strings.TrimSpace(in.Text),
		DifficultyLevel: in.DifficultyLevel,
		Categories:      model.NormalizeCategories(in.Categories),
		Options:         make([]model.Option, 0, len(in.Options)),
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}

	seen := make(map[string]struct{}, len(in.Options))
	for _, o := range in.Options {
		optID := strings.TrimSpace(o.ID)
		if optID == "" {
			optID = uuid.NewString()
		}
		if _, dup := seen[optID]; dup {
			return nil, model.NewValidationError("options", "option ids must be unique")
		}
		seen[optID] = struct{}{}

		q.Options = append(q.Options, model.Option{
			ID:          optID,
			Text:        strings.TrimSpace(o.Text),
			IsCorrect:   o.IsCorrect,
			Explanation: strings.TrimSpace(o.Explanation),
		})
	}

	if err := validator.Struct(q); err != nil {
		return nil, err
	}
	return q, nil
}
