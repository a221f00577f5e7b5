package service

import (
	"context"
	"testing"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/identity"
	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"github.com/careerbridge/careerbridge-backend/internal/repository/cache"
	"github.com/careerbridge/careerbridge-backend/internal/repository/memory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	ctx          context.Context
	stores       repository.Stores
	questions    *QuestionService
	tests        *TestService
	applications *ApplicationService
	colleges     *CollegeService
	students     *StudentService
	auth         *AuthService
}

// newFixture wires every service against a fresh memory backend. The clock
// advances one second per call so orderings are deterministic.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	prev := now
	now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	t.Cleanup(func() { now = prev })

	log := zerolog.Nop()
	stores := memory.New().Stores()
	colleges := NewCollegeService(stores, log)
	students := NewStudentService(stores, log)
	provider := identity.NewLocal(identity.NewTokens("test-secret", time.Hour), bcrypt.MinCost)

	return &fixture{
		ctx:          context.Background(),
		stores:       stores,
		questions:    NewQuestionService(stores.Questions, stores.Tests, log),
		tests:        NewTestService(stores, nil, log),
		applications: NewApplicationService(stores, log),
		colleges:     colleges,
		students:     students,
		auth:         NewAuthService(provider, cache.NewMemory(), students, colleges, log),
	}
}

func (f *fixture) college(t *testing.T, name string, verified bool) *model.College {
	t.Helper()
	c, err := f.colleges.Create(f.ctx, "profile-"+name, model.CollegeRequest{
		Name:     name,
		Location: "Nairobi",
		Country:  "Kenya",
	})
	require.NoError(t, err)
	if verified {
		c, err = f.colleges.SetVerified(f.ctx, c.ID, true)
		require.NoError(t, err)
	}
	return c
}

func (f *fixture) course(t *testing.T, collegeID, name string) *model.Course {
	t.Helper()
	c, err := f.colleges.AddCourse(f.ctx, collegeID, model.CourseRequest{Name: name, DurationMonths: 36})
	require.NoError(t, err)
	return c
}

func (f *fixture) student(t *testing.T, name string) *model.Student {
	t.Helper()
	s, err := f.students.Create(f.ctx, "profile-"+name, name, name+"@example.com")
	require.NoError(t, err)
	return s
}

func (f *fixture) mcq(t *testing.T, collegeID *string) *model.Question {
	t.Helper()
	q, err := f.questions.Create(f.ctx, model.QuestionInput{
		CollegeID:       collegeID,
		Type:            model.QuestionTypeMCQSingle,
		Text:            "2+2?",
		DifficultyLevel: model.DifficultyEasy,
		Options: []model.OptionInput{
			{ID: "a", Text: "3"},
			{ID: "b", Text: "4", IsCorrect: true},
		},
	})
	require.NoError(t, err)
	return q
}

func (f *fixture) freeText(t *testing.T) *model.Question {
	t.Helper()
	q, err := f.questions.Create(f.ctx, model.QuestionInput{
		Type:            model.QuestionTypeShortAnswer,
		Text:            "Why engineering?",
		DifficultyLevel: model.DifficultyMedium,
	})
	require.NoError(t, err)
	return q
}

func strPtr(s string) *string { return &s }
