package memory

import (
	"context"
	"sort"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
)

type applicationStore struct {
	db *DB
}

// NewApplicationStore returns an ApplicationStore backed by db.
func NewApplicationStore(db *DB) repository.ApplicationStore {
	return &applicationStore{db: db}
}

func (s *applicationStore) Create(_ context.Context, a *model.Application) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	for _, existing := range s.db.applications {
		if existing.ID == a.ID || (existing.StudentID == a.StudentID && existing.CourseID == a.CourseID) {
			return model.ErrConflict
		}
	}
	s.db.applications[a.ID] = cloneApplication(a)
	return nil
}

func (s *applicationStore) Get(_ context.Context, id string) (*model.Application, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	a, ok := s.db.applications[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return cloneApplication(a), nil
}

func (s *applicationStore) Transition(_ context.Context, id string, from, to model.ApplicationStatus, at time.Time) (*model.Application, error) {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	a, ok := s.db.applications[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if a.Status != from {
		return nil, model.ErrInvalidState
	}
	a.Status = to
	a.DecidedAt = &at
	return cloneApplication(a), nil
}

func (s *applicationStore) ListByStudent(_ context.Context, studentID string) ([]model.Application, error) {
	return s.list(func(a *model.Application) bool { return a.StudentID == studentID }), nil
}

func (s *applicationStore) ListByCollege(_ context.Context, collegeID string) ([]model.Application, error) {
	return s.list(func(a *model.Application) bool { return a.CollegeID == collegeID }), nil
}

func (s *applicationStore) list(match func(*model.Application) bool) []model.Application {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	out := make([]model.Application, 0)
	for _, a := range s.db.applications {
		if match(a) {
			out = append(out, *cloneApplication(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
