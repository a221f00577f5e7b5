package memory

import (
	"context"
	"sort"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
)

type resultStore struct {
	db *DB
}

// NewResultStore returns a ResultStore backed by db.
func NewResultStore(db *DB) repository.ResultStore {
	return &resultStore{db: db}
}

func (s *resultStore) Create(_ context.Context, r *model.TestResult) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	for _, existing := range s.db.results {
		if existing.TestID == r.TestID && existing.StudentID == r.StudentID {
			return model.ErrConflict
		}
	}
	s.db.results[r.ID] = cloneResult(r)
	return nil
}

func (s *resultStore) Get(_ context.Context, testID, studentID string) (*model.TestResult, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	for _, r := range s.db.results {
		if r.TestID == testID && r.StudentID == studentID {
			return cloneResult(r), nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *resultStore) ListByTest(_ context.Context, testID string) ([]model.TestResult, error) {
	return s.list(func(r *model.TestResult) bool { return r.TestID == testID }), nil
}

func (s *resultStore) ListByStudent(_ context.Context, studentID string) ([]model.TestResult, error) {
	return s.list(func(r *model.TestResult) bool { return r.StudentID == studentID }), nil
}

func (s *resultStore) list(match func(*model.TestResult) bool) []model.TestResult {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	out := make([]model.TestResult, 0)
	for _, r := range s.db.results {
		if match(r) {
			out = append(out, *cloneResult(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}
