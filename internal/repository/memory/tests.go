package memory

import (
	"context"
	"sort"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
)

type testStore struct {
	db *DB
}

// NewTestStore returns a TestStore backed by db.
func NewTestStore(db *DB) repository.TestStore {
	return &testStore{db: db}
}

func (s *testStore) List(_ context.Context, f repository.TestFilter) ([]model.Test, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	out := make([]model.Test, 0, len(s.db.tests))
	for _, t := range s.db.tests {
		if f.CollegeID != "" && t.CollegeID != f.CollegeID {
			continue
		}
		if f.PublishedOnly && t.Status != model.TestStatusPublished {
			continue
		}
		out = append(out, *cloneTest(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *testStore) Get(_ context.Context, id string) (*model.Test, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	t, ok := s.db.tests[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return cloneTest(t), nil
}

func (s *testStore) Create(_ context.Context, t *model.Test) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	if _, ok := s.db.tests[t.ID]; ok {
		return model.ErrConflict
	}
	s.db.tests[t.ID] = cloneTest(t)
	return nil
}

// draft returns the stored draft with the given id. Caller holds the lock.
func (s *testStore) draft(id string) (*model.Test, error) {
	t, ok := s.db.tests[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	if t.Status != model.TestStatusDraft {
		return nil, model.ErrInvalidState
	}
	return t, nil
}

func (s *testStore) Update(_ context.Context, t *model.Test) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	stored, err := s.draft(t.ID)
	if err != nil {
		return err
	}
	stored.Title = t.Title
	stored.Description = t.Description
	stored.QuestionIDs = cloneStrings(t.QuestionIDs)
	stored.DurationMinutes = t.DurationMinutes
	stored.UpdatedAt = t.UpdatedAt
	return nil
}

func (s *testStore) Delete(_ context.Context, id string) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	if _, err := s.draft(id); err != nil {
		return err
	}
	delete(s.db.tests, id)
	return nil
}

func (s *testStore) Publish(_ context.Context, id string, at time.Time) (*model.Test, error) {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	stored, err := s.draft(id)
	if err != nil {
		return nil, err
	}
	stored.Status = model.TestStatusPublished
	stored.PublishedAt = &at
	stored.UpdatedAt = at
	return cloneTest(stored), nil
}
