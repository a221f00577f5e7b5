package memory

import (
	"context"
	"sort"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
)

type studentStore struct {
	db *DB
}

// NewStudentStore returns a StudentStore backed by db.
func NewStudentStore(db *DB) repository.StudentStore {
	return &studentStore{db: db}
}

func (s *studentStore) List(_ context.Context) ([]model.Student, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	out := make([]model.Student, 0, len(s.db.students))
	for _, st := range s.db.students {
		out = append(out, *cloneStudent(st))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *studentStore) Get(_ context.Context, id string) (*model.Student, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	st, ok := s.db.students[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return cloneStudent(st), nil
}

func (s *studentStore) GetByProfileID(_ context.Context, profileID string) (*model.Student, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	for _, st := range s.db.students {
		if st.ProfileID == profileID {
			return cloneStudent(st), nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *studentStore) Create(_ context.Context, st *model.Student) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	for _, existing := range s.db.students {
		if existing.ID == st.ID || existing.ProfileID == st.ProfileID || existing.Email == st.Email {
			return model.ErrConflict
		}
	}
	s.db.students[st.ID] = cloneStudent(st)
	return nil
}

func (s *studentStore) Update(_ context.Context, st *model.Student) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	if _, ok := s.db.students[st.ID]; !ok {
		return model.ErrNotFound
	}
	for _, existing := range s.db.students {
		if existing.ID != st.ID && existing.Email == st.Email {
			return model.ErrConflict
		}
	}
	s.db.students[st.ID] = cloneStudent(st)
	return nil
}

func (s *studentStore) Delete(_ context.Context, id string) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	if _, ok := s.db.students[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.db.students, id)
	return nil
}
