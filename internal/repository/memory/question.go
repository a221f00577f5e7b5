package memory

import (
	"context"
	"sort"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
)

type questionStore struct {
	db *DB
}

// NewQuestionStore returns a QuestionStore backed by db.
func NewQuestionStore(db *DB) repository.QuestionStore {
	return &questionStore{db: db}
}

func inPartition(q *model.Question, collegeID *string) bool {
	if collegeID == nil {
		return true
	}
	return q.CollegeID != nil && *q.CollegeID == *collegeID
}

func (s *questionStore) List(_ context.Context, collegeID *string) ([]model.Question, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	out := make([]model.Question, 0, len(s.db.questions))
	for _, q := range s.db.questions {
		if inPartition(q, collegeID) {
			out = append(out, *cloneQuestion(q))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *questionStore) Get(_ context.Context, id string, collegeID *string) (*model.Question, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	q, ok := s.db.questions[id]
	if !ok || !inPartition(q, collegeID) {
		return nil, model.ErrNotFound
	}
	return cloneQuestion(q), nil
}

func (s *questionStore) GetMany(_ context.Context, ids []string) ([]model.Question, error) {
	s.db.mutex.RLock()
	defer s.db.mutex.RUnlock()

	out := make([]model.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := s.db.questions[id]; ok {
			out = append(out, *cloneQuestion(q))
		}
	}
	return out, nil
}

func (s *questionStore) Create(_ context.Context, q *model.Question) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	if _, ok := s.db.questions[q.ID]; ok {
		return model.ErrConflict
	}
	s.db.questions[q.ID] = cloneQuestion(q)
	return nil
}

func (s *questionStore) Update(_ context.Context, q *model.Question) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	if _, ok := s.db.questions[q.ID]; !ok {
		return model.ErrNotFound
	}
	s.db.questions[q.ID] = cloneQuestion(q)
	return nil
}

func (s *questionStore) Delete(_ context.Context, id string, collegeID *string) error {
	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()

	q, ok := s.db.questions[id]
	if !ok || !inPartition(q, collegeID) {
		return model.ErrNotFound
	}
	delete(s.db.questions, id)
	return nil
}
