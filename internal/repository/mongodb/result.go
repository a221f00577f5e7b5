package mongodb

import (
	"context"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type resultStore struct {
	d   *DB
	col *mongo.Collection
}

// NewResultStore returns a ResultStore backed by d.
func NewResultStore(d *DB) repository.ResultStore {
	return &resultStore{d: d, col: d.collection(colResults)}
}

// Create relies on the unique (test_id, student_id) index for exclusivity.
func (s *resultStore) Create(ctx context.Context, r *model.TestResult) error {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	_, err := s.col.InsertOne(ctx, r)
	return translate(err)
}

func (s *resultStore) Get(ctx context.Context, testID, studentID string) (*model.TestResult, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	return findOne[model.TestResult](ctx, s.col, bson.M{"test_id": testID, "student_id": studentID})
}

func (s *resultStore) ListByTest(ctx context.Context, testID string) ([]model.TestResult, error) {
	return s.list(ctx, bson.M{"test_id": testID})
}

func (s *resultStore) ListByStudent(ctx context.Context, studentID string) ([]model.TestResult, error) {
	return s.list(ctx, bson.M{"student_id": studentID})
}

func (s *resultStore) list(ctx context.Context, filter bson.M) ([]model.TestResult, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	return findAll[model.TestResult](ctx, s.col, filter,
		sortBy(bson.E{Key: "date", Value: -1}, bson.E{Key: "_id", Value: 1}))
}
