package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type applicationStore struct {
	d   *DB
	col *mongo.Collection
}

// NewApplicationStore returns an ApplicationStore backed by d.
func NewApplicationStore(d *DB) repository.ApplicationStore {
	return &applicationStore{d: d, col: d.collection(colApplications)}
}

func (s *applicationStore) Create(ctx context.Context, a *model.Application) error {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	_, err := s.col.InsertOne(ctx, a)
	return translate(err)
}

func (s *applicationStore) Get(ctx context.Context, id string) (*model.Application, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	return findOne[model.Application](ctx, s.col, bson.M{"_id": id})
}

func (s *applicationStore) Transition(ctx context.Context, id string, from, to model.ApplicationStatus, at time.Time) (*model.Application, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()

	var a model.Application
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "decided_at": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, resolveMiss(ctx, s.col, id)
	}
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *applicationStore) ListByStudent(ctx context.Context, studentID string) ([]model.Application, error) {
	return s.list(ctx, bson.M{"student_id": studentID})
}

func (s *applicationStore) ListByCollege(ctx context.Context, collegeID string) ([]model.Application, error) {
	return s.list(ctx, bson.M{"college_id": collegeID})
}

func (s *applicationStore) list(ctx context.Context, filter bson.M) ([]model.Application, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	return findAll[model.Application](ctx, s.col, filter,
		sortBy(bson.E{Key: "created_at", Value: -1}, bson.E{Key: "_id", Value: 1}))
}
