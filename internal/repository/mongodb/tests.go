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

type testStore struct {
	d   *DB
	col *mongo.Collection
}

// NewTestStore returns a TestStore backed by d.
func NewTestStore(d *DB) repository.TestStore {
	return &testStore{d: d, col: d.collection(colTests)}
}

func draftFilter(id string) bson.M {
	return bson.M{"_id": id, "status": model.TestStatusDraft}
}

func (s *testStore) List(ctx context.Context, f repository.TestFilter) ([]model.Test, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()

	filter := bson.M{}
	if f.CollegeID != "" {
		filter["college_id"] = f.CollegeID
	}
	if f.PublishedOnly {
		filter["status"] = model.TestStatusPublished
	}
	return findAll[model.Test](ctx, s.col, filter,
		sortBy(bson.E{Key: "created_at", Value: -1}, bson.E{Key: "_id", Value: 1}))
}

func (s *testStore) Get(ctx context.Context, id string) (*model.Test, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	return findOne[model.Test](ctx, s.col, bson.M{"_id": id})
}

func (s *testStore) Create(ctx context.Context, t *model.Test) error {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	_, err := s.col.InsertOne(ctx, t)
	return translate(err)
}

func (s *testStore) Update(ctx context.Context, t *model.Test) error {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()

	res, err := s.col.UpdateOne(ctx, draftFilter(t.ID), bson.M{"$set": bson.M{
		"title":            t.Title,
		"description":      t.Description,
		"question_ids":     t.QuestionIDs,
		"duration_minutes": t.DurationMinutes,
		"updated_at":       t.UpdatedAt,
	}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return resolveMiss(ctx, s.col, t.ID)
	}
	return nil
}

func (s *testStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, draftFilter(id))
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return resolveMiss(ctx, s.col, id)
	}
	return nil
}

func (s *testStore) Publish(ctx context.Context, id string, at time.Time) (*model.Test, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()

	var t model.Test
	err := s.col.FindOneAndUpdate(ctx, draftFilter(id),
		bson.M{"$set": bson.M{
			"status":       model.TestStatusPublished,
			"published_at": at,
			"updated_at":   at,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, resolveMiss(ctx, s.col, id)
	}
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}
