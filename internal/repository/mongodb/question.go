package mongodb

import (
	"context"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type questionStore struct {
	d   *DB
	col *mongo.Collection
}

// NewQuestionStore returns a QuestionStore backed by d.
func NewQuestionStore(d *DB) repository.QuestionStore {
	return &questionStore{d: d, col: d.collection(colQuestions)}
}

func partition(filter bson.M, collegeID *string) bson.M {
	if collegeID != nil {
		filter["college_id"] = *collegeID
	}
	return filter
}

func (s *questionStore) List(ctx context.Context, collegeID *string) ([]model.Question, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	return findAll[model.Question](ctx, s.col, partition(bson.M{}, collegeID),
		sortBy(bson.E{Key: "created_at", Value: 1}, bson.E{Key: "_id", Value: 1}))
}

func (s *questionStore) Get(ctx context.Context, id string, collegeID *string) (*model.Question, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	return findOne[model.Question](ctx, s.col, partition(bson.M{"_id": id}, collegeID))
}

func (s *questionStore) GetMany(ctx context.Context, ids []string) ([]model.Question, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()

	found, err := findAll[model.Question](ctx, s.col, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Question, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}
	out := make([]model.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *questionStore) Create(ctx context.Context, q *model.Question) error {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	_, err := s.col.InsertOne(ctx, q)
	return translate(err)
}

func (s *questionStore) Update(ctx context.Context, q *model.Question) error {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": q.ID}, q)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *questionStore) Delete(ctx context.Context, id string, collegeID *string) error {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	res, err := s.col.DeleteOne(ctx, partition(bson.M{"_id": id}, collegeID))
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}
