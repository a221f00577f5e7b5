package mongodb

import (
	"context"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type studentStore struct {
	d   *DB
	col *mongo.Collection
}

// NewStudentStore returns a StudentStore backed by d.
func NewStudentStore(d *DB) repository.StudentStore {
	return &studentStore{d: d, col: d.collection(colStudents)}
}

func (s *studentStore) List(ctx context.Context) ([]model.Student, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	return findAll[model.Student](ctx, s.col, bson.M{}, byName)
}

func (s *studentStore) Get(ctx context.Context, id string) (*model.Student, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	return findOne[model.Student](ctx, s.col, bson.M{"_id": id})
}

func (s *studentStore) GetByProfileID(ctx context.Context, profileID string) (*model.Student, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	return findOne[model.Student](ctx, s.col, bson.M{"profile_id": profileID})
}

func (s *studentStore) Create(ctx context.Context, st *model.Student) error {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	_, err := s.col.InsertOne(ctx, st)
	return translate(err)
}

func (s *studentStore) Update(ctx context.Context, st *model.Student) error {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": st.ID}, bson.M{"$set": bson.M{
		"name":       st.Name,
		"email":      st.Email,
		"updated_at": st.UpdatedAt,
	}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *studentStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}
