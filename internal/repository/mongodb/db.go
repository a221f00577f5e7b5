// Package mongodb implements the repository stores on MongoDB.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	colQuestions    = "questions"
	colTests        = "tests"
	colResults      = "test_results"
	colApplications = "applications"
	colColleges     = "colleges"
	colCourses      = "courses"
	colStudents     = "students"
)

// DB wraps a database handle with the per-call timeout.
type DB struct {
	db      *mongo.Database
	timeout time.Duration
}

// New returns a DB whose calls are bounded by timeout.
func New(db *mongo.Database, timeout time.Duration) *DB {
	return &DB{db: db, timeout: timeout}
}

// Stores returns every store backed by db.
func (d *DB) Stores() repository.Stores {
	return repository.Stores{
		Questions:    NewQuestionStore(d),
		Tests:        NewTestStore(d),
		Results:      NewResultStore(d),
		Applications: NewApplicationStore(d),
		Colleges:     NewCollegeStore(d),
		Courses:      NewCourseStore(d),
		Students:     NewStudentStore(d),
	}
}

// EnsureIndexes creates the indexes the store contract relies on,
// including the unique keys backing Conflict errors.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		colQuestions: {
			{Keys: bson.D{{Key: "college_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colTests: {
			{Keys: bson.D{{Key: "college_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		colResults: {
			{Keys: bson.D{{Key: "test_id", Value: 1}, {Key: "student_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "student_id", Value: 1}, {Key: "date", Value: -1}}},
		},
		colApplications: {
			{Keys: bson.D{{Key: "student_id", Value: 1}, {Key: "course_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "college_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		colColleges: {
			{Keys: bson.D{{Key: "profile_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "is_verified", Value: 1}, {Key: "name", Value: 1}}},
		},
		colCourses: {
			{Keys: bson.D{{Key: "college_id", Value: 1}}},
		},
		colStudents: {
			{Keys: bson.D{{Key: "profile_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
	}

	for name, models := range indexes {
		cctx, cancel := context.WithTimeout(ctx, d.timeout)
		_, err := d.db.Collection(name).Indexes().CreateMany(cctx, models)
		cancel()
		if err != nil {
			return fmt.Errorf("create %s indexes: %w", name, translate(err))
		}
	}
	return nil
}

func (d *DB) collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

func (d *DB) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.timeout)
}

// translate maps driver errors onto the model error taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return model.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", model.ErrConflict, err)
	case mongo.IsTimeout(err), mongo.IsNetworkError(err), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: mongo: %v", model.ErrRemoteUnavailable, err)
	}
	return err
}

// resolveMiss explains why a conditional write on id matched nothing.
func resolveMiss(ctx context.Context, col *mongo.Collection, id string) error {
	n, err := col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return model.ErrInvalidState
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, translate(err)
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter any) (*T, error) {
	var out T
	if err := col.FindOne(ctx, filter).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func sortBy(fields ...bson.E) *options.FindOptions {
	return options.Find().SetSort(bson.D(fields))
}
