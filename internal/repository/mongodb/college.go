package mongodb

import (
	"context"
	"regexp"
	"strings"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type collegeStore struct {
	d       *DB
	col     *mongo.Collection
	courses *mongo.Collection
}

// NewCollegeStore returns a CollegeStore backed by d.
func NewCollegeStore(d *DB) repository.CollegeStore {
	return &collegeStore{d: d, col: d.collection(colColleges), courses: d.collection(colCourses)}
}

var byName = sortBy(bson.E{Key: "name", Value: 1}, bson.E{Key: "_id", Value: 1})

// searchFilter builds the verified-only directory query. User input is
// escaped before it reaches a regular expression.
func searchFilter(f repository.CollegeFilter) bson.M {
	filter := bson.M{"is_verified": true}
	if term := strings.TrimSpace(f.Term); term != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
		}
	}
	if country := strings.TrimSpace(f.Country); country != "" {
		filter["country"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(country) + "$", Options: "i"}
	}
	return filter
}

func (s *collegeStore) List(ctx context.Context) ([]model.College, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	return findAll[model.College](ctx, s.col, bson.M{}, byName)
}

func (s *collegeStore) Search(ctx context.Context, f repository.CollegeFilter) ([]model.College, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	return findAll[model.College](ctx, s.col, searchFilter(f), byName)
}

func (s *collegeStore) Get(ctx context.Context, id string) (*model.College, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	return findOne[model.College](ctx, s.col, bson.M{"_id": id})
}

func (s *collegeStore) GetByProfileID(ctx context.Context, profileID string) (*model.College, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	return findOne[model.College](ctx, s.col, bson.M{"profile_id": profileID})
}

func (s *collegeStore) Create(ctx context.Context, c *model.College) error {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	_, err := s.col.InsertOne(ctx, c)
	return translate(err)
}

func (s *collegeStore) Update(ctx context.Context, c *model.College) error {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete removes the college, then its courses. The two writes are not
// atomic; a failure in between leaves orphan courses that no query reaches.
func (s *collegeStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	_, err = s.courses.DeleteMany(ctx, bson.M{"college_id": id})
	return translate(err)
}

type courseStore struct {
	d        *DB
	col      *mongo.Collection
	colleges *mongo.Collection
}

// NewCourseStore returns a CourseStore backed by d.
func NewCourseStore(d *DB) repository.CourseStore {
	return &courseStore{d: d, col: d.collection(colCourses), colleges: d.collection(colColleges)}
}

func (s *courseStore) ListByCollege(ctx context.Context, collegeID string) ([]model.Course, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	return findAll[model.Course](ctx, s.col, bson.M{"college_id": collegeID}, byName)
}

func (s *courseStore) Get(ctx context.Context, id string) (*model.Course, error) {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()
	return findOne[model.Course](ctx, s.col, bson.M{"_id": id})
}

func (s *courseStore) Create(ctx context.Context, c *model.Course) error {
	ctx, cancel := s.d.bound(ctx)
	defer cancel()

	n, err := s.colleges.CountDocuments(ctx, bson.M{"_id": c.CollegeID})
	if err != nil {
		return translate(err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	_, err = s.col.InsertOne(ctx, c)
	return translate(err)
}
