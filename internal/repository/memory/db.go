// Package memory implements the repository stores on mutex-guarded maps.
// Records are copied on the way in and out so callers never share memory
// with the store.
package memory

import (
	"sync"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
)

// DB holds every table. A single lock keeps cross-table operations,
// such as deleting a college with its courses, atomic.
type DB struct {
	mutex        sync.RWMutex
	questions    map[string]*model.Question
	tests        map[string]*model.Test
	results      map[string]*model.TestResult
	applications map[string]*model.Application
	colleges     map[string]*model.College
	courses      map[string]*model.Course
	students     map[string]*model.Student
}

// New returns an empty database.
func New() *DB {
	return &DB{
		questions:    make(map[string]*model.Question),
		tests:        make(map[string]*model.Test),
		results:      make(map[string]*model.TestResult),
		applications: make(map[string]*model.Application),
		colleges:     make(map[string]*model.College),
		courses:      make(map[string]*model.Course),
		students:     make(map[string]*model.Student),
	}
}

// Stores returns every store backed by db.
func (db *DB) Stores() repository.Stores {
	return repository.Stores{
		Questions:    NewQuestionStore(db),
		Tests:        NewTestStore(db),
		Results:      NewResultStore(db),
		Applications: NewApplicationStore(db),
		Colleges:     NewCollegeStore(db),
		Courses:      NewCourseStore(db),
		Students:     NewStudentStore(db),
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func cloneQuestion(q *model.Question) *model.Question {
	c := *q
	if q.CollegeID != nil {
		id := *q.CollegeID
		c.CollegeID = &id
	}
	if q.Options != nil {
		c.Options = append([]model.Option(nil), q.Options...)
	}
	c.Categories = cloneStrings(q.Categories)
	return &c
}

func cloneTest(t *model.Test) *model.Test {
	c := *t
	c.QuestionIDs = cloneStrings(t.QuestionIDs)
	if t.PublishedAt != nil {
		at := *t.PublishedAt
		c.PublishedAt = &at
	}
	return &c
}

func cloneResult(r *model.TestResult) *model.TestResult {
	c := *r
	if r.Answers != nil {
		c.Answers = make([]model.SubmittedAnswer, len(r.Answers))
		for i, a := range r.Answers {
			a.Selected = cloneStrings(a.Selected)
			c.Answers[i] = a
		}
	}
	return &c
}

func cloneApplication(a *model.Application) *model.Application {
	c := *a
	if a.DecidedAt != nil {
		at := *a.DecidedAt
		c.DecidedAt = &at
	}
	return &c
}

func cloneCollege(c *model.College) *model.College {
	out := *c
	out.Courses = nil
	return &out
}

func cloneStudent(s *model.Student) *model.Student {
	out := *s
	out.AppliedColleges = nil
	out.TestResults = nil
	return &out
}
