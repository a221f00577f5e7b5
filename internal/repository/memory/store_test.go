package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestQuestionPartition(t *testing.T) {
	ctx := context.Background()
	store := New().Stores().Questions

	require.NoError(t, store.Create(ctx, &model.Question{ID: "q1", CollegeID: strPtr("c1"), Type: model.QuestionTypeShortAnswer, CreatedAt: now}))
	require.NoError(t, store.Create(ctx, &model.Question{ID: "q2", Type: model.QuestionTypeShortAnswer, CreatedAt: now.Add(time.Second)}))

	all, err := store.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "q1", all[0].ID)

	own, err := store.List(ctx, strPtr("c1"))
	require.NoError(t, err)
	require.Len(t, own, 1)

	_, err = store.Get(ctx, "q2", strPtr("c1"))
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "q2", strPtr("c1")), model.ErrNotFound)
	assert.NoError(t, store.Delete(ctx, "q2", nil))
	assert.ErrorIs(t, store.Delete(ctx, "q2", nil), model.ErrNotFound)
}

func TestQuestionCopiesAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := New().Stores().Questions

	q := &model.Question{ID: "q1", Categories: []string{"math"}}
	require.NoError(t, store.Create(ctx, q))
	q.Categories[0] = "changed"

	got, err := store.Get(ctx, "q1", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"math"}, got.Categories)
}

func TestGetManyKeepsRequestedOrder(t *testing.T) {
	ctx := context.Background()
	store := New().Stores().Questions
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Create(ctx, &model.Question{ID: id}))
	}

	got, err := store.GetMany(ctx, []string{"c", "missing", "a"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestTestLifecycleWrites(t *testing.T) {
	ctx := context.Background()
	store := New().Stores().Tests

	require.NoError(t, store.Create(ctx, &model.Test{ID: "t1", CollegeID: "c1", Status: model.TestStatusDraft, CreatedAt: now}))

	published, err := store.Publish(ctx, "t1", now)
	require.NoError(t, err)
	assert.Equal(t, model.TestStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	_, err = store.Publish(ctx, "t1", now)
	assert.ErrorIs(t, err, model.ErrInvalidState)
	_, err = store.Publish(ctx, "nope", now)
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.ErrorIs(t, store.Update(ctx, &model.Test{ID: "t1", Title: "x"}), model.ErrInvalidState)
	assert.ErrorIs(t, store.Delete(ctx, "t1"), model.ErrInvalidState)

	list, err := store.List(ctx, repository.TestFilter{PublishedOnly: true})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPublishRaceHasOneWinner(t *testing.T) {
	ctx := context.Background()
	store := New().Stores().Tests
	require.NoError(t, store.Create(ctx, &model.Test{ID: "t1", Status: model.TestStatusDraft}))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Publish(ctx, "t1", now); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestResultUniquePerStudent(t *testing.T) {
	ctx := context.Background()
	store := New().Stores().Results

	require.NoError(t, store.Create(ctx, &model.TestResult{ID: "r1", TestID: "t1", StudentID: "s1", Score: 3, Date: now}))
	err := store.Create(ctx, &model.TestResult{ID: "r2", TestID: "t1", StudentID: "s1", Score: 5, Date: now})
	assert.ErrorIs(t, err, model.ErrConflict)

	got, err := store.Get(ctx, "t1", "s1")
	require.NoError(t, err)
	assert.Equal(t, float64(3), got.Score)

	require.NoError(t, store.Create(ctx, &model.TestResult{ID: "r3", TestID: "t1", StudentID: "s2", Date: now.Add(time.Minute)}))
	list, err := store.ListByTest(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r3", list[0].ID)
}

func TestApplicationTransition(t *testing.T) {
	ctx := context.Background()
	store := New().Stores().Applications

	app := &model.Application{ID: "a1", StudentID: "s1", CourseID: "k1", CollegeID: "c1", Status: model.ApplicationPending, CreatedAt: now}
	require.NoError(t, store.Create(ctx, app))
	assert.ErrorIs(t, store.Create(ctx, &model.Application{ID: "a2", StudentID: "s1", CourseID: "k1"}), model.ErrConflict)

	got, err := store.Transition(ctx, "a1", model.ApplicationPending, model.ApplicationApproved, now)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationApproved, got.Status)
	require.NotNil(t, got.DecidedAt)

	_, err = store.Transition(ctx, "a1", model.ApplicationPending, model.ApplicationRejected, now)
	assert.ErrorIs(t, err, model.ErrInvalidState)
	_, err = store.Transition(ctx, "missing", model.ApplicationPending, model.ApplicationRejected, now)
	assert.ErrorIs(t, err, model.ErrNotFound)

	byCollege, err := store.ListByCollege(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, byCollege, 1)
}

func TestCollegeSearch(t *testing.T) {
	ctx := context.Background()
	stores := New().Stores()

	colleges := []model.College{
		{ID: "1", ProfileID: "p1", Name: "Northern Tech", Country: "Kenya", Description: "Engineering", IsVerified: true},
		{ID: "2", ProfileID: "p2", Name: "Coastal Arts", Country: "kenya", Description: "Fine arts and design", IsVerified: true},
		{ID: "3", ProfileID: "p3", Name: "Hidden Tech", Country: "Kenya", IsVerified: false},
	}
	for i := range colleges {
		require.NoError(t, stores.Colleges.Create(ctx, &colleges[i]))
	}

	tests := []struct {
		name   string
		filter repository.CollegeFilter
		want   []string
	}{
		{"empty filter matches verified", repository.CollegeFilter{}, []string{"2", "1"}},
		{"term in name", repository.CollegeFilter{Term: "TECH"}, []string{"1"}},
		{"term in description", repository.CollegeFilter{Term: "design"}, []string{"2"}},
		{"country case insensitive", repository.CollegeFilter{Country: "KENYA"}, []string{"2", "1"}},
		{"and composed", repository.CollegeFilter{Term: "arts", Country: "Uganda"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stores.Colleges.Search(ctx, tt.filter)
			require.NoError(t, err)
			var ids []string
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestCollegeDeleteRemovesCourses(t *testing.T) {
	ctx := context.Background()
	stores := New().Stores()

	require.NoError(t, stores.Colleges.Create(ctx, &model.College{ID: "c1", ProfileID: "p1"}))
	require.NoError(t, stores.Courses.Create(ctx, &model.Course{ID: "k1", CollegeID: "c1", Name: "CS"}))
	assert.ErrorIs(t, stores.Courses.Create(ctx, &model.Course{ID: "k2", CollegeID: "nope"}), model.ErrNotFound)
	assert.ErrorIs(t, stores.Colleges.Create(ctx, &model.College{ID: "c2", ProfileID: "p1"}), model.ErrConflict)

	require.NoError(t, stores.Colleges.Delete(ctx, "c1"))
	_, err := stores.Courses.Get(ctx, "k1")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestStudentUniqueness(t *testing.T) {
	ctx := context.Background()
	store := New().Stores().Students

	require.NoError(t, store.Create(ctx, &model.Student{ID: "s1", ProfileID: "p1", Email: "a@x.io"}))
	require.NoError(t, store.Create(ctx, &model.Student{ID: "s2", ProfileID: "p2", Email: "b@x.io"}))
	assert.ErrorIs(t, store.Create(ctx, &model.Student{ID: "s3", ProfileID: "p1", Email: "c@x.io"}), model.ErrConflict)
	assert.ErrorIs(t, store.Update(ctx, &model.Student{ID: "s2", ProfileID: "p2", Email: "a@x.io"}), model.ErrConflict)

	got, err := store.GetByProfileID(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "s2", got.ID)
}
