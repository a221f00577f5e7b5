package service

import (
	"testing"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	collegeViewer = &model.Principal{Subject: "c", Role: model.RoleCollege}
	studentViewer = &model.Principal{Subject: "s", Role: model.RoleStudent}
)

func TestTestLifecycle(t *testing.T) {
	f := newFixture(t)
	college := f.college(t, "Alpha", true)
	q := f.mcq(t, &college.ID)

	draft, err := f.tests.CreateTest(f.ctx, model.TestInput{CollegeID: college.ID, Title: "Aptitude"})
	require.NoError(t, err)
	assert.Equal(t, model.TestStatusDraft, draft.Status)

	_, err = f.tests.Publish(f.ctx, draft.ID)
	assert.True(t, model.IsValidation(err), "empty tests cannot be published")

	_, err = f.tests.Get(f.ctx, studentViewer, draft.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	draft, err = f.tests.UpdateTest(f.ctx, draft.ID, model.TestInput{
		CollegeID:   "ignored",
		Title:       "Aptitude v2",
		QuestionIDs: []string{q.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, college.ID, draft.CollegeID)

	published, err := f.tests.Publish(f.ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TestStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	_, err = f.tests.Publish(f.ctx, draft.ID)
	assert.ErrorIs(t, err, model.ErrInvalidState)
	_, err = f.tests.UpdateTest(f.ctx, draft.ID, model.TestInput{Title: "late"})
	assert.ErrorIs(t, err, model.ErrInvalidState)
	assert.ErrorIs(t, f.tests.DeleteTest(f.ctx, draft.ID), model.ErrInvalidState)

	got, err := f.tests.Get(f.ctx, studentViewer, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aptitude v2", got.Title)
}

func TestCreateTestChecksReferences(t *testing.T) {
	f := newFixture(t)
	college := f.college(t, "Alpha", true)
	q := f.mcq(t, nil)

	_, err := f.tests.CreateTest(f.ctx, model.TestInput{CollegeID: "nope", Title: "T1"})
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "collegeId")

	_, err = f.tests.CreateTest(f.ctx, model.TestInput{CollegeID: college.ID, Title: "T1", QuestionIDs: []string{q.ID, "ghost"}})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields["questionIds"], "ghost")

	_, err = f.tests.CreateTest(f.ctx, model.TestInput{CollegeID: college.ID, Title: "T1", QuestionIDs: []string{q.ID, q.ID}})
	assert.True(t, model.IsValidation(err))
}

func TestListHidesDraftsFromStudents(t *testing.T) {
	f := newFixture(t)
	college := f.college(t, "Alpha", true)
	q := f.mcq(t, nil)

	draft, err := f.tests.CreateTest(f.ctx, model.TestInput{CollegeID: college.ID, Title: "Draft"})
	require.NoError(t, err)
	live, err := f.tests.CreateTest(f.ctx, model.TestInput{CollegeID: college.ID, Title: "Live", QuestionIDs: []string{q.ID}})
	require.NoError(t, err)
	_, err = f.tests.Publish(f.ctx, live.ID)
	require.NoError(t, err)

	forStudents, err := f.tests.List(f.ctx, studentViewer, "")
	require.NoError(t, err)
	require.Len(t, forStudents, 1)
	assert.Equal(t, live.ID, forStudents[0].ID)

	forCollege, err := f.tests.List(f.ctx, collegeViewer, college.ID)
	require.NoError(t, err)
	require.Len(t, forCollege, 2)
	assert.Equal(t, live.ID, forCollege[0].ID, "newest first")
	assert.Equal(t, draft.ID, forCollege[1].ID)
}

func publishedTest(t *testing.T, f *fixture, questionIDs ...string) *model.Test {
	t.Helper()
	college := f.college(t, "Exam College", true)
	draft, err := f.tests.CreateTest(f.ctx, model.TestInput{CollegeID: college.ID, Title: "Final", QuestionIDs: questionIDs})
	require.NoError(t, err)
	pub, err := f.tests.Publish(f.ctx, draft.ID)
	require.NoError(t, err)
	return pub
}

func TestSubmitScores(t *testing.T) {
	f := newFixture(t)
	q1 := f.mcq(t, nil)
	q2 := f.mcq(t, nil)
	q3 := f.freeText(t)
	q4 := f.freeText(t)
	test := publishedTest(t, f, q1.ID, q2.ID, q3.ID, q4.ID)
	st := f.student(t, "ada")

	res, err := f.tests.Submit(f.ctx, test.ID, st.ID, []model.SubmittedAnswer{
		{QuestionID: q1.ID, Selected: []string{"b"}},
		{QuestionID: q2.ID, Selected: []string{"3"}},
		{QuestionID: q3.ID, Text: "Because I like building things"},
		{QuestionID: q4.ID, Text: "   "},
	})
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.Score)
	assert.Equal(t, 4.0, res.MaxScore)
	assert.Equal(t, 1, res.PendingReview)

	done, err := f.tests.Completed(f.ctx, test.ID, st.ID)
	require.NoError(t, err)
	assert.True(t, done)

	_, err = f.tests.Submit(f.ctx, test.ID, st.ID, nil)
	assert.ErrorIs(t, err, model.ErrConflict)

	results, err := f.tests.GetResults(f.ctx, test.ID)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	profile, err := f.students.Get(f.ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, profile.TestResults, 1)
	assert.Equal(t, res.ID, profile.TestResults[0].ID)
}

func TestSubmitMatchesOptionsByText(t *testing.T) {
	f := newFixture(t)
	q := f.mcq(t, nil)
	test := publishedTest(t, f, q.ID)
	st := f.student(t, "grace")

	res, err := f.tests.Submit(f.ctx, test.ID, st.ID, []model.SubmittedAnswer{
		{QuestionID: q.ID, Selected: []string{" 4 "}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Score)
}

func TestSubmitRejections(t *testing.T) {
	f := newFixture(t)
	q := f.mcq(t, nil)
	other := f.mcq(t, nil)
	test := publishedTest(t, f, q.ID)
	st := f.student(t, "linus")

	_, err := f.tests.Submit(f.ctx, test.ID, st.ID, []model.SubmittedAnswer{{QuestionID: other.ID}})
	assert.True(t, model.IsValidation(err))

	_, err = f.tests.Submit(f.ctx, test.ID, st.ID, []model.SubmittedAnswer{{QuestionID: q.ID}, {QuestionID: q.ID}})
	assert.True(t, model.IsValidation(err))

	_, err = f.tests.Submit(f.ctx, test.ID, "ghost", nil)
	assert.ErrorIs(t, err, model.ErrNotFound)

	college := f.college(t, "Beta", true)
	draft, err := f.tests.CreateTest(f.ctx, model.TestInput{CollegeID: college.ID, Title: "Draft", QuestionIDs: []string{q.ID}})
	require.NoError(t, err)
	_, err = f.tests.Submit(f.ctx, draft.ID, st.ID, nil)
	assert.ErrorIs(t, err, model.ErrInvalidState)

	done, err := f.tests.Completed(f.ctx, test.ID, st.ID)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestMCQCorrect(t *testing.T) {
	q := model.Question{
		Type: model.QuestionTypeMCQMultiple,
		Options: []model.Option{
			{ID: "a", Text: "2", IsCorrect: true},
			{ID: "b", Text: "3", IsCorrect: true},
			{ID: "c", Text: "4"},
		},
	}

	tests := []struct {
		name     string
		selected []string
		want     bool
	}{
		{"exact ids", []string{"a", "b"}, true},
		{"order independent", []string{"b", "a"}, true},
		{"mixed ids and texts", []string{"a", "3"}, true},
		{"repeated selection", []string{"a", "a", "b"}, true},
		{"subset", []string{"a"}, false},
		{"superset", []string{"a", "b", "c"}, false},
		{"unknown entry", []string{"a", "b", "z"}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mcqCorrect(q, tt.selected))
		})
	}
}
