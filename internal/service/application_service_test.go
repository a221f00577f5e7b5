package service

import (
	"testing"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAndDecide(t *testing.T) {
	f := newFixture(t)
	college := f.college(t, "Alpha", true)
	course := f.course(t, college.ID, "Computer Science")
	st := f.student(t, "ada")

	app, err := f.applications.Apply(f.ctx, st.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationPending, app.Status)
	assert.Equal(t, college.ID, app.CollegeID)

	_, err = f.applications.Apply(f.ctx, st.ID, course.ID)
	assert.ErrorIs(t, err, model.ErrConflict)

	owner := &model.Principal{Subject: college.ProfileID, Role: model.RoleCollege}
	decided, err := f.applications.Decide(f.ctx, app.ID, model.ApplicationApproved, owner)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationApproved, decided.Status)
	require.NotNil(t, decided.DecidedAt)

	_, err = f.applications.Decide(f.ctx, app.ID, model.ApplicationRejected, owner)
	assert.ErrorIs(t, err, model.ErrInvalidState)
}

func TestDecideRejections(t *testing.T) {
	f := newFixture(t)
	college := f.college(t, "Alpha", true)
	rival := f.college(t, "Beta", true)
	course := f.course(t, college.ID, "Law")
	st := f.student(t, "ada")
	app, err := f.applications.Apply(f.ctx, st.ID, course.ID)
	require.NoError(t, err)

	owner := &model.Principal{Subject: college.ProfileID, Role: model.RoleCollege}

	_, err = f.applications.Decide(f.ctx, app.ID, model.ApplicationPending, owner)
	assert.True(t, model.IsValidation(err))

	_, err = f.applications.Decide(f.ctx, app.ID, model.ApplicationApproved,
		&model.Principal{Subject: rival.ProfileID, Role: model.RoleCollege})
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = f.applications.Decide(f.ctx, app.ID, model.ApplicationApproved,
		&model.Principal{Subject: st.ProfileID, Role: model.RoleStudent})
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = f.applications.Decide(f.ctx, "missing", model.ApplicationApproved, owner)
	assert.ErrorIs(t, err, model.ErrNotFound)

	still, err := f.stores.Applications.Get(f.ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationPending, still.Status)
}

func TestApplyRequiresExistingParties(t *testing.T) {
	f := newFixture(t)
	college := f.college(t, "Alpha", true)
	course := f.course(t, college.ID, "Law")
	st := f.student(t, "ada")

	_, err := f.applications.Apply(f.ctx, "ghost", course.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = f.applications.Apply(f.ctx, st.ID, "ghost")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestApplicationListings(t *testing.T) {
	f := newFixture(t)
	alpha := f.college(t, "Alpha", true)
	beta := f.college(t, "Beta", true)
	law := f.course(t, alpha.ID, "Law")
	med := f.course(t, alpha.ID, "Medicine")
	art := f.course(t, beta.ID, "Art")
	st := f.student(t, "ada")

	for _, c := range []*model.Course{law, art, med} {
		_, err := f.applications.Apply(f.ctx, st.ID, c.ID)
		require.NoError(t, err)
	}

	mine, err := f.applications.ListForStudent(f.ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, med.ID, mine[0].CourseID, "newest first")

	received, err := f.applications.ListForCollege(f.ctx, alpha.ID)
	require.NoError(t, err)
	assert.Len(t, received, 2)

	profile, err := f.students.Get(f.ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{alpha.ID, beta.ID}, profile.AppliedColleges)

	_, err = f.applications.ListForCollege(f.ctx, "ghost")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
