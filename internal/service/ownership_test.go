package service

import (
	"testing"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnership(t *testing.T) {
	f := newFixture(t)
	owners := NewOwnership(f.stores)

	alpha := f.college(t, "Alpha", true)
	f.college(t, "Beta", true)
	ada := f.student(t, "ada")
	f.student(t, "bob")

	alphaAcct := &model.Principal{Subject: "profile-Alpha", Role: model.RoleCollege}
	betaAcct := &model.Principal{Subject: "profile-Beta", Role: model.RoleCollege}
	adaAcct := &model.Principal{Subject: "profile-ada", Role: model.RoleStudent}
	bobAcct := &model.Principal{Subject: "profile-bob", Role: model.RoleStudent}

	t.Run("students", func(t *testing.T) {
		assert.NoError(t, owners.Student(f.ctx, adaAcct, ada.ID))
		assert.ErrorIs(t, owners.Student(f.ctx, bobAcct, ada.ID), model.ErrForbidden)
		assert.ErrorIs(t, owners.Student(f.ctx, alphaAcct, ada.ID), model.ErrForbidden)
		assert.ErrorIs(t, owners.Student(f.ctx, nil, ada.ID), model.ErrUnauthenticated)
		assert.ErrorIs(t, owners.Student(f.ctx, adaAcct, "ghost"), model.ErrNotFound)
	})

	t.Run("colleges", func(t *testing.T) {
		assert.NoError(t, owners.College(f.ctx, alphaAcct, alpha.ID))
		assert.ErrorIs(t, owners.College(f.ctx, betaAcct, alpha.ID), model.ErrForbidden)
		assert.ErrorIs(t, owners.College(f.ctx, &model.Principal{Subject: "profile-Alpha", Role: model.RoleStudent}, alpha.ID), model.ErrForbidden)
		assert.ErrorIs(t, owners.College(f.ctx, alphaAcct, "ghost"), model.ErrNotFound)
	})

	t.Run("tests", func(t *testing.T) {
		draft, err := f.tests.CreateTest(f.ctx, model.TestInput{CollegeID: alpha.ID, Title: "Entrance"})
		require.NoError(t, err)

		assert.NoError(t, owners.Test(f.ctx, alphaAcct, draft.ID))
		assert.ErrorIs(t, owners.Test(f.ctx, betaAcct, draft.ID), model.ErrForbidden)
		assert.ErrorIs(t, owners.Test(f.ctx, alphaAcct, "ghost"), model.ErrNotFound)

		assert.NoError(t, owners.NewTest(f.ctx, alphaAcct, alpha.ID))
		assert.ErrorIs(t, owners.NewTest(f.ctx, betaAcct, alpha.ID), model.ErrForbidden)
		assert.NoError(t, owners.NewTest(f.ctx, betaAcct, "ghost"), "unknown colleges fail validation instead")
	})

	t.Run("questions", func(t *testing.T) {
		shared := f.mcq(t, nil)
		private := f.mcq(t, &alpha.ID)

		assert.NoError(t, owners.Question(f.ctx, betaAcct, shared.ID))
		assert.NoError(t, owners.Question(f.ctx, alphaAcct, private.ID))
		assert.ErrorIs(t, owners.Question(f.ctx, betaAcct, private.ID), model.ErrForbidden)
		assert.ErrorIs(t, owners.Question(f.ctx, adaAcct, shared.ID), model.ErrForbidden)
		assert.NoError(t, owners.Question(f.ctx, betaAcct, "ghost"))

		assert.NoError(t, owners.QuestionPartition(f.ctx, betaAcct, nil))
		assert.ErrorIs(t, owners.QuestionPartition(f.ctx, betaAcct, &alpha.ID), model.ErrForbidden)
		assert.ErrorIs(t, owners.QuestionPartition(f.ctx, betaAcct, strPtr("ghost")), model.ErrForbidden)
	})
}
