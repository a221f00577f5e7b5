package mongodb

import (
	"context"
	"errors"
	"testing"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/careerbridge/careerbridge-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(mongo.ErrNoDocuments), model.ErrNotFound)
	assert.ErrorIs(t, translate(context.DeadlineExceeded), model.ErrRemoteUnavailable)

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, translate(dup), model.ErrConflict)

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
}

func TestSearchFilterEscapesInput(t *testing.T) {
	f := searchFilter(repository.CollegeFilter{Term: " a.b* ", Country: "Kenya"})

	assert.Equal(t, true, f["is_verified"])
	or, ok := f["$or"].(bson.A)
	if assert.True(t, ok) && assert.Len(t, or, 2) {
		re := or[0].(bson.M)["name"].(primitive.Regex)
		assert.Equal(t, `a\.b\*`, re.Pattern)
		assert.Equal(t, "i", re.Options)
	}
	assert.Equal(t, primitive.Regex{Pattern: "^Kenya$", Options: "i"}, f["country"])
}

func TestSearchFilterEmptyMatchesVerified(t *testing.T) {
	assert.Equal(t, bson.M{"is_verified": true}, searchFilter(repository.CollegeFilter{}))
}
