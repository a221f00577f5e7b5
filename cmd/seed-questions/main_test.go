package main

import (
	"testing"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMapsYAMLIntoInput(t *testing.T) {
	items, collegeID, err := load("testdata/bank.yaml")
	require.NoError(t, err)

	require.NotNil(t, collegeID)
	assert.Equal(t, "college-1", *collegeID)
	require.Len(t, items, 2)

	mcq := items[0]
	assert.Equal(t, model.QuestionTypeMCQSingle, mcq.Type)
	assert.Equal(t, model.DifficultyEasy, mcq.DifficultyLevel)
	assert.Equal(t, []string{"math"}, mcq.Categories)
	assert.Nil(t, mcq.CollegeID)
	require.Len(t, mcq.Options, 2)
	assert.Equal(t, "b", mcq.Options[1].ID)
	assert.True(t, mcq.Options[1].IsCorrect)

	require.NotNil(t, items[1].CollegeID)
	assert.Equal(t, "college-2", *items[1].CollegeID)
	assert.Empty(t, items[1].Options)
}

func TestLoadRejectsEmptyBank(t *testing.T) {
	_, _, err := load("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestRunExitCodes(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	assert.Equal(t, 2, run([]string{"-file", "testdata/bank.yaml"}))
	assert.Equal(t, 2, run([]string{"-unknown"}))

	t.Setenv("STORAGE_BACKEND", "postgres")
	assert.Equal(t, 2, run([]string{"-file", "testdata/missing.yaml"}))
}
