package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project/backend/models"
)

func TestToggleQuestionStatusUnknownIDIsNoOp(t *testing.T) {
	st := newTestStore(t)
	question := models.Question{Category: "striver", Day: 1, Title: "Only One"}
	require.NoError(t, st.UpsertQuestion(&question))

	updated, err := ToggleQuestionStatus(st, question.ID+100, models.UserOne, true)
	require.NoError(t, err)
	assert.Nil(t, updated)

	stored, err := st.FindQuestionByID(question.ID)
	require.NoError(t, err)
	assert.False(t, stored.Status.UserOne, "a miss must not write anything")
}

func TestToggleQuestionStatusBackfillsCategory(t *testing.T) {
	st := newTestStore(t)
	legacy := models.Question{Category: "", Day: 1, Title: "Legacy"}
	require.NoError(t, st.UpsertQuestion(&legacy))

	updated, err := ToggleQuestionStatus(st, legacy.ID, models.UserTwo, true)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, string(models.CategoryDefault), updated.Category)
	assert.True(t, updated.Status.UserTwo)
	assert.False(t, updated.Status.UserOne)
}

func TestToggleQuestionStatusFlipsBothWays(t *testing.T) {
	st := newTestStore(t)
	question := models.Question{Category: "striver", Day: 1, Title: "Flip"}
	require.NoError(t, st.UpsertQuestion(&question))

	updated, err := ToggleQuestionStatus(st, question.ID, models.UserOne, true)
	require.NoError(t, err)
	assert.True(t, updated.Status.UserOne)

	updated, err = ToggleQuestionStatus(st, question.ID, models.UserOne, false)
	require.NoError(t, err)
	assert.False(t, updated.Status.UserOne)
}

func TestUpdateContestSolvedClamps(t *testing.T) {
	st := newTestStore(t)
	entry := models.ContestEntry{Category: "contest_tracker", Title: "Weekly 1", MaxProblems: 4, Solved: models.SolvedCount{UserOne: 2}}
	require.NoError(t, st.UpsertContest(&entry))

	updated, err := UpdateContestSolved(st, entry.ID, models.UserTwo, 5)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 4, updated.Solved.UserTwo, "requests above the ceiling clamp down")
	assert.Equal(t, 2, updated.Solved.UserOne, "the other user's counter is untouched")
	assert.Equal(t, string(models.CategoryContest), updated.Category)

	updated, err = UpdateContestSolved(st, entry.ID, models.UserTwo, -3)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 0, updated.Solved.UserTwo, "negative requests clamp to zero")
}

func TestUpdateContestSolvedRejectsInvalidInput(t *testing.T) {
	st := newTestStore(t)
	entry := models.ContestEntry{Category: "contest_tracker", Title: "Weekly 1", MaxProblems: 4}
	require.NoError(t, st.UpsertContest(&entry))

	updated, err := UpdateContestSolved(st, entry.ID, "user_three", 2)
	require.NoError(t, err)
	assert.Nil(t, updated, "unknown user fields are rejected with an empty result")

	updated, err = UpdateContestSolved(st, entry.ID+100, models.UserOne, 2)
	require.NoError(t, err)
	assert.Nil(t, updated, "unresolved ids are rejected with an empty result")

	stored, err := st.FindContestByID(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Solved.UserOne)
	assert.Equal(t, 0, stored.Solved.UserTwo)
}

func TestUpdateContestSolvedZeroCeiling(t *testing.T) {
	st := newTestStore(t)
	entry := models.ContestEntry{Category: "contest_tracker", Title: "Practice", MaxProblems: 0}
	require.NoError(t, st.UpsertContest(&entry))

	updated, err := UpdateContestSolved(st, entry.ID, models.UserOne, 3)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 0, updated.Solved.UserOne, "a zero ceiling always reports zero")
}
