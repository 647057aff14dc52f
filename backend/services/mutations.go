package services

import (
	"project/backend/models"
	"project/backend/store"
)

// ToggleQuestionStatus sets one user's completion flag on one question and
// returns the updated row, its category backfilled to the default for legacy
// rows. An id that does not resolve returns (nil, nil): not found is a no-op
// for callers, not a failure.
func ToggleQuestionStatus(st *store.Store, id uint, userField string, completed bool) (*models.Question, error) {
	existing, err := st.FindQuestionByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if err := st.SetQuestionStatus(id, userField, completed); err != nil {
		return nil, err
	}

	updated, err := st.FindQuestionByID(id)
	if err != nil || updated == nil {
		return nil, err
	}
	if updated.Category == "" {
		updated.Category = string(models.CategoryDefault)
	}
	return updated, nil
}

// UpdateContestSolved writes one user's solved counter on one contest entry.
// The requested count is clamped into [0, max_problems] of the stored entry
// before writing, so the returned entry may differ from the raw input.
// An unknown user field or unresolved id returns (nil, nil).
func UpdateContestSolved(st *store.Store, id uint, userField string, solved int) (*models.ContestEntry, error) {
	if !models.ValidUserField(userField) {
		return nil, nil
	}

	existing, err := st.FindContestByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	clamped := models.ClampCounter(solved, existing.MaxProblems)
	if err := st.SetContestSolved(id, userField, clamped); err != nil {
		return nil, err
	}

	updated, err := st.FindContestByID(id)
	if err != nil || updated == nil {
		return nil, err
	}
	updated.Category = string(models.CategoryContest)
	return updated, nil
}
