package services

import (
	"fmt"

	"project/backend/models"
	"project/backend/store"
)

// ComputeProgress returns one user's totals and per-difficulty stats for a
// category. The difficulty map always carries Easy/Medium/Hard; any other
// label found in the data gets its own bucket instead of being dropped.
func ComputeProgress(st *store.Store, userField string, category models.Category) (models.ProgressStats, error) {
	total, err := st.CountQuestions(category)
	if err != nil {
		return models.ProgressStats{}, err
	}
	completed, err := st.CountCompleted(category, userField)
	if err != nil {
		return models.ProgressStats{}, err
	}

	difficulty := map[string]models.DifficultyStats{
		"Easy":   {},
		"Medium": {},
		"Hard":   {},
	}
	rows, err := st.DifficultyBreakdown(category, userField)
	if err != nil {
		return models.ProgressStats{}, err
	}
	for _, row := range rows {
		label := row.Difficulty
		if label == "" {
			label = "Unknown"
		}
		difficulty[label] = models.DifficultyStats{Total: row.Total, Completed: row.Completed}
	}

	return models.ProgressStats{
		Total:      int(total),
		Completed:  int(completed),
		Difficulty: difficulty,
	}, nil
}

// BuildDashboard computes both users' progress for a category. The two
// scans are independent; at tens to low hundreds of questions that cost
// is not worth sharing.
func BuildDashboard(st *store.Store, category models.Category) (models.Dashboard, error) {
	userOne, err := ComputeProgress(st, models.UserOne, category)
	if err != nil {
		return models.Dashboard{}, err
	}
	userTwo, err := ComputeProgress(st, models.UserTwo, category)
	if err != nil {
		return models.Dashboard{}, err
	}
	return models.Dashboard{UserOne: userOne, UserTwo: userTwo}, nil
}

// BuildContestDashboard aggregates the contest tracker: the total is the sum
// of every contest's problem ceiling (the same for both users), completed is
// each user's sum of clamped counters. Difficulty does not apply to contests,
// so the map stays empty.
func BuildContestDashboard(st *store.Store) (models.Dashboard, error) {
	contests, err := st.ListContests()
	if err != nil {
		return models.Dashboard{}, err
	}

	var total, userOne, userTwo int
	for _, contest := range contests {
		total += contest.MaxProblems
		userOne += contest.Solved.UserOne
		userTwo += contest.Solved.UserTwo
	}

	return models.Dashboard{
		UserOne: models.ProgressStats{
			Total:      total,
			Completed:  userOne,
			Difficulty: map[string]models.DifficultyStats{},
		},
		UserTwo: models.ProgressStats{
			Total:      total,
			Completed:  userTwo,
			Difficulty: map[string]models.DifficultyStats{},
		},
		Meta: &models.DashboardMeta{ContestCount: len(contests)},
	}, nil
}

// DashboardFor picks the right aggregation for a category.
func DashboardFor(st *store.Store, category models.Category) (models.Dashboard, error) {
	if category == models.CategoryContest {
		return BuildContestDashboard(st)
	}
	return BuildDashboard(st, category)
}

// GroupQuestionsByDay folds an ordered question list into display groups.
// The input must already be sorted by day, rank, title (the store's order),
// so groups come out in day order with questions ranked inside each group.
func GroupQuestionsByDay(questions []models.Question) []models.DayGroup {
	groups := []models.DayGroup{}
	index := make(map[int]int)
	for _, question := range questions {
		if i, ok := index[question.Day]; ok {
			groups[i].Questions = append(groups[i].Questions, question)
			continue
		}
		label := question.DayLabel
		if label == "" {
			label = fmt.Sprintf("Pattern %d", question.Day)
		}
		index[question.Day] = len(groups)
		groups = append(groups, models.DayGroup{
			Day:       question.Day,
			Label:     label,
			Questions: []models.Question{question},
		})
	}
	return groups
}
