package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"project/backend/models"
	"project/backend/store"
)

// QuestionSeed is one record of a question seed file.
type QuestionSeed struct {
	Day           int                    `json:"day"`
	DayLabel      string                 `json:"day_label"`
	Order         *int                   `json:"order"`
	Title         string                 `json:"title"`
	Difficulty    string                 `json:"difficulty"`
	PracticeLink  string                 `json:"practice_link"`
	EditorialLink string                 `json:"editorial_link"`
	Companies     json.RawMessage        `json:"companies"`
	KeyConcept    string                 `json:"key_concept"`
	Notes         string                 `json:"notes"`
	Status        *models.QuestionStatus `json:"status"`
}

// ContestSeed is one record of the contest seed file.
type ContestSeed struct {
	Title       string              `json:"title"`
	Order       *int                `json:"order"`
	ContestLink string              `json:"contest_link"`
	MaxProblems *int                `json:"max_problems"`
	Status      *models.SolvedCount `json:"status"`
}

const defaultMaxProblems = 4

// DefaultSeedPath names the conventional seed file for a category inside
// the seed data directory.
func DefaultSeedPath(dir string, category models.Category) string {
	name := string(category) + ".json"
	if category == models.CategoryContest {
		name = "contests.json"
	}
	return filepath.Join(dir, name)
}

// loadSeedFile decodes a JSON file into out. A missing file or a payload
// that is not a list fails the whole seeding call.
func loadSeedFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("seed file %s: expected a JSON list: %w", path, err)
	}
	return nil
}

func parseCompanies(raw json.RawMessage) (models.StringList, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		var out models.StringList
		for _, item := range list {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out, nil
	}
	var joined string
	if err := json.Unmarshal(raw, &joined); err == nil {
		return models.SplitCompanies(joined), nil
	}
	return nil, fmt.Errorf("companies must be a string or a list of strings")
}

// buildQuestion normalizes one seed record. index is the record's zero-based
// position in the file, used as the default rank.
func buildQuestion(seed QuestionSeed, index int, category models.Category) (models.Question, error) {
	if strings.TrimSpace(seed.Title) == "" {
		return models.Question{}, fmt.Errorf("record %d: missing title", index)
	}

	companies, err := parseCompanies(seed.Companies)
	if err != nil {
		return models.Question{}, fmt.Errorf("record %d: %w", index, err)
	}

	label := seed.DayLabel
	if label == "" {
		label = fmt.Sprintf("Pattern %d", seed.Day)
	}
	order := index + 1
	if seed.Order != nil {
		order = *seed.Order
	}
	difficulty := seed.Difficulty
	if difficulty == "" {
		difficulty = "Medium"
	}
	status := models.QuestionStatus{}
	if seed.Status != nil {
		status = *seed.Status
	}

	return models.Question{
		Category:      string(category),
		Day:           seed.Day,
		DayLabel:      label,
		SortOrder:     order,
		Title:         seed.Title,
		Difficulty:    difficulty,
		PracticeLink:  seed.PracticeLink,
		EditorialLink: seed.EditorialLink,
		Companies:     companies,
		KeyConcept:    seed.KeyConcept,
		Notes:         seed.Notes,
		Status:        status,
	}, nil
}

// SeedQuestions populates one category from a seed file, keyed by
// (category, day, title). It only runs against an empty category: restarting
// the process must never reset tracked progress. Returns the number of
// upserted questions, 0 when the category was already populated.
func SeedQuestions(st *store.Store, category models.Category, path string) (int, error) {
	count, err := st.CountQuestionsStrict(category)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	var seeds []QuestionSeed
	if err := loadSeedFile(path, &seeds); err != nil {
		return 0, err
	}

	// Normalize everything before the first write so a malformed record
	// cannot leave a half-seeded category behind.
	questions := make([]models.Question, 0, len(seeds))
	for i, seed := range seeds {
		question, err := buildQuestion(seed, i, category)
		if err != nil {
			return 0, err
		}
		questions = append(questions, question)
	}

	for i := range questions {
		if err := st.UpsertQuestion(&questions[i]); err != nil {
			return 0, err
		}
	}
	return len(questions), nil
}

// SeedContests reconciles the contest roster against the seed file on every
// invocation. The file is authoritative for which contests exist and their
// metadata, never for the progress of entries already tracked: stored
// counters survive the upsert, and entries missing from the file are purged.
func SeedContests(st *store.Store, path string) (int, error) {
	var seeds []ContestSeed
	if err := loadSeedFile(path, &seeds); err != nil {
		return 0, err
	}

	entries := make([]models.ContestEntry, 0, len(seeds))
	titles := make([]string, 0, len(seeds))
	for i, seed := range seeds {
		if strings.TrimSpace(seed.Title) == "" {
			return 0, fmt.Errorf("record %d: missing title", i)
		}

		maxProblems := defaultMaxProblems
		if seed.MaxProblems != nil {
			maxProblems = *seed.MaxProblems
			if maxProblems < 0 {
				maxProblems = 0
			}
		}
		order := i + 1
		if seed.Order != nil {
			order = *seed.Order
		}
		solved := models.SolvedCount{}
		if seed.Status != nil {
			solved = *seed.Status
		}

		entries = append(entries, models.ContestEntry{
			Category:    string(models.CategoryContest),
			SortOrder:   order,
			Title:       seed.Title,
			ContestLink: seed.ContestLink,
			MaxProblems: maxProblems,
			Solved:      solved,
		})
		titles = append(titles, seed.Title)
	}

	for i := range entries {
		if err := st.UpsertContest(&entries[i]); err != nil {
			return 0, err
		}
	}

	// Hard sync: contests removed from the source disappear from the store.
	if err := st.DeleteContestsExcept(titles); err != nil {
		return 0, err
	}
	return len(entries), nil
}
