package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"project/backend/models"
)

// Store is the persistence adapter for questions and contest entries.
// It holds no business logic; every caller receives it explicitly instead
// of reaching for a shared collection handle.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&models.Question{}, &models.ContestEntry{})
}

// StatusColumn maps a user field onto its question status column.
func StatusColumn(userField string) (string, error) {
	switch userField {
	case models.UserOne:
		return "status_user_one", nil
	case models.UserTwo:
		return "status_user_two", nil
	}
	return "", fmt.Errorf("unknown user field %q", userField)
}

// SolvedColumn maps a user field onto its contest counter column.
func SolvedColumn(userField string) (string, error) {
	switch userField {
	case models.UserOne:
		return "solved_user_one", nil
	case models.UserTwo:
		return "solved_user_two", nil
	}
	return "", fmt.Errorf("unknown user field %q", userField)
}

// questionsIn scopes a query to one category. The default category also
// matches rows with no category at all, written before categories existed.
func (s *Store) questionsIn(category models.Category) *gorm.DB {
	query := s.db.Model(&models.Question{})
	if category == models.CategoryDefault {
		return query.Where("category = ? OR category = '' OR category IS NULL", category)
	}
	return query.Where("category = ?", category)
}

// FindQuestions returns a category's questions ordered by day, rank and title.
func (s *Store) FindQuestions(category models.Category) ([]models.Question, error) {
	var questions []models.Question
	err := s.questionsIn(category).
		Order("day asc").
		Order("sort_order asc").
		Order("title asc").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// CountQuestions counts a category's questions, legacy rows included.
func (s *Store) CountQuestions(category models.Category) (int64, error) {
	var count int64
	err := s.questionsIn(category).Count(&count).Error
	return count, err
}

// CountQuestionsStrict counts only rows tagged with the category itself.
// Seeding existence checks use this so legacy rows cannot mask an empty
// category.
func (s *Store) CountQuestionsStrict(category models.Category) (int64, error) {
	var count int64
	err := s.db.Model(&models.Question{}).Where("category = ?", category).Count(&count).Error
	return count, err
}

// CountCompleted counts a category's questions completed by one user.
func (s *Store) CountCompleted(category models.Category, userField string) (int64, error) {
	column, err := StatusColumn(userField)
	if err != nil {
		return 0, err
	}
	var count int64
	err = s.questionsIn(category).Where(column+" = ?", true).Count(&count).Error
	return count, err
}

// DifficultyCount is one row of the grouped difficulty aggregation.
type DifficultyCount struct {
	Difficulty string
	Total      int
	Completed  int
}

// DifficultyBreakdown groups a category's questions by difficulty, counting
// the total and the given user's completions per bucket.
func (s *Store) DifficultyBreakdown(category models.Category, userField string) ([]DifficultyCount, error) {
	column, err := StatusColumn(userField)
	if err != nil {
		return nil, err
	}
	var rows []DifficultyCount
	err = s.questionsIn(category).
		Select("difficulty, COUNT(*) AS total, SUM(CASE WHEN " + column + " THEN 1 ELSE 0 END) AS completed").
		Group("difficulty").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindQuestionByID returns nil without error when the id does not resolve.
func (s *Store) FindQuestionByID(id uint) (*models.Question, error) {
	var question models.Question
	err := s.db.First(&question, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// SetQuestionStatus writes a single user's completion flag on one question.
func (s *Store) SetQuestionStatus(id uint, userField string, completed bool) error {
	column, err := StatusColumn(userField)
	if err != nil {
		return err
	}
	return s.db.Model(&models.Question{}).Where("id = ?", id).Update(column, completed).Error
}

// UpsertQuestion writes a question keyed by (category, day, title). An
// existing row keeps its id and is overwritten in full, so the same seed
// record can never produce duplicates.
func (s *Store) UpsertQuestion(question *models.Question) error {
	var existing models.Question
	err := s.db.
		Where("category = ? AND day = ? AND title = ?", question.Category, question.Day, question.Title).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(question).Error
	}
	if err != nil {
		return err
	}
	question.ID = existing.ID
	question.CreatedAt = existing.CreatedAt
	return s.db.Save(question).Error
}

// ListContests returns every contest entry ordered by rank then title,
// counters clamped.
func (s *Store) ListContests() ([]models.ContestEntry, error) {
	var contests []models.ContestEntry
	err := s.db.Model(&models.ContestEntry{}).
		Order("sort_order asc").
		Order("title asc").
		Find(&contests).Error
	if err != nil {
		return nil, err
	}
	for i := range contests {
		contests[i].ClampSolved()
	}
	return contests, nil
}

// FindContestByID returns nil without error when the id does not resolve.
func (s *Store) FindContestByID(id uint) (*models.ContestEntry, error) {
	var contest models.ContestEntry
	err := s.db.First(&contest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	contest.ClampSolved()
	return &contest, nil
}

// UpsertContest reconciles one contest entry by title. Metadata always comes
// from the incoming entry; counters of an existing row are preserved
// (re-clamped against the new ceiling), so re-seeding never resets progress.
func (s *Store) UpsertContest(entry *models.ContestEntry) error {
	var existing models.ContestEntry
	err := s.db.Where("title = ?", entry.Title).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry.ClampSolved()
		return s.db.Create(entry).Error
	}
	if err != nil {
		return err
	}
	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt
	entry.Solved = existing.Solved
	entry.ClampSolved()
	return s.db.Save(entry).Error
}

// DeleteContestsExcept removes contest entries whose title is not listed.
func (s *Store) DeleteContestsExcept(titles []string) error {
	if len(titles) == 0 {
		return s.db.Where("1 = 1").Delete(&models.ContestEntry{}).Error
	}
	return s.db.Where("title NOT IN ?", titles).Delete(&models.ContestEntry{}).Error
}

// SetContestSolved writes a single user's counter on one contest entry.
// Callers clamp the value first; the column write itself is atomic.
func (s *Store) SetContestSolved(id uint, userField string, value int) error {
	column, err := SolvedColumn(userField)
	if err != nil {
		return err
	}
	return s.db.Model(&models.ContestEntry{}).Where("id = ?", id).Update(column, value).Error
}
