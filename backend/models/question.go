package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Fixed identities of the two tracked users.
const (
	UserOne = "user_one"
	UserTwo = "user_two"
)

// ValidUserField reports whether field names one of the two tracked users.
func ValidUserField(field string) bool {
	return field == UserOne || field == UserTwo
}

// QuestionStatus holds the completion flag of each user for one question.
type QuestionStatus struct {
	UserOne bool `json:"user_one"`
	UserTwo bool `json:"user_two"`
}

// StringList хранится в БД одной строкой через запятую (как Admins в
// предыдущем проекте), в JSON — списком.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "", nil
	}
	return strings.Join(l, ","), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	*l = SplitCompanies(raw)
	return nil
}

// SplitCompanies splits a comma-separated value into trimmed non-empty parts.
func SplitCompanies(raw string) StringList {
	var list StringList
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

type Question struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Category      string         `gorm:"index" json:"category"`
	Day           int            `json:"day"`
	DayLabel      string         `json:"day_label"`
	SortOrder     int            `json:"order"`
	Title         string         `gorm:"not null" json:"title"`
	Difficulty    string         `json:"difficulty"` // Easy, Medium, Hard; anything else counts as its own bucket
	PracticeLink  string         `json:"practice_link"`
	EditorialLink string         `json:"editorial_link"`
	Companies     StringList     `json:"companies"`
	KeyConcept    string         `json:"key_concept"`
	Notes         string         `json:"notes"`
	Status        QuestionStatus `gorm:"embedded;embeddedPrefix:status_" json:"status"`
	CreatedAt     time.Time      `json:"-"`
	UpdatedAt     time.Time      `json:"-"`
}

// DayGroup is one display group of questions sharing a day number.
type DayGroup struct {
	Day       int        `json:"day"`
	Label     string     `json:"label"`
	Questions []Question `json:"questions"`
}
