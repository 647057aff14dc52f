package models

import "time"

// SolvedCount holds each user's solved-problem counter for one contest.
type SolvedCount struct {
	UserOne int `json:"user_one"`
	UserTwo int `json:"user_two"`
}

type ContestEntry struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Category    string      `gorm:"index" json:"category"`
	SortOrder   int         `json:"order"`
	Title       string      `gorm:"not null;uniqueIndex" json:"title"`
	ContestLink string      `json:"contest_link"`
	MaxProblems int         `json:"max_problems"`
	Solved      SolvedCount `gorm:"embedded;embeddedPrefix:solved_" json:"status"`
	CreatedAt   time.Time   `json:"-"`
	UpdatedAt   time.Time   `json:"-"`
}

// ClampCounter keeps value inside [0, maxProblems].
func ClampCounter(value, maxProblems int) int {
	if maxProblems < 0 {
		maxProblems = 0
	}
	if value < 0 {
		return 0
	}
	if value > maxProblems {
		return maxProblems
	}
	return value
}

// ClampSolved re-clamps both counters against the entry's own ceiling.
// Counters are clamped on every read and every write; an entry with
// max_problems = 0 always reports zero.
func (e *ContestEntry) ClampSolved() {
	e.Solved.UserOne = ClampCounter(e.Solved.UserOne, e.MaxProblems)
	e.Solved.UserTwo = ClampCounter(e.Solved.UserTwo, e.MaxProblems)
}
