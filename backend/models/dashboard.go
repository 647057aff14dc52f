package models

// DifficultyStats counts questions of one difficulty bucket for one user.
type DifficultyStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// ProgressStats is a single user's slice of the dashboard snapshot.
type ProgressStats struct {
	Total      int                        `json:"total"`
	Completed  int                        `json:"completed"`
	Difficulty map[string]DifficultyStats `json:"difficulty"`
}

// DashboardMeta carries extra counts for dashboards that need them
// (contest dashboards report how many contests are tracked).
type DashboardMeta struct {
	ContestCount int `json:"contest_count"`
}

// Dashboard is the combined snapshot for both users. It is derived data:
// recomputed on every request and every mutation, never persisted.
type Dashboard struct {
	UserOne ProgressStats  `json:"user_one"`
	UserTwo ProgressStats  `json:"user_two"`
	Meta    *DashboardMeta `json:"metadata,omitempty"`
}
