package store

import (
	"fmt"
	"time"
)

type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectInput carries the caller-supplied fields of a new project.
// A zero CreatedAt is replaced by the insert time.
type ProjectInput struct {
	Title       string
	Description *string
	CreatedAt   time.Time
}

type Entry struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	ProjectID int64     `json:"project_id"`
}

type EntryInput struct {
	Title     string
	ProjectID int64
}

type ThemeMode string

const (
	ThemeDark  ThemeMode = "dark"
	ThemeLight ThemeMode = "light"
)

// ParseThemeMode validates a stored or user-supplied mode.
func ParseThemeMode(s string) (ThemeMode, error) {
	switch ThemeMode(s) {
	case ThemeDark, ThemeLight:
		return ThemeMode(s), nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrInvalidThemeMode)
}

type UserPreference struct {
	ID        int64     `json:"id"`
	ThemeID   int       `json:"theme_id"`
	ThemeMode ThemeMode `json:"theme_mode"`
}

// Progress is the per-project entry tally.
type Progress struct {
	ProjectID    int64
	ProjectTitle string
	Total        int
	Completed    int
}
