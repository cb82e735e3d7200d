package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// GetPreference returns the active preference row, or the defaults (ID 0)
// when none has been saved yet.
func (s *Store) GetPreference() (*UserPreference, error) {
	p := &UserPreference{}
	var mode string
	err := s.db.QueryRow(
		`SELECT id, app_theme_id, app_theme_mode FROM user_preferences ORDER BY id LIMIT 1`,
	).Scan(&p.ID, &p.ThemeID, &mode)
	if errors.Is(err, sql.ErrNoRows) {
		return &UserPreference{ThemeMode: ThemeDark}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preference: %w", err)
	}
	p.ThemeMode, err = ParseThemeMode(mode)
	if err != nil {
		return nil, fmt.Errorf("get preference: %w", err)
	}
	return p, nil
}

// SavePreference updates the active preference row, creating it on first use.
func (s *Store) SavePreference(themeID int, mode ThemeMode) (*UserPreference, error) {
	if _, err := ParseThemeMode(string(mode)); err != nil {
		return nil, err
	}
	cur, err := s.GetPreference()
	if err != nil {
		return nil, err
	}
	if cur.ID == 0 {
		res, err := s.db.Exec(
			`INSERT INTO user_preferences (app_theme_id, app_theme_mode) VALUES (?, ?)`,
			themeID, string(mode),
		)
		if err != nil {
			return nil, fmt.Errorf("insert preference: %w", err)
		}
		cur.ID, _ = res.LastInsertId()
	} else {
		_, err := s.db.Exec(
			`UPDATE user_preferences SET app_theme_id = ?, app_theme_mode = ? WHERE id = ?`,
			themeID, string(mode), cur.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("update preference: %w", err)
		}
	}
	cur.ThemeID = themeID
	cur.ThemeMode = mode
	return cur, nil
}
