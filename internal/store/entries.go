package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const entryColumns = `id, title, completed, created_at, project_id`

// CreateEntry inserts an incomplete entry stamped with the current time.
// Blank titles are rejected before touching the database.
func (s *Store) CreateEntry(in EntryInput) (*Entry, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	res, err := s.db.Exec(
		`INSERT INTO entries (title, completed, created_at, project_id) VALUES (?, 0, ?, ?)`,
		title, time.Now().Unix(), in.ProjectID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetEntry(id)
}

func (s *Store) GetEntry(id int64) (*Entry, error) {
	e, err := scanEntry(s.db.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get entry %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get entry %d: %w", id, err)
	}
	return e, nil
}

// ListEntries returns the project's entries in insertion order. A project
// without entries yields an empty slice.
func (s *Store) ListEntries(projectID int64) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT `+entryColumns+` FROM entries WHERE project_id = ? ORDER BY id`, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// ToggleEntry flips the completed flag and returns the updated row.
func (s *Store) ToggleEntry(id int64) (*Entry, error) {
	res, err := s.db.Exec(`UPDATE entries SET completed = 1 - completed WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("toggle entry %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("toggle entry %d: %w", id, ErrNotFound)
	}
	return s.GetEntry(id)
}

// ResetEntries marks every entry of the project incomplete in one statement
// and reports how many rows it touched.
func (s *Store) ResetEntries(projectID int64) (int64, error) {
	res, err := s.db.Exec(`UPDATE entries SET completed = 0 WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("reset entries of project %d: %w", projectID, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		var one int
		err := s.db.QueryRow(`SELECT 1 FROM projects WHERE id = ?`, projectID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("reset entries of project %d: %w", projectID, ErrNotFound)
		}
		if err != nil {
			return 0, fmt.Errorf("reset entries of project %d: %w", projectID, err)
		}
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (*Entry, error) {
	e := &Entry{}
	var completed int
	var createdAt int64
	if err := r.Scan(&e.ID, &e.Title, &completed, &createdAt, &e.ProjectID); err != nil {
		return nil, err
	}
	e.Completed = completed == 1
	e.CreatedAt = time.Unix(createdAt, 0)
	return e, nil
}
