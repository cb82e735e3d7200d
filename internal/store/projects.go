package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func (s *Store) CreateProject(in ProjectInput) (*Project, error) {
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := s.db.Exec(
		`INSERT INTO projects (title, description, created_at) VALUES (?, ?, ?)`,
		in.Title, in.Description, createdAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetProject(id)
}

func (s *Store) GetProject(id int64) (*Project, error) {
	p := &Project{}
	var desc sql.NullString
	var createdAt int64
	err := s.db.QueryRow(
		`SELECT id, title, description, created_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Title, &desc, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	if desc.Valid {
		p.Description = &desc.String
	}
	p.CreatedAt = time.Unix(createdAt, 0)
	return p, nil
}

// ListProjects returns every project in insertion order.
func (s *Store) ListProjects() ([]Project, error) {
	rows, err := s.db.Query(`SELECT id, title, description, created_at FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		var desc sql.NullString
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.Title, &desc, &createdAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			d := desc.String
			p.Description = &d
		}
		p.CreatedAt = time.Unix(createdAt, 0)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// DeleteProject removes the project; its entries go with it via ON DELETE CASCADE.
func (s *Store) DeleteProject(id int64) error {
	res, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete project %d: %w", id, ErrNotFound)
	}
	return nil
}

// ProjectProgress tallies total and completed entries for every project.
func (s *Store) ProjectProgress() ([]Progress, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.title, COUNT(e.id), COALESCE(SUM(e.completed), 0)
		FROM projects p
		LEFT JOIN entries e ON e.project_id = p.id
		GROUP BY p.id
		ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("project progress: %w", err)
	}
	defer rows.Close()

	var out []Progress
	for rows.Next() {
		var pr Progress
		if err := rows.Scan(&pr.ProjectID, &pr.ProjectTitle, &pr.Total, &pr.Completed); err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}
