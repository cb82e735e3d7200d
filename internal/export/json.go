package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/natefinch/atomic"
	"github.com/sadopc/ticklist/internal/state"
	"github.com/sadopc/ticklist/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Projects   []jsonProject `json:"projects"`
}

type jsonProject struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description *string     `json:"description,omitempty"`
	CreatedAt   string      `json:"created_at"`
	Complete    bool        `json:"complete"`
	Entries     []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
}

func ToJSON(projects []store.Project, entries map[int64][]store.Entry, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(projects),
	}

	for _, p := range projects {
		es := entries[p.ID]
		jp := jsonProject{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			CreatedAt:   p.CreatedAt.Local().Format(time.RFC3339),
			Complete:    state.AllCompleted(es),
			Entries:     []jsonEntry{},
		}
		for _, e := range es {
			jp.Entries = append(jp.Entries, jsonEntry{
				ID:        e.ID,
				Title:     e.Title,
				Completed: e.Completed,
				CreatedAt: e.CreatedAt.Local().Format(time.RFC3339),
			})
		}
		export.Projects = append(export.Projects, jp)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
