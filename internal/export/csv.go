package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/natefinch/atomic"
	"github.com/sadopc/ticklist/internal/store"
)

// ToCSV writes one row per entry, grouped by project in the given order.
func ToCSV(projects []store.Project, entries map[int64][]store.Entry, path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	// Header
	if err := w.Write([]string{"Project ID", "Project", "Entry ID", "Entry", "Completed", "Created"}); err != nil {
		return err
	}

	for _, p := range projects {
		for _, e := range entries[p.ID] {
			row := []string{
				strconv.FormatInt(p.ID, 10),
				p.Title,
				strconv.FormatInt(e.ID, 10),
				e.Title,
				strconv.FormatBool(e.Completed),
				e.CreatedAt.Local().Format(time.RFC3339),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write csv file: %w", err)
	}
	return nil
}
