package export

import "github.com/sadopc/ticklist/internal/store"

// Source is the read side of the store an export needs.
type Source interface {
	ListProjects() ([]store.Project, error)
	ListEntries(projectID int64) ([]store.Entry, error)
}

// Collect gathers every project and its entries, keyed by project ID.
func Collect(src Source) ([]store.Project, map[int64][]store.Entry, error) {
	projects, err := src.ListProjects()
	if err != nil {
		return nil, nil, err
	}
	entries := make(map[int64][]store.Entry, len(projects))
	for _, p := range projects {
		es, err := src.ListEntries(p.ID)
		if err != nil {
			return nil, nil, err
		}
		entries[p.ID] = es
	}
	return projects, entries, nil
}
