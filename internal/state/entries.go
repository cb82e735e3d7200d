package state

import (
	"slices"
	"strings"
	"sync"

	"github.com/sadopc/ticklist/internal/store"
	"go.uber.org/zap"
)

// EntryRepo is the persistence Entries needs.
type EntryRepo interface {
	ListEntries(projectID int64) ([]store.Entry, error)
	CreateEntry(in store.EntryInput) (*store.Entry, error)
	ToggleEntry(id int64) (*store.Entry, error)
	ResetEntries(projectID int64) (int64, error)
}

// Entries mirrors the entries of one project, the one most recently loaded.
type Entries struct {
	notifier

	repo EntryRepo
	log  *zap.Logger

	mu        sync.RWMutex
	projectID int64
	entries   []store.Entry
}

func NewEntries(repo EntryRepo, log *zap.Logger) *Entries {
	return &Entries{repo: repo, log: log}
}

// Load replaces the cache with exactly the entries of projectID.
func (e *Entries) Load(projectID int64) error {
	entries, err := e.repo.ListEntries(projectID)
	if err != nil {
		e.log.Error("load entries", zap.Int64("project_id", projectID), zap.Error(err))
		return err
	}
	e.mu.Lock()
	e.projectID = projectID
	e.entries = entries
	e.mu.Unlock()
	e.notify()
	return nil
}

// Refresh re-reads the loaded project's entries. A Load for another project
// that lands meanwhile wins.
func (e *Entries) Refresh() error {
	pid := e.ProjectID()
	if pid == 0 {
		return nil
	}
	entries, err := e.repo.ListEntries(pid)
	if err != nil {
		e.log.Error("refresh entries", zap.Int64("project_id", pid), zap.Error(err))
		return err
	}
	e.mu.Lock()
	if e.projectID != pid {
		e.mu.Unlock()
		return nil
	}
	e.entries = entries
	e.mu.Unlock()
	e.notify()
	return nil
}

// Create inserts an entry. Blank titles are refused with store.ErrEmptyTitle.
// The confirmed row is appended only when it belongs to the loaded project.
func (e *Entries) Create(in store.EntryInput) (*store.Entry, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, store.ErrEmptyTitle
	}
	created, err := e.repo.CreateEntry(in)
	if err != nil {
		e.log.Warn("create entry", zap.Int64("project_id", in.ProjectID), zap.Error(err))
		return nil, err
	}
	e.mu.Lock()
	if created.ProjectID == e.projectID {
		e.entries = append(e.entries, *created)
	}
	e.mu.Unlock()
	e.notify()
	return created, nil
}

// Toggle flips the completion of entryID and updates the cached copy in place.
func (e *Entries) Toggle(entryID int64) (*store.Entry, error) {
	updated, err := e.repo.ToggleEntry(entryID)
	if err != nil {
		e.log.Warn("toggle entry", zap.Int64("entry_id", entryID), zap.Error(err))
		return nil, err
	}
	e.mu.Lock()
	if i := slices.IndexFunc(e.entries, func(en store.Entry) bool { return en.ID == entryID }); i >= 0 {
		e.entries[i] = *updated
	}
	e.mu.Unlock()
	e.notify()
	return updated, nil
}

// ResetAll marks every entry of projectID incomplete with one bulk update.
// The cache changes only after the update succeeded.
func (e *Entries) ResetAll(projectID int64) error {
	n, err := e.repo.ResetEntries(projectID)
	if err != nil {
		e.log.Error("reset entries", zap.Int64("project_id", projectID), zap.Error(err))
		return err
	}
	e.log.Debug("reset entries", zap.Int64("project_id", projectID), zap.Int64("rows", n))
	e.mu.Lock()
	for i := range e.entries {
		if e.entries[i].ProjectID == projectID {
			e.entries[i].Completed = false
		}
	}
	e.mu.Unlock()
	e.notify()
	return nil
}

// Forget drops the cache when it holds projectID, e.g. after the project was
// deleted. Other projects leave the cache alone.
func (e *Entries) Forget(projectID int64) {
	e.mu.Lock()
	if e.projectID != projectID {
		e.mu.Unlock()
		return
	}
	e.projectID = 0
	e.entries = nil
	e.mu.Unlock()
	e.notify()
}

// ProjectID is the project whose entries are cached, 0 before the first Load.
func (e *Entries) ProjectID() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.projectID
}

// All returns a copy of the cached entries.
func (e *Entries) All() []store.Entry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.entries)
}

func (e *Entries) AllCompleted() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return AllCompleted(e.entries)
}

func (e *Entries) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return CompletionStatus(e.entries)
}
