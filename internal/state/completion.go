// Package state holds the in-memory project and entry caches the views read
// from. Every mutation goes to the database first; the cache follows only
// after the database confirmed it.
package state

import "github.com/sadopc/ticklist/internal/store"

// Status is the completion state of a project's checklist.
type Status int

const (
	StatusEmpty Status = iota
	StatusInProgress
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusInProgress:
		return "in progress"
	case StatusDone:
		return "done"
	}
	return "unknown"
}

// CompletionStatus derives the checklist state from its entries.
func CompletionStatus(entries []store.Entry) Status {
	if len(entries) == 0 {
		return StatusEmpty
	}
	for _, e := range entries {
		if !e.Completed {
			return StatusInProgress
		}
	}
	return StatusDone
}

// AllCompleted reports whether there is at least one entry and every entry
// is completed.
func AllCompleted(entries []store.Entry) bool {
	return CompletionStatus(entries) == StatusDone
}
