package store

import "sync"

// Handle hands out the process-wide connection. The database is opened on
// the first call to Conn and the same *Store is returned afterwards; a failed
// open is remembered and returned on every call.
type Handle struct {
	path string
	open func(string) (*Store, error)

	once  sync.Once
	store *Store
	err   error
}

func NewHandle(dbPath string) *Handle {
	return &Handle{path: dbPath, open: New}
}

func (h *Handle) Conn() (*Store, error) {
	h.once.Do(func() {
		h.store, h.err = h.open(h.path)
	})
	return h.store, h.err
}

// Close releases the connection if it was ever opened.
func (h *Handle) Close() error {
	if h.store == nil {
		return nil
	}
	return h.store.Close()
}
