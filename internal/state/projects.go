package state

import (
	"slices"
	"sync"

	"github.com/sadopc/ticklist/internal/store"
	"go.uber.org/zap"
)

// ProjectRepo is the persistence Projects needs.
type ProjectRepo interface {
	ListProjects() ([]store.Project, error)
	CreateProject(in store.ProjectInput) (*store.Project, error)
	DeleteProject(id int64) error
}

// Projects mirrors the projects table in memory.
type Projects struct {
	notifier

	repo ProjectRepo
	log  *zap.Logger

	mu       sync.RWMutex
	projects []store.Project
	onDelete []func(id int64)
}

func NewProjects(repo ProjectRepo, log *zap.Logger) *Projects {
	return &Projects{repo: repo, log: log}
}

// Load replaces the cache with every project in the database.
func (p *Projects) Load() error {
	projects, err := p.repo.ListProjects()
	if err != nil {
		p.log.Error("load projects", zap.Error(err))
		return err
	}
	p.mu.Lock()
	p.projects = projects
	p.mu.Unlock()
	p.notify()
	return nil
}

// Create inserts a project and appends the stored row once the insert
// succeeded. Title validation is left to the caller.
func (p *Projects) Create(in store.ProjectInput) (*store.Project, error) {
	created, err := p.repo.CreateProject(in)
	if err != nil {
		p.log.Warn("create project", zap.String("title", in.Title), zap.Error(err))
		return nil, err
	}
	p.mu.Lock()
	p.projects = append(p.projects, *created)
	p.mu.Unlock()
	p.notify()
	return created, nil
}

// Delete removes the project and, through the cascade, its entries.
func (p *Projects) Delete(id int64) error {
	if err := p.repo.DeleteProject(id); err != nil {
		p.log.Warn("delete project", zap.Int64("project_id", id), zap.Error(err))
		return err
	}
	p.mu.Lock()
	p.projects = slices.DeleteFunc(p.projects, func(pr store.Project) bool { return pr.ID == id })
	hooks := p.onDelete
	p.mu.Unlock()
	for _, fn := range hooks {
		fn(id)
	}
	p.notify()
	return nil
}

// OnDelete registers fn to run after a project was deleted, typically
// Entries.Forget so the cascade reaches the entry cache too.
func (p *Projects) OnDelete(fn func(id int64)) {
	p.mu.Lock()
	p.onDelete = append(p.onDelete, fn)
	p.mu.Unlock()
}

// All returns a copy of the cached projects.
func (p *Projects) All() []store.Project {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.projects)
}
