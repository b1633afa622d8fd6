package ui

import (
	"sync"

	"gopairs/domain/core"
	"gopairs/domain/factor"
)

// Workspace is an editable model kept in memory
type Workspace struct {
	ID        core.WorkspaceID `json:"id"`
	Model     factor.Model     `json:"model"`
	UpdatedAt core.Timestamp   `json:"updated_at"`
}

// WorkspaceStore holds workspaces. Reads hand out snapshots, so a generation
// running on one never observes later edits.
type WorkspaceStore struct {
	mu         sync.RWMutex
	workspaces map[core.WorkspaceID]*Workspace
}

// NewWorkspaceStore creates an empty store
func NewWorkspaceStore() *WorkspaceStore {
	return &WorkspaceStore{workspaces: make(map[core.WorkspaceID]*Workspace)}
}

// Create stores a new workspace seeded with m
func (s *WorkspaceStore) Create(m factor.Model) Workspace {
	ws := &Workspace{
		ID:        core.NewWorkspaceID(),
		Model:     m.Clone(),
		UpdatedAt: core.Now(),
	}

	s.mu.Lock()
	s.workspaces[ws.ID] = ws
	s.mu.Unlock()

	return ws.snapshot()
}

// Get returns a snapshot of a workspace
func (s *WorkspaceStore) Get(id core.WorkspaceID) (Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ws, ok := s.workspaces[id]
	if !ok {
		return Workspace{}, core.NewNotFoundError("workspace", id.String())
	}
	return ws.snapshot(), nil
}

// Update applies edit to a workspace atomically. A failed edit leaves the
// workspace unchanged.
func (s *WorkspaceStore) Update(id core.WorkspaceID, edit func(m *factor.Model) error) (Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.workspaces[id]
	if !ok {
		return Workspace{}, core.NewNotFoundError("workspace", id.String())
	}

	draft := ws.Model.Clone()
	if err := edit(&draft); err != nil {
		return Workspace{}, err
	}
	ws.Model = draft
	ws.UpdatedAt = core.Now()
	return ws.snapshot(), nil
}

// Delete removes a workspace
func (s *WorkspaceStore) Delete(id core.WorkspaceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workspaces[id]; !ok {
		return core.NewNotFoundError("workspace", id.String())
	}
	delete(s.workspaces, id)
	return nil
}

// Len returns the number of workspaces
func (s *WorkspaceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workspaces)
}

func (ws *Workspace) snapshot() Workspace {
	return Workspace{ID: ws.ID, Model: ws.Model.Clone(), UpdatedAt: ws.UpdatedAt}
}
