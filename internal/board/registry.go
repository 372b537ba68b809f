package board

import (
	"sync"

	"kanban-board-api/internal/repository"
)

type scope struct {
	userID  uint64
	boardID uint64
}

// Registry owns one State per (user, board) scope. States are created on first
// use and dropped when the user signs out, so column state follows the session
// lifecycle instead of living as ambient global state.
type Registry struct {
	mu     sync.Mutex
	tasks  repository.TaskRepository
	states map[scope]*State
}

// NewRegistry creates an empty state registry backed by the task repository.
func NewRegistry(tasks repository.TaskRepository) *Registry {
	return &Registry{
		tasks:  tasks,
		states: make(map[scope]*State),
	}
}

// Get returns the state for a scope, creating it if needed.
func (r *Registry) Get(userID, boardID uint64) *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := scope{userID: userID, boardID: boardID}
	if st, ok := r.states[key]; ok {
		return st
	}

	st := NewState(userID, boardID, r.tasks)
	r.states[key] = st
	return st
}

// ClearUser drops every state belonging to a user. Called on sign-out.
func (r *Registry) ClearUser(userID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.states {
		if key.userID == userID {
			delete(r.states, key)
		}
	}
}
