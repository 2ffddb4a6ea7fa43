package player

import "sync"

// InteractionState is the player state that is not owned by the controller
type InteractionState struct {
	ShowHelp bool
	Snapping bool
	Watching bool
	Reloads  int
	Message  string
}

// StateManager manages interaction state in a thread-safe manner
type StateManager struct {
	mu    sync.RWMutex
	state InteractionState
}

// NewStateManager creates a new StateManager instance
func NewStateManager() *StateManager {
	return &StateManager{}
}

// GetInteractionState returns a copy of the interaction state
func (sm *StateManager) GetInteractionState() InteractionState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.state
}

// UpdateInteractionState applies fn under the write lock
func (sm *StateManager) UpdateInteractionState(fn func(*InteractionState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	fn(&sm.state)
}

// SetMessage replaces the status line message
func (sm *StateManager) SetMessage(msg string) {
	sm.UpdateInteractionState(func(s *InteractionState) {
		s.Message = msg
	})
}
