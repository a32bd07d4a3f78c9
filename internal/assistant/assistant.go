package assistant

import "sync"

// State is the process-wide gate deciding whether free-form messages are
// forwarded to the LLM. It starts enabled and is not persisted across
// restarts. Enable and Disable take effect for subsequently routed
// messages; a message already past the gate check is unaffected.
type State struct {
	mu      sync.Mutex
	enabled bool
}

func NewState() *State {
	return &State{enabled: true}
}

func (s *State) Enable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = true
}

func (s *State) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = false
}

func (s *State) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}
