package filters

import (
	"sync"

	"github.com/lucsky/cuid"
)

// SessionFilterState is the remembered per-session selection at each
// cascading level, carried between resolves. It is an explicit value object:
// no ambient globals, no sharing between sessions.
type SessionFilterState struct {
	// SourceKey is the cache key of the source these selections were made
	// against. Selections reset when the active source or profile changes.
	SourceKey string

	Invoice []string
	Shifts  []string
	Riders  []string

	RiderCleared bool
}

// Remember folds a resolved FilterState back into the session value.
func (s *SessionFilterState) Remember(state FilterState) {
	s.Invoice = append([]string(nil), state.SelectedInvoice...)
	s.Shifts = append([]string(nil), state.SelectedShifts...)
	s.Riders = append([]string(nil), state.SelectedRiders...)
	s.RiderCleared = state.RiderCleared
}

// SessionStore keeps filter state keyed by session identity. Concurrent
// sessions querying different sources never observe each other's selections.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*SessionFilterState
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*SessionFilterState)}
}

// NewSession registers a fresh session bound to a source key and returns its id.
func (st *SessionStore) NewSession(sourceKey string) string {
	st.mu.Lock()
	defer st.mu.Unlock()

	id := cuid.New()
	st.sessions[id] = &SessionFilterState{SourceKey: sourceKey}
	return id
}

// Get returns the state for a session bound to the given source. When the
// session switched sources since the last call, the stale selections are
// discarded and a clean state is returned.
func (st *SessionStore) Get(id, sourceKey string) SessionFilterState {
	st.mu.Lock()
	defer st.mu.Unlock()

	state, ok := st.sessions[id]
	if !ok || state.SourceKey != sourceKey {
		fresh := &SessionFilterState{SourceKey: sourceKey}
		st.sessions[id] = fresh
		return *fresh
	}
	return *state
}

// Put stores the session's state.
func (st *SessionStore) Put(id string, state SessionFilterState) {
	st.mu.Lock()
	defer st.mu.Unlock()

	copied := state
	st.sessions[id] = &copied
}

// Drop forgets a session.
func (st *SessionStore) Drop(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
