package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreIsolatesSessions(t *testing.T) {
	store := NewSessionStore()

	a := store.NewSession("src-a")
	b := store.NewSession("src-b")
	require.NotEqual(t, a, b)

	stateA := store.Get(a, "src-a")
	stateA.Invoice = []string{"COD"}
	store.Put(a, stateA)

	stateB := store.Get(b, "src-b")
	assert.Empty(t, stateB.Invoice)

	again := store.Get(a, "src-a")
	assert.Equal(t, []string{"COD"}, again.Invoice)
}

func TestSessionStoreResetsOnSourceChange(t *testing.T) {
	store := NewSessionStore()

	id := store.NewSession("src-a")
	state := store.Get(id, "src-a")
	state.Invoice = []string{"COD"}
	state.RiderCleared = true
	store.Put(id, state)

	// Switching the active source discards the stale selections.
	switched := store.Get(id, "src-b")
	assert.Empty(t, switched.Invoice)
	assert.False(t, switched.RiderCleared)
	assert.Equal(t, "src-b", switched.SourceKey)
}

func TestSessionStoreDrop(t *testing.T) {
	store := NewSessionStore()
	id := store.NewSession("src-a")

	state := store.Get(id, "src-a")
	state.Shifts = []string{"Morning"}
	store.Put(id, state)

	store.Drop(id)
	fresh := store.Get(id, "src-a")
	assert.Empty(t, fresh.Shifts)
}
