package oauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateStore_IssueAndConsume(t *testing.T) {
	store := NewStateStore(time.Minute)

	state := store.Issue()
	require.NotEmpty(t, state)

	assert.True(t, store.Consume(state))
	// Single use: a second consume of the same nonce fails.
	assert.False(t, store.Consume(state))
}

func TestStateStore_UnknownState(t *testing.T) {
	store := NewStateStore(time.Minute)

	assert.False(t, store.Consume("never-issued"))
	assert.False(t, store.Consume(""))
}

func TestStateStore_ExpiredState(t *testing.T) {
	store := NewStateStore(-time.Second)

	state := store.Issue()
	assert.False(t, store.Consume(state))
}

func TestStateStore_IssuesUniqueNonces(t *testing.T) {
	store := NewStateStore(time.Minute)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		state := store.Issue()
		assert.False(t, seen[state])
		seen[state] = true
	}
}

func TestStateStore_ClearDropsOnlyExpired(t *testing.T) {
	store := NewStateStore(time.Minute)
	live := store.Issue()

	expiredStore := NewStateStore(-time.Second)
	_ = expiredStore.Issue()

	store.Clear()
	assert.True(t, store.Consume(live))

	expiredStore.Clear()
	assert.Equal(t, 0, len(expiredStore.states))
}
