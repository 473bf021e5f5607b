package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_IssueAndResolve(t *testing.T) {
	store := NewMemoryStore()

	token, err := store.Issue("6591234567", 30*time.Minute)
	require.NoError(t, err)
	assert.Len(t, token, 32)

	ownerID, ok := store.Resolve(token)
	assert.True(t, ok)
	assert.Equal(t, "6591234567", ownerID)

	_, ok = store.Resolve("no-such-token")
	assert.False(t, ok)
}

// 两个令牌互相独立，吊销其一不影响另一个
func TestMemoryStore_TokensAreIndependent(t *testing.T) {
	store := NewMemoryStore()

	t1, err := store.Issue("alice", 30*time.Minute)
	require.NoError(t, err)
	t2, err := store.Issue("bob", 30*time.Minute)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)

	owner, ok := store.Resolve(t1)
	assert.True(t, ok)
	assert.Equal(t, "alice", owner)
	owner, ok = store.Resolve(t2)
	assert.True(t, ok)
	assert.Equal(t, "bob", owner)
}

// 过期即失效，无滑动续期
func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()

	token, err := store.Issue("alice", -time.Minute)
	require.NoError(t, err)

	_, ok := store.Resolve(token)
	assert.False(t, ok)
}

func TestMemoryStore_Sweep(t *testing.T) {
	store := NewMemoryStore()

	expired, err := store.Issue("alice", -time.Minute)
	require.NoError(t, err)
	alive, err := store.Issue("bob", 30*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, 1, store.Sweep())

	_, ok := store.Resolve(expired)
	assert.False(t, ok)
	_, ok = store.Resolve(alive)
	assert.True(t, ok)
}
