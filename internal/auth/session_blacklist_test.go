package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newStore(t *testing.T) *InMemoryBlacklistStore {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewInMemoryBlacklistStore(ctx, time.Minute)
}

func TestBlacklistAddAndCheck(t *testing.T) {
	store := newStore(t)

	revoked, err := store.IsBlacklisted("token")
	assert.NoError(t, err)
	assert.False(t, revoked)

	assert.NoError(t, store.AddToBlacklist("token", time.Now().Add(time.Hour)))

	revoked, err = store.IsBlacklisted("token")
	assert.NoError(t, err)
	assert.True(t, revoked)
}

func TestBlacklistUpdateExpiration(t *testing.T) {
	store := newStore(t)
	exp1 := time.Now().Add(time.Hour)
	exp2 := time.Now().Add(2 * time.Hour)

	assert.NoError(t, store.AddToBlacklist("token", exp1))
	assert.NoError(t, store.AddToBlacklist("token", exp2))

	store.mu.RLock()
	defer store.mu.RUnlock()
	assert.Len(t, store.blacklist, 1)
	assert.Equal(t, exp2, store.blacklist["token"])
}

func TestBlacklistCleanUpExpired(t *testing.T) {
	store := newStore(t)
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	assert.NoError(t, store.AddToBlacklist("expired-1", past))
	assert.NoError(t, store.AddToBlacklist("expired-2", past))
	assert.NoError(t, store.AddToBlacklist("live", future))

	store.CleanUpExpired()

	store.mu.RLock()
	defer store.mu.RUnlock()
	assert.Len(t, store.blacklist, 1)
	assert.Contains(t, store.blacklist, "live")
}

func TestBlacklistPeriodicCleanUp(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := NewInMemoryBlacklistStore(ctx, 10*time.Millisecond)

	assert.NoError(t, store.AddToBlacklist("expired", time.Now().Add(-time.Second)))

	assert.Eventually(t, func() bool {
		revoked, _ := store.IsBlacklisted("expired")
		return !revoked
	}, time.Second, 10*time.Millisecond)
}

func TestBlacklistConcurrentAccess(t *testing.T) {
	store := newStore(t)
	exp := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, store.AddToBlacklist(fmt.Sprintf("token-%d", id), exp))
		}(i)
		go func(id int) {
			defer wg.Done()
			_, err := store.IsBlacklisted(fmt.Sprintf("token-%d", id))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		revoked, err := store.IsBlacklisted(fmt.Sprintf("token-%d", i))
		assert.NoError(t, err)
		assert.True(t, revoked)
	}
}
