package auth

import (
	"context"
	"sync"
	"time"
)

// JwtBlacklistStore keeps revoked tokens until they would have expired anyway
type JwtBlacklistStore interface {
	// IsBlacklisted checks if the given token is revoked.
	IsBlacklisted(token string) (bool, error)
	// AddToBlacklist revokes token until exp.
	AddToBlacklist(token string, exp time.Time) error
}

// InMemoryBlacklistStore is a process local JwtBlacklistStore
type InMemoryBlacklistStore struct {
	blacklist map[string]time.Time
	mu        sync.RWMutex
}

// NewInMemoryBlacklistStore creates a store that drops expired entries every interval
// until ctx is cancelled.
func NewInMemoryBlacklistStore(ctx context.Context, interval time.Duration) *InMemoryBlacklistStore {
	store := &InMemoryBlacklistStore{
		blacklist: make(map[string]time.Time),
	}
	go store.periodicallyCleanUp(ctx, interval)
	return store
}

func (s *InMemoryBlacklistStore) periodicallyCleanUp(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CleanUpExpired()
		}
	}
}

// CleanUpExpired removes every entry whose expiry has passed
func (s *InMemoryBlacklistStore) CleanUpExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for token, exp := range s.blacklist {
		if exp.Before(now) {
			delete(s.blacklist, token)
		}
	}
}

// IsBlacklisted implements JwtBlacklistStore
func (s *InMemoryBlacklistStore) IsBlacklisted(token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.blacklist[token]
	return exists, nil
}

// AddToBlacklist implements JwtBlacklistStore
func (s *InMemoryBlacklistStore) AddToBlacklist(token string, exp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blacklist[token] = exp
	return nil
}
