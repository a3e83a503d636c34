package auth

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TokenStore maps opaque bearer tokens to admin identities. Tokens live
// from login until explicit logout or the store's TTL elapses.
type TokenStore interface {
	Issue(ctx context.Context, identity Identity) (string, error)
	// Resolve returns nil without error for unknown or expired tokens.
	Resolve(ctx context.Context, token string) (*Identity, error)
	Revoke(ctx context.Context, token string) error
}

// newToken builds an opaque token: a random UUID plus a base-36
// timestamp suffix.
func newToken() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return random + strconv.FormatInt(time.Now().UnixMilli(), 36)
}

type memoryEntry struct {
	identity  Identity
	expiresAt time.Time
}

// MemoryTokenStore is the process-local registry: sessions survive only
// as long as the process and are bounded by TTL eviction, so the map
// cannot grow without limit under repeated logins.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	tokens  map[string]memoryEntry
	ttl     time.Duration
	done    chan struct{}
	closeMu sync.Once
}

// NewMemoryTokenStore constructs a memory store with TTL eviction. A
// background janitor sweeps expired entries once a minute.
func NewMemoryTokenStore(ttl time.Duration) *MemoryTokenStore {
	s := &MemoryTokenStore{
		tokens: make(map[string]memoryEntry),
		ttl:    ttl,
		done:   make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *MemoryTokenStore) Issue(_ context.Context, identity Identity) (string, error) {
	token := newToken()
	s.mu.Lock()
	s.tokens[token] = memoryEntry{identity: identity, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

func (s *MemoryTokenStore) Resolve(_ context.Context, token string) (*Identity, error) {
	s.mu.RLock()
	entry, ok := s.tokens[token]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	identity := entry.identity
	return &identity, nil
}

func (s *MemoryTokenStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	return nil
}

// Close stops the janitor goroutine.
func (s *MemoryTokenStore) Close() {
	s.closeMu.Do(func() { close(s.done) })
}

func (s *MemoryTokenStore) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for token, entry := range s.tokens {
				if now.After(entry.expiresAt) {
					delete(s.tokens, token)
				}
			}
			s.mu.Unlock()
		}
	}
}

var _ TokenStore = (*MemoryTokenStore)(nil)
