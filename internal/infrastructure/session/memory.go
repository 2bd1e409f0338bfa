package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/tasktracker/task-api/internal/core/domain"
)

const (
	DefaultIdleTimeout = 60 * time.Minute
	tokenBytes         = 32
)

// MemoryStore keeps sessions in process memory. Sessions expire after
// idle elapses without a Get; they do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	idle     time.Duration
	now      func() time.Time
}

// NewMemoryStore creates a MemoryStore. If idle <= 0, DefaultIdleTimeout is used.
func NewMemoryStore(idle time.Duration) *MemoryStore {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	return &MemoryStore{
		sessions: make(map[string]*domain.Session),
		idle:     idle,
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, userID string) (*domain.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	sess := &domain.Session{
		Token:      token,
		UserID:     userID,
		CreatedAt:  now,
		LastSeenAt: now,
	}

	s.mu.Lock()
	s.sessions[token] = sess
	s.mu.Unlock()

	clone := *sess
	return &clone, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (*domain.Session, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if sess.Expired(now, s.idle) {
		delete(s.sessions, token)
		return nil, domain.ErrSessionNotFound
	}
	sess.LastSeenAt = now

	clone := *sess
	return &clone, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// Len returns the number of sessions currently held, expired ones included
// until the next sweep.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, sess := range s.sessions {
		if sess.Expired(now, s.idle) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// Start runs Sweep every interval until ctx is cancelled.
func (s *MemoryStore) Start(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 && onSweep != nil {
					onSweep(n)
				}
			}
		}
	}()
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
