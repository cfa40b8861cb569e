package profile

import (
	"context"
	"sync"

	"github.com/alexedwards/scs/v2"
)

const sessionKeyPrefix = "profile."

// SessionStore keeps the profile in the visitor's scs session. The request context must have passed through
// [scs.SessionManager.LoadAndSave].
type SessionStore struct {
	sessionManager *scs.SessionManager
}

func NewSessionStore(sessionManager *scs.SessionManager) *SessionStore {
	return &SessionStore{sessionManager: sessionManager}
}

func (s *SessionStore) GetField(ctx context.Context, field Field) string {
	return s.sessionManager.GetString(ctx, sessionKeyPrefix+string(field))
}

func (s *SessionStore) SetField(ctx context.Context, field Field, value string) {
	s.sessionManager.Put(ctx, sessionKeyPrefix+string(field), value)
}

// MemoryStore is a single-visitor store for tests and the CLI.
type MemoryStore struct {
	mu     sync.Mutex
	values map[Field]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{mu: sync.Mutex{}, values: map[Field]string{}}
}

func (s *MemoryStore) GetField(_ context.Context, field Field) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[field]
}

func (s *MemoryStore) SetField(_ context.Context, field Field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[field] = value
}
