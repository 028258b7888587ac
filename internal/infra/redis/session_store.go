package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"study-quiz-service/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Sessions hold a mutex and a clock, so they stay in a local map; Redis carries a
// liveness marker per session (quiz:session:{id} -> user ID) with a TTL, which lets
// operators see and expire in-flight attempts across instances.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Save(session *app.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(session.ID()), session.UserID(), s.ttl).Err()
}

// Get returns a local session whose liveness marker is still present, sliding
// the marker's expiry forward.
func (s *SessionStore) Get(sessionID string) (*app.Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	alive, err := s.touch(context.Background(), sessionID)
	if err == nil && !alive {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, false
	}
	// redis errors keep the local session usable
	return session, true
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	_ = s.client.Del(context.Background(), s.key(sessionID)).Err()
}

func (s *SessionStore) touch(ctx context.Context, sessionID string) (bool, error) {
	if s.ttl <= 0 {
		n, err := s.client.Exists(ctx, s.key(sessionID)).Result()
		return n > 0, err
	}
	return s.client.Expire(ctx, s.key(sessionID), s.ttl).Result()
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:session:" + sessionID
}
