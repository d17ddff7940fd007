package sessions

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"adastra/internal/chat"
)

// Factory builds the conversation for a new session.
type Factory func() *chat.Conversation

type session struct {
	conv     *chat.Conversation
	lastSeen time.Time
}

// Store keeps the live chat sessions, keyed by a random id.
type Store struct {
	mu       sync.RWMutex // guards sessions
	sessions map[string]*session

	factory Factory
	ttl     time.Duration
	now     func() time.Time
}

// NewStore creates a Store. Sessions idle longer than ttl are removed by Sweep;
// a ttl of zero disables expiry.
func NewStore(factory Factory, ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*session),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a new session and returns its id.
func (s *Store) Create() (string, *chat.Conversation) {
	id := uuid.NewString()
	conv := s.factory()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &session{conv: conv, lastSeen: s.now()}
	return id, conv
}

// Get looks up a session and marks it as active.
func (s *Store) Get(id string) (*chat.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.conv, true
}

// Delete removes a session and cancels its pending reply.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		sess.conv.Close()
	}
	return ok
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many went.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	var expired []*chat.Conversation
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			expired = append(expired, sess.conv)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, conv := range expired {
		conv.Close()
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Printf("CHAT: removed %d expired session(s)", n)
			}
		}
	}
}

// Close tears down every session.
func (s *Store) Close() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range all {
		sess.conv.Close()
	}
}
