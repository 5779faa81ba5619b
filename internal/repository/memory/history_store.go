package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

const (
	DefaultSessionTTL  = 720 * time.Hour
	DefaultMaxSessions = 100000
)

type session struct {
	viewed    []uint64
	purchased map[uint64]struct{}
	searches  []string
	touched   time.Time
}

// HistoryStore keeps session history in process. Used by tests and when
// Redis is disabled. Sessions idle for longer than ttl are dropped, and once
// maxSessions is reached the least recently touched session makes room.
type HistoryStore struct {
	mu          sync.Mutex
	sessions    map[string]*session
	ttl         time.Duration
	maxSessions int
	lastSweep   time.Time
	now         func() time.Time
}

func NewHistoryStore() *HistoryStore {
	return NewBoundedHistoryStore(DefaultSessionTTL, DefaultMaxSessions)
}

// NewBoundedHistoryStore mirrors the Redis key expiry. A ttl or maxSessions
// of zero or less disables that bound.
func NewBoundedHistoryStore(ttl time.Duration, maxSessions int) *HistoryStore {
	return &HistoryStore{
		sessions:    make(map[string]*session),
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

func (s *HistoryStore) expired(sess *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.touched) > s.ttl
}

// lookup returns a live session without touching it.
func (s *HistoryStore) lookup(sessionID string) (*session, bool) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	if s.expired(sess, s.now()) {
		delete(s.sessions, sessionID)
		return nil, false
	}
	return sess, true
}

// get returns the session for a write, creating it when needed.
func (s *HistoryStore) get(sessionID string) *session {
	now := s.now()
	s.sweep(now)

	sess, ok := s.sessions[sessionID]
	if ok && s.expired(sess, now) {
		delete(s.sessions, sessionID)
		ok = false
	}
	if !ok {
		s.makeRoom()
		sess = &session{purchased: make(map[uint64]struct{})}
		s.sessions[sessionID] = sess
	}
	sess.touched = now
	return sess
}

// sweep drops expired sessions at most once per ttl.
func (s *HistoryStore) sweep(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
		}
	}
}

func (s *HistoryStore) makeRoom() {
	if s.maxSessions <= 0 || len(s.sessions) < s.maxSessions {
		return
	}

	var oldestID string
	var oldest time.Time
	for id, sess := range s.sessions {
		if oldestID == "" || sess.touched.Before(oldest) {
			oldestID, oldest = id, sess.touched
		}
	}
	delete(s.sessions, oldestID)
}

// Len reports how many sessions are held.
func (s *HistoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func pushFront[T comparable](list []T, v T, max int) []T {
	if max <= 0 {
		return nil
	}
	out := make([]T, 0, min(len(list)+1, max))
	out = append(out, v)
	for _, existing := range list {
		if len(out) == max {
			break
		}
		if existing != v {
			out = append(out, existing)
		}
	}
	return out
}

func (s *HistoryStore) PushViewed(ctx context.Context, sessionID string, productID uint64, max int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(sessionID)
	sess.viewed = pushFront(sess.viewed, productID, max)
	return nil
}

func (s *HistoryStore) Viewed(ctx context.Context, sessionID string) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookup(sessionID)
	if !ok {
		return []uint64{}, nil
	}
	return append([]uint64{}, sess.viewed...), nil
}

func (s *HistoryStore) AddPurchased(ctx context.Context, sessionID string, productIDs []uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(sessionID)
	for _, id := range productIDs {
		sess.purchased[id] = struct{}{}
	}
	return nil
}

// Purchased returns the purchased set in ascending id order.
func (s *HistoryStore) Purchased(ctx context.Context, sessionID string) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []uint64{}
	sess, ok := s.lookup(sessionID)
	if !ok {
		return out, nil
	}
	for id := range sess.purchased {
		out = append(out, id)
	}
	slices.Sort(out)
	return out, nil
}

func (s *HistoryStore) PushSearch(ctx context.Context, sessionID, query string, max int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(sessionID)
	sess.searches = pushFront(sess.searches, query, max)
	return nil
}

func (s *HistoryStore) Searches(ctx context.Context, sessionID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookup(sessionID)
	if !ok {
		return []string{}, nil
	}
	return append([]string{}, sess.searches...), nil
}
