package session

import (
	"sync"
	"time"

	"github.com/orgball2608/insta-dashboard/internal/feed"
	"github.com/orgball2608/insta-dashboard/internal/instagram"
	"github.com/orgball2608/insta-dashboard/internal/metrics"
	"go.uber.org/fx"
)

const (
	Header    = "X-Session-ID"
	DefaultID = "default"
)

// Session is the server-side state of one open dashboard.
type Session struct {
	ID       string
	Feed     *feed.Accumulator
	Comments *feed.CommentCache

	lastSeen time.Time
}

type Opts struct {
	fx.In
	Client  instagram.Client
	Metrics *metrics.Metrics `optional:"true"`
}

// Store owns every live session.
type Store struct {
	client  instagram.Client
	metrics *metrics.Metrics
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func New(opts Opts) *Store {
	return &Store{
		client:   opts.Client,
		metrics:  opts.Metrics,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for id, creating it on first use. An empty id
// maps to DefaultID.
func (s *Store) Get(id string) *Session {
	if id == "" {
		id = DefaultID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{
			ID:       id,
			Feed:     feed.NewAccumulator(s.client),
			Comments: feed.NewCommentCache(s.client),
		}
		s.sessions[id] = sess
		s.metrics.SetSessions(len(s.sessions))
	}
	sess.lastSeen = s.now()
	return sess
}

// ResetFeeds empties the feed of every session.
func (s *Store) ResetFeeds() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Feed.Reset()
	}
}

// EvictIdle drops sessions not used for longer than ttl and returns how
// many were removed.
func (s *Store) EvictIdle(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	evicted := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	s.metrics.SetSessions(len(s.sessions))
	return evicted
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
