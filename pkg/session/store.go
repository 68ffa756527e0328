package session

import (
	"context"
	"sync"
	"time"

	"github.com/athapong/kegg-overlap/pkg/graph/metrics"
	"github.com/athapong/kegg-overlap/pkg/kegg"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultMaxIdle is how long an unused session is kept before it is dropped
const DefaultMaxIdle = 2 * time.Hour

// Store maps session IDs to live sessions. It holds no state between process runs.
type Store struct {
	source  kegg.Source
	logger  *logrus.Logger
	maxIdle time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty session store
func NewStore(source kegg.Source, logger *logrus.Logger, maxIdle time.Duration) *Store {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if maxIdle <= 0 {
		maxIdle = DefaultMaxIdle
	}

	return &Store{
		source:   source,
		logger:   logger,
		maxIdle:  maxIdle,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session with id, if it is still live
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if ok {
		s.Touch()
	}
	return s, ok
}

// Create starts a new session with a fresh ID and its own catalog
func (st *Store) Create(ctx context.Context) *Session {
	st.Prune(time.Now())

	s := New(ctx, uuid.New().String(), st.source, st.logger)

	st.mu.Lock()
	st.sessions[s.ID()] = s
	metrics.ActiveSessions.Set(float64(len(st.sessions)))
	st.mu.Unlock()
	return s
}

// Prune drops sessions idle for longer than the store's max idle time
func (st *Store) Prune(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if s.State() == StateIdle && now.Sub(s.LastSeen()) > st.maxIdle {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		st.logger.WithField("removed", removed).Debug("Pruned idle sessions")
	}
	metrics.ActiveSessions.Set(float64(len(st.sessions)))
	return removed
}

// Len returns the number of live sessions
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
