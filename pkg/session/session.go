package session

import (
	"context"
	"sync"
	"time"

	"github.com/athapong/kegg-overlap/pkg/graph"
	"github.com/athapong/kegg-overlap/pkg/kegg"
	"github.com/sirupsen/logrus"
)

// State is the phase of a session's overlap computation
type State string

const (
	StateIdle      State = "idle"
	StateComputing State = "computing"
)

// Session owns one user's catalog, current selection and last result.
// Selections are processed one at a time: a selection submitted while another
// is computing waits for it to finish. There is no cancellation.
type Session struct {
	id       string
	analyzer *graph.Analyzer
	logger   *logrus.Entry

	run sync.Mutex // held for the whole of a computation

	mu            sync.RWMutex
	state         State
	catalog       []graph.Pathway
	catalogNotice *graph.Notice
	selection     []string
	result        *graph.Result
	lastSeen      time.Time
}

// New creates a session and loads its catalog once. A catalog failure leaves
// the session usable with an empty catalog and a warning notice.
func New(ctx context.Context, id string, source kegg.Source, logger *logrus.Logger) *Session {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	s := &Session{
		id:       id,
		analyzer: graph.NewAnalyzer(source, logger),
		logger:   logger.WithField("session_id", id),
		state:    StateIdle,
		lastSeen: time.Now(),
	}

	catalog, err := kegg.LoadCatalog(ctx, source, logger)
	s.catalog = catalog
	if err != nil {
		s.catalogNotice = &graph.Notice{Level: graph.NoticeWarning, Message: err.Error()}
	}
	s.selection = kegg.DefaultSelection(catalog)

	s.logger.WithField("pathway_count", len(catalog)).Info("Session started")
	return s
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// State returns whether a computation is running
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Catalog returns the pathway catalog sorted by display name
func (s *Session) Catalog() []graph.Pathway {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// CatalogNotice returns the warning recorded when the catalog could not be loaded
func (s *Session) CatalogNotice() *graph.Notice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalogNotice
}

// Selection returns the pathway IDs of the current selection
func (s *Session) Selection() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.selection...)
}

// Result returns the last computed result, or nil before the first selection
func (s *Session) Result() *graph.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// LastSeen returns when the session was last used
func (s *Session) LastSeen() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}

// Touch marks the session as used now
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// Select replaces the selection and recomputes the overlap synchronously
func (s *Session) Select(ctx context.Context, ids []string) *graph.Result {
	s.run.Lock()
	defer s.run.Unlock()

	s.mu.Lock()
	s.state = StateComputing
	s.selection = append([]string(nil), ids...)
	selected := kegg.Resolve(s.catalog, ids)
	s.lastSeen = time.Now()
	s.mu.Unlock()

	s.logger.WithField("pathway_count", len(selected)).Debug("Selection changed")
	result := s.analyzer.Analyze(ctx, selected)

	s.mu.Lock()
	s.result = result
	s.state = StateIdle
	s.lastSeen = time.Now()
	s.mu.Unlock()

	return result
}
