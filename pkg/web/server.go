package web

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/athapong/kegg-overlap/pkg/graph"
	"github.com/athapong/kegg-overlap/pkg/graph/algorithms"
	"github.com/athapong/kegg-overlap/pkg/graph/metrics"
	"github.com/athapong/kegg-overlap/pkg/graph/query"
	"github.com/athapong/kegg-overlap/pkg/graph/storage"
	"github.com/athapong/kegg-overlap/pkg/graph/visualizer"
	"github.com/athapong/kegg-overlap/pkg/kegg"
	"github.com/athapong/kegg-overlap/pkg/session"
	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const sessionCookie = "session_id"

// Server is the interactive web surface: pathway selection, overlap table and graph
type Server struct {
	store    *session.Store
	organism string
	logger   *logrus.Logger
}

// NewServer creates a web server over a session store
func NewServer(store *session.Store, organism string, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Server{
		store:    store,
		organism: organism,
		logger:   logger,
	}
}

// Handler returns the routes of the web surface
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /select", s.handleSelect)
	mux.HandleFunc("GET /graph", s.handleGraph)
	mux.HandleFunc("GET /api/pathways", s.handlePathways)
	mux.HandleFunc("GET /api/result", s.handleResult)
	mux.HandleFunc("GET /api/neighbors", s.handleNeighbors)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// session returns the caller's session, starting one and setting the cookie when needed
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.store.Get(c.Value); ok {
			return sess
		}
	}

	sess := s.store.Create(r.Context())
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

type pathwayOption struct {
	ID       string
	Name     string
	Color    string
	Selected bool
}

type indexData struct {
	Query        string
	MinCount     int
	State        session.State
	Computing    bool
	Options      []pathwayOption
	Hidden       []string
	Notices      []graph.Notice
	HasResult    bool
	Records      []graph.GeneOverlapRecord
	PathwayCount int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	query := r.URL.Query().Get("q")
	minCount := parseMinCount(r.URL.Query().Get("min"))

	selected := make(map[string]bool)
	for _, id := range sess.Selection() {
		selected[id] = true
	}

	data := indexData{
		Query:     query,
		MinCount:  minCount,
		State:     sess.State(),
		Computing: sess.State() == session.StateComputing,
	}

	visible := make(map[string]bool)
	for _, p := range kegg.FilterByText(sess.Catalog(), query) {
		visible[p.ID] = true
		data.Options = append(data.Options, pathwayOption{
			ID:       p.ID,
			Name:     p.Name,
			Color:    graph.CategoryColor(p.Category),
			Selected: selected[p.ID],
		})
	}
	// Selected pathways hidden by the filter stay selected on submit
	for _, id := range sess.Selection() {
		if !visible[id] {
			data.Hidden = append(data.Hidden, id)
		}
	}

	if n := sess.CatalogNotice(); n != nil {
		data.Notices = append(data.Notices, *n)
	}
	if result := sess.Result(); result != nil {
		data.HasResult = len(result.Selected) > 0
		data.Notices = append(data.Notices, result.Notices...)
		data.Records = graph.FilterMinCount(result.Records, minCount)
		data.PathwayCount = len(result.Selected) - len(result.Skipped)
	}

	var buf bytes.Buffer
	if err := indexPage.Execute(&buf, data); err != nil {
		s.logger.WithError(err).Error("Failed to render index page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	ids := r.PostForm["pathway"]
	s.logger.WithFields(logrus.Fields{
		"session_id":    sess.ID(),
		"pathway_count": len(ids),
	}).Info("Selection submitted")
	sess.Select(r.Context(), ids)

	params := url.Values{}
	if q := r.PostForm.Get("q"); q != "" {
		params.Set("q", q)
	}
	if n := parseMinCount(r.PostForm.Get("min")); n > 1 {
		params.Set("min", strconv.Itoa(n))
	}
	target := "/"
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	var data *graph.GraphData
	if result := sess.Result(); result != nil {
		data = result.Graph
	}

	var buf bytes.Buffer
	if err := visualizer.Render(&buf, "Pathway Overlap Network", data); err != nil {
		s.logger.WithError(err).Error("Failed to render graph page")
		http.Error(w, "failed to render graph", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handlePathways(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	catalog := kegg.FilterByText(sess.Catalog(), r.URL.Query().Get("q"))
	if catalog == nil {
		catalog = []graph.Pathway{}
	}
	s.writeJSON(w, map[string]interface{}{
		"organism": s.organism,
		"pathways": catalog,
		"notice":   sess.CatalogNotice(),
	})
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	q, err := query.FromValues(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result := sess.Result()
	if result == nil {
		result = &graph.Result{}
	}
	s.logger.WithFields(logrus.Fields{
		"session_id": sess.ID(),
		"query":      q.String(),
	}).Debug("Result requested")

	export := storage.NewExport(s.organism, result)
	if export.Table, err = q.Apply(export.Table); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, export)
}

// handleNeighbors lists the graph nodes within depth edges of a node, e.g.
// /api/neighbors?node=gene:TP53&depth=2 for the pathways of TP53 and their genes
func (s *Server) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	depth := 1
	if raw := r.URL.Query().Get("depth"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		depth = n
	}
	traversalType := algorithms.BFS
	if strings.EqualFold(r.URL.Query().Get("order"), "dfs") {
		traversalType = algorithms.DFS
	}

	var data *graph.GraphData
	if result := sess.Result(); result != nil {
		data = result.Graph
	}
	nodes, err := algorithms.NewGraphTraversal(data).Traverse(r.URL.Query().Get("node"), depth, traversalType)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeJSON(w, map[string]interface{}{"nodes": nodes})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	metrics.UpdateSystemMetrics()
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	data, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
		http.Error(w, `{"error":"encoding failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	data, _ := sonic.ConfigStd.Marshal(map[string]string{"error": err.Error()})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func parseMinCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
