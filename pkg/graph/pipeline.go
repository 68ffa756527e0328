package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/athapong/kegg-overlap/pkg/graph/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// PathwayFetchError reports that one selected pathway's genes were unavailable
type PathwayFetchError struct {
	PathwayID string
	Err       error
}

func (e *PathwayFetchError) Error() string {
	return fmt.Sprintf("pathway %s: %v", e.PathwayID, e.Err)
}

func (e *PathwayFetchError) Unwrap() error { return e.Err }

// Analyzer fetches the memberships of selected pathways and computes their overlap.
// Fetches run one after another; a failed pathway is skipped, never fatal.
type Analyzer struct {
	source GeneSource
	logger *logrus.Logger
}

// NewAnalyzer creates an analyzer over a gene source
func NewAnalyzer(source GeneSource, logger *logrus.Logger) *Analyzer {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return &Analyzer{
		source: source,
		logger: logger,
	}
}

// Analyze fetches each selected pathway once, in order, and returns the overlap
// table and membership graph over the pathways that were fetched successfully.
func (a *Analyzer) Analyze(ctx context.Context, selected []Pathway) *Result {
	timer := prometheus.NewTimer(metrics.AnalysisDuration.WithLabelValues("completed"))
	defer timer.ObserveDuration()

	selected = dedupe(selected)
	a.logger.WithField("pathway_count", len(selected)).Info("Starting overlap analysis")

	result := &Result{Selected: selected}
	memberships := make([]Membership, 0, len(selected))
	for _, p := range selected {
		genes, err := a.source.GetGenes(ctx, p.ID)
		if err != nil {
			fetchErr := &PathwayFetchError{PathwayID: p.ID, Err: err}
			a.logger.WithError(err).WithField("pathway_id", p.ID).Warn("Skipping pathway")
			metrics.PathwaysSkipped.Inc()
			result.Failures = append(result.Failures, fetchErr)
			result.Skipped = append(result.Skipped, p.ID)
			continue
		}
		memberships = append(memberships, Membership{Pathway: p, Genes: genes})
	}

	result.Records = ComputeOverlap(memberships)
	result.Graph = BuildGraph(memberships, result.Records)
	recordGraphMetrics(result.Graph)

	if len(result.Failures) > 0 {
		result.Notices = append(result.Notices, skipNotice(result.Failures))
	}

	a.logger.WithFields(logrus.Fields{
		"pathway_count": len(memberships),
		"gene_count":    len(result.Records),
		"skipped":       len(result.Skipped),
	}).Info("Overlap analysis completed")
	return result
}

func skipNotice(failures []*PathwayFetchError) Notice {
	ids := make([]string, 0, len(failures))
	for _, f := range failures {
		ids = append(ids, f.PathwayID)
	}
	return Notice{
		Level:   NoticeWarning,
		Message: fmt.Sprintf("Skipped %d pathway(s) whose genes could not be fetched: %s", len(ids), strings.Join(ids, ", ")),
	}
}

// dedupe drops empty and repeated IDs, treating "path:hsa05200" and "hsa05200" as one
func dedupe(selected []Pathway) []Pathway {
	seen := make(map[string]bool, len(selected))
	out := make([]Pathway, 0, len(selected))
	for _, p := range selected {
		p.ID = strings.TrimPrefix(strings.TrimSpace(p.ID), "path:")
		if p.ID == "" || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

func recordGraphMetrics(g *GraphData) {
	metrics.GraphNodeCount.WithLabelValues(NodeTypePathway).Set(float64(g.Stats.Pathways))
	metrics.GraphNodeCount.WithLabelValues(NodeTypeGene).Set(float64(g.Stats.Genes))
	metrics.GraphEdgeCount.WithLabelValues(EdgeTypeMember).Set(float64(g.Stats.EdgeCount))
}
