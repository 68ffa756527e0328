package storage

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/athapong/kegg-overlap/pkg/graph"
	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// ResultStore writes analysis results somewhere outside the process
type ResultStore interface {
	// StoreResult writes one analysis result
	StoreResult(ctx context.Context, result *graph.Result) error
}

// Export is the on-disk form of an analysis result
type Export struct {
	Organism   string                    `json:"organism,omitempty"`
	ExportedAt time.Time                 `json:"exported_at"`
	Selected   []graph.Pathway           `json:"selected"`
	Skipped    []string                  `json:"skipped"`
	Notices    []graph.Notice            `json:"notices"`
	Table      []graph.GeneOverlapRecord `json:"table"`
	Graph      *graph.GraphData          `json:"graph"`
}

// JSONResultStore implements ResultStore using a JSON file
type JSONResultStore struct {
	filePath string
	organism string
}

// NewJSONResultStore creates a new JSON result store
func NewJSONResultStore(filePath, organism string) *JSONResultStore {
	return &JSONResultStore{
		filePath: filePath,
		organism: organism,
	}
}

// StoreResult writes the result as indented JSON, replacing any previous file
func (s *JSONResultStore) StoreResult(ctx context.Context, result *graph.Result) error {
	if result == nil {
		return errors.New("cannot store nil result")
	}

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	data, err := sonic.ConfigStd.MarshalIndent(NewExport(s.organism, result), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode result")
	}

	return os.WriteFile(s.filePath, data, 0644)
}

// NewExport converts a result into its exported form with non-null collections
func NewExport(organism string, result *graph.Result) *Export {
	export := &Export{
		Organism:   organism,
		ExportedAt: time.Now(),
		Selected:   result.Selected,
		Skipped:    result.Skipped,
		Notices:    result.Notices,
		Table:      result.Records,
		Graph:      result.Graph,
	}
	if export.Selected == nil {
		export.Selected = []graph.Pathway{}
	}
	if export.Skipped == nil {
		export.Skipped = []string{}
	}
	if export.Notices == nil {
		export.Notices = []graph.Notice{}
	}
	if export.Table == nil {
		export.Table = []graph.GeneOverlapRecord{}
	}
	if export.Graph == nil {
		export.Graph = &graph.GraphData{Nodes: []graph.Node{}, Edges: []graph.Edge{}}
	}
	return export
}
