package graph

import (
	"context"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

// Pathway is a catalog entry from the pathway database
type Pathway struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// GeneOverlapRecord is one row of the overlap table
type GeneOverlapRecord struct {
	Gene     string   `json:"gene"`
	Count    int      `json:"count"`
	Pathways []string `json:"pathways"`
}

// Node represents a pathway or a gene in the membership graph
type Node struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Type     string  `json:"type"`
	Category string  `json:"category,omitempty"`
	Color    string  `json:"color"`
	Count    int     `json:"count"`
	Size     float64 `json:"size"`
}

// Edge represents a membership pair between a pathway and a gene
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"` // Pathway node ID
	Target string `json:"target"` // Gene node ID
	Type   string `json:"type"`
}

// GraphStats summarizes a membership graph
type GraphStats struct {
	NodeCount   int `json:"node_count"`
	EdgeCount   int `json:"edge_count"`
	Pathways    int `json:"pathways"`
	Genes       int `json:"genes"`
	SharedGenes int `json:"shared_genes"`
}

// GraphData is the node-link form of an overlap result
type GraphData struct {
	Nodes       []Node     `json:"nodes"`
	Edges       []Edge     `json:"edges"`
	Stats       GraphStats `json:"stats"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// NoticeLevel classifies a user-visible message
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
)

// Notice is a non-blocking message surfaced next to a result
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// Membership is the gene set of one successfully fetched pathway
type Membership struct {
	Pathway Pathway
	Genes   mapset.Set[string]
}

// Result is the outcome of one overlap analysis
type Result struct {
	Selected []Pathway           `json:"selected"`
	Skipped  []string            `json:"skipped,omitempty"`
	Records  []GeneOverlapRecord `json:"records"`
	Graph    *GraphData          `json:"graph"`
	Notices  []Notice            `json:"notices,omitempty"`

	Failures []*PathwayFetchError `json:"-"`
}

// GeneSource fetches pathway gene memberships
type GeneSource interface {
	GetGenes(ctx context.Context, pathwayID string) (mapset.Set[string], error)
}
