package graph

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	NodeTypePathway = "pathway"
	NodeTypeGene    = "gene"
	EdgeTypeMember  = "member_of"
)

// Pathway categories and their node colors
const (
	CategoryCancer   = "Cancer"
	CategoryVitamin  = "Vitamin"
	CategoryDiabetes = "Diabetes"
	CategoryDrug     = "Drug Metabolism"
	CategoryOther    = "Other"

	SharedGeneColor = "red"
	UniqueGeneColor = "lightgray"
)

var categoryColors = map[string]string{
	CategoryCancer:   "forestgreen",
	CategoryVitamin:  "orchid",
	CategoryDiabetes: "darkorange",
	CategoryDrug:     "royalblue",
	CategoryOther:    "gray",
}

// CategoryColor returns the node color of a pathway category
func CategoryColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return categoryColors[CategoryOther]
}

// PathwayNodeID returns the graph node ID of a pathway
func PathwayNodeID(id string) string { return "pathway:" + id }

// GeneNodeID returns the graph node ID of a gene
func GeneNodeID(symbol string) string { return "gene:" + symbol }

// MembershipGraphBuilder turns pathway memberships into a node-link graph
type MembershipGraphBuilder struct {
	nodes   map[string]Node // node ID -> node
	order   []string        // node IDs in insertion order
	edges   map[string]Edge // edge ID -> edge
	edgeIDs []string
	logger  *logrus.Logger
}

// NewMembershipGraphBuilder creates an empty builder
func NewMembershipGraphBuilder(logger *logrus.Logger) *MembershipGraphBuilder {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return &MembershipGraphBuilder{
		nodes:  make(map[string]Node),
		edges:  make(map[string]Edge),
		logger: logger,
	}
}

// BuildGraph builds the graph of memberships with gene nodes sized by the
// occurrence counts in records.
func BuildGraph(memberships []Membership, records []GeneOverlapRecord) *GraphData {
	b := NewMembershipGraphBuilder(nil)
	for _, m := range memberships {
		size := 0
		if m.Genes != nil {
			size = m.Genes.Cardinality()
		}
		b.AddPathway(m.Pathway, size)
	}
	for _, r := range records {
		b.AddGene(r.Gene, r.Count)
	}
	for _, m := range memberships {
		if m.Genes == nil {
			continue
		}
		genes := m.Genes.ToSlice()
		sort.Strings(genes)
		for _, g := range genes {
			b.AddMembership(m.Pathway.ID, g)
		}
	}
	return b.Generate()
}

// AddPathway adds a pathway node. Adding the same pathway twice is a no-op.
func (b *MembershipGraphBuilder) AddPathway(p Pathway, memberCount int) {
	id := PathwayNodeID(p.ID)
	if _, exists := b.nodes[id]; exists {
		return
	}
	label := p.Name
	if label == "" {
		label = p.ID
	}
	category := p.Category
	if category == "" {
		category = CategoryOther
	}
	b.nodes[id] = Node{
		ID:       id,
		Label:    label,
		Type:     NodeTypePathway,
		Category: category,
		Color:    CategoryColor(category),
		Count:    memberCount,
		Size:     12,
	}
	b.order = append(b.order, id)
}

// AddGene adds a gene node; genes present in more than one pathway are
// colored as shared and grow with their count.
func (b *MembershipGraphBuilder) AddGene(symbol string, count int) {
	id := GeneNodeID(symbol)
	if _, exists := b.nodes[id]; exists {
		return
	}
	color := UniqueGeneColor
	if count > 1 {
		color = SharedGeneColor
	}
	b.nodes[id] = Node{
		ID:    id,
		Label: symbol,
		Type:  NodeTypeGene,
		Color: color,
		Count: count,
		Size:  3 + 2*float64(count),
	}
	b.order = append(b.order, id)
}

// AddMembership adds the edge between a pathway and one of its genes
func (b *MembershipGraphBuilder) AddMembership(pathwayID, symbol string) {
	source := PathwayNodeID(pathwayID)
	target := GeneNodeID(symbol)
	if _, ok := b.nodes[source]; !ok {
		b.logger.WithField("pathway_id", pathwayID).Warn("Skipping membership of unknown pathway")
		return
	}
	if _, ok := b.nodes[target]; !ok {
		b.logger.WithField("gene", symbol).Warn("Skipping membership of unknown gene")
		return
	}

	edgeID := fmt.Sprintf("%s-%s-%s", source, EdgeTypeMember, target)
	if _, exists := b.edges[edgeID]; exists {
		return
	}
	b.edges[edgeID] = Edge{
		ID:     edgeID,
		Source: source,
		Target: target,
		Type:   EdgeTypeMember,
	}
	b.edgeIDs = append(b.edgeIDs, edgeID)
}

// Generate returns the graph in insertion order
func (b *MembershipGraphBuilder) Generate() *GraphData {
	nodes := make([]Node, 0, len(b.order))
	stats := GraphStats{}
	for _, id := range b.order {
		n := b.nodes[id]
		nodes = append(nodes, n)
		switch n.Type {
		case NodeTypePathway:
			stats.Pathways++
		case NodeTypeGene:
			stats.Genes++
			if n.Count > 1 {
				stats.SharedGenes++
			}
		}
	}

	edges := make([]Edge, 0, len(b.edgeIDs))
	for _, id := range b.edgeIDs {
		edges = append(edges, b.edges[id])
	}

	stats.NodeCount = len(nodes)
	stats.EdgeCount = len(edges)

	return &GraphData{
		Nodes:       nodes,
		Edges:       edges,
		Stats:       stats,
		GeneratedAt: time.Now(),
	}
}
