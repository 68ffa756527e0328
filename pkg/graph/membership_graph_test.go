package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGraphExample(t *testing.T) {
	memberships := []Membership{
		membership("P1", "geneA", "geneB"),
		membership("P2", "geneB", "geneC"),
	}
	g := BuildGraph(memberships, ComputeOverlap(memberships))

	assert.Len(t, g.Nodes, 5)
	assert.Len(t, g.Edges, 4)
	assert.Equal(t, GraphStats{NodeCount: 5, EdgeCount: 4, Pathways: 2, Genes: 3, SharedGenes: 1}, g.Stats)

	ids := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"pathway:P1", "pathway:P2", "gene:geneB", "gene:geneA", "gene:geneC"}, ids)

	pairs := make([][2]string, 0, len(g.Edges))
	for _, e := range g.Edges {
		assert.Equal(t, EdgeTypeMember, e.Type)
		pairs = append(pairs, [2]string{e.Source, e.Target})
	}
	assert.Equal(t, [][2]string{
		{"pathway:P1", "gene:geneA"},
		{"pathway:P1", "gene:geneB"},
		{"pathway:P2", "gene:geneB"},
		{"pathway:P2", "gene:geneC"},
	}, pairs)
}

func TestBuildGraphColors(t *testing.T) {
	memberships := []Membership{
		{Pathway: Pathway{ID: "hsa05200", Name: "Pathways in cancer", Category: CategoryCancer}, Genes: membership("x", "TP53", "KRAS").Genes},
		{Pathway: Pathway{ID: "hsa04930", Name: "Type II diabetes mellitus", Category: CategoryDiabetes}, Genes: membership("x", "KRAS").Genes},
		{Pathway: Pathway{ID: "hsa00000"}, Genes: membership("x").Genes},
	}
	g := BuildGraph(memberships, ComputeOverlap(memberships))

	byID := make(map[string]Node)
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}

	cancer := byID["pathway:hsa05200"]
	assert.Equal(t, NodeTypePathway, cancer.Type)
	assert.Equal(t, "forestgreen", cancer.Color)
	assert.Equal(t, 2, cancer.Count)
	assert.Equal(t, "darkorange", byID["pathway:hsa04930"].Color)

	unnamed := byID["pathway:hsa00000"]
	assert.Equal(t, "hsa00000", unnamed.Label)
	assert.Equal(t, CategoryOther, unnamed.Category)
	assert.Equal(t, "gray", unnamed.Color)

	kras := byID["gene:KRAS"]
	assert.Equal(t, SharedGeneColor, kras.Color)
	assert.Equal(t, 2, kras.Count)
	tp53 := byID["gene:TP53"]
	assert.Equal(t, UniqueGeneColor, tp53.Color)
	assert.Greater(t, kras.Size, tp53.Size)
}

func TestBuildGraphEmpty(t *testing.T) {
	g := BuildGraph(nil, ComputeOverlap(nil))
	require.NotNil(t, g)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
	assert.Equal(t, GraphStats{}, g.Stats)
}

func TestBuilderIgnoresDuplicatesAndUnknownNodes(t *testing.T) {
	b := NewMembershipGraphBuilder(quietLogger())
	b.AddPathway(Pathway{ID: "P1"}, 1)
	b.AddPathway(Pathway{ID: "P1"}, 1)
	b.AddGene("geneA", 1)
	b.AddMembership("P1", "geneA")
	b.AddMembership("P1", "geneA")
	b.AddMembership("P1", "geneZ")
	b.AddMembership("P9", "geneA")

	g := b.Generate()
	assert.Len(t, g.Nodes, 2)
	assert.Len(t, g.Edges, 1)
}

func TestCategoryColorFallback(t *testing.T) {
	assert.Equal(t, "royalblue", CategoryColor(CategoryDrug))
	assert.Equal(t, "orchid", CategoryColor(CategoryVitamin))
	assert.Equal(t, "gray", CategoryColor("Unknown"))
}
