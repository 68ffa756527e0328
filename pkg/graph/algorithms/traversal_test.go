package algorithms

import (
	"testing"

	"github.com/athapong/kegg-overlap/pkg/graph"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func membershipGraph(memberships ...graph.Membership) *graph.GraphData {
	return graph.BuildGraph(memberships, graph.ComputeOverlap(memberships))
}

func membership(id string, genes ...string) graph.Membership {
	return graph.Membership{
		Pathway: graph.Pathway{ID: id, Name: id},
		Genes:   mapset.NewSet[string](genes...),
	}
}

func nodeIDs(nodes []graph.Node) []string {
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestTraverseBFS(t *testing.T) {
	g := membershipGraph(
		membership("P1", "geneA", "geneB"),
		membership("P2", "geneB", "geneC"),
	)
	traversal := NewGraphTraversal(g)

	nodes, err := traversal.Traverse("gene:geneA", 0, BFS)
	require.NoError(t, err)
	assert.Equal(t, []string{"gene:geneA"}, nodeIDs(nodes))

	nodes, err = traversal.Traverse("gene:geneA", 2, BFS)
	require.NoError(t, err)
	assert.Equal(t, []string{"gene:geneA", "pathway:P1", "gene:geneB"}, nodeIDs(nodes))

	nodes, err = traversal.Traverse("gene:geneA", 4, BFS)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"gene:geneA", "pathway:P1", "gene:geneB", "pathway:P2", "gene:geneC"}, nodeIDs(nodes))
}

func TestTraverseDFS(t *testing.T) {
	g := membershipGraph(
		membership("P1", "geneA", "geneB"),
		membership("P2", "geneB", "geneC"),
	)

	nodes, err := NewGraphTraversal(g).Traverse("pathway:P1", 1, DFS)
	require.NoError(t, err)
	assert.Equal(t, []string{"pathway:P1", "gene:geneA", "gene:geneB"}, nodeIDs(nodes))
}

func TestTraverseErrors(t *testing.T) {
	traversal := NewGraphTraversal(membershipGraph(membership("P1", "geneA")))

	_, err := traversal.Traverse("gene:missing", 1, BFS)
	assert.ErrorContains(t, err, "unknown node")

	_, err = traversal.Traverse("pathway:P1", -1, BFS)
	assert.Error(t, err)

	_, err = traversal.Traverse("pathway:P1", 1, "random")
	assert.ErrorContains(t, err, "unsupported traversal type")
}

func TestPathwayGroups(t *testing.T) {
	g := membershipGraph(
		membership("P1", "geneA", "geneB"),
		membership("P3", "geneD"),
		membership("P2", "geneB", "geneC"),
		membership("P4"),
	)

	assert.Equal(t, [][]string{{"P1", "P2"}, {"P3"}, {"P4"}}, NewGraphTraversal(g).PathwayGroups())
}

func TestPathwayGroupsEmpty(t *testing.T) {
	assert.Empty(t, NewGraphTraversal(nil).PathwayGroups())
	assert.Empty(t, NewGraphTraversal(membershipGraph()).PathwayGroups())
}
