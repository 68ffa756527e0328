package algorithms

import (
	"strings"

	"github.com/athapong/kegg-overlap/pkg/graph"
	"github.com/pkg/errors"
)

type TraversalType string

const (
	BFS TraversalType = "BFS"
	DFS TraversalType = "DFS"
)

// GraphTraversal walks a membership graph, following edges in both directions
type GraphTraversal struct {
	nodes     map[string]graph.Node
	order     []string
	neighbors map[string][]string
}

func NewGraphTraversal(g *graph.GraphData) *GraphTraversal {
	t := &GraphTraversal{
		nodes:     make(map[string]graph.Node),
		neighbors: make(map[string][]string),
	}
	if g == nil {
		return t
	}
	for _, n := range g.Nodes {
		t.nodes[n.ID] = n
		t.order = append(t.order, n.ID)
	}
	for _, e := range g.Edges {
		t.neighbors[e.Source] = append(t.neighbors[e.Source], e.Target)
		t.neighbors[e.Target] = append(t.neighbors[e.Target], e.Source)
	}
	return t
}

// Traverse returns the nodes at most maxDepth edges away from startID, in visit order
func (t *GraphTraversal) Traverse(startID string, maxDepth int, traversalType TraversalType) ([]graph.Node, error) {
	if _, ok := t.nodes[startID]; !ok {
		return nil, errors.Errorf("unknown node: %s", startID)
	}
	if maxDepth < 0 {
		return nil, errors.Errorf("max depth must not be negative, got %d", maxDepth)
	}

	visited := make(map[string]bool)
	result := make([]graph.Node, 0)

	switch traversalType {
	case BFS:
		return t.bfs(startID, maxDepth, visited), nil
	case DFS:
		t.dfs(startID, maxDepth, visited, &result)
		return result, nil
	default:
		return nil, errors.Errorf("unsupported traversal type: %s", traversalType)
	}
}

func (t *GraphTraversal) bfs(startID string, maxDepth int, visited map[string]bool) []graph.Node {
	queue := []string{startID}
	visited[startID] = true
	result := make([]graph.Node, 0)

	for depth := 0; len(queue) > 0 && depth <= maxDepth; depth++ {
		next := make([]string, 0)
		for _, current := range queue {
			result = append(result, t.nodes[current])
			for _, id := range t.neighbors[current] {
				if !visited[id] {
					visited[id] = true
					next = append(next, id)
				}
			}
		}
		queue = next
	}

	return result
}

func (t *GraphTraversal) dfs(currentID string, maxDepth int, visited map[string]bool, result *[]graph.Node) {
	if maxDepth < 0 || visited[currentID] {
		return
	}

	visited[currentID] = true
	*result = append(*result, t.nodes[currentID])

	for _, id := range t.neighbors[currentID] {
		if !visited[id] {
			t.dfs(id, maxDepth-1, visited, result)
		}
	}
}

// PathwayGroups splits the pathways of a graph into groups connected through
// shared genes. Groups and the pathway IDs inside them keep graph order.
func (t *GraphTraversal) PathwayGroups() [][]string {
	groups := make([][]string, 0)
	visited := make(map[string]bool)

	for _, id := range t.order {
		if visited[id] || t.nodes[id].Type != graph.NodeTypePathway {
			continue
		}

		members := make(map[string]bool)
		for _, n := range t.bfs(id, len(t.order), visited) {
			if n.Type == graph.NodeTypePathway {
				members[n.ID] = true
			}
		}

		group := make([]string, 0, len(members))
		for _, nodeID := range t.order {
			if members[nodeID] {
				group = append(group, strings.TrimPrefix(nodeID, graph.PathwayNodeID("")))
			}
		}
		groups = append(groups, group)
	}
	return groups
}
