package aggregates

import (
	"sort"

	"github.com/DanBrus/IB-frontend/domain/core/entities"
	"github.com/DanBrus/IB-frontend/domain/core/valueobjects"
)

// Edge is an undirected connection between two nodes
type Edge struct {
	ID int
	A  int
	B  int
}

// Connects reports whether the edge joins a and b, in either direction
func (e Edge) Connects(a, b int) bool {
	return (e.A == a && e.B == b) || (e.A == b && e.B == a)
}

// Touches reports whether id is one of the edge's endpoints
func (e Edge) Touches(id int) bool {
	return e.A == id || e.B == id
}

// Graph is the aggregate root for one board version.
// It keeps nodes and edges in insertion order and guarantees:
//   - no two edges join the same unordered pair of nodes
//   - no edge created here is a self-loop or references a missing node
//   - removing a node removes every edge touching it
//   - new ids are one above the current maximum of their collection
type Graph struct {
	nodes []*entities.Node
	edges []Edge
}

// NewGraph creates an empty board graph
func NewGraph() *Graph {
	return &Graph{
		nodes: []*entities.Node{},
		edges: []Edge{},
	}
}

// ReconstructGraph recreates a graph from stored data, keeping the order
// the store returned
func ReconstructGraph(nodes []*entities.Node, edges []Edge) *Graph {
	g := NewGraph()
	g.nodes = append(g.nodes, nodes...)
	g.edges = append(g.edges, edges...)
	return g
}

// Nodes returns the nodes in board order
func (g *Graph) Nodes() []*entities.Node {
	nodes := make([]*entities.Node, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// Edges returns the edges in board order
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Node looks a node up by id
func (g *Graph) Node(id int) (*entities.Node, bool) {
	for _, n := range g.nodes {
		if n.ID() == id {
			return n, true
		}
	}
	return nil, false
}

// NextNodeID returns max(node ids, default 0) + 1
func (g *Graph) NextNodeID() int {
	maxID := 0
	for _, n := range g.nodes {
		if n.ID() > maxID {
			maxID = n.ID()
		}
	}
	return maxID + 1
}

// NextEdgeID returns max(edge ids, default 0) + 1
func (g *Graph) NextEdgeID() int {
	maxID := 0
	for _, e := range g.edges {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}

// AddNode places a new default node at position
func (g *Graph) AddNode(position valueobjects.Position) *entities.Node {
	node := entities.NewNode(g.NextNodeID(), position)
	g.nodes = append(g.nodes, node)
	return node
}

// RemoveNode deletes a node and every edge incident to it.
// It returns the cascaded edges.
func (g *Graph) RemoveNode(id int) ([]Edge, bool) {
	idx := -1
	for i, n := range g.nodes {
		if n.ID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	g.nodes = append(g.nodes[:idx:idx], g.nodes[idx+1:]...)

	var removed []Edge
	kept := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		if e.Touches(id) {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	g.edges = kept

	return removed, true
}

// FindEdge returns the edge joining a and b in either direction
func (g *Graph) FindEdge(a, b int) (Edge, bool) {
	for _, e := range g.edges {
		if e.Connects(a, b) {
			return e, true
		}
	}
	return Edge{}, false
}

// AddEdge connects a and b. Self-loops, duplicates (either direction) and
// edges to missing nodes are silently refused.
func (g *Graph) AddEdge(a, b int) (Edge, bool) {
	if a == b {
		return Edge{}, false
	}
	if _, exists := g.FindEdge(a, b); exists {
		return Edge{}, false
	}
	if _, ok := g.Node(a); !ok {
		return Edge{}, false
	}
	if _, ok := g.Node(b); !ok {
		return Edge{}, false
	}

	edge := Edge{ID: g.NextEdgeID(), A: a, B: b}
	g.edges = append(g.edges, edge)
	return edge, true
}

// RemoveEdgeBetween deletes the edge joining a and b, if any
func (g *Graph) RemoveEdgeBetween(a, b int) (Edge, bool) {
	for i, e := range g.edges {
		if e.Connects(a, b) {
			g.edges = append(g.edges[:i:i], g.edges[i+1:]...)
			return e, true
		}
	}
	return Edge{}, false
}

// MoveNode repositions a node
func (g *Graph) MoveNode(id int, position valueobjects.Position) bool {
	node, ok := g.Node(id)
	if !ok {
		return false
	}
	node.MoveTo(position)
	return true
}

// PatchNode applies an inspector save to a node
func (g *Graph) PatchNode(id int, patch entities.NodePatch) bool {
	node, ok := g.Node(id)
	if !ok {
		return false
	}
	node.ApplyPatch(patch)
	return true
}

// Clone returns a deep copy
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	for _, n := range g.nodes {
		c.nodes = append(c.nodes, n.Clone())
	}
	c.edges = append(c.edges, g.edges...)
	return c
}

// EqualAsSets compares two graphs ignoring node and edge order.
// Edges compare by id and unordered endpoint pair.
func (g *Graph) EqualAsSets(other *Graph) bool {
	if other == nil || len(g.nodes) != len(other.nodes) || len(g.edges) != len(other.edges) {
		return false
	}

	for _, n := range g.nodes {
		o, ok := other.Node(n.ID())
		if !ok || !n.Equals(o) {
			return false
		}
	}

	left := normalizedEdges(g.edges)
	right := normalizedEdges(other.edges)
	for i := range left {
		if left[i] != right[i] {
			return false
		}
	}
	return true
}

func normalizedEdges(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	for i, e := range edges {
		if e.A > e.B {
			e.A, e.B = e.B, e.A
		}
		out[i] = e
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID != out[j].ID {
			return out[i].ID < out[j].ID
		}
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}
