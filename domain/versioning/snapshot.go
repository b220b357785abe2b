package versioning

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/DanBrus/IB-frontend/domain/core/aggregates"
)

// Snapshot is the immutable published copy of one version's graph: what
// was last loaded from or published to the graph service.
type Snapshot struct {
	version  string
	graph    *aggregates.Graph
	checksum string
	takenAt  time.Time
}

// NewSnapshot copies graph so later draft edits cannot reach it
func NewSnapshot(version string, graph *aggregates.Graph) (*Snapshot, error) {
	if graph == nil {
		return nil, fmt.Errorf("graph cannot be nil")
	}

	copied := graph.Clone()
	checksum, err := Checksum(copied)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum: %w", err)
	}

	return &Snapshot{
		version:  version,
		graph:    copied,
		checksum: checksum,
		takenAt:  time.Now(),
	}, nil
}

// Version returns the version id the snapshot belongs to
func (s *Snapshot) Version() string { return s.version }

// Checksum returns the content hash at snapshot time
func (s *Snapshot) Checksum() string { return s.checksum }

// TakenAt returns when the snapshot was taken
func (s *Snapshot) TakenAt() time.Time { return s.takenAt }

// Graph returns a fresh copy of the snapshot graph
func (s *Snapshot) Graph() *aggregates.Graph {
	return s.graph.Clone()
}

// Matches reports whether draft has the same content as the snapshot
func (s *Snapshot) Matches(draft *aggregates.Graph) bool {
	return s.graph.EqualAsSets(draft)
}

type checksumNode struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	ImageRef    string  `json:"image_ref"`
}

// Checksum hashes the graph independently of node and edge order
func Checksum(graph *aggregates.Graph) (string, error) {
	nodes := make([]checksumNode, 0, graph.NodeCount())
	for _, n := range graph.Nodes() {
		nodes = append(nodes, checksumNode{
			ID:          n.ID(),
			Name:        n.Name(),
			X:           n.Position().X(),
			Y:           n.Position().Y(),
			Type:        n.Type().String(),
			Description: n.Description(),
			ImageRef:    n.ImageRef(),
		})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	data := struct {
		Nodes []checksumNode `json:"nodes"`
		Edges [][3]int       `json:"edges"`
	}{
		Nodes: nodes,
		Edges: sortedEdgeKeys(graph.Edges()),
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(jsonData)
	return hex.EncodeToString(hash[:]), nil
}

func sortedEdgeKeys(edges []aggregates.Edge) [][3]int {
	keys := make([][3]int, 0, len(edges))
	for _, e := range edges {
		a, b := e.A, e.B
		if a > b {
			a, b = b, a
		}
		keys = append(keys, [3]int{e.ID, a, b})
	}
	sort.Slice(keys, func(i, j int) bool {
		for k := 0; k < 3; k++ {
			if keys[i][k] != keys[j][k] {
				return keys[i][k] < keys[j][k]
			}
		}
		return false
	})
	return keys
}

// GraphDiff describes the draft relative to the published snapshot
type GraphDiff struct {
	NodesDiff NodesDiff `json:"nodes_diff"`
	EdgesDiff EdgesDiff `json:"edges_diff"`
}

// NodesDiff lists node ids by change kind
type NodesDiff struct {
	Added   []int `json:"added"`
	Removed []int `json:"removed"`
	Updated []int `json:"updated"`
}

// EdgesDiff lists edges by change kind. Edges are matched by unordered
// endpoint pair.
type EdgesDiff struct {
	Added   []aggregates.Edge `json:"added"`
	Removed []aggregates.Edge `json:"removed"`
}

// IsEmpty reports whether nothing changed
func (d GraphDiff) IsEmpty() bool {
	return len(d.NodesDiff.Added) == 0 &&
		len(d.NodesDiff.Removed) == 0 &&
		len(d.NodesDiff.Updated) == 0 &&
		len(d.EdgesDiff.Added) == 0 &&
		len(d.EdgesDiff.Removed) == 0
}

// Summary renders the diff as counts, e.g. "nodes +1 -0 ~2, edges +0 -1"
func (d GraphDiff) Summary() string {
	return fmt.Sprintf("nodes +%d -%d ~%d, edges +%d -%d",
		len(d.NodesDiff.Added), len(d.NodesDiff.Removed), len(d.NodesDiff.Updated),
		len(d.EdgesDiff.Added), len(d.EdgesDiff.Removed))
}

// Diff compares draft against base. A nil base is an empty board.
func Diff(base, draft *aggregates.Graph) GraphDiff {
	if base == nil {
		base = aggregates.NewGraph()
	}
	if draft == nil {
		draft = aggregates.NewGraph()
	}

	var diff GraphDiff

	for _, n := range draft.Nodes() {
		old, ok := base.Node(n.ID())
		switch {
		case !ok:
			diff.NodesDiff.Added = append(diff.NodesDiff.Added, n.ID())
		case !old.Equals(n):
			diff.NodesDiff.Updated = append(diff.NodesDiff.Updated, n.ID())
		}
	}
	for _, n := range base.Nodes() {
		if _, ok := draft.Node(n.ID()); !ok {
			diff.NodesDiff.Removed = append(diff.NodesDiff.Removed, n.ID())
		}
	}

	for _, e := range draft.Edges() {
		if _, ok := base.FindEdge(e.A, e.B); !ok {
			diff.EdgesDiff.Added = append(diff.EdgesDiff.Added, e)
		}
	}
	for _, e := range base.Edges() {
		if _, ok := draft.FindEdge(e.A, e.B); !ok {
			diff.EdgesDiff.Removed = append(diff.EdgesDiff.Removed, e)
		}
	}

	return diff
}
