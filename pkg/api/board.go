// Package api holds the JSON shapes exchanged with the graph and file
// services, and their conversion to the domain model.
package api

import (
	"github.com/DanBrus/IB-frontend/domain/core/aggregates"
	"github.com/DanBrus/IB-frontend/domain/core/entities"
	"github.com/DanBrus/IB-frontend/domain/core/valueobjects"
	"github.com/DanBrus/IB-frontend/domain/versioning"
)

// Node is a board node on the wire
type Node struct {
	NodeID      int     `json:"node_id"`
	Name        string  `json:"name"`
	PosX        float64 `json:"pos_x"`
	PosY        float64 `json:"pos_y"`
	NodeType    string  `json:"node_type,omitempty"`
	Description string  `json:"description"`
	PicturePath *string `json:"picture_path"`
}

// Edge is a board edge on the wire
type Edge struct {
	EdgeID int `json:"edge_id"`
	Node1  int `json:"node1"`
	Node2  int `json:"node2"`
}

// Board is the GET /graph/board response
type Board struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// PutBoardRequest is the PUT /graph/board body. Description and BoardName
// are always sent as null by the board client.
type PutBoardRequest struct {
	Version     string  `json:"version" validate:"required"`
	Nodes       []Node  `json:"nodes"`
	Edges       []Edge  `json:"edges"`
	Description *string `json:"description"`
	BoardName   *string `json:"board_name"`
}

// Version is a version list entry and the POST /graph/versions body
type Version struct {
	Version     string `json:"version" validate:"required,nowhitespace"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// ActiveVersion is the GET /graph/active_version response
type ActiveVersion struct {
	Version string `json:"version"`
}

// DeleteVersionRequest is the POST /graph/versions/delete body
type DeleteVersionRequest struct {
	Version string `json:"version" validate:"required"`
}

// Ack is the generic success body of write endpoints
type Ack struct {
	Status string `json:"status"`
}

// Upload is the POST /res response
type Upload struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// NodeFromDomain converts a node for sending
func NodeFromDomain(n *entities.Node) Node {
	out := Node{
		NodeID:      n.ID(),
		Name:        n.Name(),
		PosX:        n.Position().X(),
		PosY:        n.Position().Y(),
		NodeType:    n.Type().String(),
		Description: n.Description(),
	}
	if n.HasImage() {
		ref := n.ImageRef()
		out.PicturePath = &ref
	}
	return out
}

// ToDomain converts a received node. An empty picture path means no image.
func (n Node) ToDomain() *entities.Node {
	imageRef := ""
	if n.PicturePath != nil {
		imageRef = *n.PicturePath
	}
	return entities.ReconstructNode(
		n.NodeID,
		n.Name,
		valueobjects.NewPosition(n.PosX, n.PosY),
		valueobjects.NodeType(n.NodeType),
		n.Description,
		imageRef,
	)
}

// BoardFromDomain converts a graph for sending. Empty collections encode
// as [] rather than null.
func BoardFromDomain(g *aggregates.Graph) Board {
	board := Board{
		Nodes: make([]Node, 0, g.NodeCount()),
		Edges: make([]Edge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		board.Nodes = append(board.Nodes, NodeFromDomain(n))
	}
	for _, e := range g.Edges() {
		board.Edges = append(board.Edges, Edge{EdgeID: e.ID, Node1: e.A, Node2: e.B})
	}
	return board
}

// ToDomain rebuilds the graph in server order. Edges are kept as sent, even
// if an endpoint is missing; rendering skips those.
func (b Board) ToDomain() *aggregates.Graph {
	nodes := make([]*entities.Node, 0, len(b.Nodes))
	for _, n := range b.Nodes {
		nodes = append(nodes, n.ToDomain())
	}
	edges := make([]aggregates.Edge, 0, len(b.Edges))
	for _, e := range b.Edges {
		edges = append(edges, aggregates.Edge{ID: e.EdgeID, A: e.Node1, B: e.Node2})
	}
	return aggregates.ReconstructGraph(nodes, edges)
}

// VersionFromDomain converts a version for sending
func VersionFromDomain(v versioning.Version) Version {
	return Version{Version: v.ID, Name: v.Name, Description: v.Description}
}

// ToDomain converts a received version
func (v Version) ToDomain() versioning.Version {
	return versioning.Version{ID: v.Version, Name: v.Name, Description: v.Description}
}

// VersionsToDomain converts a version list
func VersionsToDomain(in []Version) []versioning.Version {
	out := make([]versioning.Version, 0, len(in))
	for _, v := range in {
		out = append(out, v.ToDomain())
	}
	return out
}
