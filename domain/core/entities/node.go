package entities

import (
	"fmt"

	"github.com/DanBrus/IB-frontend/domain/config"
	"github.com/DanBrus/IB-frontend/domain/core/valueobjects"
)

// Node is a card on the investigation board.
// Identity is the integer id, unique within one board version.
type Node struct {
	id          int
	name        string
	position    valueobjects.Position
	nodeType    valueobjects.NodeType
	description string
	imageRef    string
}

// NodePatch carries an inspector save. A nil Type or ImageRef leaves the
// current value untouched.
type NodePatch struct {
	Name        string
	Description string
	Type        *valueobjects.NodeType
	ImageRef    *string
}

// NewNode creates a freshly placed node with the default name and an empty
// description
func NewNode(id int, position valueobjects.Position) *Node {
	return &Node{
		id:       id,
		name:     fmt.Sprintf(config.DefaultDomainConfig().NodeNameFormat, id),
		position: position,
	}
}

// ReconstructNode rebuilds a node from stored data
func ReconstructNode(
	id int,
	name string,
	position valueobjects.Position,
	nodeType valueobjects.NodeType,
	description string,
	imageRef string,
) *Node {
	return &Node{
		id:          id,
		name:        name,
		position:    position,
		nodeType:    nodeType,
		description: description,
		imageRef:    imageRef,
	}
}

// ID returns the node's identifier
func (n *Node) ID() int {
	return n.id
}

// Name returns the node's display name
func (n *Node) Name() string {
	return n.name
}

// Position returns the node's position
func (n *Node) Position() valueobjects.Position {
	return n.position
}

// Type returns the node's optional type
func (n *Node) Type() valueobjects.NodeType {
	return n.nodeType
}

// Description returns the node's description
func (n *Node) Description() string {
	return n.description
}

// ImageRef returns the opaque image id, or "" when the node has no image
func (n *Node) ImageRef() string {
	return n.imageRef
}

// HasImage reports whether an image is attached
func (n *Node) HasImage() bool {
	return n.imageRef != ""
}

// MoveTo repositions the node
func (n *Node) MoveTo(position valueobjects.Position) {
	n.position = position
}

// ApplyPatch updates the editable fields
func (n *Node) ApplyPatch(patch NodePatch) {
	n.name = patch.Name
	n.description = patch.Description
	if patch.Type != nil {
		n.nodeType = *patch.Type
	}
	if patch.ImageRef != nil {
		n.imageRef = *patch.ImageRef
	}
}

// Clone returns an independent copy
func (n *Node) Clone() *Node {
	c := *n
	return &c
}

// Equals compares every field, positions within a small epsilon
func (n *Node) Equals(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.id == other.id &&
		n.name == other.name &&
		n.position.Equals(other.position) &&
		n.nodeType == other.nodeType &&
		n.description == other.description &&
		n.imageRef == other.imageRef
}

// ClampName truncates name to at most max runes
func ClampName(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max])
}
