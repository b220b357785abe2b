package valueobjects

import "strings"

// NodeType classifies a board node. It is carried through load, edit and
// publish untouched; interaction logic never reads it.
type NodeType string

const (
	NodeTypeNone     NodeType = ""
	NodeTypePerson   NodeType = "person"
	NodeTypeArtifact NodeType = "artifact"
	NodeTypeLocation NodeType = "location"
	NodeTypeNote     NodeType = "note"
)

// KnownNodeTypes lists the types the inspector offers
var KnownNodeTypes = []NodeType{NodeTypePerson, NodeTypeArtifact, NodeTypeLocation, NodeTypeNote}

// ParseNodeType normalizes user input. Unknown values are kept as-is so
// server-side additions survive a round trip.
func ParseNodeType(s string) NodeType {
	return NodeType(strings.ToLower(strings.TrimSpace(s)))
}

// IsKnown reports whether t is one of KnownNodeTypes
func (t NodeType) IsKnown() bool {
	for _, k := range KnownNodeTypes {
		if t == k {
			return true
		}
	}
	return false
}

// IsZero reports whether no type is set
func (t NodeType) IsZero() bool {
	return t == NodeTypeNone
}

func (t NodeType) String() string {
	return string(t)
}
