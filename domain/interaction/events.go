package interaction

// Event is raw board input: a toolbar toggle, a click, or pointer motion
type Event interface {
	isEvent()
}

// ToggleMode is a toolbar button press
type ToggleMode struct {
	Mode Mode
}

// CanvasClick is a click on empty board space, in board-local coordinates
type CanvasClick struct {
	X, Y float64
}

// NodeClick is a click on a node card
type NodeClick struct {
	NodeID int
}

// NodePress is a button-down on a node card. It carries the node's current
// position so the machine can capture the drag offset without reading the
// graph.
type NodePress struct {
	NodeID   int
	NodeX    float64
	NodeY    float64
	PointerX float64
	PointerY float64
}

// PointerMove is pointer motion over the canvas
type PointerMove struct {
	X, Y float64
}

// PointerRelease is a button-up anywhere on the canvas
type PointerRelease struct{}

// PointerLeave is the pointer leaving the canvas
type PointerLeave struct{}

func (ToggleMode) isEvent()     {}
func (CanvasClick) isEvent()    {}
func (NodeClick) isEvent()      {}
func (NodePress) isEvent()      {}
func (PointerMove) isEvent()    {}
func (PointerRelease) isEvent() {}
func (PointerLeave) isEvent()   {}

// Effect is a graph mutation requested by a transition. The owner of the
// graph applies it.
type Effect interface {
	EffectType() string
}

// AddNode places a default node at X, Y
type AddNode struct {
	X, Y float64
}

// DeleteNode removes a node and its incident edges
type DeleteNode struct {
	ID int
}

// SelectNode binds the inspector to a node
type SelectNode struct {
	ID int
}

// AddEdge connects A and B. The graph drops self-loops and duplicates.
type AddEdge struct {
	A, B int
}

// DeleteEdge removes the edge joining A and B, if any
type DeleteEdge struct {
	A, B int
}

// MoveNode repositions a node during a drag
type MoveNode struct {
	ID   int
	X, Y float64
}

func (AddNode) EffectType() string    { return "node.added" }
func (DeleteNode) EffectType() string { return "node.deleted" }
func (SelectNode) EffectType() string { return "node.selected" }
func (AddEdge) EffectType() string    { return "edge.added" }
func (DeleteEdge) EffectType() string { return "edge.deleted" }
func (MoveNode) EffectType() string   { return "node.moved" }
