package interaction

import (
	"fmt"
	"strings"

	"github.com/DanBrus/IB-frontend/domain/core/valueobjects"
)

// Mode is the active toolbar tool
type Mode string

const (
	ModeIdle       Mode = "idle"
	ModeAddNode    Mode = "add-node"
	ModeDeleteNode Mode = "delete-node"
	ModeEditNode   Mode = "edit-node"
	ModeAddEdge    Mode = "add-edge"
	ModeDeleteEdge Mode = "delete-edge"
)

// Modes lists every mode in toolbar order
var Modes = []Mode{ModeIdle, ModeAddNode, ModeDeleteNode, ModeEditNode, ModeAddEdge, ModeDeleteEdge}

// ParseMode accepts a mode name such as "add-edge" or "add_edge"
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

func (m Mode) String() string {
	return string(m)
}

// Drag tracks a node being repositioned in idle mode.
// OffsetX and OffsetY are pointer minus node at button-down.
type Drag struct {
	NodeID  int
	OffsetX float64
	OffsetY float64
}

// State is the board's interaction state. The zero value is not valid;
// use NewState.
type State struct {
	Mode     Mode
	Selected *int
	Pending  *int
	Drag     *Drag
}

// NewState returns the idle state with nothing selected
func NewState() State {
	return State{Mode: ModeIdle}
}

// Dragging reports whether a drag is in progress
func (s State) Dragging() bool {
	return s.Drag != nil
}

// Transition applies one event. It never fails and never touches the
// graph; mutations come back as effects.
func Transition(s State, ev Event) (State, []Effect) {
	s = s.Clone()
	if s.Mode == "" {
		s.Mode = ModeIdle
	}

	switch e := ev.(type) {
	case ToggleMode:
		return toggle(s, e.Mode), nil

	case CanvasClick:
		if s.Mode != ModeAddNode {
			return s, nil
		}
		s.Mode = ModeIdle
		return s, []Effect{AddNode{X: e.X, Y: e.Y}}

	case NodeClick:
		return nodeClick(s, e.NodeID)

	case NodePress:
		if s.Mode != ModeIdle {
			return nodeClick(s, e.NodeID)
		}
		node := valueobjects.NewPosition(e.NodeX, e.NodeY)
		dx, dy := node.Offset(valueobjects.NewPosition(e.PointerX, e.PointerY))
		s.Drag = &Drag{NodeID: e.NodeID, OffsetX: dx, OffsetY: dy}
		return s, nil

	case PointerMove:
		if s.Drag == nil {
			return s, nil
		}
		to := valueobjects.NewPosition(e.X, e.Y).Translate(-s.Drag.OffsetX, -s.Drag.OffsetY)
		return s, []Effect{MoveNode{ID: s.Drag.NodeID, X: to.X(), Y: to.Y()}}

	case PointerRelease, PointerLeave:
		s.Drag = nil
		return s, nil
	}

	return s, nil
}

func toggle(s State, m Mode) State {
	if s.Mode == m {
		m = ModeIdle
	}
	return State{Mode: m}
}

func nodeClick(s State, id int) (State, []Effect) {
	switch s.Mode {
	case ModeDeleteNode:
		s.Mode = ModeIdle
		return s, []Effect{DeleteNode{ID: id}}

	case ModeEditNode:
		s.Selected = intPtr(id)
		return s, []Effect{SelectNode{ID: id}}

	case ModeAddEdge, ModeDeleteEdge:
		if s.Pending == nil {
			s.Pending = intPtr(id)
			return s, nil
		}
		first := *s.Pending
		var effect Effect = AddEdge{A: first, B: id}
		if s.Mode == ModeDeleteEdge {
			effect = DeleteEdge{A: first, B: id}
		}
		s.Pending = nil
		s.Mode = ModeIdle
		return s, []Effect{effect}
	}

	return s, nil
}

// Clone returns a state that shares no pointers with s
func (s State) Clone() State {
	if s.Selected != nil {
		s.Selected = intPtr(*s.Selected)
	}
	if s.Pending != nil {
		s.Pending = intPtr(*s.Pending)
	}
	if s.Drag != nil {
		d := *s.Drag
		s.Drag = &d
	}
	return s
}

func intPtr(v int) *int {
	return &v
}
