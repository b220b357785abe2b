package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/DanBrus/IB-frontend/application/services"
	"github.com/DanBrus/IB-frontend/domain/core/aggregates"
	"github.com/DanBrus/IB-frontend/domain/interaction"
	"github.com/DanBrus/IB-frontend/domain/layout"
	"github.com/DanBrus/IB-frontend/domain/versioning"
)

// BoardView is everything the renderer needs for one frame
type BoardView struct {
	Version    string
	Versions   []versioning.Version
	Dirty      bool
	Publishing bool
	State      interaction.State
	Graph      *aggregates.Graph
	Sheets     map[int]bool
	ImageURL   func(id string) string
}

// RenderHeader writes the version line with the unsaved marker
func RenderHeader(w io.Writer, v BoardView) {
	version := v.Version
	if version == "" {
		version = "(none)"
	}
	for _, known := range v.Versions {
		if known.ID == v.Version && known.Name != "" {
			version = fmt.Sprintf("%s (%s)", v.Version, known.Name)
			break
		}
	}
	marker := ""
	if v.Dirty {
		marker = " *unsaved"
	}
	if v.Publishing {
		marker += " (publishing)"
	}
	fmt.Fprintf(w, "Version: %s%s\n", version, marker)
}

// RenderToolbar writes every mode with the active one bracketed
func RenderToolbar(w io.Writer, state interaction.State) {
	parts := make([]string, 0, len(interaction.Modes))
	for _, m := range interaction.Modes {
		if m == state.Mode {
			parts = append(parts, "["+m.String()+"]")
		} else {
			parts = append(parts, m.String())
		}
	}
	line := "Tools: " + strings.Join(parts, " ")
	if state.Pending != nil {
		line += fmt.Sprintf("  first: #%d", *state.Pending)
	}
	if state.Selected != nil {
		line += fmt.Sprintf("  selected: #%d", *state.Selected)
	}
	if state.Dragging() {
		line += fmt.Sprintf("  dragging: #%d", state.Drag.NodeID)
	}
	fmt.Fprintln(w, line)
}

// RenderCards writes one row per node card
func RenderCards(w io.Writer, l *layout.Layout, v BoardView) {
	if v.Graph.NodeCount() == 0 {
		fmt.Fprintln(w, "No nodes.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPOS\tSIZE\tTYPE\tIMAGE")
	for _, card := range l.Cards(v.Graph) {
		node, ok := v.Graph.Node(card.NodeID)
		if !ok {
			continue
		}
		image := "-"
		if v.ImageURL != nil && node.HasImage() {
			image = v.ImageURL(node.ImageRef())
		}
		nodeType := node.Type().String()
		if nodeType == "" {
			nodeType = "-"
		}
		fmt.Fprintf(tw, "#%d\t%s\t(%g, %g)\t%gx%g\t%s\t%s\n",
			card.NodeID, node.Name(), card.X, card.Y, card.Width, card.Height, nodeType, image)
		if v.Sheets[card.NodeID] {
			description := node.Description()
			if description == "" {
				description = "(no description)"
			}
			fmt.Fprintf(tw, "\t  %s\t\t\t\t\n", description)
		}
	}
	_ = tw.Flush()
}

// RenderEdges writes each drawable edge with its anchor points
func RenderEdges(w io.Writer, l *layout.Layout, v BoardView) {
	segments := l.Segments(v.Graph)
	if len(segments) == 0 {
		fmt.Fprintln(w, "No edges.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EDGE\tNODES\tFROM\tTO")
	edges := make(map[int]aggregates.Edge, v.Graph.EdgeCount())
	for _, e := range v.Graph.Edges() {
		edges[e.ID] = e
	}
	for _, s := range segments {
		e := edges[s.EdgeID]
		fmt.Fprintf(tw, "#%d\t%d -- %d\t%s\t%s\n", s.EdgeID, e.A, e.B, s.From, s.To)
	}
	_ = tw.Flush()
}

// Render writes a full frame: header, toolbar, cards and edges
func Render(w io.Writer, l *layout.Layout, v BoardView) {
	RenderHeader(w, v)
	RenderToolbar(w, v.State)
	fmt.Fprintln(w)
	RenderCards(w, l, v)
	fmt.Fprintln(w)
	RenderEdges(w, l, v)
}

// RenderInspector writes the inspector panel
func RenderInspector(w io.Writer, view services.InspectorView) {
	if !view.Selected {
		fmt.Fprintln(w, "Inspector: no node selected (use edit-node mode and click a node)")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Node\t#%d\n", view.NodeID)
	fmt.Fprintf(tw, "Name\t%s\n", view.Name)
	fmt.Fprintf(tw, "Type\t%s\n", orDash(view.Type.String()))
	fmt.Fprintf(tw, "Description\t%s\n", orDash(view.Description))
	fmt.Fprintf(tw, "Image\t%s\n", orDash(view.ImageURL))
	if view.ImageChanged {
		state := "not applied"
		if view.CropApplied {
			state = "applied"
		}
		c := view.Crop
		fmt.Fprintf(tw, "Crop\t%d,%d %dx%d zoom %.2f (%s)\n", c.Min.X, c.Min.Y, c.Dx(), c.Dy(), view.Zoom, state)
	}
	if view.Saving {
		fmt.Fprintf(tw, "Status\tsaving...\n")
	}
	_ = tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
