// Package layout computes where node cards and edge lines are drawn.
package layout

import (
	"github.com/DanBrus/IB-frontend/domain/config"
	"github.com/DanBrus/IB-frontend/domain/core/aggregates"
	"github.com/DanBrus/IB-frontend/domain/core/valueobjects"
)

// Card is a node card's bounding box
type Card struct {
	NodeID int
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether (x, y) falls on the card
func (c Card) Contains(x, y float64) bool {
	return x >= c.X && x <= c.X+c.Width && y >= c.Y && y <= c.Y+c.Height
}

// Segment is an edge line between two card anchors
type Segment struct {
	EdgeID int
	From   valueobjects.Position
	To     valueobjects.Position
}

// Layout holds card geometry
type Layout struct {
	cfg *config.DomainConfig
}

// New creates a layout; a nil config uses the defaults
func New(cfg *config.DomainConfig) *Layout {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &Layout{cfg: cfg}
}

// Anchor is where edges attach to a card: horizontally centred, just inside
// the top border and padding.
func (l *Layout) Anchor(p valueobjects.Position) valueobjects.Position {
	return valueobjects.NewPosition(
		p.X()+l.cfg.CardWidth/2,
		p.Y()+l.cfg.CardBorder+l.cfg.CardPadding/2,
	)
}

// Cards returns a card per node in board order
func (l *Layout) Cards(g *aggregates.Graph) []Card {
	cards := make([]Card, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		cards = append(cards, Card{
			NodeID: n.ID(),
			X:      n.Position().X(),
			Y:      n.Position().Y(),
			Width:  l.cfg.CardWidth,
			Height: l.cfg.CardHeight,
		})
	}
	return cards
}

// Segments returns the drawable edges. Edges whose endpoints are missing
// are skipped.
func (l *Layout) Segments(g *aggregates.Graph) []Segment {
	segments := make([]Segment, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		a, okA := g.Node(e.A)
		b, okB := g.Node(e.B)
		if !okA || !okB {
			continue
		}
		segments = append(segments, Segment{
			EdgeID: e.ID,
			From:   l.Anchor(a.Position()),
			To:     l.Anchor(b.Position()),
		})
	}
	return segments
}

// HitTest returns the topmost card under (x, y). Later cards draw on top.
func (l *Layout) HitTest(g *aggregates.Graph, x, y float64) (int, bool) {
	cards := l.Cards(g)
	for i := len(cards) - 1; i >= 0; i-- {
		if cards[i].Contains(x, y) {
			return cards[i].NodeID, true
		}
	}
	return 0, false
}
