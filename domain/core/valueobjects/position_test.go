package valueobjects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition_Offset(t *testing.T) {
	node := NewPosition(50, 50)
	pointer := NewPosition(62, 58)

	dx, dy := node.Offset(pointer)

	assert.Equal(t, 12.0, dx)
	assert.Equal(t, 8.0, dy)
	assert.True(t, pointer.Equals(node.Translate(dx, dy)))
}

func TestPosition_IsFinite(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{"origin", NewPosition(0, 0), true},
		{"negative", NewPosition(-10.5, -3), true},
		{"NaN x", NewPosition(math.NaN(), 0), false},
		{"Inf y", NewPosition(0, math.Inf(-1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.IsFinite())
		})
	}
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "(120, 90.5)", NewPosition(120, 90.5).String())
}

func TestParseNodeType(t *testing.T) {
	assert.Equal(t, NodeTypePerson, ParseNodeType(" Person "))
	assert.True(t, ParseNodeType("note").IsKnown())
	assert.False(t, ParseNodeType("vehicle").IsKnown())
	assert.Equal(t, NodeType("vehicle"), ParseNodeType("vehicle"))
	assert.True(t, ParseNodeType("").IsZero())
}
