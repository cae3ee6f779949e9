package graph

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// StylePolicy chooses the colour of an edge. Colours are cosmetic; only the
// distinction between the internal and external palettes matters.
type StylePolicy interface {
	EdgeColor(kind EdgeKind) string
}

// ChannelRange bounds each RGB channel of a generated colour.
type ChannelRange struct {
	Min, Max uint8
}

// DefaultPalettes keeps internal edges dark and external edges light.
var DefaultPalettes = map[EdgeKind]ChannelRange{
	EdgeInternal: {Min: 0, Max: 150},
	EdgeExternal: {Min: 140, Max: 230},
}

// RandomStyle draws every channel uniformly from the palette of the edge kind.
// It is not safe for concurrent use.
type RandomStyle struct {
	rng      *rand.Rand
	palettes map[EdgeKind]ChannelRange
}

func NewRandomStyle(seed int64) *RandomStyle {
	return &RandomStyle{
		rng:      rand.New(rand.NewSource(seed)),
		palettes: DefaultPalettes,
	}
}

func (s *RandomStyle) EdgeColor(kind EdgeKind) string {
	r, ok := s.palettes[kind]
	if !ok {
		r = ChannelRange{Max: 255}
	}
	channel := func() float64 {
		return float64(int(r.Min)+s.rng.Intn(int(r.Max)-int(r.Min)+1)) / 255
	}
	return colorful.Color{R: channel(), G: channel(), B: channel()}.Hex()
}

// FixedStyle returns one colour per edge kind, black for unknown kinds.
type FixedStyle map[EdgeKind]string

func (s FixedStyle) EdgeColor(kind EdgeKind) string {
	if c, ok := s[kind]; ok {
		return c
	}
	return "#000000"
}
