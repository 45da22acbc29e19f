package scene

import (
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPalette is the fixed sequence picked objects cycle through.
var DefaultPalette = []colorful.Color{
	{R: 1, G: 0, B: 0},
	{R: 0, G: 1, B: 0},
	{R: 0, G: 0, B: 1},
	{R: 1, G: 1, B: 0},
	{R: 1, G: 0, B: 1},
	{R: 0, G: 1, B: 1},
	{R: 1, G: 0.5, B: 0},
	{R: 0.5, G: 0, B: 1},
	{R: 1, G: 0.8, B: 0.2},
	{R: 0.2, G: 0.8, B: 0.2},
	{R: 0.8, G: 0.2, B: 0.8},
	{R: 0.2, G: 0.8, B: 0.8},
}

// Palette hands out colors in order, wrapping around at the end.
type Palette struct {
	colors []colorful.Color
	next   int
}

// NewPalette cycles through colors, or DefaultPalette when none are given.
func NewPalette(colors ...colorful.Color) *Palette {
	if len(colors) == 0 {
		colors = DefaultPalette
	}
	return &Palette{colors: colors}
}

// Next returns the next color.
func (p *Palette) Next() colorful.Color {
	c := p.colors[p.next%len(p.colors)]
	p.next++
	return c
}

// Len returns the number of distinct colors.
func (p *Palette) Len() int {
	return len(p.colors)
}
