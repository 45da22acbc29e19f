package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each cell is a ▀ half block whose foreground is the upper pixel
// and background the lower one, so the framebuffer height is 2x the rows.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		for col := area.Min.X; col < area.Max.X && col-area.Min.X < fb.Width; col++ {
			x := col - area.Min.X
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(x, topY)),
					Bg: cellColor(fb.GetPixel(x, topY+1)),
				},
			})
		}
	}
}

// cellColor maps transparent pixels to the terminal default color.
func cellColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// TerminalRenderer presents framebuffers on a terminal screen.
type TerminalRenderer struct {
	term          *uv.Terminal
	width, height int // in cells
}

// NewTerminalRenderer creates a renderer for a terminal of width x height
// cells.
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	return &TerminalRenderer{term: term, width: width, height: height}
}

// FramebufferSize returns the pixel size that exactly covers the terminal.
func (t *TerminalRenderer) FramebufferSize() (int, int) {
	return t.width, t.height * 2
}

// Render draws fb over the whole terminal.
func (t *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(t.term, uv.Rect(0, 0, t.width, t.height))
}

// Flush pushes the drawn cells to the terminal.
func (t *TerminalRenderer) Flush() error {
	return t.term.Display()
}

// DrawText writes a single line of text over the rendered frame, starting at
// cell (col, row). Text past the right edge is dropped.
func (t *TerminalRenderer) DrawText(col, row int, text string, fg, bg Color) {
	if row < 0 || row >= t.height {
		return
	}
	for _, r := range text {
		if col >= t.width {
			return
		}
		if col >= 0 {
			t.term.SetCell(col, row, &uv.Cell{
				Content: string(r),
				Width:   1,
				Style:   uv.Style{Fg: fg, Bg: bg},
			})
		}
		col++
	}
}
