package main

import (
	"fmt"
	"time"

	"github.com/taigrr/patchwork/pkg/render"
)

var (
	hudFg  = render.RGB(230, 230, 230)
	hudFPS = render.RGB(120, 230, 120)
	hudBg  = render.RGB(0, 0, 0)
)

// HUD draws the frame rate and the scene status over the frame.
type HUD struct {
	Show bool

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a visible HUD.
func NewHUD() *HUD {
	return &HUD{Show: true, fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Draw writes the FPS on the top row and status on the bottom one.
func (h *HUD) Draw(t *render.TerminalRenderer, width, height int, status string) {
	if !h.Show {
		return
	}
	fps := fmt.Sprintf(" %.0f FPS ", h.fps)
	t.DrawText(0, 0, fps, hudFPS, hudBg)

	hint := " ? hide  esc quit "
	t.DrawText(max(width-len(hint), len(fps)), 0, hint, hudFg, hudBg)

	t.DrawText(0, height-1, " "+status+" ", hudFg, hudBg)
}
