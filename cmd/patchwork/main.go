// patchwork - Terminal graphics demos
// A Bézier patch, a marble shader and color-ID picking, rendered in your
// terminal by a software rasterizer.
//
// Controls (patch, pick):
//
//	Arrows      - Orbit (5° steps)
//	PgUp/PgDn   - Zoom in/out (also +/- and the scroll wheel)
//	R           - Reset view
//	C           - Toggle control net (patch)
//	W           - Toggle wireframe (patch)
//	[ / ]       - Coarser/finer tessellation (patch)
//	Click       - Pick a cube (pick)
//	?           - Toggle HUD overlay
//	Esc         - Quit
//
// Controls (marble):
//
//	W/A/S/D     - Fly forward/left/back/right
//	Mouse       - Look around
//	X           - Toggle axes
//	R           - Reset camera
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}
