package main

import (
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/patchwork/pkg/logx"
	"github.com/taigrr/patchwork/pkg/scene"
)

// Orbit steps.
const (
	rotateStep = 5.0
	zoomStep   = 0.5
)

// A terminal cell stands in for this many screen pixels when turning
// pointer motion into mouse look.
const (
	cellWidthPx  = 8
	cellHeightPx = 16
)

// orbitInput handles the keys and wheel shared by the orbiting demos. It
// reports whether ev was used.
func orbitInput(c *scene.OrbitControl, ev uv.Event) bool {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("left"):
			c.Rotate(-rotateStep, 0)
		case ev.MatchString("right"):
			c.Rotate(rotateStep, 0)
		case ev.MatchString("up"):
			c.Rotate(0, -rotateStep)
		case ev.MatchString("down"):
			c.Rotate(0, rotateStep)
		case ev.MatchString("pgup", "+", "="):
			c.Zoom(-zoomStep)
		case ev.MatchString("pgdown", "-", "_"):
			c.Zoom(zoomStep)
		case ev.MatchString("r"):
			c.Reset()
		default:
			return false
		}
		return true

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			c.Zoom(-zoomStep)
		case uv.MouseWheelDown:
			c.Zoom(zoomStep)
		default:
			return false
		}
		return true
	}
	return false
}

func patchInput(p *scene.Patch) func(uv.Event) {
	return func(ev uv.Event) {
		if orbitInput(p.OrbitControl, ev) {
			return
		}
		key, ok := ev.(uv.KeyPressEvent)
		if !ok {
			return
		}
		switch {
		case key.MatchString("c"):
			p.ToggleControlNet()
		case key.MatchString("w"):
			p.Wireframe = !p.Wireframe
		case key.MatchString("["):
			if err := p.SetResolution(p.Resolution() - 1); err != nil {
				logx.Logger().Debug("resolution unchanged", "err", err)
			}
		case key.MatchString("]"):
			_ = p.SetResolution(p.Resolution() + 1)
		}
	}
}

func pickInput(s *scene.Picking) func(uv.Event) {
	return func(ev uv.Event) {
		if orbitInput(s.OrbitControl, ev) {
			return
		}
		if click, ok := ev.(uv.MouseClickEvent); ok && click.Button == uv.MouseLeft {
			// The upper pixel of the half-block cell.
			s.Click(click.X, click.Y*2)
		}
	}
}

func marbleInput(m *scene.Marble) func(uv.Event) {
	return func(ev uv.Event) {
		switch ev := ev.(type) {
		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("w"):
				m.Move(1, 0)
			case ev.MatchString("s"):
				m.Move(-1, 0)
			case ev.MatchString("a"):
				m.Move(0, -1)
			case ev.MatchString("d"):
				m.Move(0, 1)
			case ev.MatchString("x"):
				m.ShowAxes = !m.ShowAxes
			case ev.MatchString("r"):
				m.Reset()
			}
		case uv.MouseMotionEvent:
			m.Look(ev.X*cellWidthPx, ev.Y*cellHeightPx)
		}
	}
}
