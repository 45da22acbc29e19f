package main

import (
	"context"
	"fmt"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/patchwork/pkg/render"
	"github.com/taigrr/patchwork/pkg/scene"
)

// demo is a scene plus the handler that maps input events onto it.
type demo struct {
	scene.Scene
	input func(ev uv.Event)
}

// buildFunc creates a demo drawing into dev.
type buildFunc func(dev *render.Device, opts scene.Options) (*demo, error)

// snapshot renders a single frame of w x h pixels to a PNG file.
func snapshot(path string, w, h int, opts scene.Options, build buildFunc) error {
	opts.Smooth = false
	dev := render.NewDevice(w, h, render.NewCamera())
	d, err := build(dev, opts)
	if err != nil {
		return err
	}
	d.Update()
	d.Render()
	if err := dev.Framebuffer().SavePNG(path); err != nil {
		return err
	}
	fmt.Printf("Saved %s (%dx%d): %s\n", path, w, h, d.Status())
	return nil
}

// runTerminal drives a demo in the alternate screen until Esc, Ctrl+C or
// ctx is done. Terminal events are read on their own goroutine and handed
// to the frame loop, which owns the scene.
func runTerminal(ctx context.Context, opts scene.Options, build buildFunc) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	dev := render.NewDevice(fbWidth, fbHeight, render.NewCamera())

	d, err := build(dev, opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan uv.Event, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	hud := NewHUD()
	targetDuration := time.Second / time.Duration(opts.FPS)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := time.Now()

	drain:
		for {
			select {
			case ev := <-events:
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					width, height = ev.Width, ev.Height
					term.Erase()
					term.Resize(width, height)
					termRenderer = render.NewTerminalRenderer(term, width, height)
					fbWidth, fbHeight = termRenderer.FramebufferSize()
					dev.Resize(fbWidth, fbHeight)
					d.Resize(fbWidth, fbHeight)

				case uv.KeyPressEvent:
					switch {
					case ev.MatchString("escape", "ctrl+c"):
						return nil
					case ev.MatchString("?", "shift+/"):
						hud.Show = !hud.Show
					default:
						d.input(ev)
					}

				default:
					d.input(ev)
				}
			default:
				break drain
			}
		}

		d.Update()
		d.Render()

		termRenderer.Render(dev.Framebuffer())
		hud.UpdateFPS()
		hud.Draw(termRenderer, width, height, d.Status())
		if err := termRenderer.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
