package render

import (
	"errors"
	"testing"

	"github.com/taigrr/patchwork/pkg/math3d"
)

func newTestDevice(width, height int) *Device {
	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 0, 10))
	cam.LookAt(math3d.Zero3())
	return NewDevice(width, height, cam)
}

func TestDeviceTargets(t *testing.T) {
	d := newTestDevice(40, 30)
	if !d.SupportsTargets() {
		t.Fatal("new device should support offscreen targets")
	}

	a, err := d.CreateTarget(40, 30)
	if err != nil {
		t.Fatalf("CreateTarget: %v", err)
	}
	b, err := d.CreateTarget(8, 8)
	if err != nil {
		t.Fatalf("CreateTarget: %v", err)
	}
	if a == DefaultTarget || b == DefaultTarget || a == b {
		t.Fatalf("target ids %d and %d must be distinct and non-default", a, b)
	}

	if err := d.BindTarget(b); err != nil {
		t.Fatalf("BindTarget: %v", err)
	}
	if d.BoundTarget() != b {
		t.Errorf("bound = %d, want %d", d.BoundTarget(), b)
	}
	if d.Raster().Width() != 8 {
		t.Errorf("bound raster width = %d, want 8", d.Raster().Width())
	}

	d.DeleteTarget(b)
	if d.BoundTarget() != DefaultTarget {
		t.Error("deleting the bound target should rebind the default one")
	}
	if err := d.BindTarget(b); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("bind deleted target: err = %v, want ErrUnknownTarget", err)
	}

	d.DeleteTarget(DefaultTarget)
	if err := d.BindTarget(DefaultTarget); err != nil {
		t.Errorf("default target must survive DeleteTarget: %v", err)
	}
}

func TestDeviceCreateTargetErrors(t *testing.T) {
	tests := []struct {
		name    string
		maxSize int
		w, h    int
		want    error
	}{
		{"zero width", DefaultMaxTargetSize, 0, 10, ErrTargetIncomplete},
		{"negative height", DefaultMaxTargetSize, 10, -1, ErrTargetIncomplete},
		{"too large", 64, 65, 10, ErrTargetIncomplete},
		{"targets disabled", 0, 10, 10, ErrNoTargets},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDevice(10, 10)
			d.MaxTargetSize = tc.maxSize
			if _, err := d.CreateTarget(tc.w, tc.h); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDeviceClearOnlyTouchesBoundTarget(t *testing.T) {
	d := newTestDevice(20, 20)
	d.SetClearColor(ColorRed)
	d.Clear()

	off, err := d.CreateTarget(20, 20)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.BindTarget(off); err != nil {
		t.Fatal(err)
	}
	d.SetClearColor(ColorBlue)
	d.Clear()

	if got, _ := d.ReadPixel(5, 5); got != ColorBlue {
		t.Errorf("offscreen pixel = %v, want blue", got)
	}
	if got := d.Framebuffer().GetPixel(5, 5); got != ColorRed {
		t.Errorf("visible pixel = %v, want red", got)
	}
	if d.ClearColor() != ColorBlue {
		t.Error("ClearColor should report the last color set")
	}
}

func TestDeviceReadPixelOrigin(t *testing.T) {
	d := newTestDevice(10, 6)
	d.Framebuffer().SetPixel(3, 0, ColorGreen) // top row

	got, err := d.ReadPixel(3, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got != ColorGreen {
		t.Errorf("ReadPixel(3, 5) = %v, want the top-row pixel", got)
	}

	for _, p := range [][2]int{{-1, 0}, {10, 0}, {0, 6}, {0, -1}} {
		if _, err := d.ReadPixel(p[0], p[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("ReadPixel(%d, %d): err = %v, want ErrOutOfBounds", p[0], p[1], err)
		}
	}
}

func TestDeviceDrawsBothFaces(t *testing.T) {
	d := newTestDevice(40, 40)
	// Wound counter-clockwise on screen.
	back := quadMesh(2, math3d.V3(0, 0, 1))
	back.faces = [][3]int{{0, 2, 1}, {0, 3, 2}}

	d.DrawFlat(back, math3d.Identity(), ColorYellow)
	if got := d.Framebuffer().GetPixel(20, 20); got != ColorYellow {
		t.Errorf("back-facing quad not drawn: %v", got)
	}
}

func TestDeviceResize(t *testing.T) {
	d := newTestDevice(40, 20)
	off, _ := d.CreateTarget(4, 4)

	d.Resize(30, 10)
	if w, h := d.Size(); w != 30 || h != 10 {
		t.Errorf("size = %dx%d, want 30x10", w, h)
	}
	if d.Camera().AspectRatio != 3 {
		t.Errorf("aspect = %v, want 3", d.Camera().AspectRatio)
	}
	if err := d.BindTarget(off); err != nil {
		t.Errorf("offscreen target lost on resize: %v", err)
	}
}

func TestDeviceSetCamera(t *testing.T) {
	d := newTestDevice(40, 20)
	off, _ := d.CreateTarget(40, 20)

	cam := NewCamera()
	d.SetCamera(cam)
	if d.Camera() != cam || d.Raster().Camera() != cam {
		t.Error("default target not switched to the new camera")
	}
	_ = d.BindTarget(off)
	if d.Raster().Camera() != cam {
		t.Error("offscreen target not switched to the new camera")
	}
	if cam.AspectRatio != 2 {
		t.Errorf("aspect = %v, want 2", cam.AspectRatio)
	}
}
