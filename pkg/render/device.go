package render

import (
	"errors"
	"fmt"

	"github.com/taigrr/patchwork/pkg/math3d"
)

// TargetID names a render target. DefaultTarget is the visible
// framebuffer and always exists.
type TargetID uint32

const DefaultTarget TargetID = 0

// DefaultMaxTargetSize is the largest offscreen target side NewDevice allows.
const DefaultMaxTargetSize = 8192

var (
	// ErrTargetIncomplete is returned when an offscreen target cannot be
	// allocated with the requested size.
	ErrTargetIncomplete = errors.New("render: render target incomplete")
	// ErrNoTargets is returned when offscreen targets are disabled.
	ErrNoTargets = errors.New("render: offscreen render targets unsupported")
	// ErrUnknownTarget is returned for a deleted or never created target.
	ErrUnknownTarget = errors.New("render: unknown render target")
	// ErrOutOfBounds is returned for a pixel read outside the bound target.
	ErrOutOfBounds = errors.New("render: pixel outside render target")
)

type target struct {
	fb     *Framebuffer
	raster *Rasterizer
}

func newTarget(width, height int, cam *Camera) *target {
	fb := NewFramebuffer(width, height)
	r := NewRasterizer(cam, fb)
	r.DisableBackfaceCulling = true
	return &target{fb: fb, raster: r}
}

// Device is a software graphics device with a bindable set of color+depth
// render targets. Draw calls, Clear and ReadPixel act on the bound target.
// Every target renders both faces of each triangle.
//
// A Device is not safe for concurrent use.
type Device struct {
	camera  *Camera
	clear   Color
	targets map[TargetID]*target
	bound   TargetID
	next    TargetID

	// MaxTargetSize bounds the side of offscreen targets. Zero disables
	// them entirely.
	MaxTargetSize int
}

// NewDevice creates a device whose default target is width x height,
// drawing through cam.
func NewDevice(width, height int, cam *Camera) *Device {
	d := &Device{
		camera:        cam,
		clear:         ColorBlack,
		targets:       map[TargetID]*target{DefaultTarget: newTarget(width, height, cam)},
		next:          DefaultTarget + 1,
		MaxTargetSize: DefaultMaxTargetSize,
	}
	cam.SetViewport(width, height)
	return d
}

// Resize reallocates the default target and updates the camera aspect ratio.
// Offscreen targets are left alone.
func (d *Device) Resize(width, height int) {
	d.targets[DefaultTarget] = newTarget(width, height, d.camera)
	d.camera.SetViewport(width, height)
}

// Size returns the size of the default target.
func (d *Device) Size() (int, int) {
	fb := d.targets[DefaultTarget].fb
	return fb.Width, fb.Height
}

// Framebuffer returns the visible color buffer.
func (d *Device) Framebuffer() *Framebuffer {
	return d.targets[DefaultTarget].fb
}

// SupportsTargets reports whether offscreen targets can be created.
func (d *Device) SupportsTargets() bool {
	return d.MaxTargetSize > 0
}

// CreateTarget allocates an offscreen color+depth target.
func (d *Device) CreateTarget(width, height int) (TargetID, error) {
	if !d.SupportsTargets() {
		return 0, ErrNoTargets
	}
	if width <= 0 || height <= 0 || width > d.MaxTargetSize || height > d.MaxTargetSize {
		return 0, fmt.Errorf("%w: %dx%d (max %d)", ErrTargetIncomplete, width, height, d.MaxTargetSize)
	}
	id := d.next
	d.next++
	d.targets[id] = newTarget(width, height, d.camera)
	return id, nil
}

// DeleteTarget frees an offscreen target. Deleting the bound target rebinds
// the default one; deleting DefaultTarget or an unknown id does nothing.
func (d *Device) DeleteTarget(id TargetID) {
	if id == DefaultTarget {
		return
	}
	delete(d.targets, id)
	if d.bound == id {
		d.bound = DefaultTarget
	}
}

// BindTarget makes id the destination of subsequent draws.
func (d *Device) BindTarget(id TargetID) error {
	if _, ok := d.targets[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTarget, id)
	}
	d.bound = id
	return nil
}

// BoundTarget returns the currently bound target.
func (d *Device) BoundTarget() TargetID {
	return d.bound
}

// ClearColor returns the color Clear fills with.
func (d *Device) ClearColor() Color {
	return d.clear
}

// SetClearColor sets the color Clear fills with.
func (d *Device) SetClearColor(c Color) {
	d.clear = c
}

// Clear fills the bound target with the clear color and resets its depth
// and culling statistics.
func (d *Device) Clear() {
	t := d.targets[d.bound]
	t.fb.Clear(d.clear)
	t.raster.ClearDepth()
	t.raster.ResetCullingStats()
}

// Camera returns the camera every target projects through.
func (d *Device) Camera() *Camera {
	return d.camera
}

// SetCamera replaces the camera of every target.
func (d *Device) SetCamera(cam *Camera) {
	d.camera = cam
	for _, t := range d.targets {
		t.raster.SetCamera(cam)
	}
	w, h := d.Size()
	cam.SetViewport(w, h)
}

// Raster returns the rasterizer of the bound target.
func (d *Device) Raster() *Rasterizer {
	return d.targets[d.bound].raster
}

// DrawFlat fills mesh with one exact color.
func (d *Device) DrawFlat(mesh MeshRenderer, transform math3d.Mat4, c Color) {
	d.Raster().DrawMeshFlat(mesh, transform, c)
}

// DrawLit renders mesh with per-vertex lighting.
func (d *Device) DrawLit(mesh MeshRenderer, transform math3d.Mat4, mat Material, light PointLight) {
	d.Raster().DrawMeshLit(mesh, transform, mat, light)
}

// DrawTexturedLit renders mesh textured and lit.
func (d *Device) DrawTexturedLit(mesh MeshRenderer, transform math3d.Mat4, tex *Texture, mat Material, light PointLight) {
	d.Raster().DrawMeshTexturedLit(mesh, transform, tex, mat, light)
}

// DrawShaded renders mesh with a per-pixel shader.
func (d *Device) DrawShaded(mesh MeshRenderer, transform math3d.Mat4, shader FragmentShader) {
	d.Raster().DrawMeshShaded(mesh, transform, shader)
}

// DrawWireframe draws the triangle edges of mesh.
func (d *Device) DrawWireframe(mesh MeshRenderer, transform math3d.Mat4, c Color) {
	d.Raster().DrawMeshWireframe(mesh, transform, c)
}

// ReadPixel reads one pixel of the bound target. Coordinates have their
// origin at the bottom-left corner.
func (d *Device) ReadPixel(x, y int) (Color, error) {
	fb := d.targets[d.bound].fb
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, x, y, fb.Width, fb.Height)
	}
	return fb.GetPixel(x, fb.Height-1-y), nil
}
