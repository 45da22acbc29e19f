package scene

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/patchwork/pkg/bezier"
	"github.com/taigrr/patchwork/pkg/config"
	"github.com/taigrr/patchwork/pkg/math3d"
	"github.com/taigrr/patchwork/pkg/render"
)

// PatchTarget is the point the patch demo orbits, the middle of the arch.
var PatchTarget = math3d.V3(0, 1.5, 0)

var (
	netColor   = render.RGB(255, 220, 0)
	pointColor = render.RGB(255, 80, 80)
	wireColor  = render.RGB(0, 255, 128)
)

// Patch draws the textured, lit bicubic Bézier patch.
type Patch struct {
	*OrbitControl

	dev      *render.Device
	tess     *bezier.Tessellator
	tex      *render.Texture
	bg       render.Color
	Light    render.PointLight
	Material render.Material

	ShowControlNet bool
	Wireframe      bool // draw triangle edges instead of the lit surface
}

// NewPatch tessellates the default grid at cfg.Resolution and loads
// cfg.Texture, or generates a plasma of cfg.TextureSize when it is empty.
func NewPatch(dev *render.Device, cfg config.PatchConfig, opts Options) (*Patch, error) {
	tess, err := bezier.NewTessellator(bezier.DefaultGrid(), cfg.Resolution)
	if err != nil {
		return nil, err
	}

	var tex *render.Texture
	if cfg.Texture != "" {
		tex, err = render.LoadTexture(cfg.Texture)
	} else {
		tex, err = render.NewPlasmaTexture(cfg.TextureSize, cfg.TextureSize)
	}
	if err != nil {
		return nil, fmt.Errorf("patch texture: %w", err)
	}

	return &Patch{
		OrbitControl: NewOrbitControl(PatchTarget, opts),
		dev:          dev,
		tess:         tess,
		tex:          tex,
		bg:           opts.Background,
		Light: render.PointLight{
			Position: math3d.V3(5, 5, 5),
			Ambient:  render.Gray(0.3),
			Diffuse:  render.Gray(0.8),
			Specular: render.Gray(1),
		},
		Material: render.Material{
			Ambient:   colorful.Color{R: 0.6, G: 0.2, B: 0.2},
			Diffuse:   colorful.Color{R: 0.9, G: 0.1, B: 0.1},
			Specular:  render.Gray(0.8),
			Shininess: 80,
		},
		ShowControlNet: cfg.ShowControlNet,
	}, nil
}

// Mesh returns the current tessellation.
func (p *Patch) Mesh() *bezier.Mesh {
	return p.tess.Mesh()
}

// Resolution returns the subdivisions per parameter direction.
func (p *Patch) Resolution() int {
	return p.tess.Resolution()
}

// SetResolution re-tessellates the patch. An invalid n keeps the old mesh.
func (p *Patch) SetResolution(n int) error {
	return p.tess.SetResolution(n)
}

// ToggleControlNet shows or hides the control polygon overlay.
func (p *Patch) ToggleControlNet() {
	p.ShowControlNet = !p.ShowControlNet
}

// Resize follows the visible target; the device already updated the camera.
func (p *Patch) Resize(int, int) {}

// Render draws the patch and, if enabled, its control net on top.
func (p *Patch) Render() {
	p.Apply(p.dev.Camera())
	p.dev.SetClearColor(p.bg)
	p.dev.Clear()
	if p.Wireframe {
		p.dev.DrawWireframe(p.tess.Mesh(), math3d.Identity(), wireColor)
	} else {
		p.dev.DrawTexturedLit(p.tess.Mesh(), math3d.Identity(), p.tex, p.Material, p.Light)
	}

	if p.ShowControlNet {
		p.drawControlNet()
	}
}

func (p *Patch) drawControlNet() {
	r := p.dev.Raster()
	g := p.tess.Grid()
	for i := range g {
		row := make([]math3d.Vec3, 0, len(g[i]))
		col := make([]math3d.Vec3, 0, len(g))
		for j := range g[i] {
			row = append(row, g[i][j])
			col = append(col, g[j][i])
		}
		r.DrawLineStrip(row, netColor)
		r.DrawLineStrip(col, netColor)
	}
	for i := range g {
		for j := range g[i] {
			r.DrawPoint(g[i][j], 0.15, pointColor)
		}
	}
}

// Status reports resolution, mesh size and camera distance.
func (p *Patch) Status() string {
	m := p.tess.Mesh()
	return fmt.Sprintf("patch n=%d  %d verts  %d tris  dist %.1f",
		p.tess.Resolution(), m.VertexCount(), m.TriangleCount(), p.View().Distance)
}
