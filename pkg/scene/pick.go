package scene

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/patchwork/pkg/logx"
	"github.com/taigrr/patchwork/pkg/math3d"
	"github.com/taigrr/patchwork/pkg/picking"
	"github.com/taigrr/patchwork/pkg/render"
)

// cubeSpecs are the picking demo's cubes: one red, one green and one blue,
// each identified by its own color.
var cubeSpecs = []struct {
	id  uint32
	pos math3d.Vec3
	c   colorful.Color
}{
	{0xFF0000, math3d.V3(-2, 0, 0), colorful.Color{R: 1}},
	{0x00FF00, math3d.V3(0, 0, 0), colorful.Color{G: 1}},
	{0x0000FF, math3d.V3(2, 0, 0), colorful.Color{B: 1}},
}

// CubeHalfSize is the half edge length of the picking demo's cubes.
const CubeHalfSize = 0.8

// Picking shows lit cubes that change color when clicked.
type Picking struct {
	*OrbitControl

	dev     *render.Device
	picker  *picking.Picker
	palette *Palette
	bg      render.Color
	Light   render.PointLight
	Objects []*picking.Object

	selected int
}

// NewPicking builds the three-cube scene and its picking surface. If the
// surface cannot be made the scene still renders; clicks select nothing.
func NewPicking(dev *render.Device, opts Options) *Picking {
	s := &Picking{
		OrbitControl: NewOrbitControl(math3d.Zero3(), opts),
		dev:          dev,
		picker:       picking.New(dev),
		palette:      NewPalette(),
		bg:           opts.Background,
		Light: render.PointLight{
			Position: math3d.V3(5, 5, 5),
			Ambient:  render.Gray(0.3),
			Diffuse:  render.Gray(0.9),
			Specular: render.Gray(1),
		},
		selected: -1,
	}
	for _, spec := range cubeSpecs {
		o, err := picking.NewObject(spec.id, spec.pos, spec.c, CubeHalfSize)
		if err != nil {
			panic(err) // cubeSpecs ids are constant and valid
		}
		s.Objects = append(s.Objects, o)
	}

	// Init logs its own failure.
	_ = s.picker.Init(dev.Size())
	return s
}

// Available reports whether clicks can select anything.
func (s *Picking) Available() bool {
	return s.picker.Available()
}

// Selected returns the index of the last object clicked, or -1.
func (s *Picking) Selected() int {
	return s.selected
}

// Click picks at framebuffer pixel (x, y), y down. A hit object takes the
// next palette color.
func (s *Picking) Click(x, y int) (int, bool) {
	s.Apply(s.dev.Camera())
	idx, ok := s.picker.Pick(x, y, s.Objects)
	if !ok {
		return -1, false
	}

	o := s.Objects[idx]
	o.Color = s.palette.Next()
	s.selected = idx
	logx.Logger().Info("object selected", "index", idx, "id", fmt.Sprintf("%#08x", o.ID()),
		"color", o.Color.Hex())
	return idx, true
}

// Resize recreates the picking surface for the new visible size.
func (s *Picking) Resize(width, height int) {
	_ = s.picker.Resize(width, height)
}

// Material returns the lit material for a display color.
func Material(c colorful.Color) render.Material {
	return render.Material{
		Ambient:   colorful.Color{R: 0.3 * c.R, G: 0.3 * c.G, B: 0.3 * c.B},
		Diffuse:   c,
		Specular:  render.Gray(0.8),
		Shininess: 50,
	}
}

// Render draws the cubes lit with their current colors.
func (s *Picking) Render() {
	s.Apply(s.dev.Camera())
	s.dev.SetClearColor(s.bg)
	s.dev.Clear()
	for _, o := range s.Objects {
		s.dev.DrawLit(o.Mesh(), o.Transform(), Material(o.Color), s.Light)
	}
}

// Status reports the last selection.
func (s *Picking) Status() string {
	if !s.Available() {
		return "pick: picking unavailable"
	}
	if s.selected < 0 {
		return "pick: click a cube"
	}
	o := s.Objects[s.selected]
	return fmt.Sprintf("pick: cube %d (id %#08x) is now %s", s.selected, o.ID(), o.Color.Hex())
}
