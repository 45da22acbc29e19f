package scene

import (
	"fmt"

	"github.com/taigrr/patchwork/pkg/config"
	"github.com/taigrr/patchwork/pkg/logx"
	"github.com/taigrr/patchwork/pkg/math3d"
	"github.com/taigrr/patchwork/pkg/models"
	"github.com/taigrr/patchwork/pkg/render"
)

// Fly camera steps.
const (
	MoveSpeed        = 0.1 // world units per key press
	MouseSensitivity = 0.1 // degrees per pixel of pointer motion
)

// MarbleHome is where the fly camera starts and returns on Reset.
var MarbleHome = math3d.V3(0, 0, 5)

// Marble draws a mesh with the procedural marble shader, seen through a
// free-look fly camera.
type Marble struct {
	dev    *render.Device
	mesh   *models.Mesh
	Shader *render.MarbleShader
	bg     render.Color

	ShowAxes bool

	lastX, lastY int
	tracking     bool
}

// NewMarble loads cfg.Model, centered and scaled to a 2-unit box. With no
// model, or one that fails to load, it draws a cube with 2-unit edges.
func NewMarble(dev *render.Device, cfg config.MarbleConfig, opts Options) *Marble {
	m := &Marble{
		dev:    dev,
		mesh:   loadMarbleMesh(cfg.Model),
		Shader: render.NewMarbleShader(math3d.V3(cfg.LightPosition[0], cfg.LightPosition[1], cfg.LightPosition[2])),
		bg:     opts.Background,
	}
	m.Reset()
	return m
}

func loadMarbleMesh(path string) *models.Mesh {
	if path == "" {
		return models.NewCube(1)
	}
	mesh, err := models.LoadGLB(path)
	if err != nil {
		logx.Logger().Warn("using fallback cube", "model", path, "err", err)
		return models.NewCube(1)
	}
	mesh.Fit(2)
	return mesh
}

// Mesh returns the mesh being drawn.
func (m *Marble) Mesh() *models.Mesh {
	return m.mesh
}

// Move steps the camera forward along its view direction and right along
// its strafe vector, in units of MoveSpeed.
func (m *Marble) Move(forward, right float64) {
	cam := m.dev.Camera()
	cam.MoveForward(forward * MoveSpeed)
	cam.MoveRight(right * MoveSpeed)
}

// Look turns the camera by the pointer motion, in screen pixels, since the
// previous call.
// The first call only records the position. Moving right turns right and
// moving up looks up; pitch stops short of straight up or down.
func (m *Marble) Look(x, y int) {
	if !m.tracking {
		m.lastX, m.lastY = x, y
		m.tracking = true
		return
	}
	dx := float64(x - m.lastX)
	dy := float64(m.lastY - y)
	m.lastX, m.lastY = x, y

	s := math3d.Radians(MouseSensitivity)
	m.dev.Camera().Rotate(dy*s, -dx*s)
}

// Reset puts the camera at MarbleHome looking down -Z.
func (m *Marble) Reset() {
	cam := m.dev.Camera()
	cam.SetPosition(MarbleHome)
	cam.SetRotation(0, 0)
}

// Resize follows the visible target; the device already updated the camera.
func (m *Marble) Resize(int, int) {}

// Update does nothing; the fly camera moves only on input.
func (m *Marble) Update() {}

// Render draws the marble mesh.
func (m *Marble) Render() {
	m.Shader.Eye = m.dev.Camera().Position
	m.dev.SetClearColor(m.bg)
	m.dev.Clear()
	m.dev.DrawShaded(m.mesh, math3d.Identity(), m.Shader)
	if m.ShowAxes {
		m.dev.Raster().DrawAxes(1.5)
	}
}

// Status reports the mesh and the camera position.
func (m *Marble) Status() string {
	p := m.dev.Camera().Position
	return fmt.Sprintf("marble %s  %d tris  eye (%.1f, %.1f, %.1f)",
		m.mesh.Name, m.mesh.TriangleCount(), p.X, p.Y, p.Z)
}
