package bezier

import (
	"errors"
	"fmt"

	"github.com/taigrr/patchwork/pkg/logx"
	"github.com/taigrr/patchwork/pkg/math3d"
)

// DefaultResolution is the number of grid cells per side the patch demo uses.
const DefaultResolution = 12

// ErrResolution is returned for a tessellation resolution below 1.
var ErrResolution = errors.New("bezier: resolution must be at least 1")

// Mesh is a tessellated patch. Vertices, Normals and the (u, v) pairs in
// TexCoords are parallel; Indices holds one triple per triangle.
//
// Mesh satisfies the renderer's mesh interface, so a patch is drawn
// straight from these slices.
type Mesh struct {
	Vertices  []math3d.Vec3
	Normals   []math3d.Vec3
	TexCoords []float64 // u0, v0, u1, v1, ...
	Indices   []int

	boundsMin math3d.Vec3
	boundsMax math3d.Vec3
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// GetVertex returns the attributes of vertex i.
func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	return m.Vertices[i], m.Normals[i], math3d.V2(m.TexCoords[2*i], m.TexCoords[2*i+1])
}

// GetFace returns the vertex indices of triangle i.
func (m *Mesh) GetFace(i int) [3]int {
	return [3]int{m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]}
}

// GetBounds returns the axis-aligned bounds of the vertices.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.boundsMin, m.boundsMax
}

// Tessellate samples g on an (n+1)x(n+1) parameter grid and returns the
// triangle mesh. Row i of the grid holds u = i/n and column j holds v = j/n;
// each cell contributes the triangles (tl, bl, tr) and (tr, bl, br).
func Tessellate(g *ControlGrid, n int) (*Mesh, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrResolution, n)
	}

	side := n + 1
	m := &Mesh{
		Vertices:  make([]math3d.Vec3, 0, side*side),
		Normals:   make([]math3d.Vec3, 0, side*side),
		TexCoords: make([]float64, 0, 2*side*side),
		Indices:   make([]int, 0, 6*n*n),
	}

	for i := 0; i <= n; i++ {
		u := float64(i) / float64(n)
		for j := 0; j <= n; j++ {
			v := float64(j) / float64(n)
			p := g.Evaluate(u, v)
			m.Vertices = append(m.Vertices, p)
			m.Normals = append(m.Normals, g.Normal(u, v))
			m.TexCoords = append(m.TexCoords, u, v)

			if len(m.Vertices) == 1 {
				m.boundsMin, m.boundsMax = p, p
			} else {
				m.boundsMin = m.boundsMin.Min(p)
				m.boundsMax = m.boundsMax.Max(p)
			}
		}
	}

	for i := range n {
		for j := range n {
			tl := i*side + j
			tr := tl + 1
			bl := (i+1)*side + j
			br := bl + 1
			m.Indices = append(m.Indices, tl, bl, tr, tr, bl, br)
		}
	}

	logx.Logger().Debug("bezier patch tessellated",
		"resolution", n,
		"vertices", m.VertexCount(),
		"triangles", m.TriangleCount())
	return m, nil
}

// Tessellator owns a control grid and the mesh generated from it.
type Tessellator struct {
	grid       ControlGrid
	resolution int
	mesh       *Mesh
}

// NewTessellator tessellates grid at resolution n.
func NewTessellator(grid ControlGrid, n int) (*Tessellator, error) {
	t := &Tessellator{grid: grid}
	if err := t.SetResolution(n); err != nil {
		return nil, err
	}
	return t, nil
}

// SetResolution regenerates the mesh at resolution n. On error the previous
// mesh is kept.
func (t *Tessellator) SetResolution(n int) error {
	m, err := Tessellate(&t.grid, n)
	if err != nil {
		return err
	}
	t.resolution = n
	t.mesh = m
	return nil
}

// Grid returns the control grid.
func (t *Tessellator) Grid() ControlGrid {
	return t.grid
}

// Resolution returns the current number of cells per side.
func (t *Tessellator) Resolution() int {
	return t.resolution
}

// Mesh returns the current mesh. Callers must not modify it.
func (t *Tessellator) Mesh() *Mesh {
	return t.mesh
}
