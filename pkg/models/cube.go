package models

import (
	"github.com/taigrr/patchwork/pkg/math3d"
)

// cubeFaces lists each face as its outward normal and two in-plane axes
// with u x v = normal.
var cubeFaces = [6]struct{ n, u, v math3d.Vec3 }{
	{math3d.V3(1, 0, 0), math3d.V3(0, 0, -1), math3d.V3(0, 1, 0)},
	{math3d.V3(-1, 0, 0), math3d.V3(0, 0, 1), math3d.V3(0, 1, 0)},
	{math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, -1)},
	{math3d.V3(0, -1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1)},
	{math3d.V3(0, 0, 1), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)},
	{math3d.V3(0, 0, -1), math3d.V3(-1, 0, 0), math3d.V3(0, 1, 0)},
}

// NewCube returns an axis-aligned cube centered on the origin with the
// given half edge length. Each face has its own four vertices so normals
// stay flat: 24 vertices, 12 triangles.
func NewCube(halfSize float64) *Mesh {
	m := NewMesh("cube")
	corners := [4]math3d.Vec2{math3d.V2(-1, -1), math3d.V2(-1, 1), math3d.V2(1, 1), math3d.V2(1, -1)}

	for _, f := range cubeFaces {
		base := len(m.Vertices)
		for _, c := range corners {
			p := f.n.Add(f.u.Scale(c.X)).Add(f.v.Scale(c.Y)).Scale(halfSize)
			m.Vertices = append(m.Vertices, MeshVertex{
				Position: p,
				Normal:   f.n,
				UV:       math3d.V2((c.X+1)/2, (c.Y+1)/2),
			})
		}
		m.Faces = append(m.Faces,
			[3]int{base, base + 1, base + 2},
			[3]int{base, base + 2, base + 3},
		)
	}
	m.CalculateBounds()
	return m
}
