package bezier

import "github.com/taigrr/patchwork/pkg/math3d"

// NormalEpsilon is the parameter step of the forward differences used by
// Normal.
const NormalEpsilon = 0.01

// ControlGrid is a row-major 4x4 net of control points. Row i is the u
// direction and column j the v direction, so P[i][j] weights
// B_i(u)·B_j(v).
type ControlGrid [Degree + 1][Degree + 1]math3d.Vec3

// DefaultGrid returns the arched net of the patch demo. It spans
// [-1.5, 1.5] on X and Z; the inner control points are lifted so the surface
// bulges upward.
func DefaultGrid() ControlGrid {
	heights := [4][4]float64{
		{0, 2, 2, 0},
		{1, 3, 3, 1},
		{1, 3, 3, 1},
		{0, 2, 2, 0},
	}
	var g ControlGrid
	for i := range 4 {
		for j := range 4 {
			g[i][j] = math3d.V3(-1.5+float64(j), heights[i][j], -1.5+float64(i))
		}
	}
	return g
}

// Evaluate returns the surface point S(u, v) as the direct tensor product
// sum over all sixteen control points.
func (g *ControlGrid) Evaluate(u, v float64) math3d.Vec3 {
	var p math3d.Vec3
	for i := range Degree + 1 {
		bu := Bernstein(i, Degree, u)
		for j := range Degree + 1 {
			p = p.Add(g[i][j].Scale(bu * Bernstein(j, Degree, v)))
		}
	}
	return p
}

// Normal approximates the unit surface normal at (u, v) as the normalized
// cross product of the forward differences along u and v. Where the
// surface is degenerate the zero vector is returned.
//
// The differences step past 1 at the far edges; the polynomial is simply
// extrapolated there.
func (g *ControlGrid) Normal(u, v float64) math3d.Vec3 {
	p := g.Evaluate(u, v)
	du := g.Evaluate(u+NormalEpsilon, v).Sub(p)
	dv := g.Evaluate(u, v+NormalEpsilon).Sub(p)
	return du.Cross(dv).Normalize()
}
