package render

import (
	"github.com/taigrr/patchwork/pkg/math3d"
)

// DrawLine3D projects a world-space segment and draws it over the frame.
// Lines are not depth tested. Segments with an endpoint behind the camera
// are skipped.
func (r *Rasterizer) DrawLine3D(a, b math3d.Vec3, color Color) {
	viewProj := r.camera.ViewProjectionMatrix()
	clipA := viewProj.MulVec4(math3d.V4FromV3(a, 1))
	clipB := viewProj.MulVec4(math3d.V4FromV3(b, 1))
	if clipA.W <= 0 || clipB.W <= 0 {
		return
	}

	toScreen := func(c math3d.Vec4) (int, int) {
		ndc := c.PerspectiveDivide()
		return int((ndc.X + 1) * 0.5 * float64(r.Width())),
			int((1 - ndc.Y) * 0.5 * float64(r.Height()))
	}
	x0, y0 := toScreen(clipA)
	x1, y1 := toScreen(clipB)
	r.fb.DrawLine(x0, y0, x1, y1, color)
}

// DrawLineStrip draws segments between consecutive points.
func (r *Rasterizer) DrawLineStrip(points []math3d.Vec3, color Color) {
	for i := 1; i < len(points); i++ {
		r.DrawLine3D(points[i-1], points[i], color)
	}
}

// DrawPoint draws a point as a small axis-aligned cross.
func (r *Rasterizer) DrawPoint(pos math3d.Vec3, size float64, color Color) {
	h := size / 2
	r.DrawLine3D(pos.Sub(math3d.V3(h, 0, 0)), pos.Add(math3d.V3(h, 0, 0)), color)
	r.DrawLine3D(pos.Sub(math3d.V3(0, h, 0)), pos.Add(math3d.V3(0, h, 0)), color)
	r.DrawLine3D(pos.Sub(math3d.V3(0, 0, h)), pos.Add(math3d.V3(0, 0, h)), color)
}

// DrawAxes draws the coordinate axes at the origin in red, green and blue.
func (r *Rasterizer) DrawAxes(length float64) {
	origin := math3d.Zero3()
	r.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)
	r.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen)
	r.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)
}
