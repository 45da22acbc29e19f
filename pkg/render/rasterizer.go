// Package render is a small software GPU: framebuffers and offscreen
// targets, a depth-buffered triangle rasterizer, cameras, lighting,
// textures and terminal presentation.
package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/patchwork/pkg/math3d"
)

// Vertex represents a vertex with all attributes needed for rasterization.
type Vertex struct {
	Position math3d.Vec3 // World position
	Normal   math3d.Vec3
	UV       math3d.Vec2
	Color    Color
}

// Triangle represents a triangle to be rasterized.
type Triangle struct {
	V [3]Vertex
}

// FragmentShader computes the color of a pixel from the interpolated world
// position and normal.
type FragmentShader interface {
	Shade(pos, normal math3d.Vec3) Color
}

// Rasterizer draws triangles into a framebuffer with a depth test.
type Rasterizer struct {
	camera                 *Camera
	fb                     *Framebuffer
	zbuffer                []float64
	CullingStats           CullingStats
	DisableBackfaceCulling bool // If true, render both sides of triangles
}

// CullingStats tracks frustum culling performance.
type CullingStats struct {
	MeshesTested int
	MeshesCulled int
	MeshesDrawn  int
}

// NewRasterizer creates a rasterizer drawing into fb as seen by camera.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{camera: camera, fb: fb}
	r.Resize()
	r.ClearDepth()
	return r
}

// Resize reallocates the depth buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
}

// SetCamera replaces the camera used for projection.
func (r *Rasterizer) SetCamera(c *Camera) {
	r.camera = c
}

// Camera returns the camera used for projection.
func (r *Rasterizer) Camera() *Camera {
	return r.camera
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth resets every depth sample to the far value.
func (r *Rasterizer) ClearDepth() {
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// ResetCullingStats resets the culling statistics (call once per frame).
func (r *Rasterizer) ResetCullingStats() {
	r.CullingStats = CullingStats{}
}

// IsVisible tests a local-space box, placed by transform, against the view
// frustum.
func (r *Rasterizer) IsVisible(localBounds AABB, transform math3d.Mat4) bool {
	return r.camera.Frustum().IntersectAABB(localBounds.Transform(transform))
}

func (r *Rasterizer) getDepth(x, y int) float64 {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.Width()+x]
}

func (r *Rasterizer) setDepth(x, y int, z float64) {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return
	}
	r.zbuffer[y*r.Width()+x] = z
}

// screenVertex is a vertex after projection: pixel position, NDC depth and
// 1/w for perspective-correct interpolation.
type screenVertex struct {
	X, Y float64
	Z    float64
	InvW float64
}

// projectTriangle maps three world positions to screen space. Triangles
// crossing the camera plane are rejected whole.
func (r *Rasterizer) projectTriangle(p0, p1, p2 math3d.Vec3) ([3]screenVertex, bool) {
	var sv [3]screenVertex
	viewProj := r.camera.ViewProjectionMatrix()
	for i, p := range [3]math3d.Vec3{p0, p1, p2} {
		clip := viewProj.MulVec4(math3d.V4FromV3(p, 1))
		if clip.W <= 0 {
			return sv, false
		}
		inv := 1 / clip.W
		sv[i] = screenVertex{
			X:    (clip.X*inv + 1) * 0.5 * float64(r.Width()),
			Y:    (1 - clip.Y*inv) * 0.5 * float64(r.Height()), // Y flipped
			Z:    clip.Z * inv,
			InvW: inv,
		}
	}
	return sv, true
}

// scan fills the pixels whose centers lie inside the triangle and pass the
// depth test. fragment receives perspective-correct barycentric weights
// for vertices 0, 1 and 2 and returns the pixel color.
func (r *Rasterizer) scan(sv [3]screenVertex, fragment func(w math3d.Vec3) Color) {
	e1 := math3d.V2(sv[1].X-sv[0].X, sv[1].Y-sv[0].Y)
	e2 := math3d.V2(sv[2].X-sv[0].X, sv[2].Y-sv[0].Y)
	area := e1.Cross(e2)
	if area == 0 {
		return
	}
	if area < 0 && !r.DisableBackfaceCulling {
		return
	}

	minX := int(math.Max(0, math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			bc := barycentric(
				sv[0].X, sv[0].Y,
				sv[1].X, sv[1].Y,
				sv[2].X, sv[2].Y,
				float64(x)+0.5, float64(y)+0.5,
			)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			// NDC depth outside [-1, 1] is clipped by the near and far planes.
			z := bc.X*sv[0].Z + bc.Y*sv[1].Z + bc.Z*sv[2].Z
			if z < -1 || z > 1 || z >= r.getDepth(x, y) {
				continue
			}

			w := math3d.V3(bc.X*sv[0].InvW, bc.Y*sv[1].InvW, bc.Z*sv[2].InvW)
			w = w.Scale(1 / (w.X + w.Y + w.Z))

			r.setDepth(x, y, z)
			r.fb.SetPixel(x, y, fragment(w))
		}
	}
}

// DrawTriangle rasterizes a triangle, interpolating its vertex colors.
func (r *Rasterizer) DrawTriangle(tri Triangle) {
	sv, ok := r.projectTriangle(tri.V[0].Position, tri.V[1].Position, tri.V[2].Position)
	if !ok {
		return
	}
	c := [3]colorful.Color{
		ToColorful(tri.V[0].Color),
		ToColorful(tri.V[1].Color),
		ToColorful(tri.V[2].Color),
	}
	r.scan(sv, func(w math3d.Vec3) Color {
		return FromColorful(interpolateColor3(c[0], c[1], c[2], w))
	})
}

// DrawTriangleFlat fills a triangle with exactly one color. No lighting or
// interpolation touches the value, so it can carry encoded data.
func (r *Rasterizer) DrawTriangleFlat(v0, v1, v2 math3d.Vec3, color Color) {
	sv, ok := r.projectTriangle(v0, v1, v2)
	if !ok {
		return
	}
	r.scan(sv, func(math3d.Vec3) Color { return color })
}

// DrawTriangleTextured rasterizes a textured triangle, modulating the
// texture by the interpolated vertex colors.
func (r *Rasterizer) DrawTriangleTextured(tri Triangle, tex *Texture) {
	sv, ok := r.projectTriangle(tri.V[0].Position, tri.V[1].Position, tri.V[2].Position)
	if !ok {
		return
	}
	c := [3]colorful.Color{
		ToColorful(tri.V[0].Color),
		ToColorful(tri.V[1].Color),
		ToColorful(tri.V[2].Color),
	}
	r.scan(sv, func(w math3d.Vec3) Color {
		u := w.X*tri.V[0].UV.X + w.Y*tri.V[1].UV.X + w.Z*tri.V[2].UV.X
		v := w.X*tri.V[0].UV.Y + w.Y*tri.V[1].UV.Y + w.Z*tri.V[2].UV.Y
		lit := interpolateColor3(c[0], c[1], c[2], w)
		return FromColorful(mulColor(ToColorful(tex.Sample(u, v)), lit))
	})
}

// DrawTriangleShaded rasterizes a triangle, running shader on every pixel
// with the interpolated world position and normal.
func (r *Rasterizer) DrawTriangleShaded(tri Triangle, shader FragmentShader) {
	sv, ok := r.projectTriangle(tri.V[0].Position, tri.V[1].Position, tri.V[2].Position)
	if !ok {
		return
	}
	r.scan(sv, func(w math3d.Vec3) Color {
		pos := tri.V[0].Position.Scale(w.X).
			Add(tri.V[1].Position.Scale(w.Y)).
			Add(tri.V[2].Position.Scale(w.Z))
		n := tri.V[0].Normal.Scale(w.X).
			Add(tri.V[1].Normal.Scale(w.Y)).
			Add(tri.V[2].Normal.Scale(w.Z))
		return shader.Shade(pos, n.Normalize())
	})
}

// barycentric calculates barycentric coordinates for point (px, py) in
// triangle. The result does not depend on winding; a degenerate triangle
// yields NaN.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	invDenom := 1.0 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u)
}

// interpolateColor3 blends three colors with barycentric weights.
func interpolateColor3(c0, c1, c2 colorful.Color, w math3d.Vec3) colorful.Color {
	return colorful.Color{
		R: c0.R*w.X + c1.R*w.Y + c2.R*w.Z,
		G: c0.G*w.X + c1.G*w.Y + c2.G*w.Z,
		B: c0.B*w.X + c1.B*w.Y + c2.B*w.Z,
	}
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
