package render

import (
	"github.com/taigrr/patchwork/pkg/math3d"
)

// MeshRenderer is the indexed triangle mesh the rasterizer draws. models.Mesh
// and bezier.Mesh satisfy it without this package importing either.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
}

// BoundedMeshRenderer extends MeshRenderer with bounding box support for frustum culling.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// culled reports whether a bounded mesh lies entirely outside the view.
// Meshes without bounds are always drawn.
func (r *Rasterizer) culled(mesh MeshRenderer, transform math3d.Mat4) bool {
	bounded, ok := mesh.(BoundedMeshRenderer)
	if !ok {
		return false
	}

	r.CullingStats.MeshesTested++
	lo, hi := bounded.GetBounds()
	if !r.IsVisible(AABB{Min: lo, Max: hi}, transform) {
		r.CullingStats.MeshesCulled++
		return true
	}
	r.CullingStats.MeshesDrawn++
	return false
}

// worldTriangle fetches face i and moves it to world space. Normals go
// through normalMat and are renormalized.
func worldTriangle(mesh MeshRenderer, i int, transform, normalMat math3d.Mat4) Triangle {
	var tri Triangle
	for k, idx := range mesh.GetFace(i) {
		p, n, uv := mesh.GetVertex(idx)
		tri.V[k] = Vertex{
			Position: transform.MulVec3(p),
			Normal:   normalMat.MulVec3Dir(n).Normalize(),
			UV:       uv,
			Color:    ColorWhite,
		}
	}
	return tri
}

// DrawMeshFlat fills every triangle of mesh with one exact color.
func (r *Rasterizer) DrawMeshFlat(mesh MeshRenderer, transform math3d.Mat4, color Color) {
	if r.culled(mesh, transform) {
		return
	}
	for i := range mesh.TriangleCount() {
		f := mesh.GetFace(i)
		p0, _, _ := mesh.GetVertex(f[0])
		p1, _, _ := mesh.GetVertex(f[1])
		p2, _, _ := mesh.GetVertex(f[2])
		r.DrawTriangleFlat(transform.MulVec3(p0), transform.MulVec3(p1), transform.MulVec3(p2), color)
	}
}

// DrawMeshLit renders mesh with per-vertex lighting interpolated across
// each triangle (Gouraud).
func (r *Rasterizer) DrawMeshLit(mesh MeshRenderer, transform math3d.Mat4, mat Material, light PointLight) {
	if r.culled(mesh, transform) {
		return
	}
	normalMat := transform.NormalMatrix()
	eye := r.camera.Position
	for i := range mesh.TriangleCount() {
		tri := worldTriangle(mesh, i, transform, normalMat)
		for k := range tri.V {
			tri.V[k].Color = FromColorful(light.Illuminate(mat, tri.V[k].Position, tri.V[k].Normal, eye))
		}
		r.DrawTriangle(tri)
	}
}

// DrawMeshTexturedLit renders mesh with perspective-correct texturing,
// modulated by per-vertex lighting.
func (r *Rasterizer) DrawMeshTexturedLit(mesh MeshRenderer, transform math3d.Mat4, tex *Texture, mat Material, light PointLight) {
	if r.culled(mesh, transform) {
		return
	}
	normalMat := transform.NormalMatrix()
	eye := r.camera.Position
	for i := range mesh.TriangleCount() {
		tri := worldTriangle(mesh, i, transform, normalMat)
		for k := range tri.V {
			tri.V[k].Color = FromColorful(light.Illuminate(mat, tri.V[k].Position, tri.V[k].Normal, eye))
		}
		r.DrawTriangleTextured(tri, tex)
	}
}

// DrawMeshShaded renders mesh by running shader on every covered pixel.
func (r *Rasterizer) DrawMeshShaded(mesh MeshRenderer, transform math3d.Mat4, shader FragmentShader) {
	if r.culled(mesh, transform) {
		return
	}
	normalMat := transform.NormalMatrix()
	for i := range mesh.TriangleCount() {
		r.DrawTriangleShaded(worldTriangle(mesh, i, transform, normalMat), shader)
	}
}

// DrawMeshWireframe draws the edges of every triangle of mesh, without
// depth testing.
func (r *Rasterizer) DrawMeshWireframe(mesh MeshRenderer, transform math3d.Mat4, color Color) {
	if r.culled(mesh, transform) {
		return
	}
	for i := range mesh.TriangleCount() {
		f := mesh.GetFace(i)
		var v [3]math3d.Vec3
		for k := range f {
			p, _, _ := mesh.GetVertex(f[k])
			v[k] = transform.MulVec3(p)
		}
		r.DrawLine3D(v[0], v[1], color)
		r.DrawLine3D(v[1], v[2], color)
		r.DrawLine3D(v[2], v[0], color)
	}
}
