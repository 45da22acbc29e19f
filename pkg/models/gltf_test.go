package models

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/patchwork/pkg/math3d"
)

// writeTriangleGLB saves a one-triangle GLB, counter-clockwise seen from +Z.
func writeTriangleGLB(t *testing.T, withNormals bool) string {
	t.Helper()

	doc := gltf.NewDocument()
	attrs := map[string]int{
		gltf.POSITION: modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}),
	}
	if withNormals {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	}
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(modeler.WriteIndices(doc, []uint16{0, 1, 2})),
			Attributes: attrs,
		}},
	}}

	path := filepath.Join(t.TempDir(), "tri.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("save glb: %v", err)
	}
	return path
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadGLB(t *testing.T) {
	for _, withNormals := range []bool{true, false} {
		mesh, err := LoadGLB(writeTriangleGLB(t, withNormals))
		if err != nil {
			t.Fatalf("withNormals=%v: %v", withNormals, err)
		}

		if mesh.Name != "tri.glb" {
			t.Errorf("name = %q", mesh.Name)
		}
		if mesh.VertexCount() != 3 || mesh.TriangleCount() != 1 {
			t.Fatalf("got %d vertices, %d triangles", mesh.VertexCount(), mesh.TriangleCount())
		}
		if f := mesh.GetFace(0); f != [3]int{0, 2, 1} {
			t.Errorf("face = %v, want winding reversed to [0 2 1]", f)
		}
		for i := range mesh.VertexCount() {
			if _, n, _ := mesh.GetVertex(i); !n.ApproxEqual(math3d.V3(0, 0, 1), 1e-6) {
				t.Errorf("withNormals=%v: normal %d = %v, want +Z", withNormals, i, n)
			}
		}
		lo, hi := mesh.GetBounds()
		if lo != math3d.Zero3() || hi != math3d.V3(1, 1, 0) {
			t.Errorf("bounds = %v..%v", lo, hi)
		}
	}
}

func TestLoadGLBWithoutTriangles(t *testing.T) {
	doc := gltf.NewDocument()
	path := filepath.Join(t.TempDir(), "empty.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGLB(path); err == nil {
		t.Error("expected an error for a file without triangles")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if !loader.CalculateNormals {
		t.Error("CalculateNormals should default to true")
	}
}
