package render

import (
	"math"
	"testing"

	"github.com/taigrr/patchwork/pkg/math3d"
)

func TestPlane(t *testing.T) {
	plane := Plane{Normal: math3d.V3(0, 3, 4), D: 10}
	plane.Normalize()

	if math.Abs(plane.Normal.Len()-1) > 1e-9 || math.Abs(plane.D-2) > 1e-9 {
		t.Fatalf("normalized plane = %+v, want unit normal and D = 2", plane)
	}

	tests := []struct {
		name  string
		point math3d.Vec3
		want  float64
	}{
		{"on plane", math3d.V3(0, -1.2, -1.6), 0},
		{"positive side", math3d.V3(0, 0, 0), 2},
		{"negative side", math3d.V3(0, -6, -8), -8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := plane.DistanceToPoint(tc.point); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("DistanceToPoint(%v) = %v, want %v", tc.point, got, tc.want)
			}
		})
	}

	zero := Plane{D: 3}
	zero.Normalize()
	if zero.D != 3 {
		t.Error("zero plane should be left unchanged")
	}
}

func TestAABBTransform(t *testing.T) {
	box := AABB{Min: math3d.V3(-1, -2, -3), Max: math3d.V3(1, 2, 3)}

	if c := box.Center(); c != math3d.Zero3() {
		t.Errorf("center = %v, want origin", c)
	}

	tests := []struct {
		name     string
		m        math3d.Mat4
		min, max math3d.Vec3
	}{
		{"translation", math3d.Translate(math3d.V3(10, 0, 0)), math3d.V3(9, -2, -3), math3d.V3(11, 2, 3)},
		{"uniform scale", math3d.ScaleUniform(0.8), math3d.V3(-0.8, -1.6, -2.4), math3d.V3(0.8, 1.6, 2.4)},
		{"quarter turn", math3d.RotateY(math.Pi / 2), math3d.V3(-3, -2, -1), math3d.V3(3, 2, 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := box.Transform(tc.m)
			if !got.Min.ApproxEqual(tc.min, 1e-9) || !got.Max.ApproxEqual(tc.max, 1e-9) {
				t.Errorf("Transform = %v..%v, want %v..%v", got.Min, got.Max, tc.min, tc.max)
			}
		})
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	frustum := NewFrustumFromMatrix(math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100))

	for i, plane := range frustum.Planes {
		if math.Abs(plane.Normal.Len()-1) > 1e-6 {
			t.Errorf("plane %d not normalized", i)
		}
	}

	tests := []struct {
		name  string
		point math3d.Vec3
		want  bool
	}{
		{"ahead", math3d.V3(0, 0, -1), true},
		{"almost far", math3d.V3(0, 0, -99), true},
		{"behind", math3d.V3(0, 0, 1), false},
		{"past far", math3d.V3(0, 0, -200), false},
		{"before near", math3d.V3(0, 0, -0.01), false},
		{"off to the side", math3d.V3(50, 0, -10), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.ContainsPoint(tc.point); got != tc.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.want)
			}
		})
	}
}

func TestFrustumIntersectAABB(t *testing.T) {
	frustum := NewFrustumFromMatrix(math3d.Perspective(math.Pi/3, 16.0/9.0, 1, 100))

	tests := []struct {
		name string
		box  AABB
		want bool
	}{
		{"inside", AABB{math3d.V3(-1, -1, -10), math3d.V3(1, 1, -5)}, true},
		{"straddles near plane", AABB{math3d.V3(-1, -1, -2), math3d.V3(1, 1, 2)}, true},
		{"behind", AABB{math3d.V3(-1, -1, 5), math3d.V3(1, 1, 10)}, false},
		{"past far", AABB{math3d.V3(-1, -1, -150), math3d.V3(1, 1, -120)}, false},
		{"right of view", AABB{math3d.V3(100, -1, -10), math3d.V3(110, 1, -5)}, false},
		{"encloses frustum", AABB{math3d.V3(-200, -200, -200), math3d.V3(200, 200, 200)}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.IntersectAABB(tc.box); got != tc.want {
				t.Errorf("IntersectAABB(%v) = %v, want %v", tc.box, got, tc.want)
			}
		})
	}
}

func TestOrbitFrustumSeesPickCubes(t *testing.T) {
	cam := NewCamera()
	cam.SetViewport(160, 96)
	NewOrbit(math3d.Zero3()).Apply(cam)
	frustum := cam.Frustum()

	cube := AABB{Min: math3d.V3(-0.8, -0.8, -0.8), Max: math3d.V3(0.8, 0.8, 0.8)}
	for _, x := range []float64{-2, 0, 2} {
		if !frustum.IntersectAABB(cube.Transform(math3d.Translate(math3d.V3(x, 0, 0)))) {
			t.Errorf("cube at x=%v culled from the default orbit view", x)
		}
	}
	if frustum.ContainsPoint(cam.Position.Add(cam.Forward().Negate())) {
		t.Error("point behind the eye reported visible")
	}
}

func BenchmarkFrustumIntersectAABB(b *testing.B) {
	frustum := NewFrustumFromMatrix(math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 1000))
	box := AABB{math3d.V3(-1, -1, -10), math3d.V3(1, 1, -5)}

	for b.Loop() {
		_ = frustum.IntersectAABB(box)
	}
}

func BenchmarkFrustumExtraction(b *testing.B) {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 1000)
	viewProj := proj.Mul(math3d.LookAt(math3d.V3(0, 10, 20), math3d.Zero3(), math3d.Up()))

	for b.Loop() {
		_ = NewFrustumFromMatrix(viewProj)
	}
}
