package picking

import (
	"errors"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/patchwork/pkg/math3d"
)

func TestNewObject(t *testing.T) {
	tests := []struct {
		name    string
		id      uint32
		wantErr bool
	}{
		{"smallest", 1, false},
		{"largest", MaxID, false},
		{"zero", 0, true},
		{"too large", MaxID + 1, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o, err := NewObject(tc.id, math3d.Zero3(), colorful.Color{R: 1}, 1)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidID) {
					t.Errorf("err = %v, want ErrInvalidID", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if o.ID() != tc.id {
				t.Errorf("ID() = %#x, want %#x", o.ID(), tc.id)
			}
		})
	}
}

func TestObjectGeometry(t *testing.T) {
	o, err := NewObject(0x00FF00, math3d.V3(2, 0, 0), colorful.Color{G: 1}, 0.8)
	if err != nil {
		t.Fatal(err)
	}

	if o.IDColor() != Encode(0x00FF00) {
		t.Errorf("IDColor = %v", o.IDColor())
	}

	m := o.Transform()
	if got := m.MulVec3(math3d.V3(1, 1, 1)); !got.ApproxEqual(math3d.V3(2.8, 0.8, 0.8), 1e-12) {
		t.Errorf("corner = %v, want (2.8, 0.8, 0.8)", got)
	}
	if o.Mesh().TriangleCount() != 12 {
		t.Errorf("cube has %d triangles", o.Mesh().TriangleCount())
	}
}
