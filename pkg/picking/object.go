package picking

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/patchwork/pkg/math3d"
	"github.com/taigrr/patchwork/pkg/models"
	"github.com/taigrr/patchwork/pkg/render"
)

// ErrInvalidID is returned for an identity of zero or above MaxID.
var ErrInvalidID = errors.New("picking: identity must be in [1, 0xFFFFFF]")

// unitCube is shared by every object; Transform sizes it.
var unitCube = models.NewCube(1)

// Object is a cube that can be picked. Its identity is fixed at creation;
// the display color may change.
type Object struct {
	id       uint32
	Position math3d.Vec3
	Scale    float64 // half edge length
	Color    colorful.Color
}

// NewObject creates a cube of half edge scale at pos.
func NewObject(id uint32, pos math3d.Vec3, c colorful.Color, scale float64) (*Object, error) {
	if id == None || id > MaxID {
		return nil, fmt.Errorf("%w: got %#x", ErrInvalidID, id)
	}
	return &Object{id: id, Position: pos, Scale: scale, Color: c}, nil
}

// ID returns the object's identity.
func (o *Object) ID() uint32 {
	return o.id
}

// Mesh returns the geometry drawn for the object, in local space.
func (o *Object) Mesh() render.MeshRenderer {
	return unitCube
}

// Transform places the unit cube in the world.
func (o *Object) Transform() math3d.Mat4 {
	return math3d.Translate(o.Position).Mul(math3d.ScaleUniform(o.Scale))
}

// IDColor is the color the object is drawn with in the picking pass.
func (o *Object) IDColor() render.Color {
	return Encode(o.id)
}
