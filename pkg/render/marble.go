package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/patchwork/pkg/math3d"
)

// Marble pattern parameters.
const (
	marbleScale      = 5.0
	marbleTurbulence = 10.0
	marblePeriod     = 1.5
	marbleShininess  = 32.0
	marbleSpecular   = 0.3
)

// MarbleShader colors surfaces with a procedural vein pattern computed from
// the world position, lit by one white point light.
type MarbleShader struct {
	Light math3d.Vec3
	Eye   math3d.Vec3
	Base  colorful.Color
	Vein  colorful.Color
}

// NewMarbleShader returns a bluish white marble with brown veins.
func NewMarbleShader(light math3d.Vec3) *MarbleShader {
	return &MarbleShader{
		Light: light,
		Base:  colorful.Color{R: 0.8, G: 0.8, B: 0.9},
		Vein:  colorful.Color{R: 0.3, G: 0.2, B: 0.1},
	}
}

// Pattern returns the unlit marble color at pos.
func (s *MarbleShader) Pattern(pos math3d.Vec3) colorful.Color {
	n := math.Sin((pos.X+pos.Y+pos.Z)*marbleScale + math.Sin(pos.Y*marbleTurbulence)*marblePeriod)
	return MixColor(s.Base, s.Vein, (n+1)/2)
}

// Shade implements FragmentShader: (diffuse + 0.3·specular) times the
// pattern, with a Phong reflection highlight.
func (s *MarbleShader) Shade(pos, normal math3d.Vec3) Color {
	n := normal.Normalize()
	toLight := s.Light.Sub(pos).Normalize()
	diff := math.Max(n.Dot(toLight), 0)

	view := s.Eye.Sub(pos).Normalize()
	reflected := toLight.Negate().Reflect(n)
	spec := math.Pow(math.Max(view.Dot(reflected), 0), marbleShininess)

	return FromColorful(scaleColor(s.Pattern(pos), diff+marbleSpecular*spec))
}
