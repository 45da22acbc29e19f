package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/patchwork/pkg/math3d"
)

// SceneAmbient is the global ambient light added to every lit surface.
var SceneAmbient = Gray(0.2)

// Material holds Phong reflectance coefficients.
type Material struct {
	Ambient   colorful.Color
	Diffuse   colorful.Color
	Specular  colorful.Color
	Shininess float64
}

// PointLight is a positional light with separate ambient, diffuse and
// specular intensities.
type PointLight struct {
	Position math3d.Vec3
	Ambient  colorful.Color
	Diffuse  colorful.Color
	Specular colorful.Color
}

// Illuminate evaluates the Blinn-Phong model for a surface point seen from
// eye. The result is clamped to [0, 1].
func (l PointLight) Illuminate(m Material, pos, normal, eye math3d.Vec3) colorful.Color {
	c := mulColor(m.Ambient, addColor(SceneAmbient, l.Ambient))

	n := normal.Normalize()
	toLight := l.Position.Sub(pos).Normalize()
	ndl := n.Dot(toLight)
	if ndl <= 0 {
		return c.Clamped()
	}
	c = addColor(c, scaleColor(mulColor(m.Diffuse, l.Diffuse), ndl))

	half := toLight.Add(eye.Sub(pos).Normalize()).Normalize()
	if ndh := n.Dot(half); ndh > 0 {
		spec := math.Pow(ndh, m.Shininess)
		c = addColor(c, scaleColor(mulColor(m.Specular, l.Specular), spec))
	}
	return c.Clamped()
}
