package render

import (
	"errors"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/patchwork/pkg/math3d"
)

func approxColor(a, b colorful.Color, eps float64) bool {
	return math.Abs(a.R-b.R) <= eps && math.Abs(a.G-b.G) <= eps && math.Abs(a.B-b.B) <= eps
}

func TestIlluminate(t *testing.T) {
	mat := Material{
		Ambient:   colorful.Color{R: 0.6, G: 0.2, B: 0.2},
		Diffuse:   colorful.Color{R: 0.9, G: 0.1, B: 0.1},
		Specular:  Gray(0.8),
		Shininess: 80,
	}
	light := PointLight{
		Position: math3d.V3(0, 5, 0),
		Ambient:  Gray(0.3),
		Diffuse:  Gray(0.8),
		Specular: Gray(1),
	}
	ambient := colorful.Color{R: 0.6 * 0.5, G: 0.2 * 0.5, B: 0.2 * 0.5}

	t.Run("facing away", func(t *testing.T) {
		got := light.Illuminate(mat, math3d.Zero3(), math3d.V3(0, -1, 0), math3d.V3(0, 5, 0))
		if !approxColor(got, ambient, 1e-9) {
			t.Errorf("got %v, want ambient only %v", got, ambient)
		}
	})

	t.Run("head on", func(t *testing.T) {
		// Light, eye and normal aligned: full diffuse and a specular peak.
		got := light.Illuminate(mat, math3d.Zero3(), math3d.V3(0, 1, 0), math3d.V3(0, 5, 0))
		want := colorful.Color{
			R: ambient.R + 0.9*0.8 + 0.8,
			G: ambient.G + 0.1*0.8 + 0.8,
			B: ambient.B + 0.1*0.8 + 0.8,
		}.Clamped()
		if !approxColor(got, want, 1e-9) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("grazing is darker", func(t *testing.T) {
		head := light.Illuminate(mat, math3d.Zero3(), math3d.V3(0, 1, 0), math3d.V3(0, 5, 0))
		slant := light.Illuminate(mat, math3d.Zero3(), math3d.V3(1, 1, 0), math3d.V3(5, 0, 0))
		if slant.G >= head.G {
			t.Errorf("slanted %v should be darker than head-on %v", slant, head)
		}
	})
}

func TestMarblePattern(t *testing.T) {
	s := NewMarbleShader(math3d.V3(2, 2, 2))

	// sin(0) = 0 puts the origin halfway between base and vein.
	got := s.Pattern(math3d.Zero3())
	want := colorful.Color{R: 0.55, G: 0.5, B: 0.5}
	if !approxColor(got, want, 1e-12) {
		t.Errorf("Pattern(origin) = %v, want %v", got, want)
	}

	// Constant along x+y+z when y is fixed.
	a := s.Pattern(math3d.V3(0.3, 0.2, -0.1))
	b := s.Pattern(math3d.V3(-0.1, 0.2, 0.3))
	if !approxColor(a, b, 1e-12) {
		t.Errorf("pattern varies along a vein: %v vs %v", a, b)
	}

	for _, p := range []math3d.Vec3{math3d.V3(1, 2, 3), math3d.V3(-4, 0.5, 7)} {
		c := s.Pattern(p)
		if c.R < 0.3-1e-12 || c.R > 0.8+1e-12 || c.B < 0.1-1e-12 || c.B > 0.9+1e-12 {
			t.Errorf("Pattern(%v) = %v escapes the base/vein range", p, c)
		}
	}
}

func TestMarbleShade(t *testing.T) {
	s := NewMarbleShader(math3d.V3(0, 0, 5))
	s.Eye = math3d.V3(0, 0, 5)

	lit := s.Shade(math3d.Zero3(), math3d.V3(0, 0, 1))
	// diffuse 1 plus 0.3 specular, clamped.
	if want := FromColorful(scaleColor(s.Pattern(math3d.Zero3()), 1.3)); lit != want {
		t.Errorf("lit = %v, want %v", lit, want)
	}

	s.Eye = math3d.V3(5, 0, 0)
	dark := s.Shade(math3d.Zero3(), math3d.V3(0, 0, -1))
	if dark != ColorBlack {
		t.Errorf("unlit side seen edge-on = %v, want black", dark)
	}
}

func TestNewPlasmaTexture(t *testing.T) {
	if _, err := NewPlasmaTexture(0, 16); !errors.Is(err, ErrTextureSize) {
		t.Errorf("err = %v, want ErrTextureSize", err)
	}

	a, err := NewPlasmaTexture(32, 16)
	if err != nil {
		t.Fatal(err)
	}
	if a.Width != 32 || a.Height != 16 || len(a.Pixels) != 32*16 {
		t.Fatalf("size = %dx%d (%d px)", a.Width, a.Height, len(a.Pixels))
	}
	b, _ := NewPlasmaTexture(32, 16)
	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Fatal("plasma generation is not deterministic")
		}
		if a.Pixels[i].A != 255 {
			t.Fatal("plasma pixels must be opaque")
		}
	}

	// At the center the falloff adds its full 0.3. Generated row y is
	// stored at height-1-y.
	ch := func(phase float64) uint8 { return uint8(((0.5+0.5*math.Sin(phase))*0.7 + 0.3) * 255) }
	want := RGB(ch(4*2+4), ch(4*1.5+4*2), ch(4+4*1.5))
	if got := a.GetPixel(16, 16-1-8); got != want {
		t.Errorf("center texel = %v, want %v", got, want)
	}
}

func TestTextureSample(t *testing.T) {
	tex := NewTexture(2, 2)
	tex.FilterMode = FilterNearest
	tex.SetPixel(0, 0, ColorRed)   // top left
	tex.SetPixel(1, 0, ColorGreen) // top right
	tex.SetPixel(0, 1, ColorBlue)  // bottom left
	tex.SetPixel(1, 1, ColorWhite) // bottom right

	tests := []struct {
		name string
		u, v float64
		wrap WrapMode
		want Color
	}{
		{"bottom left", 0.25, 0.25, WrapRepeat, ColorBlue},
		{"top right", 0.75, 0.75, WrapRepeat, ColorGreen},
		{"repeat", 1.25, -0.75, WrapRepeat, ColorBlue},
		{"clamp", 5, 5, WrapClamp, ColorGreen},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tex.WrapU, tex.WrapV = tc.wrap, tc.wrap
			if got := tex.Sample(tc.u, tc.v); got != tc.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}
}

func TestTextureBilinearUniform(t *testing.T) {
	tex := NewTexture(3, 3)
	for i := range tex.Pixels {
		tex.Pixels[i] = RGB(10, 200, 30)
	}
	for _, uv := range [][2]float64{{0, 0}, {0.5, 0.5}, {0.99, 0.01}, {-0.3, 1.7}} {
		if got := tex.Sample(uv[0], uv[1]); got != RGB(10, 200, 30) {
			t.Errorf("Sample(%v) = %v", uv, got)
		}
	}
}

func TestTextureFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(1, 0, color.RGBA{1, 2, 3, 255})

	tex := TextureFromImage(img)
	if tex.Width != 2 || tex.Height != 1 {
		t.Fatalf("size = %dx%d", tex.Width, tex.Height)
	}
	if got := tex.GetPixel(1, 0); got != RGB(1, 2, 3) {
		t.Errorf("pixel = %v", got)
	}
}

func TestLoadTextureMissing(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestSavePNGRoundTrip(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.Clear(ColorBlack)
	fb.SetPixel(2, 1, ColorYellow)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if got := tex.GetPixel(2, 1); got != ColorYellow {
		t.Errorf("pixel = %v, want yellow", got)
	}
}
