package picking

import (
	"image/color"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		id   uint32
		want color.RGBA
	}{
		{0xFF0000, color.RGBA{255, 0, 0, 255}},
		{0x00FF00, color.RGBA{0, 255, 0, 255}},
		{0x0000FF, color.RGBA{0, 0, 255, 255}},
		{0x123456, color.RGBA{0x12, 0x34, 0x56, 255}},
		{None, color.RGBA{0, 0, 0, 255}},
		{0x1ABCDEF, color.RGBA{0xAB, 0xCD, 0xEF, 255}}, // high byte dropped
	}
	for _, tc := range tests {
		if got := Encode(tc.id); got != tc.want {
			t.Errorf("Encode(%#x) = %v, want %v", tc.id, got, tc.want)
		}
	}
}

func TestDecodeInvertsEncode(t *testing.T) {
	for id := uint32(1); id <= MaxID; id++ {
		if got := Decode(Encode(id)); got != id {
			t.Fatalf("Decode(Encode(%#x)) = %#x", id, got)
		}
	}
}

func TestDecodeIgnoresAlpha(t *testing.T) {
	if got := Decode(color.RGBA{0x12, 0x34, 0x56, 0}); got != 0x123456 {
		t.Errorf("got %#x", got)
	}
}
