// Package picking identifies the object under a screen point by rendering
// every object flat in a unique color into an offscreen target and reading
// back one pixel.
package picking

import (
	"image/color"
)

// MaxID is the largest identity that fits in three 8-bit channels.
const MaxID = 1<<24 - 1

// None is the identity of empty space. No object may use it.
const None uint32 = 0

// Encode packs id into an opaque color: bits 16-23 in red, 8-15 in green
// and 0-7 in blue. Bits above MaxID are dropped.
func Encode(id uint32) color.RGBA {
	return color.RGBA{
		R: uint8(id >> 16),
		G: uint8(id >> 8),
		B: uint8(id),
		A: 255,
	}
}

// Decode recovers the identity stored by Encode. Alpha is ignored.
func Decode(c color.RGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
