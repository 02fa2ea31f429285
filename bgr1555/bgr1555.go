/*
Package bgr1555 implements the packed 15-bit color used by the calculator
display.

Each color is stored as a 16-bit value laid out as 0BBBBBGGGGGRRRRR, that is
five bits each of blue, green and red from high to low with the top bit
unused. The red and blue channels of a conventional RGB triple are swapped on
the way in so the input red ends up in bits 10-14 and the input blue in bits
0-4.
*/
package bgr1555

import "image/color"

const mask = 0x1f

// Color is a packed 15-bit color. It implements the color.Color interface.
type Color uint16

// Pack converts a 24-bit RGB triple into a packed Color. Each channel is
// truncated to its top five bits.
func Pack(r, g, b uint8) Color {
	r, b = b, r
	return Color(uint16(b>>3&mask)<<10 | uint16(g>>3&mask)<<5 | uint16(r>>3&mask))
}

// LowField returns bits 0-4 of c, which hold the blue channel of the triple
// passed to Pack.
func (c Color) LowField() uint8 {
	return uint8(c & mask)
}

// expand widens a 5-bit channel to 8 bits by replicating the top bits
func expand(v uint16) uint32 {
	v &= mask
	return uint32(v<<3 | v>>2)
}

// RGBA returns the color that was passed to Pack, within the precision of
// five bits per channel. It is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = expand(uint16(c) >> 10)
	g = expand(uint16(c) >> 5)
	b = expand(uint16(c))
	return r * 0x101, g * 0x101, b * 0x101, 0xffff
}

// Model converts any color.Color to a Color.
var Model = color.ModelFunc(model)

func model(c color.Color) color.Color {
	if p, ok := c.(Color); ok {
		return p
	}
	// Alpha is ignored, the display has no transparency
	r, g, b, _ := c.RGBA()
	return Pack(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
