/*
Package image implements the calculator image record encoder.

An image is stretched to a fixed target size, reduced to no more than 256
colors and written as a record of 256 packed 15-bit colors followed by one
palette index per pixel. There is no header, length or padding so a record is
always 512 + width * height bytes. The palette is stored in little-endian
order and sorted by the low five bits of each color; entries not used by the
image are black.
*/
package image

import "errors"

const (
	// PaletteEntries is the fixed number of colors in every record
	PaletteEntries = 256

	// PaletteBytes is the size in bytes of the palette block of a record
	PaletteBytes = PaletteEntries << 1

	lowFieldValues = 32
)

var (
	// ErrBadSize is returned when the target width or height is not positive
	ErrBadSize = errors.New("image: invalid target size")

	// ErrBadDither is returned for a dithering method that isn't recognised
	ErrBadDither = errors.New("image: unknown dithering method")

	// ErrEmptyImage is returned when the source image has no pixels
	ErrEmptyImage = errors.New("image: image has no pixels")
)
