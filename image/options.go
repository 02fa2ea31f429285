package image

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is the width and height every image is resized to.
type Size struct {
	Width  int
	Height int
}

// The two resolutions offered by the calculator tooling.
var (
	SizeLarge = Size{320, 240}
	SizeSmall = Size{160, 96}
)

// Pixels returns the number of pixels, and therefore index bytes, per record.
func (s Size) Pixels() int {
	return s.Width * s.Height
}

// RecordLen returns the length in bytes of one encoded record.
func (s Size) RecordLen() int {
	return PaletteBytes + s.Pixels()
}

func (s Size) valid() bool {
	return s.Width > 0 && s.Height > 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Set parses a size written as WIDTHxHEIGHT.
func (s *Size) Set(value string) error {
	// Accept the multiplication sign as well
	v := strings.ToLower(strings.ReplaceAll(value, "×", "x"))
	parts := strings.Split(v, "x")
	if len(parts) != 2 {
		return fmt.Errorf("%w: %q", ErrBadSize, value)
	}

	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrBadSize, value)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrBadSize, value)
	}

	n := Size{w, h}
	if !n.valid() {
		return fmt.Errorf("%w: %q", ErrBadSize, value)
	}
	*s = n

	return nil
}

// Dither selects how pixels are mapped onto the reduced palette.
type Dither int

// The supported dithering methods.
const (
	DitherNone Dither = iota
	DitherFloydSteinberg
	DitherOrdered
)

var ditherNames = [...]string{
	DitherNone:           "None",
	DitherFloydSteinberg: "Floyd-Steinberg",
	DitherOrdered:        "Ordered",
}

func (d Dither) valid() bool {
	return d >= DitherNone && int(d) < len(ditherNames)
}

func (d Dither) String() string {
	if !d.valid() {
		return "Dither(" + strconv.Itoa(int(d)) + ")"
	}
	return ditherNames[d]
}

// ParseDither returns the dithering method with the given name. Matching is
// case-insensitive.
func ParseDither(name string) (Dither, error) {
	for i, n := range ditherNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Dither(i), nil
		}
	}
	return DitherNone, fmt.Errorf("%w: %q", ErrBadDither, name)
}

// Set implements the flag.Value interface.
func (d *Dither) Set(value string) error {
	n, err := ParseDither(value)
	if err != nil {
		return err
	}
	*d = n
	return nil
}

// Options control how an image is encoded.
type Options struct {
	Size   Size
	Dither Dither
}

// Validate returns ErrBadSize or ErrBadDither if o cannot be used to encode.
func (o Options) Validate() error {
	if !o.Size.valid() {
		return ErrBadSize
	}
	if !o.Dither.valid() {
		return ErrBadDither
	}
	return nil
}
