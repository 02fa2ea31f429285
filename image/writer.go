package image

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
	"io"
	"sort"

	"github.com/bodgit/fbin/bgr1555"
	"github.com/disintegration/gift"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/makeworld-the-better-one/dither/v2"
)

// Record is one encoded image.
type Record struct {
	Palette [PaletteEntries]bgr1555.Color
	Pixels  []byte
}

// Len returns the encoded length of the record in bytes.
func (r *Record) Len() int {
	return PaletteBytes + len(r.Pixels)
}

func (r *Record) palette() []byte {
	b := make([]byte, PaletteBytes)
	for i, c := range r.Palette {
		binary.LittleEndian.PutUint16(b[i<<1:], uint16(c))
	}
	return b
}

// MarshalBinary returns the palette block followed by the pixel block.
func (r *Record) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, r.Len())
	b = append(b, r.palette()...)
	return append(b, r.Pixels...), nil
}

// WriteTo writes the palette block then the pixel block to w.
func (r *Record) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.palette())
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(r.Pixels)
	return int64(n + m), err
}

// Drop the alpha channel keeping the unpremultiplied RGB of each pixel, with
// the top-left corner moved to (0, 0)
func normalize(m image.Image) *image.RGBA {
	b := m.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			dst.SetRGBA(x-b.Min.X, y-b.Min.Y, color.RGBA{c.R, c.G, c.B, 0xff})
		}
	}
	return dst
}

// Stretch to exactly the target size, aspect ratio is not preserved
func resize(m image.Image, s Size) *image.RGBA {
	g := gift.New(gift.Resize(s.Width, s.Height, gift.LanczosResampling))
	dst := image.NewRGBA(g.Bounds(m.Bounds()))
	g.Draw(dst, m)
	return dst
}

func reduce(m image.Image, d Dither) *image.Paletted {
	b := m.Bounds()

	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, PaletteEntries), m)

	// Nothing to dither between with a single color
	if d == DitherNone || len(p) < 2 {
		pm := image.NewPaletted(b, p)
		draw.Draw(pm, b, m, b.Min, draw.Src)
		return pm
	}

	dd := dither.NewDitherer(p)
	dd.SingleThreaded = true
	switch d {
	case DitherFloydSteinberg:
		dd.Matrix = dither.FloydSteinberg
	case DitherOrdered:
		dd.Mapper = dither.Bayer(8, 8, 1.0)
	}

	return dd.DitherPaletted(m)
}

// Stable sort of the palette slots by their low field. The returned table
// maps each original index to its new position
func canonicalize(packed [PaletteEntries]bgr1555.Color) ([PaletteEntries]bgr1555.Color, [PaletteEntries]uint8) {
	var indices [PaletteEntries]int
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices[:], func(i, j int) bool {
		return packed[indices[i]].LowField() < packed[indices[j]].LowField()
	})

	var sorted [PaletteEntries]bgr1555.Color
	var remap [PaletteEntries]uint8
	for n, o := range indices {
		sorted[n] = packed[o]
		remap[o] = uint8(n)
	}

	return sorted, remap
}

// EncodeRecord resizes, quantizes and packs m into a Record.
func EncodeRecord(m image.Image, o Options) (*Record, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if m.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	pm := reduce(resize(normalize(m), o.Size), o.Dither)

	// Unused entries stay zero which is what black packs to
	var packed [PaletteEntries]bgr1555.Color
	for i, c := range pm.Palette {
		if i == PaletteEntries {
			break
		}
		packed[i] = bgr1555.Model.Convert(c).(bgr1555.Color)
	}

	r := new(Record)

	// Every possible index has an entry in remap so nothing falls back to
	// index zero
	var remap [PaletteEntries]uint8
	r.Palette, remap = canonicalize(packed)

	b := pm.Bounds()
	r.Pixels = make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r.Pixels = append(r.Pixels, remap[pm.ColorIndexAt(x, y)])
		}
	}

	return r, nil
}

// Encode writes the Image m to w as a single record.
func Encode(w io.Writer, m image.Image, o Options) error {
	r, err := EncodeRecord(m, o)
	if err != nil {
		return err
	}
	_, err = r.WriteTo(w)
	return err
}
