package bgr1555

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPack(t *testing.T) {
	tables := []struct {
		r, g, b uint8
		want    Color
	}{
		{0, 0, 0, 0x0000},
		{255, 255, 255, 0x7fff},
		{255, 0, 0, 0x7c00},
		{0, 255, 0, 0x03e0},
		{0, 0, 255, 0x001f},
		{0x07, 0x07, 0x07, 0x0000},
		{0x08, 0x10, 0x18, 0x0443},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, Pack(table.r, table.g, table.b), "(%d, %d, %d)", table.r, table.g, table.b)
	}
}

func TestPackAll(t *testing.T) {
	for r := 0; r < 256; r++ {
		for g := 0; g < 256; g++ {
			for b := 0; b < 256; b++ {
				c := Pack(uint8(r), uint8(g), uint8(b))
				if c >= 0x8000 {
					t.Fatalf("(%d, %d, %d): bit 15 set in %#04x", r, g, b, c)
				}
				if c&0x1f != Color(b>>3&0x1f) {
					t.Fatalf("(%d, %d, %d): low field %#02x, want %#02x", r, g, b, c&0x1f, b>>3)
				}
				if c.LowField() != uint8(b>>3) {
					t.Fatalf("(%d, %d, %d): LowField() = %d", r, g, b, c.LowField())
				}
			}
		}
	}
}

func TestRGBA(t *testing.T) {
	r, g, b, a := Pack(255, 128, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0x8484), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestModel(t *testing.T) {
	assert.Equal(t, Color(0x7c00), Model.Convert(color.RGBA{0xff, 0x00, 0x00, 0xff}))
	assert.Equal(t, Color(0x7fff), Model.Convert(color.Gray{0xff}))
	assert.Equal(t, Color(0x1234), Model.Convert(Color(0x1234)))

	// Round trip through the model is stable
	for _, c := range []Color{0x0000, 0x7fff, 0x7c00, 0x03e0, 0x001f, 0x2a95} {
		assert.Equal(t, c, Model.Convert(color.RGBA64Model.Convert(c)))
	}
}
