package image

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeSet(t *testing.T) {
	tables := []struct {
		value string
		size  Size
		err   bool
	}{
		{"320x240", SizeLarge, false},
		{"160×96", SizeSmall, false},
		{"64X40", Size{64, 40}, false},
		{" 2 x 2 ", Size{2, 2}, false},
		{"0x240", Size{}, true},
		{"320", Size{}, true},
		{"axb", Size{}, true},
		{"1x2x3", Size{}, true},
		{"-1x5", Size{}, true},
	}

	for _, table := range tables {
		var s Size
		err := s.Set(table.value)
		if table.err {
			assert.True(t, errors.Is(err, ErrBadSize), table.value)
			continue
		}
		assert.Nil(t, err, table.value)
		assert.Equal(t, table.size, s)
	}

	assert.Equal(t, "320x240", SizeLarge.String())
	assert.Equal(t, 15360, SizeSmall.Pixels())
	assert.Equal(t, 15872, SizeSmall.RecordLen())
}

func TestParseDither(t *testing.T) {
	tables := []struct {
		name   string
		dither Dither
		err    bool
	}{
		{"None", DitherNone, false},
		{"none", DitherNone, false},
		{"Floyd-Steinberg", DitherFloydSteinberg, false},
		{"FLOYD-STEINBERG", DitherFloydSteinberg, false},
		{"Ordered", DitherOrdered, false},
		{"", DitherNone, true},
		{"Sierra", DitherNone, true},
		{"FloydSteinberg", DitherNone, true},
	}

	for _, table := range tables {
		d, err := ParseDither(table.name)
		if table.err {
			assert.True(t, errors.Is(err, ErrBadDither), table.name)
			continue
		}
		assert.Nil(t, err, table.name)
		assert.Equal(t, table.dither, d)

		var v Dither
		assert.Nil(t, v.Set(d.String()))
		assert.Equal(t, d, v)
	}

	assert.Equal(t, "Dither(9)", Dither(9).String())
}
