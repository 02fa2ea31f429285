package image

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/bodgit/fbin/bgr1555"
)

var (
	errNotEnough     = errors.New("image: not enough record data")
	errBadPalette    = errors.New("image: palette color uses bit 15")
	errNotCanonical  = errors.New("image: palette is not in canonical order")
	errPartialRecord = errors.New("image: length is not a whole number of records")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r    io.Reader
	size Size

	record *Record

	tmp [PaletteBytes]byte
}

func (d *decoder) readPalette() error {
	// A clean EOF before the palette is the end of a stream of records
	if _, err := io.ReadFull(d.r, d.tmp[:]); err != nil {
		return err
	}

	var last uint8
	for i := range d.record.Palette {
		c := bgr1555.Color(binary.LittleEndian.Uint16(d.tmp[i<<1:]))
		if c&0x8000 != 0 {
			return errBadPalette
		}
		if c.LowField() < last {
			return errNotCanonical
		}
		last = c.LowField()
		d.record.Palette[i] = c
	}
	return nil
}

func (d *decoder) readPixels() error {
	d.record.Pixels = make([]byte, d.size.Pixels())
	return readFull(d.r, d.record.Pixels)
}

func (d *decoder) decode() error {
	d.record = new(Record)

	if err := d.readPalette(); err != nil {
		if err == io.ErrUnexpectedEOF {
			return errNotEnough
		}
		return err
	}

	if err := d.readPixels(); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	return nil
}

// ReadRecord reads the next record of the given size from r. It returns
// io.EOF if r is exhausted exactly on a record boundary. The record is
// checked to have a valid canonical palette.
func ReadRecord(r io.Reader, s Size) (*Record, error) {
	if !s.valid() {
		return nil, ErrBadSize
	}
	d := decoder{r: r, size: s}
	if err := d.decode(); err != nil {
		return nil, err
	}
	return d.record, nil
}

// CountRecords returns the number of records of the given size in a stream
// of n bytes.
func CountRecords(n int64, s Size) (int, error) {
	if !s.valid() {
		return 0, ErrBadSize
	}
	if n%int64(s.RecordLen()) != 0 {
		return 0, errPartialRecord
	}
	return int(n / int64(s.RecordLen())), nil
}
