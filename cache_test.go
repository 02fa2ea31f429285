package fbin

import (
	"bytes"
	"context"
	"log"
	"path/filepath"
	"testing"

	"github.com/bodgit/fbin/image"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) *Cache {
	t.Helper()

	c, err := NewCache(filepath.Join(t.TempDir(), "fbin.db"))
	require.Nil(t, err)
	t.Cleanup(func() {
		c.Close()
	})
	return c
}

func TestCache(t *testing.T) {
	c := newCache(t)
	o := image.Options{Size: image.Size{Width: 2, Height: 2}, Dither: image.DitherOrdered}

	b, err := c.Find("ABC", o)
	require.Nil(t, err)
	assert.Nil(t, b)

	rec := make([]byte, o.Size.RecordLen())
	rec[0] = 0x42
	require.Nil(t, c.Add("ABC", o, rec))

	b, err = c.Find("ABC", o)
	require.Nil(t, err)
	assert.Equal(t, rec, b)

	// Different options are a different record
	b, err = c.Find("ABC", image.Options{Size: o.Size, Dither: image.DitherNone})
	require.Nil(t, err)
	assert.Nil(t, b)

	assert.NotNil(t, c.Add("ABC", o, rec[:10]))

	n, err := c.Len()
	require.Nil(t, err)
	assert.Equal(t, 1, n)

	require.Nil(t, c.Purge())
	n, err = c.Len()
	require.Nil(t, err)
	assert.Equal(t, 0, n)
}

func TestRunCached(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "a.png"), gradient(20, 20))
	writeImage(t, filepath.Join(dir, "b.png"), gradient(30, 10))

	c := newCache(t)
	o := image.Options{Size: image.Size{Width: 16, Height: 8}, Dither: image.DitherFloydSteinberg}

	uncached := new(bytes.Buffer)
	s, err := New(nil, nil).Write(context.Background(), uncached, scan(t, dir), Config{Options: o})
	require.Nil(t, err)

	var outputs [2]*bytes.Buffer
	logs := new(bytes.Buffer)
	for i := range outputs {
		outputs[i] = new(bytes.Buffer)
		cs, err := New(c, log.New(logs, "", 0)).Write(context.Background(), outputs[i], scan(t, dir), Config{Options: o})
		require.Nil(t, err)
		assert.Equal(t, s.SHA1, cs.SHA1)
	}

	assert.Equal(t, uncached.Bytes(), outputs[0].Bytes())
	assert.Equal(t, uncached.Bytes(), outputs[1].Bytes())
	assert.Contains(t, logs.String(), "Using cached record")

	n, err := c.Len()
	require.Nil(t, err)
	assert.Equal(t, 2, n)
}
