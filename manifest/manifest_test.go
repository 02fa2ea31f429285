package manifest

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsImage(t *testing.T) {
	tables := []struct {
		name string
		want bool
	}{
		{"a.png", true},
		{"a.PNG", true},
		{"photo.JpEg", true},
		{"b.jpg", true},
		{"c.bmp", true},
		{"d.gif", true},
		{"e.tiff", false},
		{"f.webp", false},
		{"png", false},
		{"g.png.txt", false},
		{"", false},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, IsImage(table.name), table.name)
	}
}

func TestNew(t *testing.T) {
	in := []string{"/x/b.png", "/a/c.png", "/x/B.png", "/z/a.png", "/a/a.png"}
	m := New(in...)

	assert.Equal(t, Manifest{"/x/B.png", "/a/a.png", "/z/a.png", "/x/b.png", "/a/c.png"}, m)

	// The input is left alone
	assert.Equal(t, "/x/b.png", in[0])
	assert.Len(t, New(), 0)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.png", "A.JPG", "c.gif", "notes.txt", ".hidden.png", "a.bmp", "z.jpeg"} {
		require.Nil(t, ioutil.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.Nil(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0755))
	require.Nil(t, ioutil.WriteFile(filepath.Join(dir, "sub.png", "d.png"), []byte("x"), 0644))

	m, err := Scan(dir)
	require.Nil(t, err)

	want := Manifest{"A.JPG", "a.bmp", "b.png", "c.gif", "z.jpeg"}
	for i := range want {
		want[i] = filepath.Join(dir, want[i])
	}
	assert.Equal(t, want, m)
}

func TestScanEmpty(t *testing.T) {
	m, err := Scan(t.TempDir())
	require.Nil(t, err)
	assert.Len(t, m, 0)
}

func TestScanErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Scan(filepath.Join(dir, "missing"))
	assert.True(t, os.IsNotExist(err))

	file := filepath.Join(dir, "file.png")
	require.Nil(t, ioutil.WriteFile(file, []byte("x"), 0644))
	_, err = Scan(file)
	assert.Equal(t, errNotDirectory, err)
}
