/*
Package manifest builds the ordered list of image files that make up a batch.

Only files directly inside the scanned directory are considered; hidden files
and subdirectories are ignored. Files are recognised by extension alone and
the decoder is left to reject anything that turns out not to be an image.
*/
package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var errNotDirectory = errors.New("manifest: not a directory")

var extensions = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
}

// Manifest is a list of image paths. Values built by New or Scan are in
// processing order; the converter sorts any other value the same way.
type Manifest []string

// IsImage reports whether name has one of the recognised image extensions,
// ignoring case.
func IsImage(name string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// New returns a Manifest of paths sorted by filename. Filenames are compared
// byte by byte so uppercase sorts before lowercase. Paths with the same
// filename are ordered by the full path.
func New(paths ...string) Manifest {
	m := make(Manifest, len(paths))
	copy(m, paths)
	sort.SliceStable(m, func(i, j int) bool {
		bi, bj := filepath.Base(m[i]), filepath.Base(m[j])
		if bi != bj {
			return bi < bj
		}
		return m[i] < m[j]
	})
	return m
}

func isRegular(path string, info os.FileInfo) (bool, error) {
	if info.Mode()&os.ModeSymlink != 0 {
		var err error
		if info, err = os.Stat(path); err != nil {
			// Dangling links are skipped
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, err
		}
	}
	return info.Mode().IsRegular(), nil
}

// Scan lists dir and returns a Manifest of every image file found.
func Scan(dir string) (Manifest, error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	info, err := d.Stat()
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, errNotDirectory
	}

	infos, err := d.Readdir(0)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, info := range infos {
		// Ignore any hidden files, things like ._ resource forks share the extension
		if info.Name()[0] == '.' {
			continue
		}

		if !IsImage(info.Name()) {
			continue
		}

		file := filepath.Join(dir, info.Name())
		ok, err := isRegular(file, info)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		paths = append(paths, file)
	}

	return New(paths...), nil
}
