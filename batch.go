package fbin

import (
	"bytes"
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	stdimage "image"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bodgit/fbin/image"
	"github.com/bodgit/fbin/manifest"
)

func encode(m stdimage.Image, o image.Options) (b []byte, err error) {
	// Panics from the resize, quantize or dither code become encode errors
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	r, err := image.EncodeRecord(m, o)
	if err != nil {
		return nil, err
	}
	return r.MarshalBinary()
}

func (c *Converter) encodeFile(file string, o image.Options) ([]byte, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, &DecodeError{Name: file, Err: err}
	}
	sha := fmt.Sprintf("%X", sha1.Sum(b))

	if c.cache != nil {
		rec, err := c.cache.Find(sha, o)
		switch {
		case err != nil:
			c.logger.Printf("Cache lookup for \"%s\" failed: %s\n", file, err)
		case rec != nil:
			c.logger.Printf("Using cached record for \"%s\", with SHA1 \"%s\"\n", file, sha)
			return rec, nil
		}
	}

	m, format, err := stdimage.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, &DecodeError{Name: file, Err: err}
	}
	c.logger.Printf("Decoded \"%s\" as %s, %dx%d\n", file, format, m.Bounds().Dx(), m.Bounds().Dy())

	rec, err := encode(m, o)
	if err != nil {
		return nil, &EncodeError{Name: file, Err: err}
	}

	if c.cache != nil {
		if err := c.cache.Add(sha, o, rec); err != nil {
			c.logger.Printf("Unable to cache record for \"%s\": %s\n", file, err)
		}
	}

	return rec, nil
}

// Write encodes each image in files and writes the records to w in filename
// order, regardless of the order of files. Images that can't be decoded or
// encoded are recorded in the returned Summary and skipped. A failure to write
// to w stops the batch and returns a *SinkError. The context is only checked
// between images. Invalid options fail the whole batch with image.ErrBadSize
// or image.ErrBadDither before anything is written; they are never recorded
// as a per-image Failure.
func (c *Converter) Write(ctx context.Context, w io.Writer, files manifest.Manifest, cfg Config) (*Summary, error) {
	if len(files) == 0 {
		return nil, ErrNoInput
	}
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}

	s := &Summary{Found: len(files)}
	h := sha1.New()
	defer func() {
		s.SHA1 = fmt.Sprintf("%x", h.Sum(nil))
	}()

	mw := io.MultiWriter(w, h)

	files = manifest.New(files...)
	for i, file := range files {
		select {
		case <-ctx.Done():
			s.Cancelled = true
			return s, ctx.Err()
		default:
		}

		c.logger.Printf("Processing %d/%d: %s\n", i+1, len(files), filepath.Base(file))

		e := Event{Index: i, Total: len(files), Name: file}

		rec, err := c.encodeFile(file, cfg.Options)
		if err != nil {
			c.logger.Printf("Error processing %s: %s\n", filepath.Base(file), err)
			s.Failures = append(s.Failures, Failure{Name: file, Err: err})
			e.Err = err
			notify(cfg.Observer, e)
			continue
		}

		n, err := mw.Write(rec)
		s.Bytes += int64(n)
		if err != nil {
			s.Partial = true
			return s, &SinkError{Written: s.Bytes, Err: err}
		}

		s.Succeeded++
		e.Bytes = n
		notify(cfg.Observer, e)
	}

	c.logger.Printf("Wrote %d of %d images, %d bytes\n", s.Succeeded, s.Found, s.Bytes)

	return s, nil
}

// Run creates or truncates output and writes every image in files to it. If
// files is empty ErrNoInput is returned and output is left untouched. Invalid
// options are likewise returned as image.ErrBadSize or image.ErrBadDither
// without creating output.
func (c *Converter) Run(ctx context.Context, files manifest.Manifest, output string, cfg Config) (*Summary, error) {
	if len(files) == 0 {
		return nil, ErrNoInput
	}
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Create(output)
	if err != nil {
		return nil, &SinkError{Path: output, Err: err}
	}

	s, err := c.Write(ctx, f, files, cfg)

	var se *SinkError
	if errors.As(err, &se) {
		se.Path = output
	}

	if cerr := f.Close(); cerr != nil && err == nil {
		s.Partial = true
		err = &SinkError{Path: output, Written: s.Bytes, Err: cerr}
	}

	return s, err
}
