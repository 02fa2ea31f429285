/*
Package fbin is a library for converting a folder of images into a single
binary file of palette-indexed records for a graphing calculator.
*/
package fbin

import (
	"io/ioutil"
	"log"

	"github.com/bodgit/fbin/image"
)

// Converter encodes batches of images.
type Converter struct {
	cache  *Cache
	logger *log.Logger
}

// New returns a Converter. The cache is optional; when present, previously
// encoded records are reused. A nil logger discards all output.
func New(cache *Cache, logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Converter{
		cache:  cache,
		logger: logger,
	}
}

// Config holds the settings for a single batch.
type Config struct {
	Options  image.Options
	Observer Observer
}
