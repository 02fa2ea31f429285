package fbin

// Failure is an image that was skipped.
type Failure struct {
	Name string
	Err  error
}

// Summary describes the outcome of a batch.
type Summary struct {
	// Found is the number of images in the manifest
	Found     int
	Succeeded int
	Failures  []Failure

	// Bytes is the number of bytes written to the output
	Bytes int64

	// SHA1 is the hex digest of everything written
	SHA1 string

	// Partial is set if the output stopped being writable part way through
	Partial bool

	// Cancelled is set if the context was cancelled between images
	Cancelled bool
}

// Failed returns the number of images that were skipped.
func (s *Summary) Failed() int {
	return len(s.Failures)
}
