package fbin

import (
	"errors"
	"fmt"
)

// ErrNoInput is returned when there are no images to convert. No output is
// created or truncated.
var ErrNoInput = errors.New("fbin: no input images")

// DecodeError records an image that could not be read or decoded.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("fbin: decoding %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError records an image that was decoded but could not be encoded.
type EncodeError struct {
	Name string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("fbin: encoding %s: %v", e.Name, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// SinkError is returned when the output can't be created or written to. Any
// records written before the failure remain in the output.
type SinkError struct {
	Path    string
	Written int64
	Err     error
}

func (e *SinkError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("fbin: writing output: %v (%d bytes written)", e.Err, e.Written)
	}
	return fmt.Sprintf("fbin: writing %s: %v (%d bytes written)", e.Path, e.Err, e.Written)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}
