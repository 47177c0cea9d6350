// SPDX-License-Identifier: EPL-2.0

package ohlevel

import "errors"

var (
	ErrDecode   = errors.New("cannot decode audio")
	ErrAnalysis = errors.New("cannot analyze audio")
)

// FileError records the input file and step that failed.
type FileError struct {
	Path string
	Op   string // "open", "decode", "analyze" or "write"
	Err  error
}

func (e *FileError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error { return e.Err }
