// SPDX-License-Identifier: EPL-2.0

package spectrum

import (
	"errors"
	"fmt"
)

var (
	// ErrAnalysis is the class of every error returned by an Extractor.
	ErrAnalysis = errors.New("spectral analysis failed")

	ErrBlockSize      = errors.New("block length does not match the transform size")
	ErrSampleRate     = errors.New("sample rate must be positive")
	ErrFrequencyLimit = errors.New("frequency band exceeds the Nyquist frequency")
	ErrNonFinite      = errors.New("block contains NaN or infinite samples")
)

// analysisErr ties cause to ErrAnalysis so callers can match either one.
func analysisErr(cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrAnalysis, cause, fmt.Sprintf(format, args...))
}
