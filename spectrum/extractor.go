// SPDX-License-Identifier: EPL-2.0

package spectrum

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const (
	// BlockSize is the number of samples analyzed per transform.
	BlockSize = 4096

	// MinFrequency and MaxFrequency bound the band searched for the peak, in Hz.
	MinFrequency = 50.0
	MaxFrequency = 6000.0
)

// Peak is the strongest bin of one block.
type Peak struct {
	Frequency float32 // Hz
	Magnitude float32 // linear, scaled by 1/BlockSize
}

// Extractor computes the dominant bin of fixed-size blocks.
// It reuses internal buffers and is not safe for concurrent use.
type Extractor struct {
	size   int
	minHz  float64
	maxHz  float64
	window []float64
	buf    []float64
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithBand overrides the inclusive frequency band searched for the peak.
func WithBand(minHz, maxHz float64) Option {
	return func(e *Extractor) {
		e.minHz = minHz
		e.maxHz = maxHz
	}
}

// WithBlockSize overrides the transform size. Mostly useful in tests.
func WithBlockSize(n int) Option {
	return func(e *Extractor) {
		e.size = n
	}
}

func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		size:  BlockSize,
		minHz: MinFrequency,
		maxHz: MaxFrequency,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.window = window.Hann(e.size)
	e.buf = make([]float64, e.size)

	return e
}

// Size is the block length Peak expects.
func (e *Extractor) Size() int { return e.size }

// Peak returns the frequency and magnitude of the strongest bin inside the
// band. On equal magnitudes the lower frequency wins.
func (e *Extractor) Peak(block []float32, sampleRate uint32) (Peak, error) {
	if len(block) != e.size || e.size < 2 {
		return Peak{}, analysisErr(ErrBlockSize, "got %d samples, want %d", len(block), e.size)
	}
	if sampleRate == 0 {
		return Peak{}, analysisErr(ErrSampleRate, "rate 0")
	}
	rate := float64(sampleRate)
	if nyquist := rate / 2; e.maxHz > nyquist || e.minHz > e.maxHz || e.minHz < 0 {
		return Peak{}, analysisErr(ErrFrequencyLimit, "band %.0f-%.0f Hz at %d Hz", e.minHz, e.maxHz, sampleRate)
	}

	for i, s := range block {
		v := float64(s)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Peak{}, analysisErr(ErrNonFinite, "sample %d", i)
		}
		e.buf[i] = v * e.window[i]
	}

	coeffs := fft.FFTReal(e.buf)

	n := float64(e.size)
	binHz := rate / n
	bestFreq, bestMag := -math.MaxFloat64, -math.MaxFloat64
	found := false

	for k := 0; k <= e.size/2; k++ {
		freq := float64(k) * binHz
		if freq < e.minHz {
			continue
		}
		if freq > e.maxHz {
			break
		}
		found = true

		mag := cmplx.Abs(coeffs[k]) / n
		if mag > bestMag {
			bestFreq, bestMag = freq, mag
		}
	}

	if !found {
		return Peak{}, analysisErr(ErrFrequencyLimit, "no bin inside %.0f-%.0f Hz", e.minHz, e.maxHz)
	}

	return Peak{Frequency: float32(bestFreq), Magnitude: float32(bestMag)}, nil
}
