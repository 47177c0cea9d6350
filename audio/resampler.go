// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Resampler converts src to another sample rate with cubic interpolation,
// keeping the channel layout. When downsampling, a one-pole low-pass filter
// runs on the input to tame aliasing.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames per output frame
	channels int

	// hist holds source frames i-1, i, i+1, i+2 with the output position
	// between i and i+1. real marks frames that came from src rather than
	// edge padding.
	hist [4][]float32
	real [4]bool
	pos  float64

	started bool
	eof     bool

	frame []float32
	lp    []float32
	alpha float32
	warm  bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		frame:    make([]float32, channels),
		lp:       make([]float32, channels),
	}
	if r.step > 1 {
		r.alpha = 0.5
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// read loads the next source frame into hist[3]. An empty or partial read
// ends the stream; past the end hist[2] is repeated as padding.
func (r *Resampler) read() error {
	if !r.eof {
		n, err := r.src.ReadSamples(r.frame)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w", err)
		}
		if errors.Is(err, io.EOF) || n != r.channels {
			r.eof = true
		}
		if n == r.channels {
			r.filter(r.frame)
			copy(r.hist[3], r.frame)
			r.real[3] = true
			return nil
		}
	}

	copy(r.hist[3], r.hist[2])
	r.real[3] = false
	return nil
}

func (r *Resampler) advance() error {
	for i := range 3 {
		copy(r.hist[i], r.hist[i+1])
		r.real[i] = r.real[i+1]
	}
	return r.read()
}

func (r *Resampler) filter(frame []float32) {
	if r.alpha == 0 {
		return
	}
	// Start from the first frame to avoid a fade-in from silence.
	if !r.warm {
		copy(r.lp, frame)
		r.warm = true
	}
	for c, v := range frame {
		r.lp[c] = r.alpha*v + (1-r.alpha)*r.lp[c]
		frame[c] = r.lp[c]
	}
}

// prime places the first frame at i and its copy at i-1, then reads ahead.
func (r *Resampler) prime() error {
	if err := r.read(); err != nil {
		return err
	}
	if !r.real[3] {
		return io.EOF
	}
	for i := range 3 {
		copy(r.hist[i], r.hist[3])
	}

	for range 2 {
		if err := r.advance(); err != nil {
			return err
		}
	}
	return nil
}

// ReadSamples fills dst with resampled interleaved frames. len(dst) must be
// a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.started {
		r.started = true
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written < len(dst) {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written, err
			}
		}
		if !r.real[1] || !r.real[2] {
			return written, io.EOF
		}

		x := float32(r.pos)
		for c := range r.channels {
			dst[written+c] = cubic(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}
		written += r.channels
		r.pos += r.step
	}

	return written, nil
}

// cubic is a Catmull-Rom interpolation between y1 and y2 at x in [0,1).
func cubic(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}
