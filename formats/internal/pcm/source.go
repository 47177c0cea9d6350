// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer PCM decoders to audio.Source.
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

var ErrBitDepth = errors.New("unsupported PCM bit depth")

// Reader is the part of the go-audio wav and aiff decoders a Source needs.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source streams normalized float32 samples out of a Reader.
type Source struct {
	r      Reader
	format *goaudio.Format
	scale  float32
	buf    *goaudio.IntBuffer
	eof    bool
}

// Scale returns the factor that maps a signed sample of depth bits into [-1,1].
func Scale(depth int) (float32, error) {
	switch depth {
	case 16, 24, 32:
		return 1 / float32(uint64(1)<<(depth-1)), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrBitDepth, depth)
	}
}

func NewSource(r Reader, format *goaudio.Format, depth int) (*Source, error) {
	scale, err := Scale(depth)
	if err != nil {
		return nil, err
	}

	return &Source{
		r:      r,
		format: format,
		scale:  scale,
		buf:    &goaudio.IntBuffer{Format: format, Data: make([]int, 4096), SourceBitDepth: depth},
	}, nil
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) BufSize() int    { return cap(s.buf.Data) }
func (s *Source) Close() error    { return nil }

// ReadSamples fills dst and reports io.EOF once the decoder returns a short
// read.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.r.PCMBuffer(s.buf)
	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v) * s.scale
	}

	switch {
	case errors.Is(err, io.EOF), err == nil && n < len(dst):
		s.eof = true
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("%w", err)
	}

	return n, nil
}

// Seekable returns r itself when it can seek and otherwise buffers it in
// memory. The go-audio decoders need to seek between chunks.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return bytes.NewReader(data), nil
}
