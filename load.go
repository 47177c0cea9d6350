// SPDX-License-Identifier: EPL-2.0

package ohlevel

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ik5/ohlevel/audio"
	"github.com/ik5/ohlevel/formats/aiff"
	"github.com/ik5/ohlevel/formats/mp3"
	"github.com/ik5/ohlevel/formats/vorbis"
	"github.com/ik5/ohlevel/formats/wav"
	"github.com/ik5/ohlevel/notes"
)

// untitled names tracks whose file name has no stem.
const untitled = "file_name"

// NewRegistry returns a registry with every bundled decoder.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}

// Track is a decoded input file.
type Track struct {
	Title  string
	Buffer notes.SampleBuffer
}

// Title returns the file name of path without directory and extension.
func Title(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		return untitled
	}
	return stem
}

// LoadMono reads src to the end, averaging its channels. A non-zero rate
// resamples the mono signal first.
func LoadMono(src audio.Source, rate uint32) (notes.SampleBuffer, error) {
	if src.SampleRate() <= 0 {
		return notes.SampleBuffer{}, fmt.Errorf("%w: sample rate %d", ErrDecode, src.SampleRate())
	}

	var s audio.Source = audio.NewMonoMixer(src)
	if rate > 0 && int(rate) != s.SampleRate() {
		s = audio.NewResampler(s, int(rate))
	}

	samples, err := audio.ReadAll(s, 0)
	if err != nil {
		return notes.SampleBuffer{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return notes.SampleBuffer{SampleRate: uint32(s.SampleRate()), Samples: samples}, nil
}

// LoadFile decodes path with the decoder reg has for its extension.
func LoadFile(path string, reg *audio.Registry, rate uint32) (Track, error) {
	src, err := audio.Open(path, reg)
	if err != nil {
		return Track{}, &FileError{Path: path, Op: "open", Err: fmt.Errorf("%w: %w", ErrDecode, err)}
	}
	defer src.Close()

	buf, err := LoadMono(src, rate)
	if err != nil {
		return Track{}, &FileError{Path: path, Op: "decode", Err: err}
	}

	return Track{Title: Title(path), Buffer: buf}, nil
}
