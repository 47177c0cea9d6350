// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/ohlevel/internal/audiotest"
)

// rawDecoder turns every byte of the input into one mono frame.
type rawDecoder struct{}

func (rawDecoder) Decode(r io.Reader) (Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return audiotest.NewConstantSource(8000, 1, len(data), 0.5), nil
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("raw", rawDecoder{})

	src, err := Open(writeFile(t, "clip.RAW", make([]byte, 123)), reg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	samples, err := ReadAll(src, 0)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(samples) != 123 {
		t.Errorf("len = %d, want 123", len(samples))
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register("raw", rawDecoder{})
	reg.Register("bad", &failingDecoder{})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := Open(writeFile(t, "clip.flac", []byte{1}), reg)
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("Open() err = %v, want ErrUnknownFormat", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "nope.raw"), reg)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Open() err = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("decoder failure", func(t *testing.T) {
		t.Parallel()

		_, err := Open(writeFile(t, "clip.bad", []byte{1}), reg)
		if err == nil {
			t.Error("Open() succeeded with a failing decoder")
		}
	})
}
