// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/ohlevel/internal/audiotest"
)

func TestReadAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		frames   int
		bufSize  int
	}{
		{"mono default buffer", 1, 10000, 0},
		{"stereo default buffer", 2, 3000, 0},
		{"stereo odd buffer", 2, 101, 5},
		{"tiny buffer", 3, 7, 1},
		{"empty", 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewConstantSource(8000, tt.channels, tt.frames, 0.5)
			got, err := ReadAll(src, tt.bufSize)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if want := tt.channels * tt.frames; len(got) != want {
				t.Errorf("len = %d, want %d", len(got), want)
			}
		})
	}
}

func TestReadAll_StopsOnIdleSource(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{channels: 1, steps: []step{{n: 4}, {n: 4}}}
	got, err := ReadAll(src, 4)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 8 {
		t.Errorf("len = %d, want 8", len(got))
	}
}

func TestReadAll_Error(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{channels: 1, steps: []step{{n: 4}, {n: 2, err: errBroken}}}
	got, err := ReadAll(src, 4)
	if !errors.Is(err, errBroken) {
		t.Fatalf("ReadAll() err = %v, want errBroken", err)
	}
	if len(got) != 6 {
		t.Errorf("len = %d, want 6", len(got))
	}
}

func TestReadAll_EOFWithData(t *testing.T) {
	t.Parallel()

	src := &scriptedSource{channels: 1, steps: []step{{n: 3, err: io.EOF}}}
	got, err := ReadAll(src, 4)
	if err != nil || len(got) != 3 {
		t.Errorf("ReadAll() = %d samples, %v; want 3, nil", len(got), err)
	}
}
