// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var errBroken = errors.New("broken source")

// scriptedSource plays back steps in order and then reports no samples forever.
type scriptedSource struct {
	channels int
	steps    []step
	closed   int
}

type step struct {
	n   int
	err error
}

func (s *scriptedSource) SampleRate() int { return 8000 }
func (s *scriptedSource) Channels() int   { return s.channels }
func (s *scriptedSource) BufSize() int    { return 16 }

func (s *scriptedSource) Close() error {
	s.closed++
	return nil
}

func (s *scriptedSource) ReadSamples(dst []float32) (int, error) {
	if len(s.steps) == 0 {
		return 0, nil
	}
	st := s.steps[0]
	s.steps = s.steps[1:]

	n := min(st.n, len(dst))
	for i := range n {
		dst[i] = 0.1
	}
	return n, st.err
}
