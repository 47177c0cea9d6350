// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

const maxIdleReads = 8

// ReadAll drains src and returns every sample it produced. A bufSize of 0
// uses src.BufSize. Reaching io.EOF is not an error.
func ReadAll(src Source, bufSize int) ([]float32, error) {
	if bufSize <= 0 {
		bufSize = src.BufSize()
	}
	if ch := src.Channels(); ch > 1 {
		// Keep reads frame aligned.
		bufSize = max(bufSize-bufSize%ch, ch)
	}
	if bufSize <= 0 {
		bufSize = 4096
	}

	buf := make([]float32, bufSize)
	var out []float32
	idle := 0

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("%w", err)
		}
		if n > 0 {
			idle = 0
			continue
		}
		// A source that keeps making no progress without reporting EOF is done.
		if idle++; idle >= maxIdleReads {
			return out, nil
		}
	}
}
