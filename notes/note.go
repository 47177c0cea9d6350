// SPDX-License-Identifier: EPL-2.0

package notes

// SampleBuffer is a whole mono signal ready for analysis.
type SampleBuffer struct {
	SampleRate uint32
	Samples    []float32
}

// Duration of the buffer in seconds.
func (b SampleBuffer) Duration() float32 {
	if b.SampleRate == 0 {
		return 0
	}
	return float32(len(b.Samples)) / float32(b.SampleRate)
}

// Note is a block that passed the adaptive filter.
type Note struct {
	Frequency float32 // Hz of the dominant bin
	Magnitude float32
	Time      float32 // block start in seconds
}
