// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Write encodes interleaved float samples as 16-bit PCM. Values outside
// [-1,1] are clipped.
func Write(w io.WriteSeeker, sampleRate, channels int, samples []float32) error {
	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = int(min(max(v, -1), 1) * 32767)
	}

	enc := wav.NewEncoder(w, sampleRate, 16, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{SampleRate: sampleRate, NumChannels: channels},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
