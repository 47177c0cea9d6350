// SPDX-License-Identifier: EPL-2.0

// Package wav decodes integer PCM WAV files into an audio.Source and writes
// 16-bit PCM files.
//
// Decoding is done by github.com/go-audio/wav. 16, 24 and 32-bit samples are
// normalized to [-1,1]; other depths and compressed formats are rejected.
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// Input that cannot seek is buffered in memory first.
package wav
