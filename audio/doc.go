// SPDX-License-Identifier: EPL-2.0

// Package audio holds the streaming building blocks the level generator
// decodes through.
//
// # Source
//
// Everything that produces samples implements Source. Samples are
// interleaved float32 values in [-1,1]; ReadSamples counts values, not
// frames:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// # Decoders
//
// A Registry maps file extensions to Decoders. Open picks the decoder for a
// path and keeps the file open until the returned Source is closed:
//
//	reg := audio.NewRegistry()
//	reg.Register("ogg", vorbis.Decoder{})
//	src, err := audio.Open("song.ogg", reg)
//
// # Processing
//
// MonoMixer averages all channels of a frame into one sample. Resampler
// changes the rate with Catmull-Rom interpolation and low-pass filters the
// input when downsampling. ReadAll drains any Source into memory:
//
//	mono := audio.NewMonoMixer(src)
//	samples, err := audio.ReadAll(audio.NewResampler(mono, 22050), 0)
//
// None of the types are safe for concurrent use; Registry is.
package audio
