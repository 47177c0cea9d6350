// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams into an audio.Source using
// github.com/jfreymuth/oggvorbis.
//
// Ogg Vorbis is the format the level generator expects from its input
// directory; the other formats are accepted for single files.
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// Samples come out as interleaved float32 already in [-1,1].
package vorbis
