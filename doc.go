// SPDX-License-Identifier: EPL-2.0

// Package ohlevel generates OhShape levels from audio files.
//
// A run decodes a file into a mono notes.SampleBuffer, detects notes once
// with an adaptive spectral threshold, then builds one level document per
// difficulty profile from the same notes:
//
//	cfg := level.DefaultConfig()
//	docs, err := ohlevel.Process("song.ogg", ohlevel.NewRegistry(), cfg, rng, logger)
//	if err != nil {
//	    return err
//	}
//	paths, err := ohlevel.Save(outDir, "song", docs)
//
// Decoding goes through the audio package and the decoders under formats/.
// Note detection lives in notes and spectrum, wall generation and encoding in
// wall, and the YAML document format in level.
//
// # Errors
//
// Failures are reported as *FileError carrying the input path. errors.Is
// matches ErrDecode for anything that went wrong before analysis and
// ErrAnalysis for detector failures.
package ohlevel
