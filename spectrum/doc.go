// SPDX-License-Identifier: EPL-2.0

// Package spectrum finds the dominant frequency of a block of mono samples.
//
// An Extractor applies a Hann window to a fixed-size block, runs a real FFT
// and scans the bins inside a frequency band for the one with the largest
// linear magnitude (|X[k]| divided by the block length):
//
//	ex := spectrum.NewExtractor()
//	peak, err := ex.Peak(block, 44100)
//	if err != nil {
//	    // errors.Is(err, spectrum.ErrAnalysis) is always true here
//	}
//	fmt.Println(peak.Frequency, peak.Magnitude)
//
// The block must be exactly BlockSize samples long. Blocks are never padded
// or truncated; a wrong length is reported as ErrBlockSize.
package spectrum
