// SPDX-License-Identifier: EPL-2.0

// Package notes turns a mono sample buffer into a sparse sequence of notes.
//
// The buffer is cut into non-overlapping blocks of spectrum.BlockSize
// samples. Each block's dominant bin is compared against a running baseline
// of previous magnitudes scaled by a difficulty limit; blocks that stand out
// become notes. The limit is then nudged until the note count per second of
// audio lands inside a density band:
//
//	det := notes.NewDetector()
//	res, err := det.Search(buf, 1.2)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(res.Notes), res.Limit, res.Attempts, res.Converged)
//
// The search is bounded by MaxAttempts. When the band is never reached the
// attempt closest to it is returned with Converged set to false.
package notes
