// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into an audio.Source using
// github.com/go-audio/aiff.
//
// 16, 24 and 32-bit PCM is supported and normalized to [-1,1]. Input that
// cannot seek is read into memory first, since the decoder has to walk the
// chunk list.
package aiff
