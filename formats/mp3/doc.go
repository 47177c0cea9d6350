// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files into an audio.Source using
// github.com/hajimehoshi/go-mp3.
//
// The decoder always reports two channels; mono files are duplicated by
// go-mp3 itself. Reads must ask for whole stereo frames.
package mp3
