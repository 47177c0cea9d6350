// SPDX-License-Identifier: EPL-2.0

package ohlevel_test

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/ohlevel"
	"github.com/ik5/ohlevel/level"
	"github.com/ik5/ohlevel/notes"
	"github.com/ik5/ohlevel/spectrum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rate = 44100

var quiet = slog.New(slog.DiscardHandler)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed*31+7))
}

// beats returns 107 blocks at 44.1 kHz with a 440 Hz tone in every fourth
// block. The detector settles on 27 notes at the default limit.
func beats() []float32 {
	samples := make([]float32, 107*spectrum.BlockSize)
	for b := 0; b < 107; b += 4 {
		block := samples[b*spectrum.BlockSize : (b+1)*spectrum.BlockSize]
		for i := range block {
			block[i] = float32(0.8 * math.Sin(2*math.Pi*440*float64(i)/rate))
		}
	}
	return samples
}

func TestLevels(t *testing.T) {
	t.Parallel()

	track := ohlevel.Track{Title: "beats", Buffer: notes.SampleBuffer{SampleRate: rate, Samples: beats()}}
	cfg := level.DefaultConfig()

	docs, err := ohlevel.Levels(track, cfg, seeded(1), quiet)
	require.NoError(t, err)
	require.Len(t, docs, len(cfg.Profiles))

	for i, d := range docs {
		p := cfg.Profiles[i]
		assert.Equal(t, "beats", d.Title)
		assert.Equal(t, p.Label, d.Difficulty)
		assert.Equal(t, p.Speed, d.Speed)
		assert.InDelta(t, track.Buffer.Duration(), d.AudioTime, 1e-6)
		require.Len(t, d.Walls, 25, p.Label)
		for j := 1; j < len(d.Walls); j++ {
			assert.Greater(t, d.Walls[j].Second, d.Walls[j-1].Second)
		}
	}

	again, err := ohlevel.Levels(track, cfg, seeded(1), quiet)
	require.NoError(t, err)
	assert.Equal(t, docs, again)
}

func TestLevels_TooFewNotes(t *testing.T) {
	t.Parallel()

	track := ohlevel.Track{Title: "quiet", Buffer: notes.SampleBuffer{SampleRate: rate, Samples: make([]float32, 3*spectrum.BlockSize)}}
	docs, err := ohlevel.Levels(track, level.DefaultConfig(), seeded(1), quiet)
	require.NoError(t, err)
	for _, d := range docs {
		assert.Empty(t, d.Walls)
	}
}

func TestLevels_AnalysisError(t *testing.T) {
	t.Parallel()

	// 8 kHz puts the top of the analysis band above Nyquist.
	track := ohlevel.Track{Title: "phone", Buffer: notes.SampleBuffer{SampleRate: 8000, Samples: make([]float32, 2*spectrum.BlockSize)}}
	_, err := ohlevel.Levels(track, level.DefaultConfig(), seeded(1), quiet)
	assert.ErrorIs(t, err, ohlevel.ErrAnalysis)
	assert.ErrorIs(t, err, spectrum.ErrAnalysis)
	assert.ErrorIs(t, err, spectrum.ErrFrequencyLimit)
}

func TestProcessAndSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeWAV(t, dir, "beats.wav", rate, beats())

	cfg := level.DefaultConfig()
	docs, err := ohlevel.Process(in, ohlevel.NewRegistry(), cfg, seeded(3), quiet)
	require.NoError(t, err)
	require.Len(t, docs, 4)

	out := t.TempDir()
	paths, err := ohlevel.Save(out, "beats", docs)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(out, "beats_beginner.yml"),
		filepath.Join(out, "beats_easy.yml"),
		filepath.Join(out, "beats_medium.yml"),
		filepath.Join(out, "beats_hard.yml"),
	}, paths)

	for i, path := range paths {
		f, err := os.Open(path)
		require.NoError(t, err)
		back, err := level.Read(f)
		f.Close()
		require.NoError(t, err)

		assert.Equal(t, docs[i].Difficulty, back.Difficulty)
		assert.Equal(t, "beats", back.Title)
		require.Len(t, back.Walls, len(docs[i].Walls))
		for j, e := range back.Walls {
			assert.Equal(t, docs[i].Walls[j].Obj, e.Obj)
			assert.InDelta(t, docs[i].Walls[j].Second, e.Second, 0.005)
		}
	}
}

func TestProcess_AnalysisFailure(t *testing.T) {
	t.Parallel()

	in := writeWAV(t, t.TempDir(), "phone.wav", 8000, make([]float32, 3*spectrum.BlockSize))
	_, err := ohlevel.Process(in, ohlevel.NewRegistry(), level.DefaultConfig(), seeded(1), quiet)

	var fe *ohlevel.FileError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "analyze", fe.Op)
	assert.Equal(t, in, fe.Path)
	assert.ErrorIs(t, err, ohlevel.ErrAnalysis)
	assert.NotErrorIs(t, err, ohlevel.ErrDecode)
}

func TestProcess_ResamplesBeforeAnalysis(t *testing.T) {
	t.Parallel()

	// Analysis at 8 kHz would fail, so resampling up must happen first.
	in := writeWAV(t, t.TempDir(), "phone.wav", 8000, make([]float32, 8000))
	cfg := level.DefaultConfig()
	cfg.Detection.Rate = 22050

	_, err := ohlevel.Process(in, ohlevel.NewRegistry(), cfg, seeded(1), quiet)
	assert.NoError(t, err)
}

func TestSave_WriteError(t *testing.T) {
	t.Parallel()

	docs := []level.Document{{Title: "x", Difficulty: "easy"}}
	_, err := ohlevel.Save(filepath.Join(t.TempDir(), "missing"), "x", docs)

	var fe *ohlevel.FileError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "write", fe.Op)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
