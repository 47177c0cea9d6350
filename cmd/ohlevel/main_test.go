// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/ohlevel/formats/wav"
	"github.com/ik5/ohlevel/level"
	"github.com/ik5/ohlevel/spectrum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeBeats writes ten seconds of 44.1 kHz audio with a tone every fourth
// analysis block.
func writeBeats(t *testing.T, path string) {
	t.Helper()

	const rate = 44100
	samples := make([]float32, 107*spectrum.BlockSize)
	for b := 0; b < 107; b += 4 {
		for i := range spectrum.BlockSize {
			samples[b*spectrum.BlockSize+i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/rate))
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, wav.Write(f, rate, 1, samples))
}

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{nil, {"a.ogg", "b.ogg"}, {"-jobs", "0", "a.ogg"}, {"-nope", "a.ogg"}} {
		code, _, stderr := runCLI(args...)
		assert.Equal(t, exitUsage, code, "args %q", args)
		assert.NotEmpty(t, stderr)
	}

	code, _, stderr := runCLI()
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "usage: ohlevel [flags] <file|directory>")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI("-h")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "-difficulty")
}

func TestRun_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "beats.wav")
	writeBeats(t, in)

	code, stdout, stderr := runCLI("-seed", "7", in)
	require.Equal(t, exitOK, code, stderr)

	var written []string
	for _, label := range []string{"beginner", "easy", "medium", "hard"} {
		path := filepath.Join(dir, "beats_"+label+".yml")
		written = append(written, path)

		f, err := os.Open(path)
		require.NoError(t, err)
		doc, err := level.Read(f)
		f.Close()
		require.NoError(t, err)

		assert.Equal(t, label, doc.Difficulty)
		assert.Len(t, doc.Walls, 25)
	}
	assert.Equal(t, strings.Join(written, "\n")+"\n", stdout)
}

func TestRun_SeedIsRepeatable(t *testing.T) {
	t.Parallel()

	in := filepath.Join(t.TempDir(), "beats.wav")
	writeBeats(t, in)

	read := func(dir string) []byte {
		data, err := os.ReadFile(filepath.Join(dir, "beats_hard.yml"))
		require.NoError(t, err)
		return data
	}

	a, b := t.TempDir(), t.TempDir()
	code, _, _ := runCLI("-seed", "42", "-difficulty", "hard", "-o", a, in)
	require.Equal(t, exitOK, code)
	code, _, _ = runCLI("-seed", "42", "-difficulty", "hard", "-o", b, in)
	require.Equal(t, exitOK, code)

	assert.Equal(t, read(a), read(b))
}

func TestRun_DifficultyFilterAndConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "beats.wav")
	writeBeats(t, in)

	cfg := filepath.Join(dir, "levels.yml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
profiles:
  - label: expert
    speed: 8
    minInterval: 0.2
    maxConsecutiveCoins: 2
`), 0o644))

	out := t.TempDir()
	code, stdout, stderr := runCLI("-config", cfg, "-difficulty", "easy,expert", "-o", out, in)
	require.Equal(t, exitOK, code, stderr)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"beats_easy.yml", "beats_expert.yml"}, names)
	assert.Equal(t, 2, strings.Count(stdout, "\n"))
}

func TestRun_BadConfig(t *testing.T) {
	t.Parallel()

	in := filepath.Join(t.TempDir(), "beats.wav")
	writeBeats(t, in)

	code, _, _ := runCLI("-difficulty", "insane", in)
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI("-limit", "0", in)
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI("-config", filepath.Join(t.TempDir(), "missing.yml"), in)
	assert.Equal(t, exitUsage, code)
}

func TestRun_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.ogg"), []byte("not vorbis"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.ogg"), 0o755))
	writeBeats(t, filepath.Join(dir, "beats.wav"))

	code, stdout, stderr := runCLI("-jobs", "2", dir)
	assert.Equal(t, exitFailed, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "broken.ogg")
	assert.NotContains(t, stderr, "beats.wav")

	_, err := os.Stat(filepath.Join(dir, "beats_easy.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_EmptyDirectory(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCLI(t.TempDir())
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
}

func TestRun_MissingInput(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI(filepath.Join(t.TempDir(), "nope.ogg"))
	assert.Equal(t, exitFailed, code)
	assert.Contains(t, stderr, "cannot read input")
}

func TestInputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.ogg", "a.OGG", "c.wav", "d.ogg.bak"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	files, isDir, err := inputs(dir)
	require.NoError(t, err)
	assert.True(t, isDir)
	assert.Equal(t, []string{filepath.Join(dir, "a.OGG"), filepath.Join(dir, "b.ogg")}, files)

	files, isDir, err = inputs(filepath.Join(dir, "c.wav"))
	require.NoError(t, err)
	assert.False(t, isDir)
	assert.Equal(t, []string{filepath.Join(dir, "c.wav")}, files)
}
