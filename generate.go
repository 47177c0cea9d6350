// SPDX-License-Identifier: EPL-2.0

package ohlevel

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/ik5/ohlevel/audio"
	"github.com/ik5/ohlevel/level"
	"github.com/ik5/ohlevel/notes"
	"github.com/ik5/ohlevel/wall"
)

// Levels detects the notes of t once and builds one document per profile in
// cfg. Profiles draw from rng in order, so a seeded rng gives repeatable
// output.
func Levels(t Track, cfg level.Config, rng *rand.Rand, logger *slog.Logger) ([]level.Document, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("title", t.Title))

	det := notes.NewDetector(
		notes.WithMaxAttempts(cfg.Detection.MaxAttempts),
		notes.WithLogger(logger),
	)
	res, err := det.Search(t.Buffer, cfg.Detection.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysis, err)
	}

	logger.Info("detected notes",
		slog.Int("notes", len(res.Notes)),
		slog.Float64("limit", float64(res.Limit)),
		slog.Int("attempts", res.Attempts),
		slog.Bool("converged", res.Converged),
	)
	if len(res.Notes) < 3 {
		logger.Warn("too few notes for walls", slog.Int("notes", len(res.Notes)))
	}

	audioTime := t.Buffer.Duration()
	docs := make([]level.Document, 0, len(cfg.Profiles))
	for _, p := range cfg.Profiles {
		walls := wall.Generate(res.Notes, p, rng)
		logger.Debug("generated walls", slog.String("difficulty", p.Label), slog.Int("walls", len(walls)))
		docs = append(docs, level.FromWalls(t.Title, audioTime, p, walls, rng))
	}

	return docs, nil
}

// Process loads path and returns its documents. Errors are *FileError.
func Process(path string, reg *audio.Registry, cfg level.Config, rng *rand.Rand, logger *slog.Logger) ([]level.Document, error) {
	t, err := LoadFile(path, reg, cfg.Detection.Rate)
	if err != nil {
		return nil, err
	}

	docs, err := Levels(t, cfg, rng, logger)
	if err != nil {
		return nil, &FileError{Path: path, Op: "analyze", Err: err}
	}
	return docs, nil
}

// OutputName is the file name of the document for one difficulty.
func OutputName(stem, difficulty string) string {
	return stem + "_" + difficulty + ".yml"
}

// Save writes every document to dir as OutputName(stem, difficulty) and
// returns the paths written.
func Save(dir, stem string, docs []level.Document) ([]string, error) {
	paths := make([]string, 0, len(docs))
	for _, d := range docs {
		path := filepath.Join(dir, OutputName(stem, d.Difficulty))
		if err := writeDocument(path, d); err != nil {
			return paths, &FileError{Path: path, Op: "write", Err: err}
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeDocument(path string, d level.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
