// SPDX-License-Identifier: EPL-2.0

package notes

import (
	"fmt"
	"log/slog"

	"github.com/ik5/ohlevel/spectrum"
)

const (
	// DefaultLimit is the starting difficulty limit used by the CLI.
	DefaultLimit float32 = 1.2
	// DefaultMaxAttempts bounds the limit search.
	DefaultMaxAttempts = 50
	// LimitStep is how far the limit moves between attempts.
	LimitStep float32 = 0.02
	// MinMagnitude is the absolute floor below which a block is never a note.
	MinMagnitude float32 = 0.001

	// Target note counts per second of audio.
	LowDensity  float32 = 2.5
	HighDensity float32 = 3.5
)

// Result of a limit search.
type Result struct {
	Notes     []Note
	Limit     float32 // limit that produced Notes
	Attempts  int     // full scans performed
	Converged bool    // Notes count is inside the density band
}

// Detector finds notes in a SampleBuffer. It owns a spectrum.Extractor and
// is not safe for concurrent use.
type Detector struct {
	extractor   *spectrum.Extractor
	maxAttempts int
	logger      *slog.Logger
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithMaxAttempts caps the number of full scans. Values below 1 are ignored.
func WithMaxAttempts(n int) DetectorOption {
	return func(d *Detector) {
		if n > 0 {
			d.maxAttempts = n
		}
	}
}

func WithLogger(l *slog.Logger) DetectorOption {
	return func(d *Detector) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithExtractor replaces the default spectrum.Extractor.
func WithExtractor(ex *spectrum.Extractor) DetectorOption {
	return func(d *Detector) {
		if ex != nil {
			d.extractor = ex
		}
	}
}

func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{
		maxAttempts: DefaultMaxAttempts,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.extractor == nil {
		d.extractor = spectrum.NewExtractor()
	}

	return d
}

// Detect returns the notes of the best attempt of Search.
func (d *Detector) Detect(buf SampleBuffer, limit float32) ([]Note, error) {
	res, err := d.Search(buf, limit)
	if err != nil {
		return nil, err
	}
	return res.Notes, nil
}

// Search rescans buf, lowering the limit while there are too few notes and
// raising it while there are too many, until the count falls inside
// [LowDensity, HighDensity] notes per second or MaxAttempts scans were made.
// Without convergence the attempt closest to the band is returned; the
// earliest one wins ties.
func (d *Detector) Search(buf SampleBuffer, limit float32) (Result, error) {
	if buf.SampleRate == 0 {
		return Result{}, fmt.Errorf("%w: %w", spectrum.ErrAnalysis, spectrum.ErrSampleRate)
	}

	low, high := densityBand(buf)

	var best Result
	bestDist := -1

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		found, err := d.Scan(buf, limit)
		if err != nil {
			return Result{}, err
		}

		count := len(found)
		d.logger.Debug("scanned notes",
			slog.Int("attempt", attempt),
			slog.Float64("limit", float64(limit)),
			slog.Int("notes", count),
			slog.Int("low", low),
			slog.Int("high", high),
		)

		var dist int
		next := limit
		switch {
		case count < low:
			dist = low - count
			next = limit - LimitStep
		case count > high:
			dist = count - high
			next = limit + LimitStep
		default:
			return Result{Notes: found, Limit: limit, Attempts: attempt, Converged: true}, nil
		}

		if bestDist < 0 || dist < bestDist {
			best = Result{Notes: found, Limit: limit}
			bestDist = dist
		}
		limit = next
	}

	best.Attempts = d.maxAttempts
	d.logger.Warn("note density did not converge",
		slog.Int("attempts", d.maxAttempts),
		slog.Float64("limit", float64(best.Limit)),
		slog.Int("notes", len(best.Notes)),
		slog.Int("low", low),
		slog.Int("high", high),
	)

	return best, nil
}

// Scan makes a single pass over buf with a fixed limit. A trailing partial
// block is ignored.
func (d *Detector) Scan(buf SampleBuffer, limit float32) ([]Note, error) {
	size := d.extractor.Size()
	blocks := len(buf.Samples) / size
	rate := float32(buf.SampleRate)

	var (
		difficulty float32
		found      []Note
	)

	for i := range blocks {
		block := buf.Samples[i*size : (i+1)*size]

		peak, err := d.extractor.Peak(block, buf.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}

		// The block's own magnitude is part of the baseline it is judged by.
		difficulty = (difficulty + peak.Magnitude) / 2

		if peak.Magnitude > MinMagnitude && peak.Magnitude > difficulty*limit {
			found = append(found, Note{
				Frequency: peak.Frequency,
				Magnitude: peak.Magnitude,
				Time:      float32(i*size) / rate,
			})
		}
	}

	return found, nil
}

// densityBand is the accepted note count range for buf, truncated to whole notes.
func densityBand(buf SampleBuffer) (int, int) {
	total := float32(len(buf.Samples))
	rate := float32(buf.SampleRate)

	return int(total * LowDensity / rate), int(total * HighDensity / rate)
}
