// SPDX-License-Identifier: EPL-2.0

// Command ohlevel writes OhShape levels for an audio file or for every Ogg
// Vorbis file in a directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/ohlevel"
	"github.com/ik5/ohlevel/audio"
	"github.com/ik5/ohlevel/level"
	"golang.org/x/sync/errgroup"
)

const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	batchFormat = ".ogg"
)

type options struct {
	input      string
	outDir     string
	configPath string
	seed       uint64
	difficulty string
	jobs       int
	verbose    bool

	// Detection overrides, applied only when the flag was given.
	limit    float64
	attempts int
	rate     uint
	set      map[string]bool
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("ohlevel", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: ohlevel [flags] <file|directory>\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&o.outDir, "o", "", "output directory (default: next to the input)")
	fs.StringVar(&o.configPath, "config", "", "YAML file with detection settings and difficulty profiles")
	fs.Float64Var(&o.limit, "limit", float64(level.DefaultConfig().Detection.Limit), "initial difficulty limit of the note detector")
	fs.IntVar(&o.attempts, "attempts", level.DefaultConfig().Detection.MaxAttempts, "maximum detector passes")
	fs.UintVar(&o.rate, "rate", 0, "resample to this rate before analysis (0 keeps the file rate)")
	fs.Uint64Var(&o.seed, "seed", 0, "random seed (0 seeds from the clock)")
	fs.StringVar(&o.difficulty, "difficulty", "", "comma separated difficulties to write (default: all)")
	fs.IntVar(&o.jobs, "jobs", 1, "files processed at once in directory mode")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return o, errors.New("expected exactly one input")
	}
	if o.jobs < 1 {
		return o, fmt.Errorf("-jobs must be >= 1, got %d", o.jobs)
	}

	o.input = fs.Arg(0)
	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	return o, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	lvl := slog.LevelInfo
	if debug {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: debug,
	}))
}

// config loads the profile file, applies flag overrides and the difficulty
// filter.
func (o options) config() (level.Config, error) {
	cfg := level.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = level.LoadConfig(o.configPath); err != nil {
			return cfg, err
		}
	}

	if o.set["limit"] {
		if o.limit <= 0 {
			return cfg, fmt.Errorf("-limit must be > 0, got %v", o.limit)
		}
		cfg.Detection.Limit = float32(o.limit)
	}
	if o.set["attempts"] {
		if o.attempts < 1 {
			return cfg, fmt.Errorf("-attempts must be >= 1, got %d", o.attempts)
		}
		cfg.Detection.MaxAttempts = o.attempts
	}
	if o.set["rate"] {
		cfg.Detection.Rate = uint32(o.rate)
	}

	var labels []string
	if o.difficulty != "" {
		labels = strings.Split(o.difficulty, ",")
	}
	profiles, err := level.Select(cfg.Profiles, labels)
	if err != nil {
		return cfg, err
	}
	cfg.Profiles = profiles

	return cfg, nil
}

// inputs expands a directory into its Ogg Vorbis files. A file is returned
// as is.
func inputs(path string) ([]string, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, fmt.Errorf("%w", err)
	}
	if !info.IsDir() {
		return []string{path}, false, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, true, fmt.Errorf("%w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), batchFormat) {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	return files, true, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, "ohlevel:", err)
		return exitUsage
	}

	logger := newLogger(stderr, o.verbose)

	cfg, err := o.config()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		return exitUsage
	}

	files, dir, err := inputs(o.input)
	if err != nil {
		logger.Error("cannot read input", slog.String("path", o.input), slog.Any("error", err))
		return exitFailed
	}
	if dir && len(files) == 0 {
		logger.Warn("no input files", slog.String("dir", o.input), slog.String("ext", batchFormat))
		return exitOK
	}

	seed := o.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Debug("starting", slog.Int("files", len(files)), slog.Uint64("seed", seed), slog.Int("jobs", o.jobs))

	reg := ohlevel.NewRegistry()
	var (
		failed atomic.Int32
		outMu  sync.Mutex
		g      errgroup.Group
	)
	g.SetLimit(o.jobs)

	for i, path := range files {
		// Each file gets its own stream so results do not depend on -jobs.
		rng := rand.New(rand.NewPCG(seed, uint64(i)))

		g.Go(func() error {
			paths, err := generate(path, o.outDir, reg, cfg, rng, logger)
			if err != nil {
				failed.Add(1)
				logger.Error("skipping file", slog.String("path", path), slog.Any("error", err))
				return nil
			}

			outMu.Lock()
			defer outMu.Unlock()
			for _, p := range paths {
				fmt.Fprintln(stdout, p)
			}
			return nil
		})
	}
	// Workers never return an error; failures are counted in failed.
	_ = g.Wait()

	if n := failed.Load(); n > 0 {
		logger.Error("some files failed", slog.Int("failed", int(n)), slog.Int("total", len(files)))
		return exitFailed
	}
	return exitOK
}

func generate(path, outDir string, reg *audio.Registry, cfg level.Config, rng *rand.Rand, logger *slog.Logger) ([]string, error) {
	start := time.Now()

	docs, err := ohlevel.Process(path, reg, cfg, rng, logger)
	if err != nil {
		return nil, err
	}

	if outDir == "" {
		outDir = filepath.Dir(path)
	}
	paths, err := ohlevel.Save(outDir, ohlevel.Title(path), docs)
	if err != nil {
		return paths, err
	}

	logger.Info("wrote levels",
		slog.String("path", path),
		slog.Int("levels", len(paths)),
		slog.Duration("took", time.Since(start)),
	)
	return paths, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
