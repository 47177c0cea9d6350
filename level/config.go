// SPDX-License-Identifier: EPL-2.0

package level

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/ik5/ohlevel/notes"
	"github.com/ik5/ohlevel/wall"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig = errors.New("invalid level config")
	ErrUnknownLabel  = errors.New("unknown difficulty")
)

var builtin = []wall.Profile{
	{Label: "beginner", Speed: 3, MinInterval: 1.0, MaxConsecutiveCoins: 6},
	{Label: "easy", Speed: 4, MinInterval: 0.8, MaxConsecutiveCoins: 5},
	{Label: "medium", Speed: 5, MinInterval: 0.6, MaxConsecutiveCoins: 4},
	{Label: "hard", Speed: 6, MinInterval: 0.4, MaxConsecutiveCoins: 3},
}

// Builtin returns a copy of the stock profiles, easiest first.
func Builtin() []wall.Profile {
	return slices.Clone(builtin)
}

// Detection holds the note detector settings.
type Detection struct {
	Limit       float32
	MaxAttempts int
	// Rate resamples the decoded audio before analysis. 0 keeps the source
	// rate.
	Rate uint32
}

// Config is everything a generation run needs besides the audio.
type Config struct {
	Detection Detection
	Profiles  []wall.Profile
}

func DefaultConfig() Config {
	return Config{
		Detection: Detection{Limit: notes.DefaultLimit, MaxAttempts: notes.DefaultMaxAttempts},
		Profiles:  Builtin(),
	}
}

// File is the YAML schema of a config file. Unset fields keep their
// defaults.
type File struct {
	Detection *DetectionSetting `yaml:"detection"`
	Profiles  []ProfileSetting  `yaml:"profiles"`
}

type DetectionSetting struct {
	Limit       *float32 `yaml:"limit"`
	MaxAttempts *int     `yaml:"maxAttempts"`
	Rate        *uint32  `yaml:"rate"`
}

// ProfileSetting overrides the profile with the same label or, for a new
// label, adds one.
type ProfileSetting struct {
	Label               string   `yaml:"label"`
	Speed               *uint8   `yaml:"speed"`
	MinInterval         *float32 `yaml:"minInterval"`
	MaxConsecutiveCoins *uint8   `yaml:"maxConsecutiveCoins"`
	LeadIn              *float32 `yaml:"leadIn"`
	NarrowDodgeGap      *float32 `yaml:"narrowDodgeGap"`
}

// LoadConfig reads path and applies it on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w", err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a config file from r and applies it on top of
// DefaultConfig. An empty input yields the defaults.
func ParseConfig(r io.Reader) (Config, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := DefaultConfig()
	if err := ApplyFile(&cfg, &f); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyFile applies a parsed config file onto cfg.
func ApplyFile(cfg *Config, f *File) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil destination", ErrInvalidConfig)
	}
	if f == nil {
		return nil
	}

	if d := f.Detection; d != nil {
		if d.Limit != nil {
			if *d.Limit <= 0 {
				return invalid("detection.limit must be > 0")
			}
			cfg.Detection.Limit = *d.Limit
		}
		if d.MaxAttempts != nil {
			if *d.MaxAttempts < 1 {
				return invalid("detection.maxAttempts must be >= 1")
			}
			cfg.Detection.MaxAttempts = *d.MaxAttempts
		}
		if d.Rate != nil {
			cfg.Detection.Rate = *d.Rate
		}
	}

	for i, s := range f.Profiles {
		label := strings.TrimSpace(s.Label)
		if label == "" {
			return invalid("profiles[%d].label is required", i)
		}

		idx := slices.IndexFunc(cfg.Profiles, func(p wall.Profile) bool { return p.Label == label })
		if idx < 0 {
			if s.MinInterval == nil || s.MaxConsecutiveCoins == nil {
				return invalid("new profile %q needs minInterval and maxConsecutiveCoins", label)
			}
			cfg.Profiles = append(cfg.Profiles, wall.Profile{Label: label, Speed: 5})
			idx = len(cfg.Profiles) - 1
		}

		if err := applyProfile(&cfg.Profiles[idx], s); err != nil {
			return err
		}
	}

	return nil
}

func applyProfile(p *wall.Profile, s ProfileSetting) error {
	if s.Speed != nil {
		if *s.Speed == 0 {
			return invalid("profile %q: speed must be > 0", p.Label)
		}
		p.Speed = *s.Speed
	}
	if s.MinInterval != nil {
		if *s.MinInterval <= 0 {
			return invalid("profile %q: minInterval must be > 0", p.Label)
		}
		p.MinInterval = *s.MinInterval
	}
	if s.MaxConsecutiveCoins != nil {
		p.MaxConsecutiveCoins = *s.MaxConsecutiveCoins
	}
	if s.LeadIn != nil {
		if *s.LeadIn < 0 {
			return invalid("profile %q: leadIn must be >= 0", p.Label)
		}
		p.LeadIn = *s.LeadIn
	}
	if s.NarrowDodgeGap != nil {
		if *s.NarrowDodgeGap < 0 {
			return invalid("profile %q: narrowDodgeGap must be >= 0", p.Label)
		}
		p.NarrowDodgeGap = *s.NarrowDodgeGap
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Select returns the profiles whose labels are listed, in profile order. An
// empty list selects every profile.
func Select(profiles []wall.Profile, labels []string) ([]wall.Profile, error) {
	if len(labels) == 0 {
		return slices.Clone(profiles), nil
	}

	want := make(map[string]bool, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if !slices.ContainsFunc(profiles, func(p wall.Profile) bool { return p.Label == l }) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, l)
		}
		want[l] = true
	}

	var out []wall.Profile
	for _, p := range profiles {
		if want[p.Label] {
			out = append(out, p)
		}
	}
	return out, nil
}
