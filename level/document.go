// SPDX-License-Identifier: EPL-2.0

package level

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/ik5/ohlevel/wall"
	"gopkg.in/yaml.v3"
)

const (
	header   = "%YAML 1.1\n---\n"
	trailer  = "...\n"
	author   = "ohshape level gen"
	scenario = 3
)

var ErrNoLevel = errors.New("document has no level")

// Entry is one item of a level sequence.
type Entry struct {
	Second float32
	Obj    string
}

// Document is a single-difficulty level for one audio clip.
type Document struct {
	Title      string
	Speed      uint8
	AudioTime  float32 // seconds
	Difficulty string
	Walls      []Entry
}

// FromWalls encodes walls for profile p. rng is only drawn from for Shape
// walls.
func FromWalls(title string, audioTime float32, p wall.Profile, walls []wall.Wall, rng *rand.Rand) Document {
	entries := make([]Entry, len(walls))
	for i, w := range walls {
		entries[i] = Entry{Second: w.Time, Obj: wall.Encode(w, rng)}
	}

	return Document{
		Title:      title,
		Speed:      p.Speed,
		AudioTime:  audioTime,
		Difficulty: p.Label,
		Walls:      entries,
	}
}

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func number(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
}

func fixed(v float32, prec int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(float64(v), 'f', prec, 32)}
}

// boolean uses the capitalized spelling the game writes.
func boolean(v bool) *yaml.Node {
	value := "False"
	if v {
		value = "True"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: value}
}

func empty() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
}

type field struct {
	key   string
	value *yaml.Node
}

func mapping(fields ...field) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		n.Content = append(n.Content, str(f.key), f.value)
	}
	return n
}

func (d Document) node() *yaml.Node {
	// A level without walls keeps an empty sequence key.
	seq := empty()
	if len(d.Walls) > 0 {
		seq = &yaml.Node{Kind: yaml.SequenceNode}
	}
	for _, e := range d.Walls {
		seq.Content = append(seq.Content, mapping(
			field{"second", fixed(e.Second, 2)},
			field{"obj", str(e.Obj)},
			field{"track", number(0)},
		))
	}

	levels := &yaml.Node{Kind: yaml.SequenceNode, Content: []*yaml.Node{
		mapping(field{"level", number(0)}, field{"sequence", seq}),
	}}

	return mapping(
		field{"title", str(d.Title)},
		field{"clip", str(d.Title)},
		field{"speed", number(int(d.Speed))},
		field{"audioTime", fixed(d.AudioTime, 3)},
		field{"scenario", number(scenario)},
		field{"video", empty()},
		field{"vOffset", number(0)},
		field{"forceDebug", boolean(false)},
		field{"offset", number(0)},
		field{"author", str(author)},
		field{"difficulty", str(d.Difficulty)},
		field{"preview", number(0)},
		field{"grid", boolean(false)},
		field{"gridBpm", number(0)},
		field{"gridOffset", number(0)},
		field{"levels", levels},
	)
}

// WriteTo writes d as a YAML 1.1 document with explicit start and end
// markers.
func (d Document) WriteTo(w io.Writer) (int64, error) {
	var body bytes.Buffer
	enc := yaml.NewEncoder(&body)
	enc.SetIndent(2)
	if err := enc.Encode(d.node()); err != nil {
		return 0, fmt.Errorf("encoding level %q: %w", d.Title, err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("encoding level %q: %w", d.Title, err)
	}

	var out bytes.Buffer
	out.Grow(len(header) + body.Len() + len(trailer))
	out.WriteString(header)
	out.WriteString(strings.TrimSuffix(body.String(), trailer))
	out.WriteString(trailer)

	n, err := out.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}
	return n, nil
}

type rawDocument struct {
	Title      string  `yaml:"title"`
	Speed      uint8   `yaml:"speed"`
	AudioTime  float32 `yaml:"audioTime"`
	Difficulty string  `yaml:"difficulty"`
	Levels     []struct {
		Sequence []struct {
			Second float32 `yaml:"second"`
			Obj    string  `yaml:"obj"`
		} `yaml:"sequence"`
	} `yaml:"levels"`
}

// Read parses a document written by WriteTo. Only the first level is kept.
func Read(r io.Reader) (Document, error) {
	var raw rawDocument
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return Document{}, fmt.Errorf("decoding level: %w", err)
	}
	if len(raw.Levels) == 0 {
		return Document{}, ErrNoLevel
	}

	d := Document{
		Title:      raw.Title,
		Speed:      raw.Speed,
		AudioTime:  raw.AudioTime,
		Difficulty: raw.Difficulty,
		Walls:      make([]Entry, len(raw.Levels[0].Sequence)),
	}
	for i, e := range raw.Levels[0].Sequence {
		d.Walls[i] = Entry{Second: e.Second, Obj: e.Obj}
	}

	return d, nil
}
