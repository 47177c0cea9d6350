// SPDX-License-Identifier: EPL-2.0

package wall

import (
	"math"
	"math/rand/v2"

	"github.com/ik5/ohlevel/notes"
)

// Board limits for coins.
const (
	CoinMinX, CoinMaxX int8 = -10, 10
	CoinMinY, CoinMaxY int8 = 0, 13
)

// MinDodgeDuration is the shortest Dodge the generator emits.
const MinDodgeDuration uint16 = 2

// Profile holds the per-difficulty knobs of a generation run.
type Profile struct {
	Label               string
	Speed               uint8
	MinInterval         float32 // seconds a free wall needs on both sides
	MaxConsecutiveCoins uint8   // forced coins before the next-gap rule is waived

	// LeadIn forces coins for notes at or before this many seconds. 0 disables it.
	LeadIn float32
	// NarrowDodgeGap limits a fresh Dodge to Top, Left or Right when either
	// gap is shorter than this many seconds. 0 disables it.
	NarrowDodgeGap float32
}

// State is carried from one window to the next.
type State struct {
	Previous *Wall
	Coins    uint8 // coins forced since the last free choice
}

// Generator produces walls for consecutive note windows. Each generation run
// needs its own Generator.
type Generator struct {
	profile Profile
	rng     *rand.Rand
	state   State
}

func NewGenerator(p Profile, rng *rand.Rand) *Generator {
	return &Generator{profile: p, rng: rng}
}

// State returns a copy of the generator state, including the previous wall.
func (g *Generator) State() State {
	s := g.state
	if s.Previous != nil {
		w := *s.Previous
		s.Previous = &w
	}
	return s
}

// Generate returns one wall per interior note of ns using a fresh Generator.
// Fewer than three notes give no walls.
func Generate(ns []notes.Note, p Profile, rng *rand.Rand) []Wall {
	if len(ns) < 3 {
		return nil
	}

	g := NewGenerator(p, rng)
	walls := make([]Wall, 0, len(ns)-2)
	for i := 1; i+1 < len(ns); i++ {
		walls = append(walls, g.Next(ns[i-1], ns[i], ns[i+1]))
	}

	return walls
}

// Next produces the wall for cur and records it as the previous wall.
func (g *Generator) Next(prev, cur, next notes.Note) Wall {
	toPrev := cur.Time - prev.Time
	toNext := next.Time - cur.Time

	var k Kind
	if g.free(cur.Time, toPrev, toNext) {
		g.state.Coins = 0
		k = g.freeKind(toPrev, toNext)
	} else {
		if g.state.Coins < math.MaxUint8 {
			g.state.Coins++
		}
		k = g.coin()
	}

	w := Wall{Time: cur.Time, Kind: k}
	g.state.Previous = &w

	return w
}

func (g *Generator) free(at, toPrev, toNext float32) bool {
	p := g.profile
	if p.LeadIn > 0 && at <= p.LeadIn {
		return false
	}

	prevCoin := g.state.Previous != nil && g.state.Previous.IsCoin()

	return (toPrev > p.MinInterval || prevCoin) &&
		(toNext > p.MinInterval || g.state.Coins >= p.MaxConsecutiveCoins)
}

func (g *Generator) freeKind(toPrev, toNext float32) Kind {
	// Tight spacing leaves no room for a Dodge.
	if toNext < 2*g.profile.MinInterval {
		if g.rng.IntN(3) < 2 {
			return g.shape()
		}
		return g.hit()
	}

	switch g.rng.IntN(4) {
	case 0:
		return g.shape()
	case 1:
		return g.hit()
	default:
		return g.dodge(toPrev, toNext)
	}
}

func (g *Generator) shape() Shape {
	return Shape{Lean: g.lcr(), Standing: g.rng.IntN(2) == 1}
}

func (g *Generator) hit() Hit {
	return Hit{Position: g.lcr(), Standing: g.rng.IntN(2) == 1, Hands: g.lcr()}
}

func (g *Generator) dodge(toPrev, toNext float32) Dodge {
	d := Dodge{Duration: dodgeDuration(toNext)}

	var last *Dodge
	if g.state.Previous != nil {
		if pd, ok := g.state.Previous.Kind.(Dodge); ok {
			last = &pd
		}
	}

	narrow := g.profile.NarrowDodgeGap
	switch {
	case last != nil && last.Direction != Top:
		d.Direction = last.Direction.Mirror()
	case last == nil && narrow > 0 && (toPrev < narrow || toNext < narrow):
		d.Direction = [...]DodgeDirection{Top, DodgeLeft, DodgeRight}[g.rng.IntN(3)]
	default:
		d.Direction = DodgeDirection(g.rng.IntN(5))
	}

	return d
}

// dodgeDuration leaves half a second of margin before the next note and
// never goes below MinDodgeDuration.
func dodgeDuration(toNext float32) uint16 {
	units := math.Round(float64(toNext) * 100)
	if units > math.MaxUint16 {
		units = math.MaxUint16
	}

	d := uint16(max(units, 0))
	if d > 50 {
		d -= 50
	} else {
		d = 0
	}

	return max(d, MinDodgeDuration)
}

func (g *Generator) coin() Coin {
	if g.state.Previous != nil {
		if pc, ok := g.state.Previous.Kind.(Coin); ok {
			return Coin{
				X: g.between(max(pc.X-1, CoinMinX), min(pc.X+1, CoinMaxX)),
				Y: g.between(max(pc.Y-1, CoinMinY), min(pc.Y+1, CoinMaxY)),
			}
		}
	}

	return Coin{X: g.between(-5, 5), Y: g.between(3, 10)}
}

func (g *Generator) lcr() LCR {
	return LCR(g.rng.IntN(3))
}

// between draws uniformly from [lo, hi].
func (g *Generator) between(lo, hi int8) int8 {
	return lo + int8(g.rng.IntN(int(hi)-int(lo)+1))
}
