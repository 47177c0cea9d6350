// SPDX-License-Identifier: EPL-2.0

package wall

import "fmt"

// LCR is a lateral position.
type LCR uint8

const (
	Left LCR = iota
	Center
	Right
)

var lcrNames = [...]string{"left", "center", "right"}

func (p LCR) String() string {
	if int(p) < len(lcrNames) {
		return lcrNames[p]
	}
	return fmt.Sprintf("LCR(%d)", uint8(p))
}

// DodgeDirection is where the player has to lean.
type DodgeDirection uint8

const (
	TopLeft DodgeDirection = iota
	DodgeLeft
	Top
	DodgeRight
	TopRight
)

var dodgeNames = [...]string{"top-left", "left", "top", "right", "top-right"}

func (d DodgeDirection) String() string {
	if int(d) < len(dodgeNames) {
		return dodgeNames[d]
	}
	return fmt.Sprintf("DodgeDirection(%d)", uint8(d))
}

// Mirror returns the opposite side. Top has no opposite and is returned as is.
func (d DodgeDirection) Mirror() DodgeDirection {
	switch d {
	case TopLeft:
		return TopRight
	case DodgeLeft:
		return DodgeRight
	case DodgeRight:
		return DodgeLeft
	case TopRight:
		return TopLeft
	default:
		return d
	}
}

// Kind is the content of a Wall. It is implemented by Shape, Hit, Dodge and
// Coin only.
type Kind interface {
	kind()
}

// Shape is a posture the player has to match.
type Shape struct {
	Lean     LCR
	Standing bool
}

// Hit is a target to strike.
type Hit struct {
	Position LCR
	Standing bool
	Hands    LCR
}

// Dodge is an obstacle to lean away from. Duration is in hundredths of a
// second, the unit the game reads.
type Dodge struct {
	Direction DodgeDirection
	Duration  uint16
}

// Coin is a collectible on the board grid, X in [-10,10] and Y in [0,13].
type Coin struct {
	X int8
	Y int8
}

func (Shape) kind() {}
func (Hit) kind()   {}
func (Dodge) kind() {}
func (Coin) kind()  {}

// Wall is one timed level event.
type Wall struct {
	Time float32
	Kind Kind
}

// IsCoin reports whether w is a Coin.
func (w Wall) IsCoin() bool {
	_, ok := w.Kind.(Coin)
	return ok
}
