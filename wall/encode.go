// SPDX-License-Identifier: EPL-2.0

package wall

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// Shape pose codes.
const (
	PoseLeftUp   = "LUC"
	PoseCenterUp = "CUC"
	PoseRightUp  = "RUC"
	PoseDown     = "CDC"
)

// poseVariants lists the shape variants the game has for each pose.
var poseVariants = map[string][]byte{
	PoseCenterUp: []byte("012345789AB"),
	PoseDown:     []byte("02345789AB"),
	PoseLeftUp:   []byte("38"),
	PoseRightUp:  []byte("38"),
}

var fallbackVariants = []byte("2")

// Encode renders w as an object code. Only Shape walls draw from rng; every
// other kind always encodes to the same string.
func Encode(w Wall, rng *rand.Rand) string {
	var sb strings.Builder

	switch k := w.Kind.(type) {
	case Shape:
		sb.Grow(9)
		sb.WriteString("WP.C")
		sb.WriteString(shapePattern(pose(k), rng))
	case Hit:
		sb.Grow(6)
		sb.WriteString("WH.")
		sb.WriteString(lcrCode(k.Position, "C"))
		sb.WriteString(lcrCode(k.Hands, "B"))
		sb.WriteString(standingCode(k.Standing))
	case Dodge:
		sb.Grow(10)
		sb.WriteString("WA.")
		sb.WriteString(dodgeCode(k.Direction))
		sb.WriteByte('.')
		sb.WriteString(strconv.FormatUint(uint64(k.Duration), 10))
	case Coin:
		sb.Grow(9)
		sb.WriteString("CN.")
		sb.WriteString(strconv.Itoa(int(k.X)))
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(int(k.Y)))
	}

	return sb.String()
}

func pose(s Shape) string {
	if !s.Standing {
		return PoseDown
	}

	switch s.Lean {
	case Left:
		return PoseLeftUp
	case Right:
		return PoseRightUp
	default:
		return PoseCenterUp
	}
}

// shapePattern prefixes the pose with two variant characters drawn with
// replacement.
func shapePattern(pose string, rng *rand.Rand) string {
	variants, ok := poseVariants[pose]
	if !ok {
		variants = fallbackVariants
	}

	return string([]byte{
		variants[rng.IntN(len(variants))],
		variants[rng.IntN(len(variants))],
	}) + pose
}

func lcrCode(p LCR, center string) string {
	switch p {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return center
	}
}

func standingCode(standing bool) string {
	if standing {
		return "U"
	}
	return "D"
}

func dodgeCode(d DodgeDirection) string {
	switch d {
	case TopLeft:
		return "LI"
	case DodgeLeft:
		return "L"
	case Top:
		return "U"
	case DodgeRight:
		return "R"
	case TopRight:
		return "RI"
	default:
		return "U"
	}
}
