package eval

import (
	"errors"
	"fmt"

	"tesuji/board"
)

// DefaultLadderDepth bounds the alternating search; a ladder across a
// full 19x19 board resolves well inside this.
const DefaultLadderDepth = 64

// ErrNotInAtari is returned when the queried stone has more than one
// liberty; ladder reading starts from atari.
var ErrNotInAtari = errors.New("stone is not in atari")

// LadderOutcome is the result of reading out a ladder.
type LadderOutcome int

const (
	LadderEscaped LadderOutcome = iota
	LadderCaptured
)

func (o LadderOutcome) String() string {
	if o == LadderCaptured {
		return "captured"
	}
	return "escaped"
}

// Ladder reads out the ladder against the atari'd stone at p: the
// defender extends on its sole liberty, the attacker re-ataris, until
// the chased group dies, reaches two-plus stable liberties, repeats a
// position, or the depth bound trips — the last two count as escapes.
// When the group is capturable it also returns the attacker's first
// capturing move.
func Ladder(b *board.Board, p board.Point, maxDepth int) (LadderOutcome, board.Point, error) {
	if !b.On(p) {
		return LadderEscaped, board.Point{}, fmt.Errorf("%w: (%d,%d)", board.ErrOffBoard, p.Row, p.Col)
	}
	if b.At(p) == board.Empty {
		return LadderEscaped, board.Point{}, fmt.Errorf("%w: (%d,%d)", board.ErrEmptyPoint, p.Row, p.Col)
	}
	libs, err := b.LibertyCount(p)
	if err != nil {
		return LadderEscaped, board.Point{}, err
	}
	if libs != 1 {
		return LadderEscaped, board.Point{}, fmt.Errorf("%w: %d liberties", ErrNotInAtari, libs)
	}
	if maxDepth <= 0 {
		maxDepth = DefaultLadderDepth
	}
	visited := make(map[uint64]struct{})
	outcome, capture := chase(b.Clone(), p, maxDepth, visited)
	return outcome, capture, nil
}

// chase reads one defender-to-move node of the ladder. The visited
// set, keyed on position hash mixed with the ko point, is scoped to a
// single Ladder call and turns repetition into an escape.
func chase(b *board.Board, target board.Point, depth int, visited map[uint64]struct{}) (LadderOutcome, board.Point) {
	if depth <= 0 {
		return LadderEscaped, board.Point{}
	}
	key := positionKey(b)
	if _, seen := visited[key]; seen {
		return LadderEscaped, board.Point{}
	}
	visited[key] = struct{}{}

	defender := b.At(target)
	attacker := defender.Opponent()
	libs, err := b.Liberties(target)
	if err != nil || len(libs) == 0 {
		return LadderCaptured, board.Point{}
	}
	if len(libs) > 1 {
		return LadderEscaped, board.Point{}
	}
	saving := libs[0]

	// The defender escapes outright by capturing an adjacent attacker
	// chain that is itself in atari.
	if counterCaptureAvailable(b, target, attacker) {
		return LadderEscaped, board.Point{}
	}

	// Defender extends on the sole liberty.
	db := b.Clone()
	if _, err := db.Apply(defender, saving); err != nil {
		return LadderCaptured, saving
	}
	extended, err := db.Liberties(saving)
	if err != nil {
		return LadderCaptured, saving
	}
	switch {
	case len(extended) >= 3:
		return LadderEscaped, board.Point{}
	case len(extended) <= 1:
		if len(extended) == 1 {
			return LadderCaptured, extended[0]
		}
		return LadderCaptured, saving
	}

	// Two liberties: the attacker tries each, keeping the chase alive
	// only when the move re-ataris the group.
	for _, a := range extended {
		ab := db.Clone()
		if _, err := ab.Apply(attacker, a); err != nil {
			continue
		}
		lc, err := ab.LibertyCount(saving)
		if err != nil || lc != 1 {
			continue
		}
		if out, _ := chase(ab, saving, depth-1, visited); out == LadderCaptured {
			return LadderCaptured, a
		}
	}
	return LadderEscaped, board.Point{}
}

func counterCaptureAvailable(b *board.Board, target board.Point, attacker board.Color) bool {
	stones, err := b.GroupStones(target)
	if err != nil {
		return false
	}
	size := b.Size()
	for _, s := range stones {
		for _, n := range neighbors(s, size) {
			if b.At(n) != attacker {
				continue
			}
			if lc, err := b.LibertyCount(n); err == nil && lc == 1 {
				return true
			}
		}
	}
	return false
}

// positionKey mixes the ko point into the board hash; ladder nodes
// are always defender-to-move, so no turn bit is needed.
func positionKey(b *board.Board) uint64 {
	key := b.Hash()
	if kp, ok := b.KoPoint(); ok {
		key ^= 0x9e3779b97f4a7c15 * uint64(kp.Row*b.Size()+kp.Col+1)
	}
	return key
}
