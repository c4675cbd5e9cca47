package pattern

import (
	"tesuji/board"
)

// Match records one pattern variant firing at a query point.
type Match struct {
	Name      string
	Transform string
	Weight    int
}

// MatchAt tests every variant centered on p for the side to play and
// returns all that fire. The query is pure; the board is never
// touched. An occupied or off-board point matches nothing.
func (db *Database) MatchAt(b *board.Board, p board.Point, toPlay board.Color) []Match {
	if !b.On(p) || b.At(p) != board.Empty {
		return nil
	}
	var out []Match
	for i := range db.variants {
		v := &db.variants[i]
		if v.matchesAt(b, p, toPlay) {
			out = append(out, Match{
				Name:      v.pat.Name,
				Transform: v.transform,
				Weight:    v.pat.Weight,
			})
		}
	}
	return out
}

func (v *variant) matchesAt(b *board.Board, p board.Point, toPlay board.Color) bool {
	for dr := -Radius; dr <= Radius; dr++ {
		for dc := -Radius; dc <= Radius; dc++ {
			q := board.Point{Row: p.Row + dr, Col: p.Col + dc}
			if !cellMatches(v.cells[Radius-dr][dc+Radius], b, q, toPlay) {
				return false
			}
		}
	}
	return true
}

// CandidatePoints returns the empty points within one step, including
// diagonals, of any stone, in row-major order. On an empty board there
// are no candidates; pattern knowledge says nothing about the first
// move.
func CandidatePoints(b *board.Board) []board.Point {
	size := b.Size()
	near := make([]bool, size*size)
	stones := append(b.Stones(board.Black), b.Stones(board.White)...)
	for _, s := range stones {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				r, c := s.Row+dr, s.Col+dc
				if r >= 0 && r < size && c >= 0 && c < size {
					near[r*size+c] = true
				}
			}
		}
	}
	var out []board.Point
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			p := board.Point{Row: r, Col: c}
			if near[r*size+c] && b.At(p) == board.Empty {
				out = append(out, p)
			}
		}
	}
	return out
}
