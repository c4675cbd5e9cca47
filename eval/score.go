// Package eval answers tactical and positional queries against a
// board: area scoring, eye-shape classification, and ladder reading.
// Every query is read-only; searches work on clones.
package eval

import (
	"fmt"
	"math"

	"tesuji/board"
)

// Score computes the area score of the current position: each color's
// stones plus empty regions bordered by that color alone, komi added
// to White. Regions bordering both colors, or nothing at all, are
// neutral. Positive favors Black. Dead stones are not removed; the
// board is scored as it stands.
func Score(b *board.Board, komi float64) float64 {
	size := b.Size()
	visited := make([]bool, size*size)
	black, white := 0, 0

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			p := board.Point{Row: row, Col: col}
			switch b.At(p) {
			case board.Black:
				black++
				continue
			case board.White:
				white++
				continue
			}
			if visited[row*size+col] {
				continue
			}
			region, touchesBlack, touchesWhite := emptyRegion(b, p, visited)
			switch {
			case touchesBlack && !touchesWhite:
				black += len(region)
			case touchesWhite && !touchesBlack:
				white += len(region)
			}
		}
	}
	return float64(black) - float64(white) - komi
}

// FormatScore renders a signed score in GTP result notation:
// "B+3.5", "W+6.5", or "0" for jigo.
func FormatScore(score float64) string {
	switch {
	case score > 0:
		return fmt.Sprintf("B+%.1f", score)
	case score < 0:
		return fmt.Sprintf("W+%.1f", math.Abs(score))
	}
	return "0"
}

// emptyRegion flood-fills the maximal empty region containing p and
// reports which colors border it. Points are returned in row-major
// order of discovery start; callers needing a canonical origin take
// the minimum.
func emptyRegion(b *board.Board, p board.Point, visited []bool) (region []board.Point, touchesBlack, touchesWhite bool) {
	size := b.Size()
	stack := []board.Point{p}
	visited[p.Row*size+p.Col] = true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		region = append(region, cur)
		for _, n := range neighbors(cur, size) {
			switch b.At(n) {
			case board.Black:
				touchesBlack = true
			case board.White:
				touchesWhite = true
			default:
				if !visited[n.Row*size+n.Col] {
					visited[n.Row*size+n.Col] = true
					stack = append(stack, n)
				}
			}
		}
	}
	return region, touchesBlack, touchesWhite
}

// neighbors returns the on-board orthogonal neighbors of p.
func neighbors(p board.Point, size int) []board.Point {
	out := make([]board.Point, 0, 4)
	for _, d := range [4][2]int{{-1, 0}, {0, -1}, {0, 1}, {1, 0}} {
		n := board.Point{Row: p.Row + d[0], Col: p.Col + d[1]}
		if n.Row >= 0 && n.Row < size && n.Col >= 0 && n.Col < size {
			out = append(out, n)
		}
	}
	return out
}

// diagonals returns the on-board diagonal neighbors of p and how many
// fell off the board.
func diagonals(p board.Point, size int) (on []board.Point, off int) {
	for _, d := range [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		n := board.Point{Row: p.Row + d[0], Col: p.Col + d[1]}
		if n.Row >= 0 && n.Row < size && n.Col >= 0 && n.Col < size {
			on = append(on, n)
		} else {
			off++
		}
	}
	return on, off
}
