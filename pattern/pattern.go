// Package pattern holds the static local-shape knowledge base: 3x3
// tagged-cell templates matched against board neighborhoods under all
// eight symmetries. The database is built once at startup and only
// ever read during play.
package pattern

import (
	"fmt"

	"tesuji/board"
)

// Cell tags one template position. The tag alphabet follows the
// classic 3x3 playout-pattern notation: X own stone, O opponent
// stone, x anything but own, o anything but opponent, . empty,
// space off-board, ? don't care.
type Cell uint8

const (
	Any Cell = iota
	Own
	Opp
	CellEmpty
	NotOwn
	NotOpp
	Edge
)

// Radius is the fixed template radius; Span the side of the cell grid.
const (
	Radius = 1
	Span   = 2*Radius + 1
)

// Pattern is one stored template. The suggested move is the template
// center, which must be tagged empty. Weight ranks matches during
// move generation.
type Pattern struct {
	Name   string
	Weight int
	cells  [Span][Span]Cell // row 0 is the top of the diagram
}

// Parse builds a pattern from its three-row diagram.
func Parse(name string, weight int, rows [Span]string) (Pattern, error) {
	p := Pattern{Name: name, Weight: weight}
	for i, row := range rows {
		if len(row) != Span {
			return Pattern{}, fmt.Errorf("pattern %q: row %d is %d cells, want %d", name, i, len(row), Span)
		}
		for j := 0; j < Span; j++ {
			c, err := parseCell(row[j])
			if err != nil {
				return Pattern{}, fmt.Errorf("pattern %q: %w", name, err)
			}
			p.cells[i][j] = c
		}
	}
	if p.cells[Radius][Radius] != CellEmpty {
		return Pattern{}, fmt.Errorf("pattern %q: center must be empty", name)
	}
	return p, nil
}

func parseCell(ch byte) (Cell, error) {
	switch ch {
	case '?':
		return Any, nil
	case 'X':
		return Own, nil
	case 'O':
		return Opp, nil
	case '.':
		return CellEmpty, nil
	case 'x':
		return NotOwn, nil
	case 'o':
		return NotOpp, nil
	case ' ':
		return Edge, nil
	}
	return Any, fmt.Errorf("unknown cell tag %q", ch)
}

// transform maps a relative offset (dr up, dc right) to its image
// under one of the eight board symmetries.
type transform struct {
	name  string
	apply func(dr, dc int) (int, int)
}

// transforms are the four rotations and their mirror images; every
// variant grid is derived from the single stored template.
var transforms = [8]transform{
	{"identity", func(dr, dc int) (int, int) { return dr, dc }},
	{"rot90", func(dr, dc int) (int, int) { return dc, -dr }},
	{"rot180", func(dr, dc int) (int, int) { return -dr, -dc }},
	{"rot270", func(dr, dc int) (int, int) { return -dc, dr }},
	{"mirror", func(dr, dc int) (int, int) { return dr, -dc }},
	{"mirror-rot90", func(dr, dc int) (int, int) { return dc, dr }},
	{"mirror-rot180", func(dr, dc int) (int, int) { return -dr, dc }},
	{"mirror-rot270", func(dr, dc int) (int, int) { return -dc, -dr }},
}

// cellAt reads the template cell covering relative offset (dr, dc).
// Row 0 of the diagram is the top, offset dr=+Radius.
func (p *Pattern) cellAt(dr, dc int) Cell {
	return p.cells[Radius-dr][dc+Radius]
}

// matches reports whether a single cell tag agrees with the board
// content at q for the side to play.
func cellMatches(c Cell, b *board.Board, q board.Point, toPlay board.Color) bool {
	on := b.On(q)
	var stone board.Color
	if on {
		stone = b.At(q)
	}
	switch c {
	case Any:
		return true
	case Edge:
		return !on
	case CellEmpty:
		return on && stone == board.Empty
	case Own:
		return on && stone == toPlay
	case Opp:
		return on && stone == toPlay.Opponent()
	case NotOwn:
		return !on || stone != toPlay
	case NotOpp:
		return !on || stone != toPlay.Opponent()
	}
	return false
}
