// Package gtp implements the engine side of the GTP (Go Text
// Protocol) line protocol: command parsing, response framing, and the
// command table over a game session.
package gtp

import (
	"fmt"
	"strconv"
	"strings"

	"tesuji/board"
)

// GTP coordinate system:
// - Columns: A-T (skipping I to avoid confusion with 1)
// - Rows: 1-19 (from the bottom of the board)
// - Example: D4, Q16, K10
//
// Board coordinates put Row 0 at the bottom and Col 0 on the left, so
// only the column letter needs translating.

// FormatPoint converts a board point to GTP vertex notation.
func FormatPoint(p board.Point) string {
	col := 'A' + rune(p.Col)
	if p.Col >= 8 {
		col++ // Skip 'I'
	}
	return fmt.Sprintf("%c%d", col, p.Row+1)
}

// ParsePoint converts a GTP vertex to a board point. The second
// return is true for "pass".
func ParsePoint(vertex string, size int) (board.Point, bool, error) {
	vertex = strings.TrimSpace(strings.ToUpper(vertex))
	if vertex == "PASS" {
		return board.Point{}, true, nil
	}
	if len(vertex) < 2 {
		return board.Point{}, false, fmt.Errorf("invalid vertex: %s", vertex)
	}

	// Column letter, I never appears.
	if vertex[0] == 'I' {
		return board.Point{}, false, fmt.Errorf("invalid column in vertex: %s", vertex)
	}
	col := int(vertex[0] - 'A')
	if col < 0 || col > 19 {
		return board.Point{}, false, fmt.Errorf("invalid column in vertex: %s", vertex)
	}
	if col > 8 {
		col-- // Account for skipped 'I'
	}

	row, err := strconv.Atoi(vertex[1:])
	if err != nil {
		return board.Point{}, false, fmt.Errorf("invalid row in vertex: %s", vertex)
	}
	p := board.Point{Row: row - 1, Col: col}
	if p.Row < 0 || p.Row >= size || p.Col < 0 || p.Col >= size {
		return board.Point{}, false, fmt.Errorf("vertex out of bounds: %s", vertex)
	}
	return p, false, nil
}

// ParseColor accepts the GTP color spellings, case-insensitively.
func ParseColor(s string) (board.Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "b":
		return board.Black, nil
	case "white", "w":
		return board.White, nil
	}
	return board.Empty, fmt.Errorf("invalid color: %s", s)
}
