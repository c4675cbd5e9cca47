// Package sgf implements SGF FF[4] writing and reading for game
// snapshots: board size, komi, and the ordered move list.
package sgf

import (
	"fmt"
	"strings"

	"tesuji/board"
	"tesuji/game"
)

// Encode renders a snapshot as a single-line SGF game tree. Root
// properties come in a fixed order so output is byte-stable.
func Encode(snap game.Snapshot) []byte {
	var b strings.Builder

	b.WriteString("(;GM[1]FF[4]CA[UTF-8]")
	b.WriteString("AP[tesuji:0.1.0]")
	b.WriteString(fmt.Sprintf("SZ[%d]", snap.BoardSize))
	b.WriteString(fmt.Sprintf("KM[%.1f]", snap.Komi))
	b.WriteString("\n")

	for _, m := range snap.Moves {
		colorChar := "B"
		if m.Color == board.White {
			colorChar = "W"
		}
		if m.Pass {
			b.WriteString(fmt.Sprintf(";%s[]", colorChar))
			continue
		}
		b.WriteString(fmt.Sprintf(";%s[%s]", colorChar, sgfCoord(m.Point, snap.BoardSize)))
	}

	b.WriteString(")\n")
	return []byte(b.String())
}

// sgfCoord converts a board point to an SGF letter pair. SGF counts
// rows from the top, the board from the bottom.
func sgfCoord(p board.Point, size int) string {
	x := p.Col
	y := size - 1 - p.Row
	return string(rune('a'+x)) + string(rune('a'+y))
}
