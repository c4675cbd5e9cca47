package pattern

import (
	"fmt"

	"github.com/OneOfOne/xxhash"
)

// variant is one concrete 3x3 grid: a pattern under one symmetry.
// All variants are precomputed at load so matching is a flat scan.
type variant struct {
	pat       *Pattern
	transform string
	cells     [Span][Span]Cell
}

// Database holds the expanded pattern set. It is immutable after
// construction and safe for concurrent readers.
type Database struct {
	patterns []Pattern
	variants []variant
}

// NewDatabase expands every pattern under the eight symmetries,
// dropping variants whose grid duplicates an earlier one of the same
// pattern (symmetric templates produce fewer than eight).
func NewDatabase(pats []Pattern) *Database {
	db := &Database{patterns: pats}
	for i := range db.patterns {
		p := &db.patterns[i]
		seen := make(map[uint64]struct{}, len(transforms))
		for _, t := range transforms {
			v := variant{pat: p, transform: t.name}
			for dr := -Radius; dr <= Radius; dr++ {
				for dc := -Radius; dc <= Radius; dc++ {
					tr, tc := t.apply(dr, dc)
					v.cells[Radius-tr][tc+Radius] = p.cellAt(dr, dc)
				}
			}
			h := gridHash(v.cells)
			if _, dup := seen[h]; dup {
				continue
			}
			seen[h] = struct{}{}
			db.variants = append(db.variants, v)
		}
	}
	return db
}

// Len reports the number of source patterns.
func (db *Database) Len() int { return len(db.patterns) }

// Variants reports the number of expanded grids after deduplication.
func (db *Database) Variants() int { return len(db.variants) }

func gridHash(cells [Span][Span]Cell) uint64 {
	var buf [Span * Span]byte
	for i := 0; i < Span; i++ {
		for j := 0; j < Span; j++ {
			buf[i*Span+j] = byte(cells[i][j])
		}
	}
	return xxhash.Checksum64(buf[:])
}

// builtinSrc is the stock playout-pattern set: hane, cut, and side
// shapes, written for the side to play with the move at center.
var builtinSrc = []struct {
	name   string
	weight int
	rows   [Span]string
}{
	{"hane-enclosing", 80, [Span]string{
		"XOX",
		"...",
		"???"}},
	{"hane-noncutting", 75, [Span]string{
		"XO.",
		"...",
		"?.?"}},
	{"hane-magari", 80, [Span]string{
		"XO?",
		"X..",
		"x.?"}},
	{"attach-diagonal", 70, [Span]string{
		".O.",
		"X..",
		"..."}},
	{"cut-unprotected", 95, [Span]string{
		"XO?",
		"O.o",
		"?o?"}},
	{"cut-peeped", 90, [Span]string{
		"XO?",
		"O.X",
		"???"}},
	{"cut-push-through", 85, [Span]string{
		"?X?",
		"O.O",
		"ooo"}},
	{"cut-keima", 85, [Span]string{
		"OX?",
		"o.O",
		"???"}},
	{"side-chase", 65, [Span]string{
		"X.?",
		"O.?",
		"   "}},
	{"side-block-cut", 65, [Span]string{
		"OX?",
		"X.O",
		"   "}},
	{"side-block-connect", 60, [Span]string{
		"?X?",
		"x.O",
		"   "}},
	{"side-sagari", 60, [Span]string{
		"?XO",
		"x.x",
		"   "}},
	{"side-cut", 70, [Span]string{
		"?OX",
		"X.O",
		"   "}},
}

// Builtin loads the stock pattern set. The source table is fixed, so
// a parse failure is a programming error.
func Builtin() *Database {
	pats := make([]Pattern, 0, len(builtinSrc))
	for _, src := range builtinSrc {
		p, err := Parse(src.name, src.weight, src.rows)
		if err != nil {
			panic(fmt.Sprintf("builtin pattern set: %v", err))
		}
		pats = append(pats, p)
	}
	return NewDatabase(pats)
}
