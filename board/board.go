// Package board implements the Go board with incremental group and
// liberty tracking. Groups are kept in an index-stable arena; every
// occupied point holds the index of its group, which makes merges and
// captures O(group size) with no pointer graphs to maintain.
package board

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Color is the state of a single board point.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the other stone color. Empty has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// Point is a board coordinate. Row 0 is the bottom row (GTP row 1),
// Col 0 is the left column (GTP column A).
type Point struct {
	Row, Col int
}

var (
	// ErrEmptyPoint is returned by queries that require a stone.
	ErrEmptyPoint = errors.New("point is empty")
	// ErrOffBoard is returned for coordinates outside the grid.
	ErrOffBoard = errors.New("point is off the board")
	// ErrOccupied is returned when placing onto a non-empty point.
	ErrOccupied = errors.New("point is occupied")
)

// group is one maximal chain of same-colored stones. Stones are kept
// as board indices; libs is the set of empty points adjacent to any
// member. A nil slot in the arena is free for reuse.
type group struct {
	color  Color
	stones []int
	libs   map[int]struct{}
}

// Board is the playing grid plus the group arena. It owns its groups;
// group indices are only meaningful against the board that issued them.
type Board struct {
	size     int
	cells    []Color
	groupIx  []int // arena index per point, -1 when empty
	groups   []*group
	free     []int
	ko       int // index forbidden by simple ko, -1 when none
	captured [3]int
	zobrist  [][2]uint64
	hash     uint64
}

// New creates an empty board. Size is the side length; the session
// layer restricts it to the supported sizes.
func New(size int) *Board {
	b := &Board{
		size:    size,
		cells:   make([]Color, size*size),
		groupIx: make([]int, size*size),
		ko:      -1,
		zobrist: zobristTable(size),
	}
	for i := range b.groupIx {
		b.groupIx[i] = -1
	}
	return b
}

// Size returns the side length.
func (b *Board) Size() int { return b.size }

// On reports whether p lies on the board.
func (b *Board) On(p Point) bool {
	return p.Row >= 0 && p.Row < b.size && p.Col >= 0 && p.Col < b.size
}

// At returns the color at p, or Empty for off-board points.
func (b *Board) At(p Point) Color {
	if !b.On(p) {
		return Empty
	}
	return b.cells[p.Row*b.size+p.Col]
}

// Hash returns the incremental position hash over the stones on the
// board. Side to move and ko are mixed in by callers that need them.
func (b *Board) Hash() uint64 { return b.hash }

// Captured returns the number of opponent stones captured by c.
func (b *Board) Captured(c Color) int { return b.captured[c] }

// KoPoint returns the point forbidden to play this turn, if any.
func (b *Board) KoPoint() (Point, bool) {
	if b.ko < 0 {
		return Point{}, false
	}
	return b.point(b.ko), true
}

func (b *Board) index(p Point) (int, error) {
	if !b.On(p) {
		return -1, fmt.Errorf("%w: (%d,%d)", ErrOffBoard, p.Row, p.Col)
	}
	return p.Row*b.size + p.Col, nil
}

func (b *Board) point(i int) Point {
	return Point{Row: i / b.size, Col: i % b.size}
}

// eachNeighbor calls fn for every on-board orthogonal neighbor of i.
func (b *Board) eachNeighbor(i int, fn func(int)) {
	r, c := i/b.size, i%b.size
	if r > 0 {
		fn(i - b.size)
	}
	if c > 0 {
		fn(i - 1)
	}
	if c < b.size-1 {
		fn(i + 1)
	}
	if r < b.size-1 {
		fn(i + b.size)
	}
}

func (b *Board) allocGroup(c Color) int {
	g := &group{color: c, libs: make(map[int]struct{})}
	if n := len(b.free); n > 0 {
		gi := b.free[n-1]
		b.free = b.free[:n-1]
		b.groups[gi] = g
		return gi
	}
	b.groups = append(b.groups, g)
	return len(b.groups) - 1
}

// Place puts a stone of color c on the empty point p, merging it with
// adjacent same-colored groups and recomputing the merged liberty set.
// It returns the arena indices of adjacent opponent groups left with
// zero liberties; removing them is the capture resolver's job and must
// happen before the move returns to the caller.
func (b *Board) Place(p Point, c Color) ([]int, error) {
	if c != Black && c != White {
		return nil, fmt.Errorf("cannot place %v stone", c)
	}
	i, err := b.index(p)
	if err != nil {
		return nil, err
	}
	if b.cells[i] != Empty {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOccupied, p.Row, p.Col)
	}

	b.cells[i] = c
	b.hash ^= b.zobrist[i][c-1]

	var own, opp []int
	b.eachNeighbor(i, func(n int) {
		gi := b.groupIx[n]
		if gi < 0 {
			return
		}
		switch b.cells[n] {
		case c:
			if !containsInt(own, gi) {
				own = append(own, gi)
			}
		default:
			if !containsInt(opp, gi) {
				opp = append(opp, gi)
			}
		}
	})

	// Merge the new stone with adjacent friendly groups.
	var gi int
	if len(own) == 0 {
		gi = b.allocGroup(c)
	} else {
		gi = own[0]
		for _, other := range own[1:] {
			og := b.groups[other]
			for _, s := range og.stones {
				b.groupIx[s] = gi
			}
			b.groups[gi].stones = append(b.groups[gi].stones, og.stones...)
			b.groups[other] = nil
			b.free = append(b.free, other)
		}
	}
	g := b.groups[gi]
	g.stones = append(g.stones, i)
	b.groupIx[i] = gi
	b.recomputeLibs(gi)

	// The placed stone is no longer a liberty of its enemies.
	var dead []int
	for _, egi := range opp {
		delete(b.groups[egi].libs, i)
		if len(b.groups[egi].libs) == 0 {
			dead = append(dead, egi)
		}
	}
	sort.Slice(dead, func(x, y int) bool {
		return minStone(b.groups[dead[x]]) < minStone(b.groups[dead[y]])
	})
	return dead, nil
}

// RemoveGroup clears every member of the group to Empty and credits
// the vacated points as liberties to the surviving neighbor groups.
// It returns the removed points in row-major order.
func (b *Board) RemoveGroup(gi int) []Point {
	g := b.groups[gi]
	stones := append([]int(nil), g.stones...)
	sort.Ints(stones)

	removed := make([]Point, 0, len(stones))
	for _, s := range stones {
		b.hash ^= b.zobrist[s][g.color-1]
		b.cells[s] = Empty
		b.groupIx[s] = -1
		removed = append(removed, b.point(s))
	}
	for _, s := range stones {
		b.eachNeighbor(s, func(n int) {
			ngi := b.groupIx[n]
			if ngi >= 0 && ngi != gi {
				b.groups[ngi].libs[s] = struct{}{}
			}
		})
	}
	b.groups[gi] = nil
	b.free = append(b.free, gi)
	return removed
}

// LibertyCount returns the liberty count of the group containing p.
func (b *Board) LibertyCount(p Point) (int, error) {
	g, err := b.groupAt(p)
	if err != nil {
		return 0, err
	}
	return len(g.libs), nil
}

// Liberties returns the liberty points of the group containing p in
// row-major order.
func (b *Board) Liberties(p Point) ([]Point, error) {
	g, err := b.groupAt(p)
	if err != nil {
		return nil, err
	}
	return b.sortedPoints(g.libs), nil
}

// GroupStones returns the member points of the group containing p in
// row-major order.
func (b *Board) GroupStones(p Point) ([]Point, error) {
	g, err := b.groupAt(p)
	if err != nil {
		return nil, err
	}
	stones := append([]int(nil), g.stones...)
	sort.Ints(stones)
	pts := make([]Point, len(stones))
	for k, s := range stones {
		pts[k] = b.point(s)
	}
	return pts, nil
}

// GroupsWithLibertyCount returns one representative point for every
// group whose liberty count equals n, in row-major scan order.
func (b *Board) GroupsWithLibertyCount(n int) []Point {
	seen := make(map[int]struct{})
	var reps []Point
	for i := range b.cells {
		gi := b.groupIx[i]
		if gi < 0 {
			continue
		}
		if _, ok := seen[gi]; ok {
			continue
		}
		seen[gi] = struct{}{}
		if len(b.groups[gi].libs) == n {
			reps = append(reps, b.point(i))
		}
	}
	return reps
}

// Stones returns every point holding a stone of color c in row-major
// order.
func (b *Board) Stones(c Color) []Point {
	var pts []Point
	for i, cell := range b.cells {
		if cell == c && c != Empty {
			pts = append(pts, b.point(i))
		}
	}
	return pts
}

// Clone returns a deep copy sharing only the immutable zobrist table.
func (b *Board) Clone() *Board {
	cp := &Board{
		size:     b.size,
		cells:    append([]Color(nil), b.cells...),
		groupIx:  append([]int(nil), b.groupIx...),
		groups:   make([]*group, len(b.groups)),
		free:     append([]int(nil), b.free...),
		ko:       b.ko,
		captured: b.captured,
		zobrist:  b.zobrist,
		hash:     b.hash,
	}
	for gi, g := range b.groups {
		if g == nil {
			continue
		}
		ng := &group{
			color:  g.color,
			stones: append([]int(nil), g.stones...),
			libs:   make(map[int]struct{}, len(g.libs)),
		}
		for l := range g.libs {
			ng.libs[l] = struct{}{}
		}
		cp.groups[gi] = ng
	}
	return cp
}

// String renders the board as a bordered text grid, black as X and
// white as O, suitable for the showboard command.
func (b *Board) String() string {
	var sb strings.Builder
	writeColumns := func() {
		sb.WriteString("  ")
		for col := 0; col < b.size; col++ {
			sb.WriteByte(columnLetter(col))
			if col != b.size-1 {
				sb.WriteByte(' ')
			}
		}
	}
	writeColumns()
	sb.WriteByte('\n')
	for row := b.size - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d ", row+1)
		for col := 0; col < b.size; col++ {
			switch b.cells[row*b.size+col] {
			case Black:
				sb.WriteByte('X')
			case White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
			if col != b.size-1 {
				sb.WriteByte(' ')
			}
		}
		fmt.Fprintf(&sb, " %d\n", row+1)
	}
	writeColumns()
	return sb.String()
}

// columnLetter maps a 0-based column to its board letter, skipping I.
func columnLetter(col int) byte {
	ch := byte('A') + byte(col)
	if ch >= 'I' {
		ch++
	}
	return ch
}

func (b *Board) groupAt(p Point) (*group, error) {
	i, err := b.index(p)
	if err != nil {
		return nil, err
	}
	gi := b.groupIx[i]
	if gi < 0 {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrEmptyPoint, p.Row, p.Col)
	}
	return b.groups[gi], nil
}

// recomputeLibs rebuilds a group's liberty set from its members'
// empty neighbors.
func (b *Board) recomputeLibs(gi int) {
	g := b.groups[gi]
	g.libs = make(map[int]struct{})
	for _, s := range g.stones {
		b.eachNeighbor(s, func(n int) {
			if b.cells[n] == Empty {
				g.libs[n] = struct{}{}
			}
		})
	}
}

// rebuild flood-fills the chain containing board index s into a fresh
// arena slot. Used by undo after dissolving affected groups.
func (b *Board) rebuild(s int) {
	c := b.cells[s]
	gi := b.allocGroup(c)
	g := b.groups[gi]
	stack := []int{s}
	b.groupIx[s] = gi
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		g.stones = append(g.stones, cur)
		b.eachNeighbor(cur, func(n int) {
			if b.cells[n] == c && b.groupIx[n] != gi {
				b.groupIx[n] = gi
				stack = append(stack, n)
			}
		})
	}
	b.recomputeLibs(gi)
}

// dissolve detaches every member of a group and frees its slot,
// leaving the cells untouched.
func (b *Board) dissolve(gi int) []int {
	g := b.groups[gi]
	members := append([]int(nil), g.stones...)
	for _, s := range members {
		b.groupIx[s] = -1
	}
	b.groups[gi] = nil
	b.free = append(b.free, gi)
	return members
}

func (b *Board) sortedPoints(set map[int]struct{}) []Point {
	ixs := make([]int, 0, len(set))
	for i := range set {
		ixs = append(ixs, i)
	}
	sort.Ints(ixs)
	pts := make([]Point, len(ixs))
	for k, i := range ixs {
		pts[k] = b.point(i)
	}
	return pts
}

func minStone(g *group) int {
	m := g.stones[0]
	for _, s := range g.stones[1:] {
		if s < m {
			m = s
		}
	}
	return m
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// Check validates the structural invariants: every stone belongs to
// exactly one live group of its own color, every liberty set matches a
// brute-force flood fill, and no group is left without liberties.
// It is meant for tests and debug assertions, not the play path.
func (b *Board) Check() error {
	seen := make(map[int]int)
	for i, cell := range b.cells {
		gi := b.groupIx[i]
		if cell == Empty {
			if gi != -1 {
				return fmt.Errorf("empty point %v has group index %d", b.point(i), gi)
			}
			continue
		}
		if gi < 0 || gi >= len(b.groups) || b.groups[gi] == nil {
			return fmt.Errorf("stone %v has no live group", b.point(i))
		}
		if b.groups[gi].color != cell {
			return fmt.Errorf("stone %v color %v disagrees with group %v", b.point(i), cell, b.groups[gi].color)
		}
		seen[gi]++
	}
	for gi, g := range b.groups {
		if g == nil {
			continue
		}
		if seen[gi] != len(g.stones) {
			return fmt.Errorf("group %d tracks %d stones, board shows %d", gi, len(g.stones), seen[gi])
		}
		want := b.floodLiberties(g.stones[0])
		if len(want) != len(g.libs) {
			return fmt.Errorf("group %d has %d tracked liberties, flood fill finds %d", gi, len(g.libs), len(want))
		}
		for l := range g.libs {
			if _, ok := want[l]; !ok {
				return fmt.Errorf("group %d tracks stale liberty %v", gi, b.point(l))
			}
		}
		if len(g.libs) == 0 {
			return fmt.Errorf("group %d has zero liberties outside capture resolution", gi)
		}
	}
	return nil
}

// floodLiberties recomputes a chain's liberties by flood fill, for
// cross-checking the incremental sets.
func (b *Board) floodLiberties(start int) map[int]struct{} {
	c := b.cells[start]
	libs := make(map[int]struct{})
	visited := make(map[int]struct{})
	stack := []int{start}
	visited[start] = struct{}{}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		b.eachNeighbor(cur, func(n int) {
			if _, ok := visited[n]; ok {
				return
			}
			switch b.cells[n] {
			case Empty:
				libs[n] = struct{}{}
			case c:
				visited[n] = struct{}{}
				stack = append(stack, n)
			}
		})
	}
	return libs
}
