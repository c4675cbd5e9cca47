package board

import "fmt"

// IllegalReason classifies why a placement is rejected.
type IllegalReason int

const (
	MoveLegal IllegalReason = iota
	MoveOccupied
	MoveKo
	MoveSuicide
)

func (r IllegalReason) String() string {
	switch r {
	case MoveLegal:
		return "legal"
	case MoveOccupied:
		return "occupied"
	case MoveKo:
		return "ko"
	case MoveSuicide:
		return "suicide"
	}
	return "unknown"
}

// IllegalMoveError is returned by Apply when the move fails the rules.
type IllegalMoveError struct {
	Reason IllegalReason
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move: %s", e.Reason)
}

// Record is one applied action plus what is needed to reverse it
// exactly: the stones it captured and the ko point it displaced.
type Record struct {
	Color    Color
	Point    Point
	Pass     bool
	Captured []Point
	prevKo   int
}

// Legal checks a placement without committing anything: occupancy and
// ko directly, suicide by simulating place plus capture on a scratch
// copy. p must be on the board; the protocol layer validates bounds.
func (b *Board) Legal(c Color, p Point) IllegalReason {
	i, err := b.index(p)
	if err != nil {
		return MoveOccupied
	}
	if b.cells[i] != Empty {
		return MoveOccupied
	}
	if i == b.ko {
		return MoveKo
	}
	sim := b.Clone()
	dead, _ := sim.Place(p, c)
	for _, gi := range dead {
		sim.RemoveGroup(gi)
	}
	if len(sim.groups[sim.groupIx[i]].libs) == 0 {
		return MoveSuicide
	}
	return MoveLegal
}

// Apply plays a validated stone on the live board: place, resolve
// captures, update the capture counter and the ko point, and return a
// record that is its own inverse. Only legal moves mutate the board.
func (b *Board) Apply(c Color, p Point) (*Record, error) {
	if reason := b.Legal(c, p); reason != MoveLegal {
		return nil, &IllegalMoveError{Reason: reason}
	}
	rec := &Record{Color: c, Point: p, prevKo: b.ko}

	dead, err := b.Place(p, c)
	if err != nil {
		return nil, err
	}
	capturedStones := 0
	singleCapture := -1
	for _, gi := range dead {
		stones := b.groups[gi].stones
		if len(stones) == 1 {
			singleCapture = stones[0]
		}
		capturedStones += len(stones)
		rec.Captured = append(rec.Captured, b.RemoveGroup(gi)...)
	}
	b.captured[c] += capturedStones

	// Simple ko: a lone stone captured by a lone stone that itself has
	// exactly one liberty forbids the immediate recapture.
	b.ko = -1
	if capturedStones == 1 {
		i, _ := b.index(p)
		g := b.groups[b.groupIx[i]]
		if len(g.stones) == 1 && len(g.libs) == 1 {
			b.ko = singleCapture
		}
	}
	return rec, nil
}

// ApplyPass records a pass. Passing lifts the ko prohibition: only the
// immediate recapture is forbidden.
func (b *Board) ApplyPass(c Color) *Record {
	rec := &Record{Color: c, Pass: true, prevKo: b.ko}
	b.ko = -1
	return rec
}

// Undo reverses a record: the placed stone comes off, captured stones
// go back, the capture counter and ko point rewind. Records must be
// undone in LIFO order against the board that produced them.
func (b *Board) Undo(rec *Record) {
	defer func() { b.ko = rec.prevKo }()
	if rec.Pass {
		return
	}

	i, _ := b.index(rec.Point)
	members := b.dissolve(b.groupIx[i])
	b.cells[i] = Empty
	b.hash ^= b.zobrist[i][rec.Color-1]

	opp := rec.Color.Opponent()
	restored := make([]int, 0, len(rec.Captured))
	for _, cp := range rec.Captured {
		j, _ := b.index(cp)
		b.cells[j] = opp
		b.hash ^= b.zobrist[j][opp-1]
		restored = append(restored, j)
	}

	// The placed stone may have merged several chains; removing it can
	// split them again, so rebuild by flood fill.
	for _, m := range members {
		if m != i && b.groupIx[m] < 0 {
			b.rebuild(m)
		}
	}
	for _, j := range restored {
		if b.groupIx[j] < 0 {
			b.rebuild(j)
		}
	}

	// Surviving groups adjacent to any touched point gained or lost
	// liberties; refresh their sets.
	touched := make(map[int]struct{})
	collect := func(at int) {
		b.eachNeighbor(at, func(n int) {
			if gi := b.groupIx[n]; gi >= 0 {
				touched[gi] = struct{}{}
			}
		})
	}
	collect(i)
	for _, j := range restored {
		collect(j)
	}
	for gi := range touched {
		b.recomputeLibs(gi)
	}

	b.captured[rec.Color] -= len(rec.Captured)
}
