package board

import (
	"math/rand"
	"testing"
)

// pt builds a point from 0-indexed column letter semantics used in
// the test comments: pt(3, 4) is column D, row 5.
func pt(col, row int) Point {
	return Point{Row: row, Col: col}
}

func TestCaptureScenario(t *testing.T) {
	// Black D5,E4,E6 then F5 capturing the White stone at E5.
	b := New(9)
	d5 := pt(3, 4)
	e4 := pt(4, 3)
	e5 := pt(4, 4)
	e6 := pt(4, 5)
	f5 := pt(5, 4)

	moves := []struct {
		c Color
		p Point
	}{
		{Black, d5}, {White, e5}, {Black, e4}, {Black, e6}, {Black, f5},
	}
	for _, m := range moves {
		if _, err := b.Apply(m.c, m.p); err != nil {
			t.Fatalf("Apply(%v, %v): %v", m.c, m.p, err)
		}
	}

	if got := b.At(e5); got != Empty {
		t.Errorf("E5 after capture = %v, want Empty", got)
	}
	if got := b.Captured(Black); got != 1 {
		t.Errorf("Black captures = %d, want 1", got)
	}
	libs, err := b.Liberties(d5)
	if err != nil {
		t.Fatalf("Liberties(D5): %v", err)
	}
	found := false
	for _, l := range libs {
		if l == e5 {
			found = true
		}
	}
	if !found {
		t.Errorf("D5 liberties %v do not include the vacated E5", libs)
	}
	if err := b.Check(); err != nil {
		t.Errorf("invariant check after capture: %v", err)
	}
}

func TestNoSuicide(t *testing.T) {
	b := New(9)
	if _, err := b.Apply(White, pt(0, 1)); err != nil { // A2
		t.Fatal(err)
	}
	if _, err := b.Apply(White, pt(1, 0)); err != nil { // B1
		t.Fatal(err)
	}
	if got := b.Legal(Black, pt(0, 0)); got != MoveSuicide {
		t.Errorf("Legal(Black, A1) = %v, want MoveSuicide", got)
	}
	if _, err := b.Apply(Black, pt(0, 0)); err == nil {
		t.Error("Apply(Black, A1) succeeded, want suicide rejection")
	}
}

func TestKoEnforcement(t *testing.T) {
	b := New(9)
	// Ko shape around D5/E5: Black C5,D4,D6 and White E4,E6,F5,D5.
	setup := []struct {
		c Color
		p Point
	}{
		{Black, pt(2, 4)}, // C5
		{Black, pt(3, 3)}, // D4
		{Black, pt(3, 5)}, // D6
		{White, pt(4, 3)}, // E4
		{White, pt(4, 5)}, // E6
		{White, pt(5, 4)}, // F5
		{White, pt(3, 4)}, // D5
	}
	for _, m := range setup {
		if _, err := b.Apply(m.c, m.p); err != nil {
			t.Fatalf("setup %v %v: %v", m.c, m.p, err)
		}
	}

	// Black captures the single White stone at D5 by playing E5.
	if _, err := b.Apply(Black, pt(4, 4)); err != nil {
		t.Fatalf("capture move: %v", err)
	}
	ko, ok := b.KoPoint()
	if !ok || ko != pt(3, 4) {
		t.Fatalf("ko point = %v (%v), want D5", ko, ok)
	}
	if got := b.Legal(White, pt(3, 4)); got != MoveKo {
		t.Errorf("immediate recapture = %v, want MoveKo", got)
	}

	// Any other move lifts the ban.
	if _, err := b.Apply(White, pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	if got := b.Legal(White, pt(3, 4)); got != MoveLegal {
		t.Errorf("recapture after interposed move = %v, want MoveLegal", got)
	}
}

func TestKoClearedByPass(t *testing.T) {
	b := New(9)
	setup := []struct {
		c Color
		p Point
	}{
		{Black, pt(2, 4)}, {Black, pt(3, 3)}, {Black, pt(3, 5)},
		{White, pt(4, 3)}, {White, pt(4, 5)}, {White, pt(5, 4)}, {White, pt(3, 4)},
	}
	for _, m := range setup {
		if _, err := b.Apply(m.c, m.p); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := b.Apply(Black, pt(4, 4)); err != nil {
		t.Fatal(err)
	}
	b.ApplyPass(White)
	if _, ok := b.KoPoint(); ok {
		t.Error("ko point survived a pass")
	}
}

// randomGame plays up to n random legal moves, alternating colors,
// and returns the applied records.
func randomGame(t *testing.T, b *Board, rng *rand.Rand, n int) []*Record {
	t.Helper()
	var recs []*Record
	c := Black
	size := b.Size()
	for len(recs) < n {
		p := Point{Row: rng.Intn(size), Col: rng.Intn(size)}
		if b.Legal(c, p) != MoveLegal {
			continue
		}
		rec, err := b.Apply(c, p)
		if err != nil {
			t.Fatalf("Apply(%v, %v): %v", c, p, err)
		}
		recs = append(recs, rec)
		c = c.Opponent()
	}
	return recs
}

func TestLibertyConsistencyRandomGames(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for game := 0; game < 5; game++ {
		b := New(9)
		c := Black
		for moves := 0; moves < 60; {
			p := Point{Row: rng.Intn(9), Col: rng.Intn(9)}
			if b.Legal(c, p) != MoveLegal {
				continue
			}
			if _, err := b.Apply(c, p); err != nil {
				t.Fatal(err)
			}
			moves++
			c = c.Opponent()
			if err := b.Check(); err != nil {
				t.Fatalf("game %d move %d: %v", game, moves, err)
			}
		}
	}
}

func TestUndoRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := New(9)
	initialHash := b.Hash()

	recs := randomGame(t, b, rng, 80)
	for i := len(recs) - 1; i >= 0; i-- {
		b.Undo(recs[i])
		if err := b.Check(); err != nil {
			t.Fatalf("after undoing move %d: %v", i+1, err)
		}
	}

	if b.Hash() != initialHash {
		t.Errorf("hash after full undo = %#x, want %#x", b.Hash(), initialHash)
	}
	if b.Captured(Black) != 0 || b.Captured(White) != 0 {
		t.Errorf("captures after full undo = %d/%d, want 0/0",
			b.Captured(Black), b.Captured(White))
	}
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			if b.At(Point{Row: row, Col: col}) != Empty {
				t.Fatalf("point (%d,%d) not empty after full undo", row, col)
			}
		}
	}
	if _, ok := b.KoPoint(); ok {
		t.Error("ko point set after full undo")
	}
}

func TestUndoRestoresKo(t *testing.T) {
	b := New(9)
	setup := []struct {
		c Color
		p Point
	}{
		{Black, pt(2, 4)}, {Black, pt(3, 3)}, {Black, pt(3, 5)},
		{White, pt(4, 3)}, {White, pt(4, 5)}, {White, pt(5, 4)}, {White, pt(3, 4)},
	}
	for _, m := range setup {
		if _, err := b.Apply(m.c, m.p); err != nil {
			t.Fatal(err)
		}
	}
	rec, err := b.Apply(Black, pt(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	next, err := b.Apply(White, pt(0, 0))
	if err != nil {
		t.Fatal(err)
	}

	b.Undo(next)
	ko, ok := b.KoPoint()
	if !ok || ko != pt(3, 4) {
		t.Errorf("ko point after undo = %v (%v), want D5", ko, ok)
	}
	b.Undo(rec)
	if _, ok := b.KoPoint(); ok {
		t.Error("ko point set after undoing the capture itself")
	}
	if b.At(pt(3, 4)) != White {
		t.Error("captured White stone not restored by undo")
	}
}

func TestOccupiedAndOffBoard(t *testing.T) {
	b := New(9)
	if _, err := b.Apply(Black, pt(4, 4)); err != nil {
		t.Fatal(err)
	}
	if got := b.Legal(White, pt(4, 4)); got != MoveOccupied {
		t.Errorf("Legal on occupied point = %v, want MoveOccupied", got)
	}
	if _, err := b.Apply(White, Point{Row: 9, Col: 0}); err == nil {
		t.Error("Apply off the board succeeded")
	}
}

func TestGroupsWithLibertyCount(t *testing.T) {
	b := New(9)
	// Lone White stone hemmed to one liberty.
	if _, err := b.Apply(White, pt(0, 0)); err != nil { // A1
		t.Fatal(err)
	}
	if _, err := b.Apply(Black, pt(1, 0)); err != nil { // B1
		t.Fatal(err)
	}
	reps := b.GroupsWithLibertyCount(1)
	if len(reps) != 1 || reps[0] != pt(0, 0) {
		t.Errorf("GroupsWithLibertyCount(1) = %v, want [A1]", reps)
	}
}
