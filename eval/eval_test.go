package eval

import (
	"errors"
	"testing"

	"tesuji/board"
)

func place(t *testing.T, b *board.Board, c board.Color, pts ...board.Point) {
	t.Helper()
	for _, p := range pts {
		if _, err := b.Apply(c, p); err != nil {
			t.Fatalf("Apply(%v, %v): %v", c, p, err)
		}
	}
}

func TestScoreEmptyBoard(t *testing.T) {
	b := board.New(9)
	if got := FormatScore(Score(b, 6.5)); got != "W+6.5" {
		t.Errorf("empty board score = %q, want W+6.5", got)
	}
	if got := FormatScore(Score(b, 0)); got != "0" {
		t.Errorf("empty board zero-komi score = %q, want 0", got)
	}
}

func TestScoreCountsUniformRegions(t *testing.T) {
	b := board.New(9)
	// A Black wall on column 3 splits the board. The left region
	// borders only Black; the right region does too, so with a single
	// lone White stone on the right the right region turns neutral.
	for row := 0; row < 9; row++ {
		place(t, b, board.Black, board.Point{Row: row, Col: 3})
	}
	place(t, b, board.White, board.Point{Row: 4, Col: 6})

	// Black: 9 stones + 27 left territory. White: 1 stone. Rest dame.
	got := Score(b, 0)
	want := float64(9+27) - 1
	if got != want {
		t.Errorf("Score = %v, want %v", got, want)
	}
}

func TestEyeShape(t *testing.T) {
	corner := board.New(9)
	// Corner eye at A1: Black A2, B1, and the B2 diagonal.
	place(t, corner, board.Black,
		board.Point{Row: 1, Col: 0},
		board.Point{Row: 0, Col: 1},
		board.Point{Row: 1, Col: 1})

	falseEye := board.New(9)
	// Same shape with a White stone on the diagonal.
	place(t, falseEye, board.Black,
		board.Point{Row: 1, Col: 0},
		board.Point{Row: 0, Col: 1})
	place(t, falseEye, board.White, board.Point{Row: 1, Col: 1})

	mixed := board.New(9)
	// Region bordered by both colors is no eye at all.
	place(t, mixed, board.Black, board.Point{Row: 1, Col: 0})
	place(t, mixed, board.White, board.Point{Row: 0, Col: 1})

	tests := []struct {
		name string
		b    *board.Board
		kind EyeKind
	}{
		{"corner true eye", corner, TrueEye},
		{"corner false eye", falseEye, FalseEye},
		{"mixed borders", mixed, NotAnEye},
	}
	for _, tt := range tests {
		data, err := EyeShape(tt.b, board.Black, board.Point{Row: 0, Col: 0})
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if data.Kind != tt.kind {
			t.Errorf("%s: kind = %v, want %v", tt.name, data.Kind, tt.kind)
		}
		if data.Size != 1 {
			t.Errorf("%s: size = %d, want 1", tt.name, data.Size)
		}
	}
}

func TestEyeShapeInteriorTolerance(t *testing.T) {
	b := board.New(9)
	center := board.Point{Row: 4, Col: 4}
	// Full Black diamond around E5 plus three of four diagonals; the
	// one enemy diagonal is within tolerance for an interior point.
	place(t, b, board.Black,
		board.Point{Row: 3, Col: 4},
		board.Point{Row: 5, Col: 4},
		board.Point{Row: 4, Col: 3},
		board.Point{Row: 4, Col: 5},
		board.Point{Row: 3, Col: 3},
		board.Point{Row: 3, Col: 5},
		board.Point{Row: 5, Col: 3})
	place(t, b, board.White, board.Point{Row: 5, Col: 5})

	data, err := EyeShape(b, board.Black, center)
	if err != nil {
		t.Fatal(err)
	}
	if data.Kind != TrueEye {
		t.Errorf("one bad diagonal interior: kind = %v, want TrueEye", data.Kind)
	}

	// A second bad diagonal breaks it.
	b2 := board.New(9)
	place(t, b2, board.Black,
		board.Point{Row: 3, Col: 4},
		board.Point{Row: 5, Col: 4},
		board.Point{Row: 4, Col: 3},
		board.Point{Row: 4, Col: 5},
		board.Point{Row: 3, Col: 3},
		board.Point{Row: 3, Col: 5})
	place(t, b2, board.White,
		board.Point{Row: 5, Col: 3},
		board.Point{Row: 5, Col: 5})
	data, err = EyeShape(b2, board.Black, center)
	if err != nil {
		t.Fatal(err)
	}
	if data.Kind != FalseEye {
		t.Errorf("two bad diagonals: kind = %v, want FalseEye", data.Kind)
	}
}

func TestEyeShapeRejectsOccupied(t *testing.T) {
	b := board.New(9)
	place(t, b, board.Black, board.Point{Row: 0, Col: 0})
	if _, err := EyeShape(b, board.Black, board.Point{Row: 0, Col: 0}); !errors.Is(err, board.ErrOccupied) {
		t.Errorf("EyeShape on a stone = %v, want ErrOccupied", err)
	}
}

func TestLadderCapturedInCorner(t *testing.T) {
	b := board.New(9)
	// White A1 in atari; the extension to A2 still has one liberty,
	// so the chase ends immediately.
	place(t, b, board.White, board.Point{Row: 0, Col: 0}) // A1
	place(t, b, board.Black,
		board.Point{Row: 0, Col: 1}, // B1
		board.Point{Row: 2, Col: 0}) // A3

	outcome, capture, err := Ladder(b, board.Point{Row: 0, Col: 0}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != LadderCaptured {
		t.Fatalf("outcome = %v, want captured", outcome)
	}
	want := board.Point{Row: 1, Col: 1} // B2
	if capture != want {
		t.Errorf("capturing move = %v, want %v", capture, want)
	}
}

func TestLadderEscapesIntoOpenSpace(t *testing.T) {
	b := board.New(9)
	// White C5 in atari toward the open left side.
	place(t, b, board.White, board.Point{Row: 4, Col: 2}) // C5
	place(t, b, board.Black,
		board.Point{Row: 4, Col: 3}, // D5
		board.Point{Row: 3, Col: 2}, // C4
		board.Point{Row: 5, Col: 2}) // C6

	outcome, _, err := Ladder(b, board.Point{Row: 4, Col: 2}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != LadderEscaped {
		t.Errorf("outcome = %v, want escaped", outcome)
	}
}

func TestLadderCounterCaptureEscape(t *testing.T) {
	b := board.New(9)
	// White E5 is in atari, but so is the adjacent Black E4 stone, so
	// White escapes by capturing first.
	place(t, b, board.Black, board.Point{Row: 3, Col: 4}) // E4
	place(t, b, board.White,
		board.Point{Row: 3, Col: 3}, // D4
		board.Point{Row: 2, Col: 4}) // E3
	place(t, b, board.Black,
		board.Point{Row: 4, Col: 3}, // D5
		board.Point{Row: 4, Col: 5}) // F5
	place(t, b, board.White, board.Point{Row: 4, Col: 4}) // E5, liberty E6

	outcome, _, err := Ladder(b, board.Point{Row: 4, Col: 4}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if outcome != LadderEscaped {
		t.Errorf("outcome = %v, want escaped via counter-capture", outcome)
	}
}

func TestLadderRequiresAtari(t *testing.T) {
	b := board.New(9)
	place(t, b, board.White, board.Point{Row: 4, Col: 4})
	if _, _, err := Ladder(b, board.Point{Row: 4, Col: 4}, 0); !errors.Is(err, ErrNotInAtari) {
		t.Errorf("err = %v, want ErrNotInAtari", err)
	}
	if _, _, err := Ladder(b, board.Point{Row: 0, Col: 0}, 0); !errors.Is(err, board.ErrEmptyPoint) {
		t.Errorf("err on empty point = %v, want ErrEmptyPoint", err)
	}
}
