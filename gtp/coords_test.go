package gtp

import (
	"testing"

	"tesuji/board"
)

func TestVertexRoundTrip(t *testing.T) {
	tests := []struct {
		vertex string
		point  board.Point
	}{
		{"A1", board.Point{Row: 0, Col: 0}},
		{"D4", board.Point{Row: 3, Col: 3}},
		{"H8", board.Point{Row: 7, Col: 7}},
		{"J9", board.Point{Row: 8, Col: 8}}, // I is skipped
		{"K10", board.Point{Row: 9, Col: 9}},
		{"Q16", board.Point{Row: 15, Col: 15}},
		{"T19", board.Point{Row: 18, Col: 18}},
	}
	for _, tt := range tests {
		p, pass, err := ParsePoint(tt.vertex, 19)
		if err != nil || pass {
			t.Errorf("ParsePoint(%q) = %v, pass=%v, err=%v", tt.vertex, p, pass, err)
			continue
		}
		if p != tt.point {
			t.Errorf("ParsePoint(%q) = %v, want %v", tt.vertex, p, tt.point)
		}
		if got := FormatPoint(tt.point); got != tt.vertex {
			t.Errorf("FormatPoint(%v) = %q, want %q", tt.point, got, tt.vertex)
		}
	}
}

func TestParsePointLowercaseAndPass(t *testing.T) {
	p, pass, err := ParsePoint("d4", 9)
	if err != nil || pass || p != (board.Point{Row: 3, Col: 3}) {
		t.Errorf("ParsePoint(d4) = %v, pass=%v, err=%v", p, pass, err)
	}
	for _, v := range []string{"pass", "PASS", "Pass"} {
		if _, pass, err := ParsePoint(v, 9); err != nil || !pass {
			t.Errorf("ParsePoint(%q): pass=%v, err=%v", v, pass, err)
		}
	}
}

func TestParsePointRejectsBadVertices(t *testing.T) {
	bad := []struct {
		vertex string
		size   int
	}{
		{"I5", 19},  // the skipped letter
		{"Z3", 19},  // beyond T
		{"A0", 19},  // rows are 1-based
		{"A20", 19}, // above the top edge
		{"K10", 9},  // off a small board
		{"A", 19},
		{"4D", 19},
		{"", 19},
	}
	for _, tt := range bad {
		if _, pass, err := ParsePoint(tt.vertex, tt.size); err == nil && !pass {
			t.Errorf("ParsePoint(%q, %d) accepted", tt.vertex, tt.size)
		}
	}
}

func TestParseColor(t *testing.T) {
	for _, s := range []string{"black", "BLACK", "b", "B"} {
		if c, err := ParseColor(s); err != nil || c != board.Black {
			t.Errorf("ParseColor(%q) = %v, %v", s, c, err)
		}
	}
	for _, s := range []string{"white", "w", "W"} {
		if c, err := ParseColor(s); err != nil || c != board.White {
			t.Errorf("ParseColor(%q) = %v, %v", s, c, err)
		}
	}
	if _, err := ParseColor("green"); err == nil {
		t.Error("ParseColor(green) accepted")
	}
}
