package eval

import (
	"fmt"
	"sort"

	"tesuji/board"
)

// EyeKind is the coarse classification of an empty region as eye
// shape for one color.
type EyeKind int

const (
	NotAnEye EyeKind = iota
	FalseEye
	TrueEye
)

func (k EyeKind) String() string {
	switch k {
	case TrueEye:
		return "true"
	case FalseEye:
		return "false"
	}
	return "none"
}

// EyeData describes the maximal empty region around a query point.
type EyeData struct {
	Origin board.Point // row-major minimum of the region
	Color  board.Color
	Size   int
	Kind   EyeKind
}

// EyeShape classifies the empty region containing p as eye shape for
// color c. Every stone orthogonally adjacent to the region must be c
// for the region to be an eye at all; the diagonal test at p then
// separates true from false eyes: an interior point tolerates one
// diagonal that is neither c nor off-board, an edge or corner point
// tolerates none.
func EyeShape(b *board.Board, c board.Color, p board.Point) (EyeData, error) {
	if !b.On(p) {
		return EyeData{}, fmt.Errorf("%w: (%d,%d)", board.ErrOffBoard, p.Row, p.Col)
	}
	if b.At(p) != board.Empty {
		return EyeData{}, fmt.Errorf("%w: (%d,%d)", board.ErrOccupied, p.Row, p.Col)
	}

	size := b.Size()
	visited := make([]bool, size*size)
	region, touchesBlack, touchesWhite := emptyRegion(b, p, visited)

	data := EyeData{
		Origin: regionOrigin(region),
		Color:  c,
		Size:   len(region),
		Kind:   NotAnEye,
	}

	bordersOpponent := (c == board.Black && touchesWhite) || (c == board.White && touchesBlack)
	bordersOwn := (c == board.Black && touchesBlack) || (c == board.White && touchesWhite)
	if bordersOpponent || !bordersOwn {
		return data, nil
	}

	// Diagonal test at the query point.
	diag, off := diagonals(p, size)
	bad := 0
	for _, d := range diag {
		if b.At(d) != c {
			bad++
		}
	}
	allowed := 1
	if off > 0 {
		allowed = 0
	}
	if bad > allowed {
		data.Kind = FalseEye
	} else {
		data.Kind = TrueEye
	}
	return data, nil
}

func regionOrigin(region []board.Point) board.Point {
	origin := region[0]
	sort.Slice(region, func(i, j int) bool {
		if region[i].Row != region[j].Row {
			return region[i].Row < region[j].Row
		}
		return region[i].Col < region[j].Col
	})
	if len(region) > 0 {
		origin = region[0]
	}
	return origin
}
