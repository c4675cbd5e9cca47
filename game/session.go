// Package game wraps the board in a move-history state machine: play,
// pass, undo, and scoring for a single engine session.
package game

import (
	"errors"
	"fmt"

	"tesuji/board"
	"tesuji/eval"
)

// State tracks where the session is in its lifecycle. Scoring moves
// the session to Finished but does not lock it; further moves return
// it to Playing.
type State int

const (
	Setup State = iota
	Playing
	Finished
)

func (s State) String() string {
	switch s {
	case Setup:
		return "setup"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// SupportedSizes are the board sizes the engine accepts.
var SupportedSizes = []int{9, 13, 19}

var (
	// ErrUnsupportedSize rejects board sizes outside SupportedSizes.
	ErrUnsupportedSize = errors.New("unsupported board size")
	// ErrNothingToUndo is returned when the history is empty.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Move is one history entry in a session snapshot.
type Move struct {
	Color board.Color
	Point board.Point
	Pass  bool
}

// Snapshot is the full game description handed to the SGF layer.
type Snapshot struct {
	BoardSize int
	Komi      float64
	Moves     []Move
}

// Session owns the live board and its history stack. It is not safe
// for concurrent use; the engine processes one command at a time.
type Session struct {
	board   *board.Board
	komi    float64
	state   State
	toMove  board.Color
	history []*board.Record

	// onMutate is invoked after every board mutation so the move
	// generator can drop its per-position caches.
	onMutate func()
}

// NewSession creates a session in the Setup state.
func NewSession(size int, komi float64) (*Session, error) {
	if !sizeSupported(size) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSize, size)
	}
	return &Session{
		board:  board.New(size),
		komi:   komi,
		state:  Setup,
		toMove: board.Black,
	}, nil
}

func sizeSupported(n int) bool {
	for _, s := range SupportedSizes {
		if s == n {
			return true
		}
	}
	return false
}

// Board exposes the live board for read-only queries.
func (s *Session) Board() *board.Board { return s.board }

// Komi returns the current komi value.
func (s *Session) Komi() float64 { return s.komi }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// ToMove returns the color expected to move next.
func (s *Session) ToMove() board.Color { return s.toMove }

// MoveCount returns the number of history entries.
func (s *Session) MoveCount() int { return len(s.history) }

// OnMutate registers a callback fired after every board mutation.
func (s *Session) OnMutate(fn func()) { s.onMutate = fn }

func (s *Session) mutated() {
	if s.onMutate != nil {
		s.onMutate()
	}
}

// SetBoardSize replaces the board with an empty one of the given size
// and returns the session to Setup. History is discarded.
func (s *Session) SetBoardSize(n int) error {
	if !sizeSupported(n) {
		return fmt.Errorf("%w: %d", ErrUnsupportedSize, n)
	}
	s.board = board.New(n)
	s.history = nil
	s.toMove = board.Black
	s.state = Setup
	s.mutated()
	return nil
}

// Clear empties the board at the current size.
func (s *Session) Clear() {
	s.board = board.New(s.board.Size())
	s.history = nil
	s.toMove = board.Black
	s.state = Setup
	s.mutated()
}

// SetKomi updates the komi. Allowed in any state; it only affects
// future scoring.
func (s *Session) SetKomi(komi float64) {
	s.komi = komi
}

// Play applies a stone for c at p. Any color is accepted — the
// protocol permits forced moves — and the turn passes to the opponent
// of whoever actually moved.
func (s *Session) Play(c board.Color, p board.Point) error {
	rec, err := s.board.Apply(c, p)
	if err != nil {
		return err
	}
	s.history = append(s.history, rec)
	s.toMove = c.Opponent()
	s.state = Playing
	s.mutated()
	return nil
}

// Pass records a pass for c. Two consecutive passes are a signal the
// caller may act on, never an automatic termination.
func (s *Session) Pass(c board.Color) {
	rec := s.board.ApplyPass(c)
	s.history = append(s.history, rec)
	s.toMove = c.Opponent()
	s.state = Playing
	s.mutated()
}

// ConsecutivePasses reports how many passes end the history.
func (s *Session) ConsecutivePasses() int {
	n := 0
	for i := len(s.history) - 1; i >= 0 && s.history[i].Pass; i-- {
		n++
	}
	return n
}

// Undo pops the most recent record and replays its inverse, restoring
// board, capture counts, and ko point exactly.
func (s *Session) Undo() error {
	n := len(s.history)
	if n == 0 {
		return ErrNothingToUndo
	}
	rec := s.history[n-1]
	s.history = s.history[:n-1]
	s.board.Undo(rec)
	s.toMove = rec.Color
	if len(s.history) == 0 {
		s.state = Setup
	}
	s.mutated()
	return nil
}

// FinalScore runs the area-scoring estimate over the current board.
// Positive favors Black. Scoring assumes the board reflects final
// life-and-death status as left by play and undo.
func (s *Session) FinalScore() float64 {
	s.state = Finished
	return eval.Score(s.board, s.komi)
}

// Snapshot returns the ordered move history with size and komi, the
// exchange format shared with the SGF serializer.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		BoardSize: s.board.Size(),
		Komi:      s.komi,
		Moves:     make([]Move, len(s.history)),
	}
	for i, rec := range s.history {
		snap.Moves[i] = Move{Color: rec.Color, Point: rec.Point, Pass: rec.Pass}
	}
	return snap
}

// Restore resets the session and replays a snapshot through the rules
// engine, so captures and ko are reconstructed rather than trusted.
func (s *Session) Restore(snap Snapshot) error {
	if err := s.SetBoardSize(snap.BoardSize); err != nil {
		return err
	}
	s.komi = snap.Komi
	for i, m := range snap.Moves {
		if m.Pass {
			s.Pass(m.Color)
			continue
		}
		if err := s.Play(m.Color, m.Point); err != nil {
			return fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return nil
}
