// Package ai picks moves: capture what can be captured, save what a
// ladder says can be saved, otherwise follow the pattern database.
// The generator is deliberately shallow; it exists to make the engine
// a playable opponent, not a strong one.
package ai

import (
	"sort"

	"tesuji/board"
	"tesuji/eval"
	"tesuji/game"
	"tesuji/pattern"
)

// Default tuning. Capture and escape weights sit above every pattern
// weight so tactics dominate shape.
const (
	DefaultPassThreshold = 1
	captureBaseWeight    = 100
	capturePerStone      = 10
	escapeWeight         = 90
)

// Candidate is one scored move under consideration.
type Candidate struct {
	Point  board.Point
	Weight int
	Reason string
}

// Generator produces moves for the genmove command. It caches the
// candidate list for the current position and drops it whenever the
// session mutates the board.
type Generator struct {
	db *pattern.Database

	// PassThreshold is the minimum weight a candidate needs before
	// the generator prefers it over passing.
	PassThreshold int
	// LadderDepth bounds ladder reading when judging atari escapes.
	LadderDepth int

	cacheHash  uint64
	cacheColor board.Color
	cached     []Candidate
	cacheOK    bool
}

// NewGenerator builds a generator over the given pattern database.
func NewGenerator(db *pattern.Database) *Generator {
	return &Generator{
		db:            db,
		PassThreshold: DefaultPassThreshold,
		LadderDepth:   eval.DefaultLadderDepth,
	}
}

// Attach wires cache invalidation to the session's mutation hook.
func (g *Generator) Attach(s *game.Session) {
	s.OnMutate(g.Invalidate)
}

// Invalidate drops the cached candidate list.
func (g *Generator) Invalidate() {
	g.cacheOK = false
	g.cached = nil
}

// Generate picks the best legal move for toPlay. The second return is
// false when the generator passes: no candidates, or none reaching the
// pass threshold.
func (g *Generator) Generate(b *board.Board, toPlay board.Color) (board.Point, bool) {
	cands := g.Candidates(b, toPlay)
	if len(cands) == 0 || cands[0].Weight < g.PassThreshold {
		return board.Point{}, false
	}
	return cands[0].Point, true
}

// Candidates scores every move worth considering for toPlay, best
// first. Ties break toward the lowest row, then column, keeping the
// choice deterministic. Only legal moves are returned.
func (g *Generator) Candidates(b *board.Board, toPlay board.Color) []Candidate {
	if g.cacheOK && g.cacheHash == b.Hash() && g.cacheColor == toPlay {
		return g.cached
	}

	byPoint := make(map[board.Point]Candidate)
	consider := func(c Candidate) {
		if b.Legal(toPlay, c.Point) != board.MoveLegal {
			return
		}
		if prev, ok := byPoint[c.Point]; ok && prev.Weight >= c.Weight {
			return
		}
		byPoint[c.Point] = c
	}

	g.captureCandidates(b, toPlay, consider)
	g.escapeCandidates(b, toPlay, consider)
	g.patternCandidates(b, toPlay, consider)

	out := make([]Candidate, 0, len(byPoint))
	for _, c := range byPoint {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		if out[i].Point.Row != out[j].Point.Row {
			return out[i].Point.Row < out[j].Point.Row
		}
		return out[i].Point.Col < out[j].Point.Col
	})

	g.cacheHash = b.Hash()
	g.cacheColor = toPlay
	g.cached = out
	g.cacheOK = true
	return out
}

// captureCandidates proposes the sole liberty of every opponent group
// in atari, weighted by group size.
func (g *Generator) captureCandidates(b *board.Board, toPlay board.Color, consider func(Candidate)) {
	for _, rep := range b.GroupsWithLibertyCount(1) {
		if b.At(rep) != toPlay.Opponent() {
			continue
		}
		libs, err := b.Liberties(rep)
		if err != nil || len(libs) != 1 {
			continue
		}
		stones, err := b.GroupStones(rep)
		if err != nil {
			continue
		}
		consider(Candidate{
			Point:  libs[0],
			Weight: captureBaseWeight + capturePerStone*len(stones),
			Reason: "capture",
		})
	}
}

// escapeCandidates proposes extending own groups out of atari, but
// only when the ladder read says the extension actually works.
func (g *Generator) escapeCandidates(b *board.Board, toPlay board.Color, consider func(Candidate)) {
	for _, rep := range b.GroupsWithLibertyCount(1) {
		if b.At(rep) != toPlay {
			continue
		}
		outcome, _, err := eval.Ladder(b, rep, g.LadderDepth)
		if err != nil || outcome != eval.LadderEscaped {
			continue
		}
		libs, err := b.Liberties(rep)
		if err != nil || len(libs) != 1 {
			continue
		}
		consider(Candidate{
			Point:  libs[0],
			Weight: escapeWeight,
			Reason: "escape",
		})
	}
}

// patternCandidates scores empty points near stones by their best
// firing pattern.
func (g *Generator) patternCandidates(b *board.Board, toPlay board.Color, consider func(Candidate)) {
	for _, p := range pattern.CandidatePoints(b) {
		best := Candidate{Point: p}
		for _, m := range g.db.MatchAt(b, p, toPlay) {
			if m.Weight > best.Weight {
				best.Weight = m.Weight
				best.Reason = m.Name
			}
		}
		if best.Weight > 0 {
			consider(best)
		}
	}
}
