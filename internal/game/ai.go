package game

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

// Tier records which step of the opponent heuristic produced a move
type Tier uint8

const (
	TierNone Tier = iota
	TierWin
	TierBlock
	TierThreat
	TierBlockThreat
	TierPositional
	TierForcedHazard
)

func (t Tier) String() string {
	switch t {
	case TierWin:
		return "win"
	case TierBlock:
		return "block"
	case TierThreat:
		return "threat"
	case TierBlockThreat:
		return "block-threat"
	case TierPositional:
		return "positional"
	case TierForcedHazard:
		return "forced-hazard"
	default:
		return "none"
	}
}

type Move struct {
	At   Coord
	Tier Tier
}

// Forced reports whether the opponent had to step on a known bomb
func (m Move) Forced() bool { return m.Tier == TierForcedHazard }

const topPicks = 3

// positional weights
const (
	centerWeight     = -0.5
	ownNearWin       = 50
	ownDoubleOpen    = 25
	humanNearWin     = 40
	humanDoubleOpen  = 20
	ownNeighbourBias = 2
	humanNeighbour   = 1
)

// threat is the best qualifying run through one cell
type threat struct {
	run, open int
	dir       Direction
}

// FindOpponentMove picks the computer's next cell. ok is false when no cell
// and no bomb is left to play, in which case the caller ends the game as a draw.
func (e *Engine) FindOpponentMove() (Move, bool) {
	if e.Over {
		return Move{}, false
	}
	cands := e.candidates()
	m, ok := e.pickMove(cands)
	if ok {
		e.log.WithFields(logrus.Fields{
			"tier": m.Tier,
			"row":  m.At.Row,
			"col":  m.At.Col,
		}).Debug("opponent move")
		if m.Forced() {
			e.log.WithField("at", m.At).Warn("opponent forced onto a bomb")
		}
		return m, true
	}
	if n := e.openCells(); n > 0 {
		e.log.WithField("open", n).Warn("no opponent move while open cells remain")
	}
	return Move{}, false
}

func (e *Engine) pickMove(cands []Coord) (Move, bool) {
	if c, ok := e.immediateWin(cands, Opponent); ok {
		return Move{At: c, Tier: TierWin}, true
	}
	if c, ok := e.immediateWin(cands, Human); ok {
		return Move{At: c, Tier: TierBlock}, true
	}
	if c, ok := e.threatSearch(cands, Opponent); ok {
		return Move{At: c, Tier: TierThreat}, true
	}
	// reached only when the opponent has no threat of its own to build
	if e.humanHasThreat() {
		if c, ok := e.threatSearch(cands, Human); ok {
			return Move{At: c, Tier: TierBlockThreat}, true
		}
	}
	if c, ok := e.positional(cands); ok {
		return Move{At: c, Tier: TierPositional}, true
	}
	if c, ok := e.forcedHazard(); ok {
		return Move{At: c, Tier: TierForcedHazard}, true
	}
	return Move{}, false
}

// candidates lists playable cells in row-major order, skipping live bombs when the opponent knows them
func (e *Engine) candidates() []Coord {
	var out []Coord
	for r := 0; r < e.Board.Rows; r++ {
		for c := 0; c < e.Board.Cols; c++ {
			at := Coord{Row: r, Col: c}
			if !e.playable(at) {
				continue
			}
			if e.Rules.OpponentSeesHazards && e.Hazards.Live(at) {
				continue
			}
			out = append(out, at)
		}
	}
	return out
}

// openCells counts empty cells not blocked by an exploded bomb
func (e *Engine) openCells() int {
	n := 0
	for r := 0; r < e.Board.Rows; r++ {
		for c := 0; c < e.Board.Cols; c++ {
			if e.isOpen(r, c) {
				n++
			}
		}
	}
	return n
}

// isOpen reports whether a run could extend into (r, c).
// Exploded bomb cells count as open unless Rules.BlockRevealed keeps them closed.
func (e *Engine) isOpen(r, c int) bool {
	if !e.Board.InBounds(r, c) || e.Board.Grid[r][c] != Empty {
		return false
	}
	return !(e.Rules.BlockRevealed && e.Hazards.Revealed(Coord{Row: r, Col: c}))
}

// probe runs fn with mark tentatively written at c and restores the cell afterwards
func (e *Engine) probe(c Coord, mark Cell, fn func()) {
	e.Board.Grid[c.Row][c.Col] = mark
	fn()
	e.Board.Grid[c.Row][c.Col] = Empty
}

func (e *Engine) immediateWin(cands []Coord, mark Cell) (Coord, bool) {
	for _, c := range cands {
		won := false
		e.probe(c, mark, func() {
			_, won = e.CheckWin(mark)
		})
		if won {
			return c, true
		}
	}
	return Coord{}, false
}

// evaluateThreat measures the run through an already-marked cell along every
// direction and returns the strongest one that is a threat
func (e *Engine) evaluateThreat(at Coord, mark Cell) (threat, bool) {
	w := e.Rules.WinLength
	best := threat{}
	found := false
	for _, d := range directions {
		run := 1
		fr, fc := at.Row+d.dr, at.Col+d.dc
		for e.Board.InBounds(fr, fc) && e.Board.Grid[fr][fc] == mark {
			run++
			fr, fc = fr+d.dr, fc+d.dc
		}
		br, bc := at.Row-d.dr, at.Col-d.dc
		for e.Board.InBounds(br, bc) && e.Board.Grid[br][bc] == mark {
			run++
			br, bc = br-d.dr, bc-d.dc
		}
		open := 0
		if e.isOpen(fr, fc) {
			open++
		}
		if e.isOpen(br, bc) {
			open++
		}
		if !(run == w-1 && open >= 1) && !(run == w-2 && open >= 2) {
			continue
		}
		if !found || run > best.run || (run == best.run && open > best.open) {
			best = threat{run: run, open: open, dir: d.dir}
			found = true
		}
	}
	return best, found
}

// threatSearch finds the candidate where mark would build the longest threat; ties keep scan order
func (e *Engine) threatSearch(cands []Coord, mark Cell) (Coord, bool) {
	bestRun := -1
	var best Coord
	for _, c := range cands {
		var t threat
		var ok bool
		e.probe(c, mark, func() {
			t, ok = e.evaluateThreat(c, mark)
		})
		if ok && t.run > bestRun {
			bestRun, best = t.run, c
		}
	}
	return best, bestRun >= 0
}

// humanHasThreat reports whether a placed human mark already sits in a threat
func (e *Engine) humanHasThreat() bool {
	for r := 0; r < e.Board.Rows; r++ {
		for c := 0; c < e.Board.Cols; c++ {
			if e.Board.Grid[r][c] != Human {
				continue
			}
			if _, ok := e.evaluateThreat(Coord{Row: r, Col: c}, Human); ok {
				return true
			}
		}
	}
	return false
}

type scored struct {
	at    Coord
	score float64
}

// positional ranks candidates by centrality, threat value and neighbours, then picks among the best few
func (e *Engine) positional(cands []Coord) (Coord, bool) {
	if len(cands) == 0 {
		return Coord{}, false
	}
	w := e.Rules.WinLength
	cr := float64(e.Board.Rows-1) / 2
	cc := float64(e.Board.Cols-1) / 2

	ranked := make([]scored, 0, len(cands))
	for _, c := range cands {
		s := centerWeight * (math.Abs(float64(c.Row)-cr) + math.Abs(float64(c.Col)-cc))
		e.probe(c, Opponent, func() {
			if t, ok := e.evaluateThreat(c, Opponent); ok {
				if t.run == w-1 {
					s += ownNearWin
				} else {
					s += ownDoubleOpen
				}
			}
		})
		e.probe(c, Human, func() {
			if t, ok := e.evaluateThreat(c, Human); ok {
				if t.run == w-1 {
					s += humanNearWin
				} else {
					s += humanDoubleOpen
				}
			}
		})
		for _, n := range neighbors(&e.Board, c.Row, c.Col) {
			switch e.Board.Grid[n.Row][n.Col] {
			case Opponent:
				s += ownNeighbourBias
			case Human:
				s += humanNeighbour
			}
		}
		ranked = append(ranked, scored{at: c, score: s})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	n := topPicks
	if len(ranked) < n {
		n = len(ranked)
	}
	return ranked[e.rng.Intn(n)].at, true
}

// forcedHazard picks a random live bomb when nothing else is left
func (e *Engine) forcedHazard() (Coord, bool) {
	if !e.Rules.HazardCellsPlayable {
		return Coord{}, false
	}
	var live []Coord
	for _, c := range e.Hazards.List(false) {
		if e.Hazards.Live(c) && e.Board.Grid[c.Row][c.Col] == Empty {
			live = append(live, c)
		}
	}
	if len(live) == 0 {
		return Coord{}, false
	}
	return live[e.rng.Intn(len(live))], true
}
