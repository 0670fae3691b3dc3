package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	ErrOccupied    = errors.New("cell occupied")
	ErrBlocked     = errors.New("cell blocked by an exploded bomb")
	ErrInvalidMark = errors.New("invalid mark")
	ErrGameOver    = errors.New("game over")
	ErrNoHazard    = errors.New("no live bomb at coordinate")
	ErrStaleMove   = errors.New("move computed for a previous game")
	ErrBadRules    = errors.New("invalid board rules")
)

type OutcomeKind uint8

const (
	Rejected OutcomeKind = iota
	Continue
	Win
	Draw
)

func (k OutcomeKind) String() string {
	switch k {
	case Continue:
		return "continue"
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "rejected"
	}
}

// Outcome describes what a normal placement did to the game
type Outcome struct {
	Kind OutcomeKind
	Next Cell // side to move after Continue
	Line Line // set on Win
}

// HazardOutcome describes an explosion; Cleared starts with the bomb cell
type HazardOutcome struct {
	Kind      OutcomeKind
	At        Coord
	Triggerer Cell
	Cleared   []Coord
	Next      Cell
}

// Result is what Play and ApplyOpponentMove return, whichever path the move took
type Result struct {
	Hazard    bool
	Outcome   Outcome
	Explosion HazardOutcome
}

// Kind returns the game-level outcome regardless of the path taken
func (r Result) Kind() OutcomeKind {
	if r.Hazard {
		return r.Explosion.Kind
	}
	return r.Outcome.Kind
}

type Score struct {
	Human    int `json:"human"`
	Opponent int `json:"opponent"`
}

// Engine owns one game: board, bombs, turn and the session score.
// It is not safe for concurrent use.
type Engine struct {
	Board   Board
	Hazards HazardSet
	Rules   Rules
	Turn    Cell
	Over    bool
	Winner  Cell
	WinLine Line
	Score   Score
	Last    *Coord // last cell touched by a move or explosion

	generation uuid.UUID
	rng        *rand.Rand
	base       *logrus.Logger
	log        *logrus.Entry
}

// NewEngine builds an engine and starts its first game.
// A nil rng is seeded from the clock, a nil logger falls back to logrus' standard logger.
func NewEngine(rules Rules, rng *rand.Rand, logger *logrus.Logger) (*Engine, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	e := &Engine{rng: rng, base: logger}
	if err := e.Reset(rules); err != nil {
		return nil, err
	}
	return e, nil
}

// Seed replaces the random source used for bomb placement and tie-breaks
func (e *Engine) Seed(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// Reset starts a new game under rules; the score is kept
func (e *Engine) Reset(rules Rules) error {
	r, err := rules.Normalize()
	if err != nil {
		return err
	}
	e.Rules = r
	e.Board = NewBoard(r.Rows, r.Cols)
	e.Hazards = placeHazards(e.rng, r.Rows, r.Cols, r.HazardCount)
	e.Turn = Human
	e.Over = false
	e.Winner = Empty
	e.WinLine = Line{}
	e.Last = nil
	e.generation = uuid.New()
	e.log = e.base.WithField("game", e.generation.String()[:8])
	e.log.WithFields(logrus.Fields{
		"rows":    r.Rows,
		"cols":    r.Cols,
		"win":     r.WinLength,
		"hazards": r.HazardCount,
	}).Debug("new game")
	return nil
}

// Generation identifies the current game; it changes on every Reset
func (e *Engine) Generation() uuid.UUID { return e.generation }

// IsHazard reports whether a live bomb hides at (row, col)
func (e *Engine) IsHazard(row, col int) bool {
	return e.Hazards.Live(Coord{Row: row, Col: col})
}

func validMark(m Cell) bool { return m == Human || m == Opponent }

func opponent(p Cell) Cell {
	if p == Human {
		return Opponent
	}
	return Human
}

func (e *Engine) toggleTurn() { e.Turn = opponent(e.Turn) }

// playable reports whether c can still receive a move under the current rules
func (e *Engine) playable(c Coord) bool {
	if e.Board.Grid[c.Row][c.Col] != Empty {
		return false
	}
	if e.Rules.BlockRevealed && e.Hazards.Revealed(c) {
		return false
	}
	if !e.Rules.HazardCellsPlayable && e.Hazards.Live(c) {
		return false
	}
	return true
}

// PlaceMark writes mark into an empty cell. Bombs are not consulted here:
// callers must check IsHazard first or go through Play, otherwise the mark
// lands on a live bomb and is wiped when that bomb later explodes.
func (e *Engine) PlaceMark(row, col int, mark Cell) (Outcome, error) {
	if e.Over {
		return Outcome{Kind: Rejected}, ErrGameOver
	}
	if !validMark(mark) {
		return Outcome{Kind: Rejected}, ErrInvalidMark
	}
	if !e.Board.InBounds(row, col) {
		return Outcome{Kind: Rejected}, ErrOutOfBounds
	}
	if e.Board.Grid[row][col] != Empty {
		return Outcome{Kind: Rejected}, ErrOccupied
	}
	at := Coord{Row: row, Col: col}
	if e.Rules.BlockRevealed && e.Hazards.Revealed(at) {
		return Outcome{Kind: Rejected}, ErrBlocked
	}

	e.Board.Grid[row][col] = mark
	e.Last = &at

	if line, ok := e.CheckWin(mark); ok {
		e.Over, e.Winner, e.WinLine = true, mark, line
		if mark == Human {
			e.Score.Human++
		} else {
			e.Score.Opponent++
		}
		e.log.WithField("winner", mark).Info("game won")
		return Outcome{Kind: Win, Line: line}, nil
	}
	if e.CheckDraw() {
		e.Over = true
		e.log.Info("game drawn")
		return Outcome{Kind: Draw}, nil
	}
	e.toggleTurn()
	return Outcome{Kind: Continue, Next: e.Turn}, nil
}

// TriggerHazard explodes the live bomb at (row, col): the cell and every marked
// neighbour become Empty, no mark is placed and the turn passes
func (e *Engine) TriggerHazard(row, col int, triggerer Cell) (HazardOutcome, error) {
	if e.Over {
		return HazardOutcome{Kind: Rejected}, ErrGameOver
	}
	if !validMark(triggerer) {
		return HazardOutcome{Kind: Rejected}, ErrInvalidMark
	}
	if !e.Board.InBounds(row, col) {
		return HazardOutcome{Kind: Rejected}, ErrOutOfBounds
	}
	at := Coord{Row: row, Col: col}
	if !e.Hazards.reveal(at) {
		return HazardOutcome{Kind: Rejected}, ErrNoHazard
	}

	// a mark written over the bomb by a direct PlaceMark goes with the explosion
	e.Board.Grid[row][col] = Empty
	cleared := []Coord{at}
	for _, n := range neighbors(&e.Board, row, col) {
		if e.Board.Grid[n.Row][n.Col] != Empty {
			e.Board.Grid[n.Row][n.Col] = Empty
			cleared = append(cleared, n)
		}
	}
	e.Last = &at
	e.toggleTurn()

	out := HazardOutcome{Kind: Continue, At: at, Triggerer: triggerer, Cleared: cleared, Next: e.Turn}
	e.log.WithFields(logrus.Fields{
		"row":     row,
		"col":     col,
		"by":      triggerer,
		"cleared": len(cleared) - 1,
	}).Info("bomb exploded")

	if e.CheckDraw() {
		e.Over = true
		out.Kind = Draw
	}
	return out, nil
}

// Play routes a move to TriggerHazard when a live bomb hides in the cell, PlaceMark otherwise
func (e *Engine) Play(row, col int, mark Cell) (Result, error) {
	if e.Board.InBounds(row, col) && e.IsHazard(row, col) {
		ex, err := e.TriggerHazard(row, col, mark)
		return Result{Hazard: true, Explosion: ex}, err
	}
	out, err := e.PlaceMark(row, col, mark)
	return Result{Outcome: out}, err
}

// CheckWin looks for a WinLength line of mark without touching state
func (e *Engine) CheckWin(mark Cell) (Line, bool) {
	return CheckWin(&e.Board, mark, e.Rules.WinLength)
}

// CheckDraw reports whether no playable cell is left
func (e *Engine) CheckDraw() bool {
	for r := 0; r < e.Board.Rows; r++ {
		for c := 0; c < e.Board.Cols; c++ {
			if e.playable(Coord{Row: r, Col: c}) {
				return false
			}
		}
	}
	return true
}

// DeclareDraw ends the game without a winner
func (e *Engine) DeclareDraw() {
	if !e.Over {
		e.Over = true
		e.Winner = Empty
	}
}

// ApplyOpponentMove plays a move returned by FindOpponentMove for generation gen.
// A move with no tier means the opponent was out of moves and the game is drawn.
func (e *Engine) ApplyOpponentMove(gen uuid.UUID, m Move) (Result, error) {
	if gen != e.generation {
		return Result{Outcome: Outcome{Kind: Rejected}}, ErrStaleMove
	}
	if e.Over {
		return Result{Outcome: Outcome{Kind: Rejected}}, ErrGameOver
	}
	if m.Tier == TierNone {
		e.DeclareDraw()
		e.log.Info("game drawn, opponent out of moves")
		return Result{Outcome: Outcome{Kind: Draw}}, nil
	}
	return e.Play(m.At.Row, m.At.Col, Opponent)
}
