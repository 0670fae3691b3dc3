package game

import (
	"io"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func plainRules(rows, cols int) Rules {
	r := DefaultRules()
	r.Rows, r.Cols, r.HazardCount = rows, cols, 0
	r.WinLength = min(DefaultWinLength, max(rows, cols))
	return r
}

func newTestEngine(t *testing.T, rules Rules, seed int64) *Engine {
	t.Helper()
	e, err := NewEngine(rules, rand.New(rand.NewSource(seed)), quietLogger())
	require.NoError(t, err)
	return e
}

// setCells writes marks directly, bypassing turn and outcome handling
func setCells(e *Engine, mark Cell, cells ...Coord) {
	for _, c := range cells {
		e.Board.Grid[c.Row][c.Col] = mark
	}
}

func plantHazard(e *Engine, c Coord) {
	e.Hazards.byCoord[c] = &Hazard{At: c}
}

func at(r, c int) Coord { return Coord{Row: r, Col: c} }
