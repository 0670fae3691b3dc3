package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckWinHorizontalAfterFourthMark(t *testing.T) {
	e := newTestEngine(t, plainRules(6, 6), 1)
	for c := 0; c < 3; c++ {
		_, err := e.PlaceMark(0, c, Human)
		require.NoError(t, err)
	}
	_, ok := e.CheckWin(Human)
	assert.False(t, ok)

	out, err := e.PlaceMark(0, 3, Human)
	require.NoError(t, err)
	assert.Equal(t, Win, out.Kind)

	line, ok := e.CheckWin(Human)
	require.True(t, ok)
	assert.Equal(t, Horizontal, line.Dir)
	assert.Equal(t, []Coord{at(0, 0), at(0, 1), at(0, 2), at(0, 3)}, line.Cells)
}

func TestCheckWinDirections(t *testing.T) {
	cases := []struct {
		name  string
		cells []Coord
		dir   Direction
	}{
		{"vertical", []Coord{at(1, 2), at(2, 2), at(3, 2), at(4, 2)}, Vertical},
		{"diagonal down", []Coord{at(0, 0), at(1, 1), at(2, 2), at(3, 3)}, DiagDown},
		{"diagonal up", []Coord{at(1, 4), at(2, 3), at(3, 2), at(4, 1)}, DiagUp},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBoard(6, 6)
			for _, c := range tc.cells {
				b.Grid[c.Row][c.Col] = Opponent
			}
			line, ok := CheckWin(&b, Opponent, 4)
			require.True(t, ok)
			assert.Equal(t, tc.dir, line.Dir)
			assert.Equal(t, tc.cells, line.Cells)
			assert.Equal(t, Opponent, line.Mark)

			_, ok = CheckWin(&b, Human, 4)
			assert.False(t, ok)
		})
	}
}

func TestCheckWinIgnoresShortRuns(t *testing.T) {
	b := NewBoard(6, 6)
	for _, c := range []Coord{at(0, 0), at(0, 1), at(0, 2), at(0, 4), at(1, 0), at(2, 0), at(4, 0), at(1, 1), at(2, 2)} {
		b.Grid[c.Row][c.Col] = Human
	}
	_, ok := CheckWin(&b, Human, 4)
	assert.False(t, ok)
}

func TestCheckWinLongerRunReportsFirstOrigin(t *testing.T) {
	b := NewBoard(6, 6)
	for c := 1; c < 6; c++ {
		b.Grid[2][c] = Human
	}
	line, ok := CheckWin(&b, Human, 4)
	require.True(t, ok)
	assert.Len(t, line.Cells, 4)
	assert.Equal(t, at(2, 1), line.Cells[0])
}

func TestCheckWinPrefersRowMajorThenDirection(t *testing.T) {
	b := NewBoard(6, 6)
	// vertical and horizontal lines share origin (1,1); horizontal is checked first
	for i := 0; i < 4; i++ {
		b.Grid[1][1+i] = Human
		b.Grid[1+i][1] = Human
	}
	// a later vertical line lower on the board
	for r := 2; r < 6; r++ {
		b.Grid[r][5] = Human
	}
	line, ok := CheckWin(&b, Human, 4)
	require.True(t, ok)
	assert.Equal(t, Horizontal, line.Dir)
	assert.Equal(t, at(1, 1), line.Cells[0])
}

func TestCheckWinEmptyMarkNeverWins(t *testing.T) {
	b := NewBoard(4, 4)
	_, ok := CheckWin(&b, Empty, 4)
	assert.False(t, ok)
}

func TestNeighborsAtCorner(t *testing.T) {
	b := NewBoard(4, 4)
	assert.Equal(t, []Coord{at(0, 1), at(1, 0), at(1, 1)}, neighbors(&b, 0, 0))
	assert.Len(t, neighbors(&b, 2, 2), 8)
}
