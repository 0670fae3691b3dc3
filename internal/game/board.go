package game

const DefaultWinLength = 4

type Cell uint8

const (
	Empty Cell = iota
	Human
	Opponent
)

func (c Cell) String() string {
	switch c {
	case Human:
		return "human"
	case Opponent:
		return "opponent"
	default:
		return "empty"
	}
}

// Coord addresses a cell by row and column
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
	DiagDown // ↘
	DiagUp   // ↙
)

// directions are scanned in this order, which decides which line wins a tie
var directions = [...]struct {
	dir    Direction
	dr, dc int
}{
	{Horizontal, 0, 1},
	{Vertical, 1, 0},
	{DiagDown, 1, 1},
	{DiagUp, 1, -1},
}

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case DiagDown:
		return "diagonal-down"
	default:
		return "diagonal-up"
	}
}

// Line is a winning run of exactly WinLength cells
type Line struct {
	Mark  Cell
	Dir   Direction
	Cells []Coord
}

type Board struct {
	Rows, Cols int
	Grid       [][]Cell // board cells in row‑major order
}

// NewBoard creates an empty rows x cols board
func NewBoard(rows, cols int) Board {
	grid := make([][]Cell, rows)
	for r := range grid {
		grid[r] = make([]Cell, cols)
	}
	return Board{Rows: rows, Cols: cols, Grid: grid}
}

// InBounds reports whether (r, c) lies on the board
func (b *Board) InBounds(r, c int) bool {
	return r >= 0 && r < b.Rows && c >= 0 && c < b.Cols
}

// At returns the cell at (r, c), Empty when out of bounds
func (b *Board) At(r, c int) Cell {
	if !b.InBounds(r, c) {
		return Empty
	}
	return b.Grid[r][c]
}

// Clone returns a deep copy of the board
func (b *Board) Clone() Board {
	nb := NewBoard(b.Rows, b.Cols)
	for r := range b.Grid {
		copy(nb.Grid[r], b.Grid[r])
	}
	return nb
}

// CountEmpty returns the number of Empty cells
func (b *Board) CountEmpty() int {
	n := 0
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if b.Grid[r][c] == Empty {
				n++
			}
		}
	}
	return n
}

// CheckWin scans every cell holding mark and returns the first forward run of winLength cells
func CheckWin(board *Board, mark Cell, winLength int) (Line, bool) {
	if mark == Empty || winLength < 1 {
		return Line{}, false
	}
	for r := 0; r < board.Rows; r++ {
		for c := 0; c < board.Cols; c++ {
			if board.Grid[r][c] != mark {
				continue
			}
			for _, d := range directions {
				if runFrom(board, r, c, d.dr, d.dc, mark, winLength) {
					cells := make([]Coord, winLength)
					for i := range cells {
						cells[i] = Coord{Row: r + i*d.dr, Col: c + i*d.dc}
					}
					return Line{Mark: mark, Dir: d.dir, Cells: cells}, true
				}
			}
		}
	}
	return Line{}, false
}

// runFrom reports whether n contiguous mark cells start at (r, c) along (dr, dc)
func runFrom(board *Board, r, c, dr, dc int, mark Cell, n int) bool {
	for i := 0; i < n; i++ {
		rr, cc := r+i*dr, c+i*dc
		if !board.InBounds(rr, cc) || board.Grid[rr][cc] != mark {
			return false
		}
	}
	return true
}

// neighbors returns the in-bounds cells of the 8-neighbourhood around (r, c) in row-major order
func neighbors(board *Board, r, c int) []Coord {
	out := make([]Coord, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if board.InBounds(r+dr, c+dc) {
				out = append(out, Coord{Row: r + dr, Col: c + dc})
			}
		}
	}
	return out
}
