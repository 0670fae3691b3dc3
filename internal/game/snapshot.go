package game

// MarshalText renders cells as words in JSON and templates
func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Snapshot is a read-only view of the engine for the UI layer
type Snapshot struct {
	Generation  string   `json:"generation"`
	Rows        int      `json:"rows"`
	Cols        int      `json:"cols"`
	WinLength   int      `json:"win_length"`
	Grid        [][]Cell `json:"grid"`
	Turn        Cell     `json:"turn"`
	Over        bool     `json:"over"`
	Winner      Cell     `json:"winner"`
	WinLine     []Coord  `json:"win_line,omitempty"`
	Revealed    []Coord  `json:"revealed"`
	Hazards     []Coord  `json:"hazards,omitempty"` // every bomb, only once the game is over
	LiveHazards int      `json:"live_hazards"`
	Score       Score    `json:"score"`
	Last        *Coord   `json:"last,omitempty"`
}

// Snapshot copies the current state; hidden bombs stay hidden until the game ends
func (e *Engine) Snapshot() Snapshot {
	b := e.Board.Clone()
	s := Snapshot{
		Generation:  e.generation.String(),
		Rows:        b.Rows,
		Cols:        b.Cols,
		WinLength:   e.Rules.WinLength,
		Grid:        b.Grid,
		Turn:        e.Turn,
		Over:        e.Over,
		Winner:      e.Winner,
		Revealed:    e.Hazards.List(true),
		LiveHazards: e.Hazards.LiveCount(),
		Score:       e.Score,
	}
	if len(e.WinLine.Cells) > 0 {
		s.WinLine = append([]Coord(nil), e.WinLine.Cells...)
	}
	if e.Over {
		s.Hazards = e.Hazards.List(false)
	}
	if e.Last != nil {
		last := *e.Last
		s.Last = &last
	}
	return s
}

// InLine reports whether (r, c) belongs to the winning line
func (s Snapshot) InLine(r, c int) bool {
	for _, p := range s.WinLine {
		if p.Row == r && p.Col == c {
			return true
		}
	}
	return false
}

// IsRevealed reports whether a bomb exploded at (r, c)
func (s Snapshot) IsRevealed(r, c int) bool {
	for _, p := range s.Revealed {
		if p.Row == r && p.Col == c {
			return true
		}
	}
	return false
}

// ShowsBomb reports whether the UI may draw a bomb at (r, c)
func (s Snapshot) ShowsBomb(r, c int) bool {
	if s.IsRevealed(r, c) {
		return true
	}
	for _, p := range s.Hazards {
		if p.Row == r && p.Col == c {
			return true
		}
	}
	return false
}
