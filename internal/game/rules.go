package game

// board size limits; larger grids are refused rather than allocated
const (
	MaxRows = 16
	MaxCols = 16
)

// Rules parameterises one game
type Rules struct {
	Rows              int `yaml:"rows" json:"rows"`
	Cols              int `yaml:"cols" json:"cols"`
	WinLength         int `yaml:"win_length" json:"win_length"`
	HazardCount       int `yaml:"hazards" json:"hazards"`
	ReservedSafeCells int `yaml:"reserved_safe_cells" json:"reserved_safe_cells"`

	// HazardCellsPlayable counts unrevealed hazard cells as available moves for draw detection
	HazardCellsPlayable bool `yaml:"hazard_cells_playable" json:"hazard_cells_playable"`
	// OpponentSeesHazards keeps the opponent's scoring tiers off live hazards
	OpponentSeesHazards bool `yaml:"opponent_sees_hazards" json:"opponent_sees_hazards"`
	// BlockRevealed keeps exploded hazard cells out of play for the rest of the game
	BlockRevealed bool `yaml:"block_revealed" json:"block_revealed"`
}

// DefaultRules returns the 6x6 four-in-a-row game with five bombs
func DefaultRules() Rules {
	return Rules{
		Rows:                6,
		Cols:                6,
		WinLength:           DefaultWinLength,
		HazardCount:         5,
		ReservedSafeCells:   1,
		HazardCellsPlayable: true,
		OpponentSeesHazards: true,
	}
}

// Normalize validates dimensions and clamps the hazard count so the reserved cells stay safe
func (r Rules) Normalize() (Rules, error) {
	if r.Rows < 1 || r.Cols < 1 || r.Rows > MaxRows || r.Cols > MaxCols {
		return r, ErrBadRules
	}
	if r.WinLength < 2 || r.WinLength > max(r.Rows, r.Cols) {
		return r, ErrBadRules
	}
	if r.ReservedSafeCells < 1 {
		r.ReservedSafeCells = 1
	}
	cells := r.Rows * r.Cols
	if r.ReservedSafeCells > cells {
		r.ReservedSafeCells = cells
	}
	if r.HazardCount < 0 {
		r.HazardCount = 0
	}
	if r.HazardCount > cells-r.ReservedSafeCells {
		r.HazardCount = cells - r.ReservedSafeCells
	}
	return r, nil
}
