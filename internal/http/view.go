package httphandler

import (
	"bombfour/internal/game"
)

// stateView is what both the board template and the JSON endpoints render
type stateView struct {
	game.Snapshot
	Code     string `json:"code"`
	Preset   string `json:"preset"`
	Rev      int    `json:"rev"`
	Thinking bool   `json:"thinking"`
	CanPlay  bool   `json:"can_play"`
	Status   string `json:"status"`
	// BlockRevealed mirrors the rule that keeps exploded cells closed
	BlockRevealed bool    `json:"block_revealed"`
	Events        []Event `json:"events"`
	CSRF          string  `json:"-"`
}

// view snapshots the room for player pid; room lock held
func (rm *Room) view(pid, csrf string) stateView {
	e := rm.Engine
	v := stateView{
		Snapshot: e.Snapshot(),
		Code:     rm.Code,
		Preset:   rm.Preset,
		Rev:      rm.Rev,
		Thinking: rm.Thinking,
		Events:   rm.history(),
		CSRF:     csrf,

		BlockRevealed: e.Rules.BlockRevealed,
	}
	v.CanPlay = pid != "" && pid == rm.OwnerID && !e.Over && !rm.Thinking && e.Turn == game.Human
	v.Status = status(e, rm.Thinking)
	return v
}

func status(e *game.Engine, thinking bool) string {
	switch {
	case e.Over && e.Winner == game.Human:
		return "You win!"
	case e.Over && e.Winner == game.Opponent:
		return "The computer wins"
	case e.Over:
		return "Draw"
	case thinking || e.Turn == game.Opponent:
		return "The computer is thinking"
	default:
		return "Your move"
	}
}

// Mark returns the css name of the cell at (r, c)
func (v stateView) Mark(r, c int) string {
	return v.Grid[r][c].String()
}

// Open reports whether the owner may click (r, c) right now
func (v stateView) Open(r, c int) bool {
	return v.CanPlay && v.Grid[r][c] == game.Empty && !(v.BlockRevealed && v.IsRevealed(r, c))
}
