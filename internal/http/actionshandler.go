package httphandler

import (
	"net/http"
	"time"

	"bombfour/internal/game"

	"github.com/sirupsen/logrus"
)

// Play applies the human's move and schedules the computer's reply
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	rm, code := h.roomFromPath(r.URL.Path)
	if rm == nil {
		h.NotFound(w, r)
		return
	}
	if !h.sessions.CheckCSRF(r) {
		http.Error(w, "bad csrf token", http.StatusForbidden)
		return
	}
	s := h.sessions.Ensure(w, r)
	row, okRow := formInt(r, "row")
	col, okCol := formInt(r, "col")
	fields := logrus.Fields{"room": code, "row": row, "col": col}

	rm.mu.Lock()
	var (
		err    error
		reject string
		gen    = rm.Engine.Generation()
	)
	switch {
	case s.PlayerID != rm.OwnerID:
		reject = "not your game"
	case !okRow || !okCol:
		reject = "bad coordinate"
	case rm.Thinking || rm.Engine.Turn != game.Human:
		reject = "not your turn"
	}
	if reject == "" {
		var res game.Result
		res, err = rm.Engine.Play(row, col, game.Human)
		if err == nil {
			rm.Rev++
			rm.Touched = time.Now()
			h.record(rm, describe(res, game.Human, row, col))
			if !rm.Engine.Over && rm.Engine.Turn == game.Opponent {
				rm.Thinking = true
			}
		} else {
			reject = err.Error()
		}
	}
	thinking := rm.Thinking && reject == ""
	v := rm.view(s.PlayerID, s.CSRF)
	rm.mu.Unlock()

	if reject != "" {
		h.log.WithFields(fields).WithField("reason", reject).Debug("move rejected")
		if wantsJSON(r) {
			writeJSON(w, http.StatusConflict, map[string]any{"error": reject, "state": v})
			return
		}
	} else {
		notify(rm)
		if thinking {
			h.scheduleOpponent(rm, gen)
		}
		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, v)
			return
		}
	}
	redirectAfterAction(w, r, code)
}
