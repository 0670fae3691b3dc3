package httphandler

import (
	"net/http"
	"time"

	"bombfour/internal/game"

	"github.com/sirupsen/logrus"
)

// rulesFromForm starts from the chosen preset and applies any custom size fields
func (h *Handler) rulesFromForm(r *http.Request) (string, game.Rules) {
	preset := r.FormValue("preset")
	rules := h.cfg.RulesFor(preset)
	if _, ok := h.cfg.Presets[preset]; !ok {
		preset = "custom"
	}
	if n, ok := formInt(r, "rows"); ok {
		rules.Rows = n
	}
	if n, ok := formInt(r, "cols"); ok {
		rules.Cols = n
	}
	if n, ok := formInt(r, "win"); ok {
		rules.WinLength = n
	}
	if n, ok := formInt(r, "hazards"); ok {
		rules.HazardCount = n
	}
	return preset, rules
}

// CreateGame opens a room against the computer and redirects to it
func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if !h.sessions.CheckCSRF(r) {
		http.Error(w, "bad csrf token", http.StatusForbidden)
		return
	}
	s := h.sessions.Ensure(w, r)

	h.roomsMu.RLock()
	full := h.cfg.Server.MaxRooms > 0 && len(h.rooms) >= h.cfg.Server.MaxRooms
	h.roomsMu.RUnlock()
	if full {
		http.Error(w, "too many games in progress", http.StatusServiceUnavailable)
		return
	}

	preset, rules := h.rulesFromForm(r)
	eng, err := game.NewEngine(rules, h.newRNG(), h.log)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	code := h.genCode()
	rm := &Room{
		Code:      code,
		OwnerID:   s.PlayerID,
		Preset:    preset,
		Engine:    eng,
		CreatedAt: now,
		Touched:   now,
		Rev:       1,
		subs:      make(map[chan struct{}]struct{}),
	}
	h.record(rm, "New game: "+describeRules(eng.Rules))

	h.roomsMu.Lock()
	h.rooms[code] = rm
	h.roomsMu.Unlock()

	h.log.WithFields(logrus.Fields{"room": code, "preset": preset}).Info("game created")

	if wantsJSON(r) {
		rm.mu.Lock()
		v := rm.view(s.PlayerID, s.CSRF)
		rm.mu.Unlock()
		writeJSON(w, http.StatusCreated, v)
		return
	}
	http.Redirect(w, r, "/game/"+code, http.StatusSeeOther)
}
