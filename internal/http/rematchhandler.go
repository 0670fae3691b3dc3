package httphandler

import (
	"net/http"
	"time"
)

// Rematch starts a new round in the room; the score carries over and any pending reply is dropped
func (h *Handler) Rematch(w http.ResponseWriter, r *http.Request) {
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
	if s.PlayerID != rm.OwnerID {
		http.Redirect(w, r, "/game/"+code, http.StatusSeeOther)
		return
	}

	rm.mu.Lock()
	err := rm.Engine.Reset(rm.Engine.Rules)
	if err == nil {
		rm.Thinking = false
		rm.Rev++
		rm.Touched = time.Now()
		h.record(rm, "New round: "+describeRules(rm.Engine.Rules))
	}
	v := rm.view(s.PlayerID, s.CSRF)
	rm.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	notify(rm)
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, v)
		return
	}
	redirectAfterAction(w, r, code)
}
