package httphandler

import (
	"net/http"
)

// ShowGame renders the page around the board fragment
func (h *Handler) ShowGame(w http.ResponseWriter, r *http.Request) {
	rm, code := h.roomFromPath(r.URL.Path)
	if rm == nil || code == "" {
		h.NotFound(w, r)
		return
	}
	s := h.sessions.Ensure(w, r)

	rm.mu.Lock()
	v := rm.view(s.PlayerID, s.CSRF)
	rm.mu.Unlock()

	h.render(w, http.StatusOK, "base", struct {
		Title string
		CSRF  string
		State stateView
	}{
		Title: "Game " + code,
		CSRF:  s.CSRF,
		State: v,
	}, "base.tmpl", "game.tmpl", "board.tmpl")
}
