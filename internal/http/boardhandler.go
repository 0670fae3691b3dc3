package httphandler

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

const longPoll = 25 * time.Second

// waitForRev blocks until the room moves past rev, the poll times out or the client leaves
func waitForRev(r *http.Request, rm *Room, rev int) bool {
	ch, unsub := subscribe(rm)
	defer unsub()

	rm.mu.Lock()
	cur := rm.Rev
	rm.mu.Unlock()
	if cur > rev {
		return true
	}

	select {
	case <-ch:
		return true
	case <-time.After(longPoll):
		return true
	case <-r.Context().Done():
		return false
	}
}

// ShowBoard renders the board fragment; with ?rev=N it long-polls until the room changes
func (h *Handler) ShowBoard(w http.ResponseWriter, r *http.Request) {
	rm, code := h.roomFromPath(r.URL.Path)
	if rm == nil || code == "" {
		h.NotFound(w, r)
		return
	}
	s := h.sessions.Ensure(w, r)

	if qrev := strings.TrimSpace(r.URL.Query().Get("rev")); qrev != "" {
		if n, err := strconv.Atoi(qrev); err == nil {
			if !waitForRev(r, rm, n) {
				return
			}
		}
	}

	rm.mu.Lock()
	v := rm.view(s.PlayerID, s.CSRF)
	rm.mu.Unlock()

	w.Header().Set("Cache-Control", "no-store")
	h.render(w, http.StatusOK, "board", v, "board.tmpl")
}
