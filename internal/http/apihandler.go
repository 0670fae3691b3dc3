package httphandler

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ShowState returns the room as JSON
func (h *Handler) ShowState(w http.ResponseWriter, r *http.Request) {
	rm, code := h.roomFromPath(r.URL.Path)
	if rm == nil || code == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	s := h.sessions.Ensure(w, r)

	rm.mu.Lock()
	v := rm.view(s.PlayerID, s.CSRF)
	rm.mu.Unlock()

	writeJSON(w, http.StatusOK, v)
}

// ShowSession issues the session cookie and hands the CSRF token to script clients
func (h *Handler) ShowSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Ensure(w, r)
	writeJSON(w, http.StatusOK, map[string]string{"player": s.PlayerID, "csrf": s.CSRF})
}
