package httphandler

import (
	"net/http"

	"bombfour/internal/game"
)

type presetView struct {
	Name  string
	Rules game.Rules
}

// ShowHome renders the preset picker and ensures a session cookie exists
func (h *Handler) ShowHome(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Ensure(w, r)
	var presets []presetView
	for _, name := range h.cfg.PresetNames() {
		presets = append(presets, presetView{Name: name, Rules: h.cfg.Presets[name]})
	}
	h.render(w, http.StatusOK, "base", struct {
		Title   string
		CSRF    string
		Presets []presetView
		Default game.Rules
	}{
		Title:   "Bomb Four",
		CSRF:    s.CSRF,
		Presets: presets,
		Default: h.cfg.Rules,
	}, "base.tmpl", "index.tmpl")
}

// ShowRules renders the rules page for the default rule set
func (h *Handler) ShowRules(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "base", struct {
		Title string
		Rules game.Rules
	}{
		Title: "Rules",
		Rules: h.cfg.Rules,
	}, "base.tmpl", "rules.tmpl")
}

// NotFound renders a custom 404 page
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	h.render(w, http.StatusNotFound, "base", struct{ Title string }{Title: "Not found"}, "base.tmpl", "404.tmpl")
}

// Healthz answers liveness probes
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}
