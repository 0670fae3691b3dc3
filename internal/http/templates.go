package httphandler

import (
	"html/template"
	"net/http"
)

var funcs = template.FuncMap{
	"Iterate": Iterate,
}

// render parses the named templates and executes the root one
func (h *Handler) render(w http.ResponseWriter, status int, root string, data any, files ...string) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(h.tmplFS, files...)
	if err != nil {
		h.log.WithError(err).WithField("templates", files).Error("template error")
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, root, data); err != nil {
		h.log.WithError(err).WithField("template", root).Error("render failed")
	}
}
