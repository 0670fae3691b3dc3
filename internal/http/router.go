package httphandler

import (
	nethttp "net/http"
	"strings"
)

// Routes wires all routes and static handlers
func (h *Handler) Routes() *nethttp.ServeMux {
	mux := nethttp.NewServeMux()

	mux.HandleFunc("/rules", h.ShowRules)
	mux.HandleFunc("/healthz", h.Healthz)

	// games against the computer
	mux.HandleFunc("/games/new", h.CreateGame)
	mux.HandleFunc("/game/", h.ShowGame)
	mux.HandleFunc("/board/", h.ShowBoard)
	mux.HandleFunc("/play/", h.Play)
	mux.HandleFunc("/rematch/", h.Rematch)

	// script clients
	mux.HandleFunc("/api/session", h.ShowSession)
	mux.HandleFunc("/api/state/", h.ShowState)
	mux.HandleFunc("/ws/", h.Stream)

	// static assets
	mux.Handle("/static/", nethttp.StripPrefix("/static/", NewStaticHandler(h.staticFS)))

	// home and 404
	mux.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path == "/" {
			h.ShowHome(w, r)
			return
		}
		h.NotFound(w, r)
	})

	return mux
}

// WithLogging logs every request except static assets at debug level
func (h *Handler) WithLogging(next nethttp.Handler) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if !strings.HasPrefix(r.URL.Path, "/static/") {
			h.log.WithField("method", r.Method).WithField("path", r.URL.Path).Debug("request")
		}
		next.ServeHTTP(w, r)
	})
}
