package httphandler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// Stream pushes the room state over a websocket every time it changes
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	rm, code := h.roomFromPath(r.URL.Path)
	if rm == nil || code == "" {
		h.NotFound(w, r)
		return
	}
	s := h.sessions.Current(r)
	pid := ""
	if s != nil {
		pid = s.PlayerID
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).WithField("room", code).Debug("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ch, unsub := subscribe(rm)
	defer unsub()

	// the reader only watches for the client going away
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	send := func() error {
		rm.mu.Lock()
		v := rm.view(pid, "")
		rm.mu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(v)
	}
	if err := send(); err != nil {
		return
	}

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-ch:
			if err := send(); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-gone:
			return
		case <-r.Context().Done():
			return
		}
	}
}
