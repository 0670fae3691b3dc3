package httphandler

import (
	"context"
	"time"
)

// Sweep drops rooms idle for longer than the configured TTL and returns how many went away
func (h *Handler) Sweep(now time.Time) int {
	ttl := h.cfg.Server.RoomTTL
	if ttl <= 0 {
		return 0
	}

	h.roomsMu.Lock()
	defer h.roomsMu.Unlock()
	n := 0
	for code, rm := range h.rooms {
		rm.mu.Lock()
		idle := now.Sub(rm.Touched)
		rm.mu.Unlock()
		if idle > ttl {
			delete(h.rooms, code)
			n++
		}
	}
	if n > 0 {
		h.log.WithField("rooms", n).Info("expired idle games")
	}
	return n
}

// RunSweeper calls Sweep periodically until ctx is done
func (h *Handler) RunSweeper(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			h.Sweep(now)
		}
	}
}

// Rooms returns the number of games held in memory
func (h *Handler) Rooms() int {
	h.roomsMu.RLock()
	defer h.roomsMu.RUnlock()
	return len(h.rooms)
}
