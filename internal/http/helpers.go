package httphandler

import (
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"

	"bombfour/internal/game"
	"bombfour/internal/util"
)

// Iterate generates a sequence [0..n-1]
func Iterate(n int) []int {
	r := make([]int, n)
	for i := range r {
		r[i] = i
	}
	return r
}

// genCode generates a unique 6‑char uppercase room code
func (h *Handler) genCode() string {
	for {
		id, err := util.RandBase32(6)
		if err != nil {
			continue
		}
		code := strings.ToUpper(id)
		if len(code) > 6 {
			code = code[:6]
		}

		h.roomsMu.RLock()
		_, exists := h.rooms[code]
		h.roomsMu.RUnlock()
		if !exists {
			return code
		}
	}
}

// roomFromPath resolves the room and code from a URL path
func (h *Handler) roomFromPath(p string) (*Room, string) {
	code := strings.ToUpper(path.Base(strings.TrimSuffix(p, "/")))

	h.roomsMu.RLock()
	rm := h.rooms[code]
	h.roomsMu.RUnlock()

	return rm, code
}

// wantsJSON reports whether the client asked for a JSON reply instead of a redirect
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func formInt(r *http.Request, key string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(r.FormValue(key)))
	return n, err == nil
}

func who(c game.Cell) string {
	if c == game.Human {
		return "You"
	}
	return "Computer"
}

// describe turns a move result into the line shown in the room history
func describe(res game.Result, mover game.Cell, row, col int) string {
	if res.Hazard {
		return fmt.Sprintf("%s hit a bomb at row %d, col %d and cleared %d marks",
			who(mover), row+1, col+1, len(res.Explosion.Cleared)-1)
	}
	switch res.Outcome.Kind {
	case game.Win:
		return fmt.Sprintf("%s played row %d, col %d and won", who(mover), row+1, col+1)
	case game.Draw:
		return fmt.Sprintf("%s played row %d, col %d, board full: draw", who(mover), row+1, col+1)
	default:
		return fmt.Sprintf("%s played row %d, col %d", who(mover), row+1, col+1)
	}
}

func describeRules(r game.Rules) string {
	return fmt.Sprintf("%dx%d board, %d in a row, %d bombs", r.Rows, r.Cols, r.WinLength, r.HazardCount)
}

// redirectAfterAction sends script clients to the fresh board fragment and plain forms back to the page
func redirectAfterAction(w http.ResponseWriter, r *http.Request, code string) {
	if r.Header.Get("X-Requested-With") == "fetch" {
		http.Redirect(w, r, "/board/"+code, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/game/"+code, http.StatusSeeOther)
}
