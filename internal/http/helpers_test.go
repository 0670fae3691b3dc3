package httphandler

import (
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"bombfour"
	"bombfour/internal/config"
	"bombfour/internal/game"
	"bombfour/internal/session"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// stateJSON mirrors the JSON form of stateView with cells as words
type stateJSON struct {
	Code        string       `json:"code"`
	Rev         int          `json:"rev"`
	Thinking    bool         `json:"thinking"`
	CanPlay     bool         `json:"can_play"`
	Status      string       `json:"status"`
	Rows        int          `json:"rows"`
	Cols        int          `json:"cols"`
	Grid        [][]string   `json:"grid"`
	Turn        string       `json:"turn"`
	Over        bool         `json:"over"`
	Winner      string       `json:"winner"`
	Revealed    []game.Coord `json:"revealed"`
	Hazards     []game.Coord `json:"hazards"`
	LiveHazards int          `json:"live_hazards"`
	Score       game.Score   `json:"score"`
	Events      []Event      `json:"events"`
	Error       string       `json:"error"`
}

func (s stateJSON) count(mark string) int {
	n := 0
	for _, row := range s.Grid {
		for _, c := range row {
			if c == mark {
				n++
			}
		}
	}
	return n
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 7
	cfg.Server.OpponentDelay = 0
	return cfg
}

// newTestHandler returns a handler whose opponent replies synchronously
func newTestHandler(t *testing.T, cfg config.Config) *Handler {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	sessions, err := session.Open("", time.Hour)
	require.NoError(t, err)
	templates, err := fs.Sub(bombfour.Content, "templates")
	require.NoError(t, err)
	static, err := fs.Sub(bombfour.Content, "static")
	require.NoError(t, err)

	h := New(cfg, logger, sessions, templates, static)
	h.after = func(_ time.Duration, f func()) { f() }
	return h
}

// client carries one browser's session cookie across requests
type client struct {
	t      *testing.T
	mux    http.Handler
	cookie *http.Cookie
	csrf   string
}

func newClient(t *testing.T, h *Handler) *client {
	t.Helper()
	c := &client{t: t, mux: h.Routes()}
	rec := c.do(http.MethodGet, "/api/session", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c.cookie = cookies[0]

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	c.csrf = body["csrf"]
	require.NotEmpty(t, c.csrf)
	return c
}

func (c *client) do(method, path string, form url.Values, asJSON bool) *httptest.ResponseRecorder {
	c.t.Helper()
	var body io.Reader
	if form != nil {
		if c.csrf != "" && form.Get("csrf") == "" {
			form.Set("csrf", c.csrf)
		}
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if asJSON {
		req.Header.Set("Accept", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.mux.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) stateJSON {
	t.Helper()
	var s stateJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s), rec.Body.String())
	return s
}

// newGame creates a bomb-free rows x cols game with the given win length
func (c *client) newGame(rows, cols, win int) stateJSON {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/games/new", url.Values{
		"preset":  {"custom"},
		"rows":    {strconv.Itoa(rows)},
		"cols":    {strconv.Itoa(cols)},
		"win":     {strconv.Itoa(win)},
		"hazards": {"0"},
	}, true)
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeState(c.t, rec)
}

func (c *client) play(code string, row, col int) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.do(http.MethodPost, "/play/"+code, url.Values{"row": {strconv.Itoa(row)}, "col": {strconv.Itoa(col)}}, true)
}

func (c *client) state(code string) stateJSON {
	c.t.Helper()
	rec := c.do(http.MethodGet, "/api/state/"+code, nil, true)
	require.Equal(c.t, http.StatusOK, rec.Code)
	return decodeState(c.t, rec)
}
