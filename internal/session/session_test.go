package session

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issue(t *testing.T, m *Manager) (*Session, *http.Cookie) {
	t.Helper()
	rec := httptest.NewRecorder()
	s := m.Ensure(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return s, cookies[0]
}

func TestEnsureIssuesAndReusesSession(t *testing.T) {
	m, err := Open("", time.Hour)
	require.NoError(t, err)
	s, c := issue(t, m)
	assert.NotEmpty(t, s.PlayerID)
	assert.NotEmpty(t, s.CSRF)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	rec := httptest.NewRecorder()
	again := m.Ensure(rec, req)
	assert.Equal(t, s.PlayerID, again.PlayerID)
	assert.Empty(t, rec.Result().Cookies(), "a valid session is not reissued")
}

func TestTamperedTokenIsRejected(t *testing.T) {
	m, err := Open("", time.Hour)
	require.NoError(t, err)
	_, c := issue(t, m)

	parts := strings.SplitN(c.Value, ".", 2)
	forged := &Session{PlayerID: "someone-else", CSRF: "x", Expires: time.Now().Add(time.Hour)}
	other, err := Open("", time.Hour)
	require.NoError(t, err)
	fp := strings.SplitN(other.build(forged), ".", 2)

	for _, val := range []string{fp[0] + "." + parts[1], "garbage", other.build(forged)} {
		_, err := m.parse(val)
		assert.Error(t, err, val)
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	m, err := Open("", time.Minute)
	require.NoError(t, err)
	_, c := issue(t, m)
	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.parse(c.Value)
	assert.ErrorIs(t, err, errExpired)
}

func TestKeyPersistsInDir(t *testing.T) {
	dir := t.TempDir()
	m1, err := Open(dir, time.Hour)
	require.NoError(t, err)
	_, c := issue(t, m1)

	_, err = os.Stat(filepath.Join(dir, keyFile))
	require.NoError(t, err)

	m2, err := Open(dir, time.Hour)
	require.NoError(t, err)
	_, err = m2.parse(c.Value)
	assert.NoError(t, err)
}

func TestCheckCSRF(t *testing.T) {
	m, err := Open("", time.Hour)
	require.NoError(t, err)
	s, c := issue(t, m)

	post := func(tok string) *http.Request {
		form := url.Values{"csrf": {tok}}
		r := httptest.NewRequest(http.MethodPost, "/play/X", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.AddCookie(c)
		return r
	}
	assert.True(t, m.CheckCSRF(post(s.CSRF)))
	assert.False(t, m.CheckCSRF(post("wrong")))

	hdr := httptest.NewRequest(http.MethodPost, "/play/X", nil)
	hdr.Header.Set("X-CSRF-Token", s.CSRF)
	hdr.AddCookie(c)
	assert.True(t, m.CheckCSRF(hdr))

	noCookie := httptest.NewRequest(http.MethodPost, "/play/X", nil)
	assert.False(t, m.CheckCSRF(noCookie))
	assert.True(t, m.CheckCSRF(httptest.NewRequest(http.MethodGet, "/", nil)))
}
