// Package session issues the signed cookie that ties a browser to its games.
package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bombfour/internal/util"

	"golang.org/x/crypto/blake2b"
)

const (
	cookieName = "sid"
	keyFile    = "session.key"
	keySize    = 32
)

var (
	errBadToken   = errors.New("bad token")
	errBadMAC     = errors.New("bad mac")
	errBadPayload = errors.New("bad payload")
	errExpired    = errors.New("expired")
)

// Session holds the payload carried in the signed token
type Session struct {
	PlayerID string    // anonymous player id
	CSRF     string    // csrf token bound to this session
	Expires  time.Time // absolute expiration time
}

// Manager signs and verifies session cookies with a keyed BLAKE2b MAC
type Manager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// Open loads the signing key from dir or generates and saves a new one.
// An empty dir keeps a fresh key in memory only.
func Open(dir string, ttl time.Duration) (*Manager, error) {
	m := &Manager{ttl: ttl, now: time.Now}
	if m.ttl <= 0 {
		m.ttl = 24 * time.Hour
	}
	if dir == "" {
		key := make([]byte, keySize)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		m.key = key
		return m, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	p := filepath.Join(dir, keyFile)

	// tries to load existing key first
	if b, err := os.ReadFile(p); err == nil && len(b) >= keySize {
		m.key = b[:keySize]
		return m, nil
	}

	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	if err := os.WriteFile(p, key, 0o600); err != nil {
		return nil, err
	}
	m.key = key
	return m, nil
}

// randToken generates a random base32 token of n raw bytes
func randToken(n int) string {
	s, err := util.RandBase32(n)
	if err != nil {
		panic(err) // panics if CSPRNG is unavailable
	}
	return s
}

func (m *Manager) sign(payload []byte) []byte {
	h, err := blake2b.New256(m.key)
	if err != nil {
		panic(err) // key length is fixed at keySize
	}
	h.Write(payload)
	return h.Sum(nil)
}

// build creates a signed token v1|player|csrf|unix in URL‑safe base64
func (m *Manager) build(s *Session) string {
	payload := strings.Join([]string{
		"v1",
		s.PlayerID,
		s.CSRF,
		strconv.FormatInt(s.Expires.Unix(), 10),
	}, "|")
	sig := m.sign([]byte(payload))
	return base64.RawURLEncoding.EncodeToString([]byte(payload)) + "." + base64.RawURLEncoding.EncodeToString(sig)
}

// parse validates the MAC, version and expiry and returns the decoded session
func (m *Manager) parse(val string) (*Session, error) {
	parts := strings.Split(val, ".")
	if len(parts) != 2 {
		return nil, errBadToken
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, err
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(m.sign(raw), sig) != 1 {
		return nil, errBadMAC
	}

	fs := strings.Split(string(raw), "|")
	if len(fs) != 4 || fs[0] != "v1" || fs[1] == "" {
		return nil, errBadPayload
	}
	ux, err := strconv.ParseInt(fs[3], 10, 64)
	if err != nil {
		return nil, err
	}
	s := &Session{PlayerID: fs[1], CSRF: fs[2], Expires: time.Unix(ux, 0)}
	if m.now().After(s.Expires) {
		return nil, errExpired
	}
	return s, nil
}

// Current returns the session carried by the request, or nil
func (m *Manager) Current(r *http.Request) *Session {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	s, err := m.parse(c.Value)
	if err != nil {
		return nil
	}
	return s
}

// Ensure returns the request's session or issues a fresh anonymous one
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) *Session {
	if s := m.Current(r); s != nil {
		return s
	}
	s := &Session{
		PlayerID: randToken(12),
		CSRF:     randToken(24),
		Expires:  m.now().Add(m.ttl),
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    m.build(s),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
		Expires:  s.Expires,
	})
	return s
}

// CheckCSRF verifies that POST requests carry the session's CSRF token in the form or header
func (m *Manager) CheckCSRF(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return true
	}
	s := m.Current(r)
	if s == nil {
		return false
	}
	tok := r.PostFormValue("csrf")
	if tok == "" {
		tok = r.Header.Get("X-CSRF-Token")
	}
	return subtle.ConstantTimeCompare([]byte(tok), []byte(s.CSRF)) == 1
}
