package token

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName matches the cookie the API expects the session token under.
const CookieName = "token"

// record is the on-disk shape, one cookie per file.
type record struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Expires time.Time `json:"expires"`
}

// Store persists the session token the way a browser persists a cookie: a
// single named value with an expiry, surviving process restarts.
type Store struct {
	path string
	ttl  time.Duration

	mu sync.Mutex
}

func NewStore(path string, ttl time.Duration) *Store {
	return &Store{path: path, ttl: ttl}
}

// Load returns the persisted token, or false when none is stored, the cookie
// has expired, or the embedded JWT expiry has already passed.
func (s *Store) Load() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn("discarding unreadable token file", slog.String("error", err.Error()))
		s.clearLocked()

		return "", false
	}

	if rec.Name != CookieName || rec.Value == "" || time.Now().After(rec.Expires) {
		s.clearLocked()

		return "", false
	}

	if tokenExpired(rec.Value) {
		s.clearLocked()

		return "", false
	}

	return rec.Value, true
}

// Save persists the token with the configured expiry (7 days by default).
func (s *Store) Save(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := record{
		Name:    CookieName,
		Value:   value,
		Expires: time.Now().Add(s.ttl),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

// Clear discards the persisted token. Missing file is not an error.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
}

func (s *Store) clearLocked() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove token file", slog.String("error", err.Error()))
	}
}

// tokenExpired inspects the JWT exp claim without verifying the signature.
// Verification is the server's job; this only avoids a profile call that is
// certain to be rejected.
func tokenExpired(value string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(value, jwt.MapClaims{})
	if err != nil {
		// opaque tokens pass through, the server decides
		return false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return time.Now().After(exp.Time)
}
