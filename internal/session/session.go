// Package session implements the BYOK SessionStore: it binds an opaque,
// client-issued session token to a credential pair and a dedicated
// token.Manager, with 24h expiry and a periodic sweep. Session tokens are
// 128-bit random values, hex-encoded per spec §3 — deliberately stdlib
// crypto/rand + encoding/hex rather than github.com/google/uuid, since a
// UUID's dashed, version-tagged string isn't the bare hex wire format the
// spec mandates (see DESIGN.md).
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/DoROAD-AI/skylink/internal/token"
)

// TTL is how long a session lives after creation.
const TTL = 24 * time.Hour

// SweepInterval is how often the background sweep removes expired
// sessions.
const SweepInterval = 5 * time.Minute

type record struct {
	clientID     string
	clientSecret string
	createdAt    time.Time
	expiresAt    time.Time
	manager      *token.Manager
}

// Store maps session tokens to their Session record and TokenManager.
// Deleting a session cascades to disposing its TokenManager — nothing
// else holds a reference to it once removed.
type Store struct {
	tokenURL string

	mu       sync.RWMutex
	sessions map[string]*record
}

// New constructs an empty Store. tokenURL is passed through to every
// session's TokenManager.
func New(tokenURL string) *Store {
	return &Store{
		tokenURL: tokenURL,
		sessions: make(map[string]*record),
	}
}

// Create mints a new session bound to clientID/clientSecret, returning its
// opaque hex token.
func (s *Store) Create(clientID, clientSecret string) (string, error) {
	tok, err := randomHexToken()
	if err != nil {
		return "", fmt.Errorf("session: generating token: %w", err)
	}

	now := time.Now()
	rec := &record{
		clientID:     clientID,
		clientSecret: clientSecret,
		createdAt:    now,
		expiresAt:    now.Add(TTL),
		manager:      token.New(clientID, clientSecret, s.tokenURL),
	}

	s.mu.Lock()
	s.sessions[tok] = rec
	s.mu.Unlock()

	return tok, nil
}

// Resolve returns the TokenManager bound to sessionToken, or nil if the
// session doesn't exist or has expired. An expired session is removed as
// a side effect.
func (s *Store) Resolve(sessionToken string) *token.Manager {
	s.mu.RLock()
	rec, ok := s.sessions[sessionToken]
	s.mu.RUnlock()

	if !ok {
		return nil
	}
	if time.Now().After(rec.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, sessionToken)
		s.mu.Unlock()
		return nil
	}
	return rec.manager
}

// Has reports whether sessionToken refers to a live, unexpired session.
func (s *Store) Has(sessionToken string) bool {
	return s.Resolve(sessionToken) != nil
}

// Delete removes a session, if present, returning whether it existed.
func (s *Store) Delete(sessionToken string) bool {
	s.mu.Lock()
	_, existed := s.sessions[sessionToken]
	delete(s.sessions, sessionToken)
	s.mu.Unlock()
	return existed
}

// Sweep removes every session whose expiry has passed. Intended to be
// driven by a time.Ticker from main's bootstrap, every SweepInterval.
func (s *Store) Sweep() {
	now := time.Now()
	s.mu.Lock()
	for tok, rec := range s.sessions {
		if now.After(rec.expiresAt) {
			delete(s.sessions, tok)
		}
	}
	s.mu.Unlock()
}

// RunSweeper blocks, running Sweep every SweepInterval, until stop is
// closed. Intended to be launched as `go store.RunSweeper(stopCh)` from
// main.go.
func (s *Store) RunSweeper(stop <-chan struct{}) {
	ticker := time.NewTicker(SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-stop:
			return
		}
	}
}

func randomHexToken() (string, error) {
	buf := make([]byte, 16) // 128 bits
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
