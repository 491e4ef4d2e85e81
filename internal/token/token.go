// Package token implements a TokenManager: the OAuth 2.0 client-credentials
// lifecycle for exactly one credential pair. It coalesces concurrent
// refreshes onto a single in-flight request, following the same grant
// shape GrowlyX-flighttracker's OpenSkyProvider.getToken uses against the
// same provider family, widened to the spec's 60s expiry buffer and
// extended with force-refresh/invalidate and a status snapshot.
package token

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// refreshBuffer is how far ahead of expiry a cached token is treated as
// stale, per spec §4.B's state machine.
const refreshBuffer = 60 * time.Second

// defaultExpiresIn is used when the token endpoint omits expires_in.
const defaultExpiresIn = 1800 * time.Second

// Status is a snapshot of a Manager's lifecycle for diagnostics endpoints.
type Status struct {
	CredentialsConfigured bool       `json:"credentialsConfigured"`
	LastAuthSuccessAt     *time.Time `json:"lastAuthSuccessAt,omitempty"`
	LastAuthErrorAt       *time.Time `json:"lastAuthErrorAt,omitempty"`
	LastAuthErrorMessage  string     `json:"lastAuthErrorMessage,omitempty"`
	TokenExpiresAt        *time.Time `json:"tokenExpiresAt,omitempty"`
}

type cachedToken struct {
	accessToken string
	expiresAt   time.Time
}

// Manager owns one credential pair's access token and refreshes it on
// demand. The zero value is not usable; construct with New.
type Manager struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client

	mu          sync.Mutex
	token       *cachedToken
	refreshDone chan struct{} // non-nil while a refresh is in flight
	refreshErr  error

	lastAuthSuccessAt *time.Time
	lastAuthErrorAt   *time.Time
	lastAuthErrMsg    string
}

// New constructs a Manager for one credential pair. clientID/clientSecret
// may be empty, in which case HasCredentials reports false and
// GetAuthorizationHeader always returns nil, per the UNCONFIGURED state.
func New(clientID, clientSecret, tokenURL string) *Manager {
	return &Manager{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// HasCredentials reports whether this Manager was configured with a
// non-empty credential pair.
func (m *Manager) HasCredentials() bool {
	return m.clientID != "" && m.clientSecret != ""
}

// GetHeaderOpts controls GetAuthorizationHeader.
type GetHeaderOpts struct {
	ForceRefresh bool
}

// GetAuthorizationHeader returns an "Authorization: Bearer <token>" header
// value, refreshing the cached token if it is missing, within 60s of
// expiry, or if ForceRefresh is set. Returns nil if no credentials are
// configured. Concurrent callers during a refresh coalesce onto the same
// outcome.
func (m *Manager) GetAuthorizationHeader(opts GetHeaderOpts) (*string, error) {
	if !m.HasCredentials() {
		return nil, nil
	}

	m.mu.Lock()
	if !opts.ForceRefresh && m.token != nil && time.Now().Before(m.token.expiresAt.Add(-refreshBuffer)) {
		header := "Bearer " + m.token.accessToken
		m.mu.Unlock()
		return &header, nil
	}

	if m.refreshDone != nil {
		// A refresh is already in flight: wait for it instead of issuing
		// a second request.
		done := m.refreshDone
		m.mu.Unlock()
		<-done
		m.mu.Lock()
		err := m.refreshErr
		var header *string
		if err == nil && m.token != nil {
			h := "Bearer " + m.token.accessToken
			header = &h
		}
		m.mu.Unlock()
		return header, err
	}

	done := make(chan struct{})
	m.refreshDone = done
	m.mu.Unlock()

	tok, err := m.refresh()

	m.mu.Lock()
	if err != nil {
		now := time.Now()
		m.lastAuthErrorAt = &now
		m.lastAuthErrMsg = err.Error()
		m.refreshErr = err
	} else {
		m.token = tok
		now := time.Now()
		m.lastAuthSuccessAt = &now
		m.refreshErr = nil
	}
	m.refreshDone = nil
	close(done)
	var header *string
	if err == nil {
		h := "Bearer " + tok.accessToken
		header = &h
	}
	m.mu.Unlock()

	return header, err
}

// InvalidateToken clears the cached token. The next GetAuthorizationHeader
// call always issues a fresh refresh, per spec §4.B/§8.
func (m *Manager) InvalidateToken() {
	m.mu.Lock()
	m.token = nil
	m.mu.Unlock()
}

// Status returns a snapshot of this Manager's lifecycle for diagnostics.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Status{
		CredentialsConfigured: m.HasCredentials(),
		LastAuthSuccessAt:     m.lastAuthSuccessAt,
		LastAuthErrorAt:       m.lastAuthErrorAt,
		LastAuthErrorMessage:  m.lastAuthErrMsg,
	}
	if m.token != nil {
		exp := m.token.expiresAt
		s.TokenExpiresAt = &exp
	}
	return s
}

// refresh performs the client-credentials POST and parses the response.
// It is never cancelled by the caller's context per spec §5 — other
// concurrent callers may be waiting on the same outcome.
func (m *Manager) refresh() (*cachedToken, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {m.clientID},
		"client_secret": {m.clientSecret},
	}

	req, err := http.NewRequest(http.MethodPost, m.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("token: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token: refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("token: reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token: refresh failed: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   *int   `json:"expires_in"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("token: decoding response: %w", err)
	}
	if parsed.AccessToken == "" {
		return nil, fmt.Errorf("token: response had no access_token")
	}

	expiresIn := defaultExpiresIn
	if parsed.ExpiresIn != nil {
		expiresIn = time.Duration(*parsed.ExpiresIn) * time.Second
	}

	return &cachedToken{
		accessToken: parsed.AccessToken,
		expiresAt:   time.Now().Add(expiresIn),
	}, nil
}
