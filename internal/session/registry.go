// Package session holds the in-memory session registry. Sessions live for
// the life of the process: a restart logs everyone out. There is no expiry
// timer; the origin binding below is the only check beyond token knowledge.
package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrUnknownToken is returned when revoking a token that is not registered
var ErrUnknownToken = errors.New("unknown session token")

// PageState carries the display identifiers seeded into a session at login
type PageState struct {
	Username string
	Name     string
}

// entry is one active session. The origin-bound token is a bcrypt hash of
// (raw token + origin address); it never leaves this package, so a stolen
// raw token cannot be replayed from a different address without also
// guessing the address it was bound to. This is a weak replay/CSRF
// mitigation, not a substitute for a signed expiring token.
type entry struct {
	userID      string
	originToken []byte
	state       PageState
}

// Registry issues, validates and revokes session tokens. Safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]entry
}

// NewRegistry creates an empty session registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]entry)}
}

// Issue creates a session for a user and returns the raw token to deliver to
// the client. The raw token is a salted one-way hash of the user id, stored
// password hash and the current time, so two logins by the same user in the
// same instant still get distinct tokens.
func (r *Registry) Issue(userID, passwordHash, username, name, origin string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating token salt: %w", err)
	}

	seed := sha256.New()
	seed.Write([]byte(userID))
	seed.Write([]byte(passwordHash))
	seed.Write([]byte(time.Now().Format(time.RFC3339Nano)))
	seed.Write(salt)
	rawToken := hex.EncodeToString(seed.Sum(nil))

	bound, err := bcrypt.GenerateFromPassword(originDigest(rawToken, origin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("binding token to origin: %w", err)
	}

	r.mu.Lock()
	r.sessions[rawToken] = entry{
		userID:      userID,
		originToken: bound,
		state:       PageState{Username: username, Name: name},
	}
	r.mu.Unlock()

	return rawToken, nil
}

// Validate reports whether rawToken is registered and was issued to the
// given origin address. This is the authorization gate for every
// session-bound action.
func (r *Registry) Validate(rawToken, origin string) bool {
	r.mu.RLock()
	e, ok := r.sessions[rawToken]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	// bcrypt compare is constant-time over the derived digest
	return bcrypt.CompareHashAndPassword(e.originToken, originDigest(rawToken, origin)) == nil
}

// UserID resolves a raw token to the owning user id
func (r *Registry) UserID(rawToken string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[rawToken]
	return e.userID, ok
}

// State returns the page state seeded at login
func (r *Registry) State(rawToken string) (PageState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[rawToken]
	return e.state, ok
}

// Revoke removes a session. Callers are expected to Validate first; revoking
// a token that is not registered returns ErrUnknownToken.
func (r *Registry) Revoke(rawToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[rawToken]; !ok {
		return ErrUnknownToken
	}
	delete(r.sessions, rawToken)
	return nil
}

// Len reports the number of active sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// originDigest collapses (raw token + origin address) to a fixed-size digest
// so the composite fits under bcrypt's input limit
func originDigest(rawToken, origin string) []byte {
	sum := sha256.Sum256([]byte(rawToken + origin))
	return sum[:]
}
