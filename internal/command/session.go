package command

import "github.com/dunelark/tunecast/internal/shared"

// Session is the per-connection authentication state. It lives for exactly
// one connection and is only ever touched by that connection's command loop,
// so it needs no locking.
type Session struct {
	id   string
	user string
}

// NewSession creates an anonymous session with a fresh id for log correlation.
func NewSession() *Session {
	return &Session{id: shared.GenerateID()}
}

// ID returns the session's correlation id.
func (s *Session) ID() string { return s.id }

// LoggedIn reports whether the session is authenticated.
func (s *Session) LoggedIn() bool { return s.user != "" }

// User returns the authenticated email, or "" for an anonymous session.
func (s *Session) User() string { return s.user }

// Login marks the session as authenticated as email.
func (s *Session) Login(email string) { s.user = email }

// Logout returns the session to the anonymous state.
func (s *Session) Logout() { s.user = "" }
