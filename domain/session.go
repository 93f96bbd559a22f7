package domain

import "time"

// Session is a read-only view over the persisted credential and the claims
// baked into it. It is built once by the account use case and handed to every
// component that needs to gate an operation; nothing else mutates it.
type Session struct {
	Token     string
	Username  string
	Email     string
	Activated bool
	Role      string
	ExpiresAt time.Time
}

// IsAuthenticated reports whether a usable credential is present. An expired
// token counts as absent: the server would reject it anyway.
func (s *Session) IsAuthenticated() bool {
	if s == nil || s.Token == "" {
		return false
	}
	if s.ExpiresAt.IsZero() {
		return true
	}
	return s.ExpiresAt.After(time.Now())
}

// IsActivated reports whether the account may create tasks.
func (s *Session) IsActivated() bool {
	return s.IsAuthenticated() && s.Activated
}

func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.Role == RoleAdmin
}

// AuthHeader returns the Authorization header value, or "" when there is no
// credential to send.
func (s *Session) AuthHeader() string {
	if s == nil || s.Token == "" {
		return ""
	}
	return "Bearer " + s.Token
}
