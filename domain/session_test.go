package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_Anonymous(t *testing.T) {
	var s *Session
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsActivated())
	assert.Empty(t, s.AuthHeader())

	empty := &Session{}
	assert.False(t, empty.IsAuthenticated())
	assert.Empty(t, empty.AuthHeader())
}

func TestSession_ExpiredTokenCountsAsAbsent(t *testing.T) {
	s := &Session{Token: "t", Activated: true, ExpiresAt: time.Now().Add(-time.Second)}

	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsActivated())
}

func TestSession_ActiveToken(t *testing.T) {
	s := &Session{Token: "t", Activated: true, Role: RoleAdmin, ExpiresAt: time.Now().Add(time.Hour)}

	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsActivated())
	assert.True(t, s.IsAdmin())
	assert.Equal(t, "Bearer t", s.AuthHeader())
}

func TestSession_ActivationRequiresAuthentication(t *testing.T) {
	s := &Session{Activated: true}
	assert.False(t, s.IsActivated())
}
