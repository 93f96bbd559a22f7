package account

import (
	"github.com/golang-jwt/jwt/v4"

	"github.com/diasKarataev/todo-client/domain"
)

// tokenClaims mirrors the claim set the server bakes into its tokens.
type tokenClaims struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsActivated bool   `json:"isActivated"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// sessionFromToken decodes the claims without verifying the signature: the
// client has no signing secret, and the server re-checks the token on every
// call anyway. The claims only seed the local session view.
func sessionFromToken(token string) (*domain.Session, error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnauthenticated, "malformed token", err)
	}

	session := &domain.Session{
		Token:     token,
		Username:  claims.Username,
		Email:     claims.Email,
		Activated: claims.IsActivated,
		Role:      claims.Role,
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
