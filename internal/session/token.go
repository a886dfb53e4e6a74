package session

import (
	"fmt"
	"time"

	"github.com/MichalMitros/crm-console/internal/platform/models"
	"github.com/golang-jwt/jwt/v5"
)

// claims is token payload. The API signs user profile into the token.
type claims struct {
	models.User
	jwt.RegisteredClaims
}

// decodeToken reads session from token payload. Signature is not verified,
// only the server can do it. Expired tokens are rejected.
func decodeToken(token string, now time.Time) (*models.Session, error) {
	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	session := &models.Session{
		User:  c.User,
		Token: token,
	}

	if c.ExpiresAt != nil {
		expiresAt := c.ExpiresAt.Time
		if !now.Before(expiresAt) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, jwt.ErrTokenExpired)
		}
		session.ExpiresAt = &expiresAt
	}

	return session, nil
}
