// Package token issues the JWT access tokens the middleware validates.
package token

import (
	"time"

	"github.com/Iamalive23802/Dream-Trade/internal/auth/domain"
	"github.com/Iamalive23802/Dream-Trade/platform/config"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer signs access tokens.
type Issuer struct {
	cfg config.AuthServiceConfig
}

// NewIssuer creates a token issuer.
func NewIssuer(cfg config.AuthServiceConfig) *Issuer {
	return &Issuer{cfg: cfg}
}

// Issue signs an access token for the user. The claim set mirrors what the
// auth middleware reads: sub, role, team_id and type.
func (i *Issuer) Issue(user *domain.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"type": "access",
		"iat":  now.Unix(),
		"exp":  now.Add(i.cfg.GetAccessTokenTTL()).Unix(),
	}
	if user.TeamID != nil {
		claims["team_id"] = user.TeamID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(i.cfg.GetJWTAccessSecret()))
}
