package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/periferia/periferia-social/internal/model"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents the JWT claims for an authenticated user. The user id is
// carried both as the subject and as an explicit "id" claim, alongside the
// public identity fields needed to rebuild the author of a post without a
// database round trip.
type Claims struct {
	jwt.RegisteredClaims
	ID        string `json:"id"`
	Username  string `json:"username"`
	Alias     string `json:"alias"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// GenerateToken creates a signed JWT for the given user.
func GenerateToken(user *model.User, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "periferia-social",
			Audience:  jwt.ClaimStrings{"periferia-api"},
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		ID:        user.ID,
		Username:  user.Username,
		Alias:     user.Alias,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a JWT string, returning the claims if
// the signature, issuer, audience and expiry all check out.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer("periferia-social"), jwt.WithAudience("periferia-api"))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// AuthenticatedUser rebuilds the authenticated identity from the claims.
func (c *Claims) AuthenticatedUser() model.AuthenticatedUser {
	return model.AuthenticatedUser{
		ID:        c.ID,
		Username:  c.Username,
		Alias:     c.Alias,
		FirstName: c.FirstName,
		LastName:  c.LastName,
	}
}
