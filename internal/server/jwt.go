package server

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWT signs and verifies session tokens. Tokens carry the user id and
// their issue time; the issue time backs the recent-login requirement
// on account deletion.
type JWT struct {
	secret []byte
}

// NewJWT builds a signer around the shared secret.
func NewJWT(secret string) *JWT {
	return &JWT{secret: []byte(secret)}
}

// Claims is what a verified token yields.
type Claims struct {
	UserID   uint64
	IssuedAt time.Time
}

// Sign issues a one-week session token for the user.
func (j *JWT) Sign(userID uint64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(7 * 24 * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(j.secret)
}

// Verify validates the token and extracts its claims.
func (j *JWT) Verify(tokenStr string) (Claims, error) {
	t, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil || !t.Valid {
		return Claims{}, errors.New("invalid token")
	}

	mc, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims")
	}

	// jwt MapClaims numbers are float64
	sub, ok := mc["sub"].(float64)
	if !ok {
		return Claims{}, errors.New("invalid sub")
	}
	iat, ok := mc["iat"].(float64)
	if !ok {
		return Claims{}, errors.New("invalid iat")
	}

	return Claims{
		UserID:   uint64(sub),
		IssuedAt: time.Unix(int64(iat), 0),
	}, nil
}
