package authenticator

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenEngine issues and verifies the bearer tokens the hosting application
// hands to clients. Identity management itself lives outside this service;
// the token subject is taken as the authenticated user id.
type TokenEngine struct {
	secret string
}

func NewTokenEngine(secret string) *TokenEngine {
	return &TokenEngine{secret: secret}
}

func (e *TokenEngine) Generate(userID string, expiration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
	})

	return token.SignedString([]byte(e.secret))
}

func (e *TokenEngine) Verify(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return []byte(e.secret), nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	return claims.Subject, nil
}
