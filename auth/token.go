// Package auth issues and resolves the bearer tokens that carry a caller's
// identity. The service is stateless: resolution is a pure function of the
// signing secret and the presented token.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Andryushik/MyDiary/apperr"
)

const op = "auth.Resolve"

var (
	ErrMissingToken = apperr.Unauthorized(op, "Authorization header not found", nil)
	ErrExpiredToken = apperr.Unauthorized(op, "Token is expired", nil)
	ErrInvalidToken = apperr.Unauthorized(op, "Invalid Token", nil)
)

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 tokens. Secret and lifetime are
// injected at construction.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token carrying userID.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperr.Internal("auth.Issue", "unable to sign token", err)
	}
	return signed, nil
}

// Resolve extracts the caller's user id from an Authorization header value.
// Expiry is checked twice: a cheap unverified decode first, then full
// verification. Both paths report ErrExpiredToken so callers see one outcome.
func (s *TokenService) Resolve(authorization string) (string, error) {
	if authorization == "" {
		return "", ErrMissingToken
	}
	parts := strings.Split(authorization, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrInvalidToken
	}
	tokenString := parts[1]

	// Pre-check against the decoded-but-unverified payload so obviously
	// stale tokens skip the signature check.
	unverified := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, unverified); err != nil {
		return "", ErrInvalidToken
	}
	if unverified.ExpiresAt != nil && unverified.ExpiresAt.Before(time.Now()) {
		return "", ErrExpiredToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
