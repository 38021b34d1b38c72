package jwtservice

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/limbo/healthlog/internal/api"
	errorvalues "github.com/limbo/healthlog/internal/error_values"
)

const DefaultTokenTTL = time.Hour

type JWTService struct {
	secret []byte
	ttl    time.Duration
}

func New(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    DefaultTokenTTL,
	}
}

// WithTTL returns a copy issuing tokens that live for ttl.
func (s *JWTService) WithTTL(ttl time.Duration) *JWTService {
	return &JWTService{secret: s.secret, ttl: ttl}
}

// GenerateToken issues a token for ownerID. Tokens normally come from the
// authentication service; this is used by tooling and tests.
func (s *JWTService) GenerateToken(ownerID string) (string, error) {
	if ownerID == "" {
		return "", errors.New("empty owner id")
	}
	now := time.Now()
	claims := &api.JWTClaims{
		UserID: ownerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken verifies the signature and time claims. Any rejected token
// is reported as errorvalues.ErrInvalidToken.
func (s *JWTService) ParseToken(tokenString string) (*api.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &api.JWTClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errorvalues.ErrInvalidToken, err.Error())
	}
	claims, ok := token.Claims.(*api.JWTClaims)
	if !ok || !token.Valid {
		return nil, errorvalues.ErrInvalidToken
	}
	return claims, nil
}
