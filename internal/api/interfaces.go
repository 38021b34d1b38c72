package api

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

type JWTServiceI interface {
	GenerateToken(ownerID string) (string, error)
	ParseToken(tokenString string) (*JWTClaims, error)
}

// UserID is an opaque owner id issued by the authentication service.
type JWTClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// StatsCacheI stores rendered stats views per owner. A miss is (false, nil).
type StatsCacheI interface {
	Get(ctx context.Context, ownerID, view string, dst any) (bool, error)
	Set(ctx context.Context, ownerID, view string, value any) error
	// Drops every cached view of the owner
	Invalidate(ctx context.Context, ownerID string) error
}
