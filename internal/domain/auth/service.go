package auth

import (
	"context"

	"github.com/attendly/attendly-backend-go/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, req RefreshTokenRequest) error
	Me(ctx context.Context, userID string) (user.ProfileResponse, error)

	// Google sign-in. LoginWithGoogle returns the consent redirect URL;
	// OAuthCallbackGoogle exchanges the callback code for our own tokens.
	LoginWithGoogle(ctx context.Context) (string, error)
	OAuthCallbackGoogle(ctx context.Context, state, code string) (TokenResponse, error)
}

// RefreshToken is a stored refresh token row. Only the SHA-256 hash of the
// token is persisted, a stolen dump cannot be replayed against the refresh
// endpoint.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt int64 // unix seconds
	Revoked   bool
}

type RefreshTokenRepository interface {
	Store(ctx context.Context, token RefreshToken) error
	GetByHash(ctx context.Context, tokenHash string) (RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, beforeUnix int64) (int64, error)
}
