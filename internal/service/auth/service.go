package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/attendly/attendly-backend-go/internal/domain/auth"
	"github.com/attendly/attendly-backend-go/internal/domain/user"
	"github.com/attendly/attendly-backend-go/internal/pkg/clock"
	"github.com/attendly/attendly-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendly-backend-go/internal/pkg/oauth"
)

// oauthStateTTL bounds how long a Google consent redirect stays valid.
const oauthStateTTL = 10 * time.Minute

// TxRunner executes fn atomically against the backing store; a failure inside
// fn rolls back every write it made. Wired to postgresql.WithTransaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type AuthServiceImpl struct {
	user.UserRepository
	refreshTokens auth.RefreshTokenRepository
	jwtService    jwt.Service
	googleService oauth.GoogleService
	clock         clock.Clock
	tx            TxRunner

	mu          sync.Mutex
	oauthStates map[string]time.Time // state -> expiry
}

func NewAuthService(
	userRepo user.UserRepository,
	refreshTokens auth.RefreshTokenRepository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
	clk clock.Clock,
	tx TxRunner,
) auth.AuthService {
	if tx == nil {
		tx = func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
	}
	return &AuthServiceImpl{
		UserRepository: userRepo,
		refreshTokens:  refreshTokens,
		jwtService:     jwtService,
		googleService:  googleService,
		clock:          clk,
		tx:             tx,
		oauthStates:    make(map[string]time.Time),
	}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// issueTokens generates an access/refresh pair and persists the refresh
// token's hash for later revocation checks.
func (s *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.TokenResponse, error) {
	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeCode, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	err = s.refreshTokens.Store(ctx, auth.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: refreshExp,
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExp,
	}, nil
}

// Register implements auth.AuthService. The role defaults to employee when
// omitted; manager accounts are created explicitly.
func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	role := user.RoleEmployee
	if req.Role != "" {
		role = user.Role(req.Role)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	// The user insert and the refresh-token insert commit together; a failed
	// token store must not leave an account behind without a session.
	var resp auth.TokenResponse
	err = s.tx(ctx, func(ctx context.Context) error {
		created, err := s.UserRepository.Create(ctx, user.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(passwordHash),
			Role:         role,
			EmployeeCode: req.EmployeeCode,
			Department:   req.Department,
		})
		if err != nil {
			return err
		}

		resp, err = s.issueTokens(ctx, created)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return resp, nil
}

// Login implements auth.AuthService. Unknown email and wrong password read
// identically so the endpoint cannot be used to enumerate accounts.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u)
}

// RefreshToken implements auth.AuthService. Presenting a revoked token
// revokes the user's whole session family, reuse of a rotated token is
// treated as theft.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	userID, err := s.jwtService.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	stored, err := s.refreshTokens.GetByHash(ctx, hashToken(req.RefreshToken))
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}
	if stored.Revoked {
		_ = s.refreshTokens.RevokeAllForUser(ctx, stored.UserID)
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}
	if stored.ExpiresAt < s.clock.Now().Unix() {
		return auth.AccessTokenResponse{}, auth.ErrTokenExpired
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeCode, u.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: accessExp,
	}, nil
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, req auth.RefreshTokenRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.jwtService.VerifyRefreshToken(req.RefreshToken); err != nil {
		return auth.ErrInvalidToken
	}

	return s.refreshTokens.Revoke(ctx, hashToken(req.RefreshToken))
}

// Me implements auth.AuthService.
func (s *AuthServiceImpl) Me(ctx context.Context, userID string) (user.ProfileResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return user.ToProfile(u), nil
}

// LoginWithGoogle implements auth.AuthService.
func (s *AuthServiceImpl) LoginWithGoogle(_ context.Context) (string, error) {
	state := s.googleService.GenerateState("")
	if state == "" {
		return "", fmt.Errorf("failed to generate oauth state")
	}

	now := s.clock.Now()

	s.mu.Lock()
	for st, exp := range s.oauthStates {
		if exp.Before(now) {
			delete(s.oauthStates, st)
		}
	}
	s.oauthStates[state] = now.Add(oauthStateTTL)
	s.mu.Unlock()

	return s.googleService.RedirectURL(state), nil
}

// OAuthCallbackGoogle implements auth.AuthService. Google sign-in does not
// create accounts, the email must already be registered.
func (s *AuthServiceImpl) OAuthCallbackGoogle(ctx context.Context, state, code string) (auth.TokenResponse, error) {
	s.mu.Lock()
	exp, known := s.oauthStates[state]
	delete(s.oauthStates, state)
	s.mu.Unlock()

	if !known || exp.Before(s.clock.Now()) {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	token, err := s.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	info, err := s.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to verify google user: %w", err)
	}

	u, err := s.UserRepository.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrGoogleEmailNotFound
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return s.issueTokens(ctx, u)
}
