package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ryjtoh/mydevduck-api/internal/domain/entity"
	repo "github.com/ryjtoh/mydevduck-api/internal/domain/repository"
	"github.com/ryjtoh/mydevduck-api/pkg/helpers"
)

// AuthService orchestrates registration, login, token refresh and the
// "who am I" lookup. It keeps no per-flow state; the login attempt guard
// is the only cross-request state it touches.
type AuthService struct {
	Users    repo.UserRepository
	JWT      *helpers.JWTManager
	Attempts *LoginAttemptService
	Logger   *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, attempts *LoginAttemptService, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Attempts: attempts, Logger: logger}
}

func (s *AuthService) issueTokens(u *entity.User) (*AuthResponse, error) {
	access, _, err := s.JWT.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:        access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		User:         ToUserDTO(u),
	}, nil
}

// Register creates a user with role USER and issues both tokens.
func (s *AuthService) Register(ctx context.Context, email, password, githubUsername string) (*AuthResponse, error) {
	exists, err := s.Users.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:          email,
		GithubUsername: githubUsername,
		PasswordHash:   hash,
		Role:           entity.RoleUser,
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	return s.issueTokens(u)
}

// recordFailure feeds the guard; a store error must not mask the auth
// failure, but it does mean the lockout may not advance, so it is logged.
func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if err := s.Attempts.RecordFailure(ctx, email); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("failed to record login attempt")
	}
}

// Login authenticates email/password. Unknown email and wrong password
// produce the same Unauthorized error so account existence never leaks;
// both record a failed attempt against the guard.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	locked, err := s.Attempts.IsLocked(ctx, email)
	if err != nil {
		return nil, err
	}
	if locked {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Warn("login blocked for locked account")
		}
		return nil, fmt.Errorf("%w: too many failed login attempts, try again later", ErrTooManyRequests)
	}

	u, err := s.Users.GetByEmail(email)
	if err != nil || u == nil {
		s.recordFailure(ctx, email)
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		s.recordFailure(ctx, email)
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	if err := s.Attempts.RecordSuccess(ctx, email); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("failed to reset login attempts")
	}

	return s.issueTokens(u)
}

// Refresh validates the refresh token and mints a new access token. The
// refresh token is echoed back unchanged; there is no rotation and no
// server-side revocation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if !s.JWT.Validate(refreshToken) {
		return nil, fmt.Errorf("%w: invalid or expired refresh token", ErrUnauthorized)
	}
	userID, err := s.JWT.UserIDFromToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid or expired refresh token", ErrUnauthorized)
	}
	u, err := s.Users.GetByID(userID)
	if err != nil || u == nil {
		return nil, fmt.Errorf("%w: user not found", ErrUnauthorized)
	}

	access, _, err := s.JWT.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:        access,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		User:         ToUserDTO(u),
	}, nil
}

// CurrentUser resolves a user id to its profile.
func (s *AuthService) CurrentUser(userID string) (*UserDTO, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil || u == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	dto := ToUserDTO(u)
	return &dto, nil
}
