package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	attemptPrefix = "login:attempt:"
	lockoutPrefix = "login:lockout:"
)

// AttemptStore is the shared key-value store behind the login attempt
// guard. Incr must be atomic and set ttl only when the increment creates
// the key.
type AttemptStore interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	SetFlag(ctx context.Context, key string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	Get(ctx context.Context, key string) (int64, error)
}

// LoginAttemptService tracks failed login attempts per identifier and
// enforces a temporary lockout. The counter and the lockout flag expire on
// the same window, so a burst of failures clears itself after one window
// with no cleanup job.
type LoginAttemptService struct {
	Store       AttemptStore
	MaxAttempts int
	Window      time.Duration
	Logger      *logrus.Logger
}

func NewLoginAttemptService(store AttemptStore, maxAttempts int, window time.Duration, logger *logrus.Logger) *LoginAttemptService {
	return &LoginAttemptService{
		Store:       store,
		MaxAttempts: maxAttempts,
		Window:      window,
		Logger:      logger,
	}
}

// RecordFailure registers a failed login for identifier. When the counter
// reaches MaxAttempts the lockout flag is set for the same window.
func (s *LoginAttemptService) RecordFailure(ctx context.Context, identifier string) error {
	attempts, err := s.Store.Incr(ctx, attemptPrefix+identifier, s.Window)
	if err != nil {
		return err
	}
	if attempts >= int64(s.MaxAttempts) {
		if err := s.Store.SetFlag(ctx, lockoutPrefix+identifier, s.Window); err != nil {
			return err
		}
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{
				"identifier": identifier,
				"attempts":   attempts,
			}).Warn("account locked after failed login attempts")
		}
	}
	return nil
}

// IsLocked reports whether identifier is currently locked out.
func (s *LoginAttemptService) IsLocked(ctx context.Context, identifier string) (bool, error) {
	return s.Store.Exists(ctx, lockoutPrefix+identifier)
}

// RecordSuccess clears the counter and the lockout flag unconditionally.
func (s *LoginAttemptService) RecordSuccess(ctx context.Context, identifier string) error {
	return s.Store.Delete(ctx, attemptPrefix+identifier, lockoutPrefix+identifier)
}

// RemainingAttempts returns how many more failures identifier can take
// before lockout; MaxAttempts when no counter exists.
func (s *LoginAttemptService) RemainingAttempts(ctx context.Context, identifier string) (int, error) {
	attempts, err := s.Store.Get(ctx, attemptPrefix+identifier)
	if err != nil {
		return 0, err
	}
	remaining := s.MaxAttempts - int(attempts)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
