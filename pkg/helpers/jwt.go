package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// MinSecretLen is the minimum length of the JWT signing secret. Anything
// shorter is a configuration error and must abort startup.
const MinSecretLen = 32

var ErrSecretTooShort = errors.New("jwt secret must be at least 32 characters")

// JWTManager issues and verifies the API's access and refresh tokens.
// Both token kinds share one HMAC-SHA512 secret; they differ only in
// claim set and lifetime. Tokens are stateless bearer credentials: there
// is no server-side session and no revocation before natural expiry.
type JWTManager struct {
	secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Logger     *logrus.Logger
}

func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration, logger *logrus.Logger) (*JWTManager, error) {
	if len(secret) < MinSecretLen {
		return nil, ErrSecretTooShort
	}
	return &JWTManager{
		secret:     []byte(secret),
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		Logger:     logger,
	}, nil
}

// Claims carried by both token kinds. Access tokens fill every field;
// refresh tokens carry only UserID.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessToken embeds userId, email and role with subject=email.
func (m *JWTManager) GenerateAccessToken(userID, email, role string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.AccessTTL)
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// GenerateRefreshToken embeds only userId with subject=userId.
func (m *JWTManager) GenerateRefreshToken(userID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.RefreshTTL)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Validate checks signature and expiry. It never returns an error to the
// caller; the failure class is logged at warn level instead.
func (m *JWTManager) Validate(tokenStr string) bool {
	_, err := m.ParseClaims(tokenStr)
	if err == nil {
		return true
	}
	if m.Logger != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			m.Logger.WithError(err).Warn("jwt expired")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			m.Logger.WithError(err).Warn("jwt signature invalid")
		default:
			m.Logger.WithError(err).Warn("jwt malformed")
		}
	}
	return false
}

// ParseClaims verifies and decodes a token of either kind. Callers that only
// need a yes/no answer should use Validate.
func (m *JWTManager) ParseClaims(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (m *JWTManager) UserIDFromToken(tokenStr string) (string, error) {
	c, err := m.ParseClaims(tokenStr)
	if err != nil {
		return "", err
	}
	return c.UserID, nil
}

func (m *JWTManager) EmailFromToken(tokenStr string) (string, error) {
	c, err := m.ParseClaims(tokenStr)
	if err != nil {
		return "", err
	}
	return c.Email, nil
}

func (m *JWTManager) RoleFromToken(tokenStr string) (string, error) {
	c, err := m.ParseClaims(tokenStr)
	if err != nil {
		return "", err
	}
	return c.Role, nil
}
