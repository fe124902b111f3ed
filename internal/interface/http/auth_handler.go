package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ryjtoh/mydevduck-api/internal/application"
	"github.com/ryjtoh/mydevduck-api/internal/interface/middleware"
	"github.com/ryjtoh/mydevduck-api/pkg/helpers"
	"github.com/ryjtoh/mydevduck-api/pkg/response"
	"github.com/ryjtoh/mydevduck-api/pkg/validation"
)

type AuthHandler struct {
	Auth     *application.AuthService
	Attempts *application.LoginAttemptService
	JWT      *helpers.JWTManager
	Logger   *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, attempts *application.LoginAttemptService, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Attempts: attempts, JWT: jwt, Logger: logger}
}

type RegisterRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,pwd"`
	GithubUsername string `json:"github_username" binding:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: invalid payload", application.ErrInvalidRequest), validation.ToDetails(err))
		return
	}

	res, err := h.Auth.Register(c.Request.Context(), req.Email, req.Password, req.GithubUsername)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusCreated, res, "registered")
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: invalid payload", application.ErrInvalidRequest), validation.ToDetails(err))
		return
	}

	res, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var details interface{}
		if remaining, rErr := h.Attempts.RemainingAttempts(c.Request.Context(), req.Email); rErr == nil {
			details = gin.H{"remaining_attempts": remaining}
		}
		respondError(c, err, details)
		return
	}
	respond(c, http.StatusOK, res, "logged in")
}

// Refresh POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: invalid payload", application.ErrInvalidRequest), validation.ToDetails(err))
		return
	}

	res, err := h.Auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, res, "token refreshed")
}

// Validate POST /api/v1/auth/validate
// Checks a bearer token and echoes its claims back.
func (h *AuthHandler) Validate(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		respondError(c, fmt.Errorf("%w: missing or invalid authorization header", application.ErrUnauthorized), nil)
		return
	}
	if !h.JWT.Validate(token) {
		respondError(c, fmt.Errorf("%w: invalid or expired token", application.ErrUnauthorized), nil)
		return
	}

	claims, err := h.JWT.ParseClaims(token)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid or expired token", application.ErrUnauthorized), nil)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"valid":  true,
		"userId": claims.UserID,
		"email":  claims.Email,
		"role":   claims.Role,
	}, "token is valid")
}

// Me GET /api/v1/auth/me (behind JWT middleware)
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		resp := response.Error[any](c, http.StatusUnauthorized, "not authenticated", nil)
		c.JSON(resp.Status, resp)
		return
	}

	user, err := h.Auth.CurrentUser(userID)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, user, "current user")
}
