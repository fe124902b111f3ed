package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ryjtoh/mydevduck-api/internal/application"
	"github.com/ryjtoh/mydevduck-api/pkg/validation"
)

type ActivityHandler struct {
	Activities *application.ActivityService
	Logger     *logrus.Logger
}

func NewActivityHandler(activities *application.ActivityService, logger *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{Activities: activities, Logger: logger}
}

type CreateActivityRequest struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description" binding:"required"`
	Metadata    string `json:"metadata" binding:"omitempty"`
}

// Create POST /api/v1/activities
func (h *ActivityHandler) Create(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		respondError(c, fmt.Errorf("%w: missing or invalid authorization header", application.ErrUnauthorized), nil)
		return
	}
	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: invalid payload", application.ErrInvalidRequest), validation.ToDetails(err))
		return
	}

	activity, err := h.Activities.Log(c.Request.Context(), token, req.Type, req.Description, req.Metadata)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusCreated, activity, "activity logged")
}

// List GET /api/v1/activities
func (h *ActivityHandler) List(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		respondError(c, fmt.Errorf("%w: missing or invalid authorization header", application.ErrUnauthorized), nil)
		return
	}
	activities, err := h.Activities.List(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, activities, "activities")
}
