package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ryjtoh/mydevduck-api/internal/application"
	"github.com/ryjtoh/mydevduck-api/pkg/validation"
)

// PetHandler is a thin shell over PetService. The service authenticates
// the raw bearer token itself, so these routes sit outside the JWT
// middleware; the handler only moves the token along.
type PetHandler struct {
	Pets   *application.PetService
	Logger *logrus.Logger
}

func NewPetHandler(pets *application.PetService, logger *logrus.Logger) *PetHandler {
	return &PetHandler{Pets: pets, Logger: logger}
}

type CreatePetRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

type UpdatePetRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

func (h *PetHandler) token(c *gin.Context) (string, bool) {
	token, ok := bearerToken(c)
	if !ok {
		respondError(c, fmt.Errorf("%w: missing or invalid authorization header", application.ErrUnauthorized), nil)
	}
	return token, ok
}

// Create POST /api/v1/pets
func (h *PetHandler) Create(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}
	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: invalid payload", application.ErrInvalidRequest), validation.ToDetails(err))
		return
	}

	pet, err := h.Pets.Create(c.Request.Context(), token, req.Name)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusCreated, pet, "pet created")
}

// Get GET /api/v1/pets/:id
func (h *PetHandler) Get(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}
	pet, err := h.Pets.Get(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, pet, "pet")
}

// Update PUT /api/v1/pets/:id
func (h *PetHandler) Update(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}
	var req UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: invalid payload", application.ErrInvalidRequest), validation.ToDetails(err))
		return
	}

	pet, err := h.Pets.Rename(c.Request.Context(), token, c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, pet, "pet updated")
}

// Delete DELETE /api/v1/pets/:id
func (h *PetHandler) Delete(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}
	if err := h.Pets.Delete(c.Request.Context(), token, c.Param("id")); err != nil {
		respondError(c, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// Feed POST /api/v1/pets/:id/feed
func (h *PetHandler) Feed(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}
	pet, err := h.Pets.Feed(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, pet, "pet fed")
}

// Play POST /api/v1/pets/:id/play
func (h *PetHandler) Play(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}
	pet, err := h.Pets.Play(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, pet, "played with pet")
}

// Stats GET /api/v1/pets/:id/stats
func (h *PetHandler) Stats(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}
	stats, err := h.Pets.Stats(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, stats, "pet stats")
}

// Revive POST /api/v1/pets/:id/revive
func (h *PetHandler) Revive(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}
	pet, err := h.Pets.Revive(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, pet, "pet revived")
}

// NeedingAttention GET /api/v1/pets/needing-attention
func (h *PetHandler) NeedingAttention(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}
	pets, err := h.Pets.NeedingAttention(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	respond(c, http.StatusOK, pets, "pets needing attention")
}
