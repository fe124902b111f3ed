package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/ryjtoh/mydevduck-api/internal/interface/http"
)

// PetModule registers the pet routes. The pet service resolves ownership
// from the bearer token itself, so no JWT middleware sits in front.
type PetModule struct {
	Handler *handlers.PetHandler
}

func NewPetModule(h *handlers.PetHandler) *PetModule {
	return &PetModule{Handler: h}
}

func (m *PetModule) Register(rg *gin.RouterGroup) {
	v1 := rg.Group("/v1")

	v1.POST("/pets", m.Handler.Create)
	v1.GET("/pets/needing-attention", m.Handler.NeedingAttention)
	v1.GET("/pets/:id", m.Handler.Get)
	v1.PUT("/pets/:id", m.Handler.Update)
	v1.DELETE("/pets/:id", m.Handler.Delete)
	v1.POST("/pets/:id/feed", m.Handler.Feed)
	v1.POST("/pets/:id/play", m.Handler.Play)
	v1.GET("/pets/:id/stats", m.Handler.Stats)
	v1.POST("/pets/:id/revive", m.Handler.Revive)
}
