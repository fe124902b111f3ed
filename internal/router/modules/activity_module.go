package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/ryjtoh/mydevduck-api/internal/interface/http"
)

type ActivityModule struct {
	Handler *handlers.ActivityHandler
}

func NewActivityModule(h *handlers.ActivityHandler) *ActivityModule {
	return &ActivityModule{Handler: h}
}

func (m *ActivityModule) Register(rg *gin.RouterGroup) {
	v1 := rg.Group("/v1")

	v1.POST("/activities", m.Handler.Create)
	v1.GET("/activities", m.Handler.List)
}
