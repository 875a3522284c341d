package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/cohortly/internal/interface/http"
)

// CommunityModule serves communities and their programme tree.
type CommunityModule struct {
	Handler *handlers.CommunityHandler
}

func NewCommunityModule(h *handlers.CommunityHandler) *CommunityModule {
	return &CommunityModule{Handler: h}
}

func (m *CommunityModule) Register(rg *gin.RouterGroup) {
	rg.GET("/communities", m.Handler.List)
	rg.GET("/communities/joined", m.Handler.Joined)
	rg.GET("/communities/:id/cohorts", m.Handler.Cohorts)
	rg.GET("/communities/:id/programmes", m.Handler.Programmes)
	rg.GET("/programmes/:id/modules", m.Handler.Modules)
	rg.GET("/modules/:id/lessons", m.Handler.Lessons)
}
