package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/cohortly/internal/interface/http"
	"github.com/oksasatya/cohortly/internal/interface/middleware"
)

// CohortModule serves /cohorts. Writes other than joining need a convener.
type CohortModule struct {
	Handler *handlers.CohortHandler
	Posts   *handlers.PostHandler
	Writes  gin.HandlerFunc
}

func NewCohortModule(h *handlers.CohortHandler, posts *handlers.PostHandler, writes gin.HandlerFunc) *CohortModule {
	return &CohortModule{Handler: h, Posts: posts, Writes: writes}
}

func (m *CohortModule) Register(rg *gin.RouterGroup) {
	rg.GET("/cohorts", m.Handler.List)
	rg.GET("/cohorts/:id", m.Handler.Get)
	rg.GET("/cohorts/:id/members", m.Handler.Members)
	rg.GET("/cohorts/:id/posts", m.Posts.List)

	rg.POST("/cohorts/join", m.Writes, m.Handler.Join)
	rg.POST("/cohorts/:id/posts", m.Writes, m.Posts.Create)

	convener := rg.Group("/", middleware.RequireRole("convener"), m.Writes)
	{
		convener.POST("/cohorts", m.Handler.Create)
		convener.PUT("/cohorts/:id", m.Handler.Update)
		convener.DELETE("/cohorts/:id", m.Handler.Delete)
	}
}
