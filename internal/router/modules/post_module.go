package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/cohortly/internal/interface/http"
)

type PostModule struct {
	Handler *handlers.PostHandler
	Writes  gin.HandlerFunc
}

func NewPostModule(h *handlers.PostHandler, writes gin.HandlerFunc) *PostModule {
	return &PostModule{Handler: h, Writes: writes}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rg.GET("/posts/:id/comments", m.Handler.Comments)
	rg.POST("/posts/:id/comments", m.Writes, m.Handler.CreateComment)
}
