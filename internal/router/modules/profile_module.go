package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/cohortly/internal/interface/http"
)

// ProfileModule serves the token owner's profile.
// GET /users/profile, PUT /users/profile (multipart)
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	Writes  gin.HandlerFunc
}

func NewProfileModule(h *handlers.ProfileHandler, writes gin.HandlerFunc) *ProfileModule {
	return &ProfileModule{Handler: h, Writes: writes}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	rg.GET("/users/profile", m.Handler.Get)
	rg.PUT("/users/profile", m.Writes, m.Handler.Update)
}
