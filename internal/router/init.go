package router

import (
	"time"

	"github.com/oksasatya/cohortly/internal/container"
	"github.com/oksasatya/cohortly/internal/infrastructure/gcs"
	handlers "github.com/oksasatya/cohortly/internal/interface/http"
	"github.com/oksasatya/cohortly/internal/interface/middleware"
	"github.com/oksasatya/cohortly/internal/router/modules"
)

type SandboxHandlers struct {
	Cohorts     *handlers.CohortHandler
	Communities *handlers.CommunityHandler
	Posts       *handlers.PostHandler
	Profile     *handlers.ProfileHandler
}

// imageStore uploads profile images to GCS when a client and bucket are set.
func imageStore() handlers.ImageStore {
	bucket := container.GetConfig().GCSBucket
	if client := container.GetGCS(); client != nil && bucket != "" {
		return gcs.NewImageStore(client, bucket)
	}
	return nil
}

func buildHandlers() SandboxHandlers {
	repo := container.GetSandboxRepo()
	logger := container.GetLogger()
	return SandboxHandlers{
		Cohorts:     handlers.NewCohortHandler(repo, logger),
		Communities: handlers.NewCommunityHandler(repo, logger),
		Posts:       handlers.NewPostHandler(repo, logger),
		Profile:     handlers.NewProfileHandler(repo, imageStore(), logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	h := buildHandlers()
	writes := middleware.RateLimit(container.GetRedis(), container.GetConfig().SandboxWriteLimit, time.Minute, middleware.KeyByUserID())

	r.Use(middleware.Auth(container.GetJWT()))
	r.Add(modules.NewCohortModule(h.Cohorts, h.Posts, writes))
	r.Add(modules.NewCommunityModule(h.Communities))
	r.Add(modules.NewPostModule(h.Posts, writes))
	r.Add(modules.NewProfileModule(h.Profile, writes))
}
