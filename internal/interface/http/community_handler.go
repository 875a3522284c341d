package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/cohortly/internal/domain/repository"
	"github.com/oksasatya/cohortly/pkg/response"
)

type CommunityHandler struct {
	Repo   repository.SandboxRepository
	Logger *logrus.Logger
}

func NewCommunityHandler(repo repository.SandboxRepository, logger *logrus.Logger) *CommunityHandler {
	return &CommunityHandler{Repo: repo, Logger: logger}
}

func (h *CommunityHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"communities": h.Repo.ListCommunities(userID(c))}, "communities", nil)
}

func (h *CommunityHandler) Joined(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"communities": h.Repo.JoinedCommunities(userID(c))}, "joined communities", nil)
}

func (h *CommunityHandler) Cohorts(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"cohorts": h.Repo.CommunityCohorts(c.Param("id"))}, "community cohorts", nil)
}

func (h *CommunityHandler) Programmes(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"programmes": h.Repo.Programmes(c.Param("id"))}, "programmes", nil)
}

func (h *CommunityHandler) Modules(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"modules": h.Repo.Modules(c.Param("id"))}, "modules", nil)
}

func (h *CommunityHandler) Lessons(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"lessons": h.Repo.Lessons(c.Param("id"))}, "lessons", nil)
}
