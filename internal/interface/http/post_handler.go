package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/cohortly/internal/domain/entity"
	"github.com/oksasatya/cohortly/internal/domain/repository"
	"github.com/oksasatya/cohortly/pkg/response"
	"github.com/oksasatya/cohortly/pkg/validation"
)

type PostHandler struct {
	Repo   repository.SandboxRepository
	Logger *logrus.Logger
}

func NewPostHandler(repo repository.SandboxRepository, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Repo: repo, Logger: logger}
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Repo.Posts(c.Param("id"))
	if err != nil {
		repoError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posts": posts}, "posts", nil)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if details := validation.Struct(req); details != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", details)
		return
	}
	post, err := h.Repo.CreatePost(c.Param("id"), userID(c), req.Text)
	if err != nil {
		repoError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"post": post}, "post created", nil)
}

func (h *PostHandler) Comments(c *gin.Context) {
	comments, err := h.Repo.Comments(c.Param("id"))
	if err != nil {
		repoError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"comments": comments}, "comments", nil)
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if details := validation.Struct(req); details != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", details)
		return
	}
	comment, err := h.Repo.CreateComment(c.Param("id"), userID(c), entity.CreateCommentRequest{Text: req.Text, Media: req.Media})
	if err != nil {
		repoError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"comment": comment}, "comment created", nil)
}
