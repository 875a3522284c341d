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

type CohortHandler struct {
	Repo   repository.SandboxRepository
	Logger *logrus.Logger
}

func NewCohortHandler(repo repository.SandboxRepository, logger *logrus.Logger) *CohortHandler {
	return &CohortHandler{Repo: repo, Logger: logger}
}

func (h *CohortHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"cohorts": h.Repo.ListCohorts(userID(c))}, "cohorts", nil)
}

func (h *CohortHandler) Get(c *gin.Context) {
	cohort, err := h.Repo.GetCohort(c.Param("id"))
	if err != nil {
		repoError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cohort": cohort}, "cohort", nil)
}

func (h *CohortHandler) Members(c *gin.Context) {
	members, err := h.Repo.CohortMembers(c.Param("id"))
	if err != nil {
		repoError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"members": members}, "members", nil)
}

func (h *CohortHandler) bind(c *gin.Context) (*entity.Cohort, bool) {
	var in cohortRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return nil, false
	}
	if details := validation.Struct(in); details != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid cohort", details)
		return nil, false
	}
	return in.toEntity(), true
}

func (h *CohortHandler) Create(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}
	if err := h.Repo.CreateCohort(userID(c), in); err != nil {
		repoError(c, h.Logger, err)
		return
	}
	h.Logger.WithField("cohort_id", in.ID).Info("cohort created")
	response.Success(c, http.StatusCreated, gin.H{"cohort": in}, "cohort created", nil)
}

func (h *CohortHandler) Update(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}
	in.ID = c.Param("id")
	if err := h.Repo.UpdateCohort(userID(c), in); err != nil {
		repoError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cohort": in}, "cohort updated", nil)
}

func (h *CohortHandler) Delete(c *gin.Context) {
	if err := h.Repo.DeleteCohort(userID(c), c.Param("id")); err != nil {
		repoError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "cohort deleted", nil)
}

func (h *CohortHandler) Join(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if details := validation.Struct(req); details != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", details)
		return
	}
	cohort, err := h.Repo.JoinCohort(userID(c), req.Referral)
	if err != nil {
		repoError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cohort": cohort}, "joined cohort", nil)
}
