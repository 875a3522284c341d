package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/cohortly/internal/domain/repository"
	"github.com/oksasatya/cohortly/internal/interface/middleware"
	"github.com/oksasatya/cohortly/pkg/helpers"
	"github.com/oksasatya/cohortly/pkg/response"
)

func userID(c *gin.Context) string { return c.GetString(middleware.CtxUserIDKey) }

// repoError maps repository errors to HTTP statuses.
func repoError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, repository.ErrCohortNotFound),
		errors.Is(err, repository.ErrPostNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, repository.ErrInvalidReferral):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, repository.ErrNotConvener):
		response.Error[any](c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, repository.ErrCohortFull):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	default:
		helpers.LogError(logger, "sandbox repository failure", err, logrus.Fields{"path": c.FullPath()})
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
