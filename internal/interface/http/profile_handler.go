package handlers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/cohortly/internal/domain/entity"
	"github.com/oksasatya/cohortly/internal/domain/repository"
	"github.com/oksasatya/cohortly/pkg/helpers"
	"github.com/oksasatya/cohortly/pkg/response"
	"github.com/oksasatya/cohortly/pkg/validation"
)

const maxProfileImageSize = 5 << 20

// ImageStore keeps uploaded profile images and returns the URL they are
// served from.
type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type ProfileHandler struct {
	Repo repository.SandboxRepository
	// Images may be nil; profile_image then points at /uploads/<user>/<file>
	// and the bytes are dropped.
	Images ImageStore
	Logger *logrus.Logger
}

func NewProfileHandler(repo repository.SandboxRepository, images ImageStore, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Repo: repo, Images: images, Logger: logger}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	u, err := h.Repo.GetUser(userID(c))
	if err != nil {
		repoError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "profile", nil)
}

// Update reads a multipart form. Invalid fields are answered with 422 and
// {error: true, message: {field: text}}; a saved profile with
// {error: false, message: {}, user}.
func (h *ProfileHandler) Update(c *gin.Context) {
	u, err := h.Repo.GetUser(userID(c))
	if err != nil {
		repoError(c, h.Logger, err)
		return
	}

	form := profileForm{
		FirstName: strings.TrimSpace(c.PostForm("firstName")),
		LastName:  strings.TrimSpace(c.PostForm("lastName")),
		Username:  strings.TrimSpace(c.PostForm("username")),
		Password:  c.PostForm("password"),
		Location:  strings.TrimSpace(c.PostForm("location")),
		Socials:   strings.TrimSpace(c.PostForm("socials")),
		Bio:       strings.TrimSpace(c.PostForm("bio")),
	}

	details := validation.Struct(form)
	if details == nil {
		details = map[string]string{}
	}
	if form.Username != "" && h.usernameTaken(form.Username, u.ID) {
		details["username"] = "is already taken"
	}
	var image *multipart.FileHeader
	if fh, err := c.FormFile("profileImage"); err == nil {
		switch {
		case !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/"):
			details["profileImage"] = "must be an image"
		case fh.Size > maxProfileImageSize:
			details["profileImage"] = "must be at most 5MB"
		default:
			image = fh
		}
	}
	if len(details) > 0 {
		c.JSON(http.StatusUnprocessableEntity, entity.UpdateProfileResponse{
			Error:   true,
			Message: entity.ProfileFieldErrorsFromMap(details),
		})
		return
	}

	if image != nil {
		url, err := h.storeImage(c.Request.Context(), u.ID, image)
		if err != nil {
			helpers.LogError(h.Logger, "store profile image", err, logrus.Fields{"user_id": u.ID})
			response.Error[any](c, http.StatusBadGateway, "could not store profile image", nil)
			return
		}
		u.ProfileImage = url
	}
	applyProfile(u, form)
	if err := h.Repo.UpdateUser(u); err != nil {
		repoError(c, h.Logger, err)
		return
	}
	h.Logger.WithField("user_id", u.ID).Info("profile updated")
	c.JSON(http.StatusOK, entity.UpdateProfileResponse{User: u})
}

func (h *ProfileHandler) storeImage(ctx context.Context, uid string, fh *multipart.FileHeader) (string, error) {
	name := path.Base(fh.Filename)
	if h.Images == nil {
		return "/uploads/" + uid + "/" + name, nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	return h.Images.Upload(ctx, uid+"/"+name, fh.Header.Get("Content-Type"), f)
}

func (h *ProfileHandler) usernameTaken(username, self string) bool {
	for _, other := range h.Repo.Users() {
		if other.ID != self && strings.EqualFold(other.Username, username) {
			return true
		}
	}
	return false
}

// applyProfile copies the non-empty form fields onto u. Passwords are accepted
// but not stored by the sandbox.
func applyProfile(u *entity.User, f profileForm) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&u.FirstName, f.FirstName)
	set(&u.LastName, f.LastName)
	set(&u.Username, f.Username)
	set(&u.Location, f.Location)
	set(&u.Socials, f.Socials)
	set(&u.Bio, f.Bio)
}
