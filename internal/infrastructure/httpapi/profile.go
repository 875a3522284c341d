package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/oksasatya/cohortly/internal/domain/entity"
)

func (c *Client) Profile(ctx context.Context) (*entity.User, error) {
	return get[*entity.User](ctx, c, EndpointProfile, nil)
}

// UpdateProfile submits the non-empty fields of form as multipart data.
// Field validation failures reported by the server come back as a response
// with Error set, not as an error.
func (c *Client) UpdateProfile(ctx context.Context, form entity.ProfileFormData) (*entity.UpdateProfileResponse, error) {
	body, contentType, err := encodeProfileForm(form)
	if err != nil {
		return nil, err
	}

	ep := EndpointUpdateProfile
	rp, err := c.roundTrip(ctx, request{ep: ep, body: body, contentType: contentType})
	if err != nil {
		return settle[*entity.UpdateProfileResponse](c, ep, err, nil)
	}

	switch {
	case rp.ok(), rp.status == http.StatusBadRequest, rp.status == http.StatusUnprocessableEntity:
		if res, ok := decodeProfileResponse(rp.body); ok {
			return res, nil
		}
		if rp.ok() {
			return &entity.UpdateProfileResponse{}, nil
		}
		return settle[*entity.UpdateProfileResponse](c, ep, rp.fail(ep.Name, KindServer, nil), nil)
	default:
		return settle[*entity.UpdateProfileResponse](c, ep, rp.fail(ep.Name, kindForStatus(rp.status), nil), nil)
	}
}

func decodeProfileResponse(body []byte) (*entity.UpdateProfileResponse, bool) {
	var envelope struct {
		Error *bool `json:"error"`
	}
	if json.Unmarshal(body, &envelope) != nil || envelope.Error == nil {
		return nil, false
	}
	var res entity.UpdateProfileResponse
	if json.Unmarshal(body, &res) != nil {
		return nil, false
	}
	return &res, true
}

func encodeProfileForm(form entity.ProfileFormData) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"firstName", form.FirstName},
		{"lastName", form.LastName},
		{"username", form.Username},
		{"password", form.Password},
		{"location", form.Location},
		{"socials", form.Socials},
		{"bio", form.Bio},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	if img := form.ProfileImage; img != nil && img.URI != "" {
		if err := writeImage(w, img); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writeImage(w *multipart.Writer, img *entity.ProfileImage) error {
	path := strings.TrimPrefix(img.URI, "file://")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open profile image: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := img.Name
	if name == "" {
		name = filepath.Base(path)
	}
	typ := img.Type
	if typ == "" {
		typ = mime.TypeByExtension(filepath.Ext(name))
	}
	if typ == "" {
		typ = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="profileImage"; filename=%q`, name))
	h.Set("Content-Type", typ)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}
