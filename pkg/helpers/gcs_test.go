package helpers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/media/profiles/usr_1/me.png",
		PublicURL("media", "profiles/usr_1/me.png"))
	assert.Equal(t, "https://storage.googleapis.com/media/profiles/usr_1/my%20photo%3F.png",
		PublicURL("media", "profiles/usr_1/my photo?.png"))
}

func TestUploadImageToGCS_RejectsNonImages(t *testing.T) {
	_, err := UploadImageToGCS(context.Background(), nil, "media", "usr_1/notes.txt", "text/plain", strings.NewReader("hi"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not an image")
}
