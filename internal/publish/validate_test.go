package publish

import (
	"testing"

	"github.com/orgball2608/insta-dashboard/internal/domain"
	"github.com/orgball2608/insta-dashboard/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name  string
		draft domain.Draft
		msg   string
	}{
		{"empty url", domain.Draft{Caption: "hi"}, MsgMissingFields},
		{"empty caption", domain.Draft{ImageURL: "https://cdn.example.com/a.jpg"}, MsgMissingFields},
		{"no host", domain.Draft{ImageURL: "https:///a.jpg", Caption: "hi"}, MsgInvalidURL},
		{"not a url", domain.Draft{ImageURL: "::nope", Caption: "hi"}, MsgInvalidURL},
		{"plain http", domain.Draft{ImageURL: "http://cdn.example.com/a.jpg", Caption: "hi"}, MsgInsecureURL},
		{"ftp", domain.Draft{ImageURL: "ftp://cdn.example.com/a.jpg", Caption: "hi"}, MsgInsecureURL},
		{"gif", domain.Draft{ImageURL: "https://cdn.example.com/a.gif", Caption: "hi"}, MsgUnsupportedFormat},
		{"no extension", domain.Draft{ImageURL: "https://cdn.example.com/media", Caption: "hi"}, MsgUnsupportedFormat},
		{"extension only in query", domain.Draft{ImageURL: "https://cdn.example.com/media?f=a.jpg", Caption: "hi"}, MsgUnsupportedFormat},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.draft)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
			assert.Equal(t, tc.msg, errors.GetMessage(err))
		})
	}
}

func TestValidateDerivesKind(t *testing.T) {
	cases := map[string]domain.MediaKind{
		"https://cdn.example.com/a.jpg":          domain.MediaKindImage,
		"https://cdn.example.com/a.JPEG":         domain.MediaKindImage,
		"https://cdn.example.com/a.png?sig=abc":  domain.MediaKindImage,
		"https://cdn.example.com/clip.mp4":       domain.MediaKindVideo,
		"HTTPS://cdn.example.com/clip.MOV#t=1":   domain.MediaKindVideo,
		"  https://cdn.example.com/padded.jpg  ": domain.MediaKindImage,
	}

	for raw, kind := range cases {
		container, err := Validate(domain.Draft{ImageURL: raw, Caption: "caption"})
		require.NoError(t, err, raw)
		assert.Equal(t, kind, container.Kind, raw)
		assert.Equal(t, "caption", container.Caption)
	}
}

func TestValidateKeepsWhitespaceCaption(t *testing.T) {
	container, err := Validate(domain.Draft{ImageURL: "https://cdn.example.com/a.jpg", Caption: "   "})
	require.NoError(t, err)
	assert.Equal(t, "   ", container.Caption)
}
