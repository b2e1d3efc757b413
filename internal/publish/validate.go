package publish

import (
	"net/url"
	"path"
	"strings"

	"github.com/orgball2608/insta-dashboard/internal/domain"
	"github.com/orgball2608/insta-dashboard/pkg/errors"
)

const (
	MsgMissingFields     = "Please provide both a media URL and a caption."
	MsgInvalidURL        = "Invalid media URL."
	MsgInsecureURL       = "Media URL must use https."
	MsgUnsupportedFormat = "Unsupported media format. Use JPEG, PNG, MP4, or MOV."
)

var mediaKinds = map[string]domain.MediaKind{
	".jpg":  domain.MediaKindImage,
	".jpeg": domain.MediaKindImage,
	".png":  domain.MediaKindImage,
	".mp4":  domain.MediaKindVideo,
	".mov":  domain.MediaKindVideo,
}

// Validate checks a draft without any network access and returns the
// container to create for it.
func Validate(draft domain.Draft) (domain.Container, error) {
	rawURL := strings.TrimSpace(draft.ImageURL)
	if rawURL == "" || draft.Caption == "" {
		return domain.Container{}, errors.Validation(MsgMissingFields)
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return domain.Container{}, errors.Validation(MsgInvalidURL)
	}

	if !strings.EqualFold(u.Scheme, "https") {
		return domain.Container{}, errors.Validation(MsgInsecureURL)
	}

	kind, ok := mediaKinds[strings.ToLower(path.Ext(u.Path))]
	if !ok {
		return domain.Container{}, errors.Validation(MsgUnsupportedFormat)
	}

	return domain.Container{
		MediaURL: rawURL,
		Caption:  draft.Caption,
		Kind:     kind,
	}, nil
}
