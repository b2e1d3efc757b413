package feed

import (
	"iter"
	"strings"

	"github.com/orgball2608/insta-dashboard/internal/domain"
	"github.com/orgball2608/insta-dashboard/pkg/errors"
)

type MediaFilter string

const (
	FilterAll      MediaFilter = "ALL"
	FilterImage    MediaFilter = MediaFilter(domain.MediaTypeImage)
	FilterVideo    MediaFilter = MediaFilter(domain.MediaTypeVideo)
	FilterCarousel MediaFilter = MediaFilter(domain.MediaTypeCarousel)
)

// ParseMediaFilter accepts the selector case-insensitively. An empty
// selector means ALL.
func ParseMediaFilter(s string) (MediaFilter, error) {
	switch f := MediaFilter(strings.ToUpper(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterImage, FilterVideo, FilterCarousel:
		return f, nil
	default:
		return "", errors.Validation("Unsupported media type filter.")
	}
}

// Criteria selects visible posts. The zero value matches everything.
type Criteria struct {
	MediaType MediaFilter
	Query     string
}

func (c Criteria) Match(p domain.Post) bool {
	if c.MediaType != "" && c.MediaType != FilterAll && MediaFilter(p.MediaType) != c.MediaType {
		return false
	}
	if c.Query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Caption), strings.ToLower(c.Query))
}

// Visible yields the posts matching c in their original order. posts is
// never modified and the sequence can be ranged over more than once.
func Visible(posts []domain.Post, c Criteria) iter.Seq[domain.Post] {
	return func(yield func(domain.Post) bool) {
		for _, p := range posts {
			if !c.Match(p) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}
