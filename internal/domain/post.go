package domain

import "time"

// MediaType is the upstream classification of a post.
type MediaType string

const (
	MediaTypeImage    MediaType = "IMAGE"
	MediaTypeVideo    MediaType = "VIDEO"
	MediaTypeCarousel MediaType = "CAROUSEL_ALBUM"
)

// Post is a published media item of the account. Identity is ID.
type Post struct {
	ID        string    `json:"id"`
	Caption   string    `json:"caption,omitempty"`
	MediaType MediaType `json:"media_type"`
	MediaURL  string    `json:"media_url"`
	Permalink string    `json:"permalink"`
	Timestamp time.Time `json:"timestamp"`
	LikeCount int       `json:"like_count"`
}

// Page is one slice of the feed plus the opaque cursor for the next slice.
// Next is empty when the feed is exhausted.
type Page struct {
	Posts []Post `json:"posts"`
	Next  string `json:"next,omitempty"`
}

// HasMore reports whether another page can be requested.
func (p Page) HasMore() bool {
	return p.Next != ""
}
