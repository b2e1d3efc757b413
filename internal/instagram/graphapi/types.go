package graphapi

import (
	"net/url"
	"time"

	"github.com/orgball2608/insta-dashboard/internal/domain"
)

// Graph API timestamps look like 2024-05-01T10:00:00+0000.
const graphTimeLayout = "2006-01-02T15:04:05-0700"

type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

type paging struct {
	Cursors struct {
		Before string `json:"before"`
		After  string `json:"after"`
	} `json:"cursors"`
	Next string `json:"next"`
}

// nextCursor returns the opaque cursor of the following page, or "" when
// Instagram reports no further page.
func (p *paging) nextCursor() string {
	if p == nil || p.Next == "" {
		return ""
	}
	if p.Cursors.After != "" {
		return p.Cursors.After
	}
	u, err := url.Parse(p.Next)
	if err != nil {
		return ""
	}
	return u.Query().Get("after")
}

type mediaItem struct {
	ID        string `json:"id"`
	Caption   string `json:"caption"`
	MediaType string `json:"media_type"`
	MediaURL  string `json:"media_url"`
	Permalink string `json:"permalink"`
	Timestamp string `json:"timestamp"`
	LikeCount int    `json:"like_count"`
}

type mediaResponse struct {
	Data   []mediaItem `json:"data"`
	Paging *paging     `json:"paging"`
}

type commentItem struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Username string `json:"username"`
}

type commentsResponse struct {
	Data []commentItem `json:"data"`
}

type idResponse struct {
	ID string `json:"id"`
}

type profileResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	MediaCount int    `json:"media_count"`
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(graphTimeLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

func (m mediaItem) toDomain() domain.Post {
	likes := m.LikeCount
	if likes < 0 {
		likes = 0
	}
	return domain.Post{
		ID:        m.ID,
		Caption:   m.Caption,
		MediaType: domain.MediaType(m.MediaType),
		MediaURL:  m.MediaURL,
		Permalink: m.Permalink,
		Timestamp: parseTimestamp(m.Timestamp),
		LikeCount: likes,
	}
}
