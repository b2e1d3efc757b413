package domain

import "time"

// Draft is the user's pending publish request.
type Draft struct {
	ImageURL string `json:"imageUrl"`
	Caption  string `json:"caption"`
}

// MediaKind is derived from the media URL path extension.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// Container describes the staging object created before a post goes live.
type Container struct {
	MediaURL string
	Caption  string
	Kind     MediaKind
}

// PublicationState is the persisted outcome of a publish attempt.
type PublicationState string

const (
	PublicationPending   PublicationState = "pending"
	PublicationCreated   PublicationState = "container_created"
	PublicationPublished PublicationState = "published"
	PublicationFailed    PublicationState = "failed"
)

// Publication is the audit record of one publish attempt.
type Publication struct {
	ID         int64
	MediaURL   string
	Caption    string
	MediaKind  MediaKind
	CreationID string
	MediaID    string
	State      PublicationState
	Error      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Orphaned reports whether a container was staged but never published.
func (p Publication) Orphaned() bool {
	return p.CreationID != "" && p.State != PublicationPublished
}
