package instagram

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/orgball2608/insta-dashboard/internal/domain"
)

var ErrEmptyID = errors.New("upstream returned an empty id")

//go:generate go run go.uber.org/mock/mockgen -source=instagram.go -destination=mocks/mock.go

// Client is the account-scoped view of the Instagram Graph API.
// Implementations never retry.
type Client interface {
	// ListMedia returns one page of the account's media. An empty cursor
	// requests the first page.
	ListMedia(ctx context.Context, cursor string) (domain.Page, error)
	GetComments(ctx context.Context, mediaID string) ([]domain.Comment, error)
	CreateContainer(ctx context.Context, container domain.Container) (string, error)
	PublishContainer(ctx context.Context, creationID string) (string, error)
	GetProfile(ctx context.Context) (*domain.Profile, error)
}

// APIError is a non-success answer from the Graph API.
type APIError struct {
	StatusCode int
	Message    string
	Type       string
	Code       int
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Type != "" {
		return fmt.Sprintf("[%d] %s (%s, code %d)", e.StatusCode, msg, e.Type, e.Code)
	}
	return fmt.Sprintf("[%d] %s", e.StatusCode, msg)
}

// UpstreamMessage returns the message Instagram attached to err, if any.
func UpstreamMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
