package telegram

import (
	"context"

	"github.com/orgball2608/insta-dashboard/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go

// Client announces successful publications on a Telegram channel.
type Client interface {
	NotifyPublished(ctx context.Context, p domain.Publication) error
}

// Noop is used when no bot token is configured.
type Noop struct{}

func (Noop) NotifyPublished(context.Context, domain.Publication) error { return nil }
