package publication

import (
	"context"
	"errors"
	"time"

	"github.com/orgball2608/insta-dashboard/internal/domain"
)

var (
	ErrNotFound     = errors.New("publication not found")
	ErrCannotCreate = errors.New("error create publication")
)

//go:generate go run go.uber.org/mock/mockgen -source=publication.go -destination=mocks/mock.go

// Repository is the audit log of publish attempts.
type Repository interface {
	// Create stores a new attempt and returns its id
	Create(ctx context.Context, p domain.Publication) (int64, error)

	// Update overwrites state, creation id, media id and error of an attempt
	Update(ctx context.Context, p domain.Publication) error

	// ListOrphaned returns attempts whose container was created but never
	// published and that are older than the given duration
	ListOrphaned(ctx context.Context, olderThan time.Duration) ([]*domain.Publication, error)

	// CleanupOldRecords deletes records older than the specified duration
	CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error)
}
