package publication

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/insta-dashboard/internal/domain"
	"github.com/orgball2608/insta-dashboard/internal/repositories"
	"github.com/orgball2608/insta-dashboard/pkg/logger"
)

const table = "publications"

var columns = []string{
	"id", "media_url", "caption", "media_kind", "creation_id", "media_id", "state", "error", "created_at", "updated_at",
}

type PgxRepository struct {
	pool   *pgxpool.Pool
	logger logger.Logger
	now    func() time.Time
}

var _ Repository = (*PgxRepository)(nil)

func NewPgxRepository(pool *pgxpool.Pool, logger logger.Logger) *PgxRepository {
	return &PgxRepository{
		pool:   pool,
		logger: logger.WithComponent("publication_repository"),
		now:    time.Now,
	}
}

func (r *PgxRepository) Create(ctx context.Context, p domain.Publication) (int64, error) {
	now := r.now().UTC()
	query, args, err := repositories.SqBuilder.
		Insert(table).
		Columns("media_url", "caption", "media_kind", "creation_id", "media_id", "state", "error", "created_at", "updated_at").
		Values(p.MediaURL, p.Caption, string(p.MediaKind), p.CreationID, p.MediaID, string(p.State), p.Error, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	var id int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, errors.Join(err, ErrCannotCreate)
	}

	return id, nil
}

func (r *PgxRepository) Update(ctx context.Context, p domain.Publication) error {
	query, args, err := repositories.SqBuilder.
		Update(table).
		Set("creation_id", p.CreationID).
		Set("media_id", p.MediaID).
		Set("state", string(p.State)).
		Set("error", p.Error).
		Set("updated_at", r.now().UTC()).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update publication: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PgxRepository) ListOrphaned(ctx context.Context, olderThan time.Duration) ([]*domain.Publication, error) {
	query, args, err := orphanedQuery(r.now().Add(-olderThan).UTC()).ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orphaned publications: %w", err)
	}
	defer rows.Close()

	var list []*domain.Publication
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan publication row: %w", err)
		}
		list = append(list, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating publication rows: %w", err)
	}

	return list, nil
}

func (r *PgxRepository) CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error) {
	query, args, err := cleanupQuery(r.now().Add(-olderThan).UTC()).ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old publications: %w", err)
	}

	r.logger.Info("Cleaned up old publications", "deleted", tag.RowsAffected(), "older_than", olderThan.String())
	return tag.RowsAffected(), nil
}

// orphanedQuery selects attempts with a staged container that never went
// live and were last touched before cutoff.
func orphanedQuery(cutoff time.Time) sq.SelectBuilder {
	return repositories.SqBuilder.
		Select(columns...).
		From(table).
		Where(sq.NotEq{"creation_id": ""}).
		Where(sq.NotEq{"state": string(domain.PublicationPublished)}).
		Where(sq.Lt{"updated_at": cutoff}).
		OrderBy("created_at ASC")
}

func cleanupQuery(cutoff time.Time) sq.DeleteBuilder {
	return repositories.SqBuilder.
		Delete(table).
		Where(sq.Lt{"created_at": cutoff})
}

func scanPublication(row pgx.Row) (*domain.Publication, error) {
	var (
		p         domain.Publication
		mediaKind string
		state     string
	)
	err := row.Scan(
		&p.ID,
		&p.MediaURL,
		&p.Caption,
		&mediaKind,
		&p.CreationID,
		&p.MediaID,
		&state,
		&p.Error,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.MediaKind = domain.MediaKind(mediaKind)
	p.State = domain.PublicationState(state)
	return &p, nil
}
