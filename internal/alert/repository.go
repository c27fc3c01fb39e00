package alert

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playamar/beach-admin-backend/internal/db"
)

// Repository defines data access methods for alerts.
type Repository interface {
	Create(ctx context.Context, a *Alert) error
	GetByID(ctx context.Context, id string) (*Alert, error)
	List(ctx context.Context, filter Filter) ([]*Alert, int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	RecentSevere(ctx context.Context, limit int) ([]*Alert, error)
	PurgeByBeach(ctx context.Context, beachID string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) q(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

func (r *pgxRepository) Create(ctx context.Context, a *Alert) error {
	err := r.q(ctx).QueryRow(ctx,
		`INSERT INTO public.alerts (type, message, beach_id, is_read)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		a.Type, a.Message, a.BeachID, a.IsRead,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create alert failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Alert, error) {
	var a Alert
	err := r.q(ctx).QueryRow(ctx,
		`SELECT id, type, message, beach_id, is_read, created_at
		 FROM public.alerts
		 WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Type, &a.Message, &a.BeachID, &a.IsRead, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get alert failed: %w", err)
	}
	return &a, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Alert, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "type", "message", "beach_id", "is_read", "created_at",
		"count(*) OVER() as total_count",
	).
		From("public.alerts")

	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"type": filter.Type})
	}
	if filter.BeachID != "" {
		query = query.Where(squirrel.Eq{"beach_id": filter.BeachID})
	}
	if filter.UnreadOnly {
		query = query.Where(squirrel.Eq{"is_read": false})
	}

	query = query.OrderBy("created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list alerts query failed: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list alerts failed: %w", err)
	}
	defer rows.Close()

	var alerts []*Alert
	var total int
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.ID, &a.Type, &a.Message, &a.BeachID, &a.IsRead, &a.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan alert failed: %w", err)
		}
		alerts = append(alerts, &a)
	}
	return alerts, total, nil
}

func (r *pgxRepository) MarkRead(ctx context.Context, id string) error {
	ct, err := r.q(ctx).Exec(ctx, `UPDATE public.alerts SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark alert read failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) MarkAllRead(ctx context.Context) error {
	if _, err := r.q(ctx).Exec(ctx, `UPDATE public.alerts SET is_read = true WHERE is_read = false`); err != nil {
		return fmt.Errorf("mark all alerts read failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.q(ctx).Exec(ctx, `DELETE FROM public.alerts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete alert failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) RecentSevere(ctx context.Context, limit int) ([]*Alert, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT id, type, message, beach_id, is_read, created_at
		 FROM public.alerts
		 WHERE type IN ('warning', 'error')
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list severe alerts failed: %w", err)
	}
	defer rows.Close()

	var alerts []*Alert
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.ID, &a.Type, &a.Message, &a.BeachID, &a.IsRead, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan severe alert failed: %w", err)
		}
		alerts = append(alerts, &a)
	}
	return alerts, nil
}

func (r *pgxRepository) PurgeByBeach(ctx context.Context, beachID string) error {
	if _, err := r.q(ctx).Exec(ctx, `DELETE FROM public.alerts WHERE beach_id = $1`, beachID); err != nil {
		return fmt.Errorf("purge alerts failed: %w", err)
	}
	return nil
}
