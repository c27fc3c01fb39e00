package integration

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playamar/beach-admin-backend/internal/db"
)

// Repository defines data access methods for integrations.
type Repository interface {
	Create(ctx context.Context, in *Integration) error
	GetByID(ctx context.Context, id string) (*Integration, error)
	List(ctx context.Context) ([]*Integration, error)
	Update(ctx context.Context, in *Integration) error
	Delete(ctx context.Context, id string) error
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

func (r *pgxRepository) Create(ctx context.Context, in *Integration) error {
	err := r.q(ctx).QueryRow(ctx,
		`INSERT INTO public.integrations (name, type, provider, api_key, enabled, settings)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		in.Name, in.Type, in.Provider, in.APIKey, in.Enabled, in.Settings,
	).Scan(&in.ID, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create integration failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Integration, error) {
	var in Integration
	err := r.q(ctx).QueryRow(ctx,
		`SELECT id, name, type, provider, api_key, enabled, settings, created_at, updated_at
		 FROM public.integrations
		 WHERE id = $1`,
		id,
	).Scan(&in.ID, &in.Name, &in.Type, &in.Provider, &in.APIKey, &in.Enabled, &in.Settings, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get integration failed: %w", err)
	}
	return &in, nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*Integration, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT id, name, type, provider, api_key, enabled, settings, created_at, updated_at
		 FROM public.integrations
		 ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list integrations failed: %w", err)
	}
	defer rows.Close()

	var integrations []*Integration
	for rows.Next() {
		var in Integration
		if err := rows.Scan(&in.ID, &in.Name, &in.Type, &in.Provider, &in.APIKey, &in.Enabled, &in.Settings, &in.CreatedAt, &in.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan integration failed: %w", err)
		}
		integrations = append(integrations, &in)
	}
	return integrations, nil
}

func (r *pgxRepository) Update(ctx context.Context, in *Integration) error {
	ct, err := r.q(ctx).Exec(ctx,
		`UPDATE public.integrations
		 SET name = $1, type = $2, provider = $3, api_key = $4, enabled = $5, settings = $6, updated_at = now()
		 WHERE id = $7`,
		in.Name, in.Type, in.Provider, in.APIKey, in.Enabled, in.Settings, in.ID,
	)
	if err != nil {
		return fmt.Errorf("update integration failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.q(ctx).Exec(ctx, `DELETE FROM public.integrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete integration failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
