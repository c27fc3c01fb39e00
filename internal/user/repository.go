package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playamar/beach-admin-backend/internal/db"
)

// Repository defines data access methods for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	TouchLastLogin(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	CountByRole(ctx context.Context, role Role) (int, error)
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

func (r *pgxRepository) Create(ctx context.Context, u *User) error {
	err := r.q(ctx).QueryRow(ctx,
		`INSERT INTO public.users (email, password_hash, name, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.Email, u.PasswordHash, u.Name, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *pgxRepository) getBy(ctx context.Context, column, value string) (*User, error) {
	var u User
	err := r.q(ctx).QueryRow(ctx,
		`SELECT id, email, password_hash, name, role, created_at, last_login_at
		 FROM public.users
		 WHERE `+column+` = $1`,
		value,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt, &u.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	return &u, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "email", "name", "role", "created_at", "last_login_at",
		"count(*) OVER() as total_count",
	).
		From("public.users")

	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"email": kw},
			squirrel.ILike{"name": kw},
		})
	}
	if filter.Role != "" {
		query = query.Where(squirrel.Eq{"role": filter.Role})
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
		return nil, 0, fmt.Errorf("build list users query failed: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users failed: %w", err)
	}
	defer rows.Close()

	var users []*User
	var total int
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.LastLoginAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan user failed: %w", err)
		}
		users = append(users, &u)
	}
	return users, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, u *User) error {
	ct, err := r.q(ctx).Exec(ctx,
		`UPDATE public.users SET email = $1, password_hash = $2, name = $3, role = $4 WHERE id = $5`,
		u.Email, u.PasswordHash, u.Name, u.Role, u.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("update user failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.q(ctx).Exec(ctx, `DELETE FROM public.users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) TouchLastLogin(ctx context.Context, id string) error {
	if _, err := r.q(ctx).Exec(ctx,
		`UPDATE public.users SET last_login_at = now() WHERE id = $1`, id,
	); err != nil {
		return fmt.Errorf("touch last login failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.q(ctx).QueryRow(ctx, `SELECT 1 FROM public.users WHERE id = $1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check user exists failed: %w", err)
	}
	return true, nil
}

func (r *pgxRepository) CountByRole(ctx context.Context, role Role) (int, error) {
	var n int
	if err := r.q(ctx).QueryRow(ctx,
		`SELECT count(*) FROM public.users WHERE role = $1`, role,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users failed: %w", err)
	}
	return n, nil
}
