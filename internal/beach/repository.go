package beach

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playamar/beach-admin-backend/internal/db"
)

// Repository defines data access methods for beaches, zones and sunbeds.
// All methods resolve their querier from the context, so they participate
// in an ambient transaction when one is open.
type Repository interface {
	Create(ctx context.Context, b *Beach) error
	GetByID(ctx context.Context, id string) (*Beach, error)
	List(ctx context.Context, filter Filter) ([]*Beach, int, error)
	Update(ctx context.Context, b *Beach) error
	UpdateImages(ctx context.Context, beachID string, images []string) error
	Delete(ctx context.Context, id string) error
	UpdateDerived(ctx context.Context, beachID string, capacity, currentBookings, rate int) error
	SunbedStatusCounts(ctx context.Context, beachID string) (StatusCounts, error)
	OccupancyOverview(ctx context.Context) ([]OccupancyOverviewItem, error)
	CountBeaches(ctx context.Context) (int, error)
	// Zone methods
	CreateZone(ctx context.Context, z *Zone) error
	GetZone(ctx context.Context, beachID, zoneID string) (*Zone, error)
	ListZones(ctx context.Context, beachID string) ([]Zone, error)
	UpdateZone(ctx context.Context, z *Zone) error
	DeleteZone(ctx context.Context, zoneID string) error
	// Sunbed methods
	InsertSunbeds(ctx context.Context, zoneID string, beds []Sunbed) error
	ListSunbeds(ctx context.Context, zoneID string) ([]Sunbed, error)
	DeleteSunbedsByZone(ctx context.Context, zoneID string) error
	GetSunbed(ctx context.Context, zoneID, sunbedID string) (*Sunbed, error)
	GetSunbedsForUpdate(ctx context.Context, ids []string) ([]Sunbed, error)
	SetSunbedStatus(ctx context.Context, sunbedID string, status SunbedStatus) error
	SetSunbedsStatus(ctx context.Context, ids []string, status SunbedStatus) error
	BeachIDOfSunbed(ctx context.Context, sunbedID string) (string, error)
	// Admin assignment methods
	ListAdmins(ctx context.Context, beachID string) ([]AdminRef, error)
	AdminAssignment(ctx context.Context, userID string) (string, error)
	AddAdmin(ctx context.Context, beachID, userID string) error
	RemoveAdmin(ctx context.Context, beachID, userID string) error
	RemoveAdminsByBeach(ctx context.Context, beachID string) error
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

func (r *pgxRepository) Create(ctx context.Context, b *Beach) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.beaches").
		Columns("name", "location", "status", "price_per_day", "amenities", "images", "total_capacity").
		Values(b.Name, b.Location, b.Status, b.PricePerDay, b.Amenities, b.Images, b.TotalCapacity).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create beach query failed: %w", err)
	}

	if err := r.q(ctx).QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create beach failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Beach, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "location", "status", "price_per_day", "amenities", "images",
		"total_capacity", "current_bookings", "occupancy_rate", "created_at", "updated_at",
	).
		From("public.beaches").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get beach query failed: %w", err)
	}

	var b Beach
	err = r.q(ctx).QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.Name, &b.Location, &b.Status, &b.PricePerDay, &b.Amenities, &b.Images,
		&b.TotalCapacity, &b.CurrentBookings, &b.OccupancyRate, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get beach failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Beach, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "location", "status", "price_per_day", "amenities", "images",
		"total_capacity", "current_bookings", "occupancy_rate", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.beaches")

	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": kw},
			squirrel.ILike{"location": kw},
		})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
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
		return nil, 0, fmt.Errorf("build list beaches query failed: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list beaches failed: %w", err)
	}
	defer rows.Close()

	var beaches []*Beach
	var total int
	for rows.Next() {
		var b Beach
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Location, &b.Status, &b.PricePerDay, &b.Amenities, &b.Images,
			&b.TotalCapacity, &b.CurrentBookings, &b.OccupancyRate, &b.CreatedAt, &b.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan beach failed: %w", err)
		}
		beaches = append(beaches, &b)
	}
	return beaches, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Beach) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.beaches").
		Set("name", b.Name).
		Set("location", b.Location).
		Set("status", b.Status).
		Set("price_per_day", b.PricePerDay).
		Set("amenities", b.Amenities).
		Set("images", b.Images).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update beach query failed: %w", err)
	}

	ct, err := r.q(ctx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update beach failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdateImages(ctx context.Context, beachID string, images []string) error {
	ct, err := r.q(ctx).Exec(ctx,
		`UPDATE public.beaches SET images = $1, updated_at = now() WHERE id = $2`,
		images, beachID,
	)
	if err != nil {
		return fmt.Errorf("update beach images failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.q(ctx).Exec(ctx, `DELETE FROM public.beaches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete beach failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdateDerived(ctx context.Context, beachID string, capacity, currentBookings, rate int) error {
	ct, err := r.q(ctx).Exec(ctx,
		`UPDATE public.beaches
		 SET total_capacity = $1, current_bookings = $2, occupancy_rate = $3, updated_at = now()
		 WHERE id = $4`,
		capacity, currentBookings, rate, beachID,
	)
	if err != nil {
		return fmt.Errorf("update beach derived fields failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SunbedStatusCounts(ctx context.Context, beachID string) (StatusCounts, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT s.status, count(*)
		 FROM public.sunbeds s
		 JOIN public.zones z ON s.zone_id = z.id
		 WHERE z.beach_id = $1
		 GROUP BY s.status`,
		beachID,
	)
	if err != nil {
		return nil, fmt.Errorf("count sunbed statuses failed: %w", err)
	}
	defer rows.Close()

	counts := make(StatusCounts, 4)
	for rows.Next() {
		var status SunbedStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan sunbed status count failed: %w", err)
		}
		counts[status] = n
	}
	return counts, nil
}

func (r *pgxRepository) OccupancyOverview(ctx context.Context) ([]OccupancyOverviewItem, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT id, name, occupancy_rate, total_capacity, current_bookings
		 FROM public.beaches
		 ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("occupancy overview failed: %w", err)
	}
	defer rows.Close()

	var items []OccupancyOverviewItem
	for rows.Next() {
		var it OccupancyOverviewItem
		if err := rows.Scan(&it.BeachID, &it.Name, &it.OccupancyRate, &it.Capacity, &it.CurrentBookings); err != nil {
			return nil, fmt.Errorf("scan occupancy overview failed: %w", err)
		}
		items = append(items, it)
	}
	return items, nil
}

func (r *pgxRepository) CountBeaches(ctx context.Context) (int, error) {
	var n int
	if err := r.q(ctx).QueryRow(ctx, `SELECT count(*) FROM public.beaches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count beaches failed: %w", err)
	}
	return n, nil
}

// ------------------------
//      Zone methods
// ------------------------

func (r *pgxRepository) CreateZone(ctx context.Context, z *Zone) error {
	err := r.q(ctx).QueryRow(ctx,
		`INSERT INTO public.zones (beach_id, name, rows, cols)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		z.BeachID, z.Name, z.Rows, z.Cols,
	).Scan(&z.ID, &z.CreatedAt)
	if err != nil {
		return fmt.Errorf("create zone failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetZone(ctx context.Context, beachID, zoneID string) (*Zone, error) {
	var z Zone
	err := r.q(ctx).QueryRow(ctx,
		`SELECT id, beach_id, name, rows, cols, created_at
		 FROM public.zones
		 WHERE id = $1 AND beach_id = $2`,
		zoneID, beachID,
	).Scan(&z.ID, &z.BeachID, &z.Name, &z.Rows, &z.Cols, &z.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrZoneNotFound
		}
		return nil, fmt.Errorf("get zone failed: %w", err)
	}
	return &z, nil
}

func (r *pgxRepository) ListZones(ctx context.Context, beachID string) ([]Zone, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT id, beach_id, name, rows, cols, created_at
		 FROM public.zones
		 WHERE beach_id = $1
		 ORDER BY created_at ASC`,
		beachID,
	)
	if err != nil {
		return nil, fmt.Errorf("list zones failed: %w", err)
	}
	defer rows.Close()

	var zones []Zone
	for rows.Next() {
		var z Zone
		if err := rows.Scan(&z.ID, &z.BeachID, &z.Name, &z.Rows, &z.Cols, &z.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan zone failed: %w", err)
		}
		zones = append(zones, z)
	}
	return zones, nil
}

func (r *pgxRepository) UpdateZone(ctx context.Context, z *Zone) error {
	ct, err := r.q(ctx).Exec(ctx,
		`UPDATE public.zones SET name = $1, rows = $2, cols = $3 WHERE id = $4`,
		z.Name, z.Rows, z.Cols, z.ID,
	)
	if err != nil {
		return fmt.Errorf("update zone failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrZoneNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteZone(ctx context.Context, zoneID string) error {
	ct, err := r.q(ctx).Exec(ctx, `DELETE FROM public.zones WHERE id = $1`, zoneID)
	if err != nil {
		return fmt.Errorf("delete zone failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrZoneNotFound
	}
	return nil
}

// ------------------------
//     Sunbed methods
// ------------------------

func (r *pgxRepository) InsertSunbeds(ctx context.Context, zoneID string, beds []Sunbed) error {
	if len(beds) == 0 {
		return nil
	}
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Insert("public.sunbeds").
		Columns("zone_id", "code", "row_number", "col_number", "status", "price_modifier")
	for _, b := range beds {
		query = query.Values(zoneID, b.Code, b.Row, b.Col, b.Status, b.PriceModifier)
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert sunbeds query failed: %w", err)
	}

	if _, err := r.q(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sunbeds failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListSunbeds(ctx context.Context, zoneID string) ([]Sunbed, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT id, zone_id, code, row_number, col_number, status, price_modifier, created_at, updated_at
		 FROM public.sunbeds
		 WHERE zone_id = $1
		 ORDER BY row_number ASC, col_number ASC`,
		zoneID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sunbeds failed: %w", err)
	}
	defer rows.Close()

	var beds []Sunbed
	for rows.Next() {
		var b Sunbed
		if err := rows.Scan(&b.ID, &b.ZoneID, &b.Code, &b.Row, &b.Col, &b.Status, &b.PriceModifier, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sunbed failed: %w", err)
		}
		beds = append(beds, b)
	}
	return beds, nil
}

func (r *pgxRepository) DeleteSunbedsByZone(ctx context.Context, zoneID string) error {
	if _, err := r.q(ctx).Exec(ctx, `DELETE FROM public.sunbeds WHERE zone_id = $1`, zoneID); err != nil {
		return fmt.Errorf("delete sunbeds by zone failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetSunbed(ctx context.Context, zoneID, sunbedID string) (*Sunbed, error) {
	var b Sunbed
	err := r.q(ctx).QueryRow(ctx,
		`SELECT id, zone_id, code, row_number, col_number, status, price_modifier, created_at, updated_at
		 FROM public.sunbeds
		 WHERE id = $1 AND zone_id = $2`,
		sunbedID, zoneID,
	).Scan(&b.ID, &b.ZoneID, &b.Code, &b.Row, &b.Col, &b.Status, &b.PriceModifier, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSunbedNotFound
		}
		return nil, fmt.Errorf("get sunbed failed: %w", err)
	}
	return &b, nil
}

// GetSunbedsForUpdate locks the rows so a concurrent booking cannot grab
// the same beds between the availability check and the status flip.
func (r *pgxRepository) GetSunbedsForUpdate(ctx context.Context, ids []string) ([]Sunbed, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q(ctx).Query(ctx,
		`SELECT id, zone_id, code, row_number, col_number, status, price_modifier, created_at, updated_at
		 FROM public.sunbeds
		 WHERE id = ANY($1)
		 FOR UPDATE`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("lock sunbeds failed: %w", err)
	}
	defer rows.Close()

	var beds []Sunbed
	for rows.Next() {
		var b Sunbed
		if err := rows.Scan(&b.ID, &b.ZoneID, &b.Code, &b.Row, &b.Col, &b.Status, &b.PriceModifier, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan locked sunbed failed: %w", err)
		}
		beds = append(beds, b)
	}
	return beds, nil
}

func (r *pgxRepository) SetSunbedStatus(ctx context.Context, sunbedID string, status SunbedStatus) error {
	ct, err := r.q(ctx).Exec(ctx,
		`UPDATE public.sunbeds SET status = $1, updated_at = now() WHERE id = $2`,
		status, sunbedID,
	)
	if err != nil {
		return fmt.Errorf("set sunbed status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrSunbedNotFound
	}
	return nil
}

func (r *pgxRepository) SetSunbedsStatus(ctx context.Context, ids []string, status SunbedStatus) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.q(ctx).Exec(ctx,
		`UPDATE public.sunbeds SET status = $1, updated_at = now() WHERE id = ANY($2)`,
		status, ids,
	); err != nil {
		return fmt.Errorf("set sunbeds status failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) BeachIDOfSunbed(ctx context.Context, sunbedID string) (string, error) {
	var beachID string
	err := r.q(ctx).QueryRow(ctx,
		`SELECT z.beach_id
		 FROM public.sunbeds s
		 JOIN public.zones z ON s.zone_id = z.id
		 WHERE s.id = $1`,
		sunbedID,
	).Scan(&beachID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrSunbedNotFound
		}
		return "", fmt.Errorf("resolve sunbed beach failed: %w", err)
	}
	return beachID, nil
}

// ------------------------
//  Admin assignment methods
// ------------------------

func (r *pgxRepository) ListAdmins(ctx context.Context, beachID string) ([]AdminRef, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT u.id, u.email, u.name
		 FROM public.beach_admins ba
		 JOIN public.users u ON ba.user_id = u.id
		 WHERE ba.beach_id = $1
		 ORDER BY u.name ASC`,
		beachID,
	)
	if err != nil {
		return nil, fmt.Errorf("list beach admins failed: %w", err)
	}
	defer rows.Close()

	var admins []AdminRef
	for rows.Next() {
		var a AdminRef
		if err := rows.Scan(&a.ID, &a.Email, &a.Name); err != nil {
			return nil, fmt.Errorf("scan beach admin failed: %w", err)
		}
		admins = append(admins, a)
	}
	return admins, nil
}

// AdminAssignment returns the beach the user currently administers, or an
// empty string when the user is unassigned.
func (r *pgxRepository) AdminAssignment(ctx context.Context, userID string) (string, error) {
	var beachID string
	err := r.q(ctx).QueryRow(ctx,
		`SELECT beach_id FROM public.beach_admins WHERE user_id = $1`,
		userID,
	).Scan(&beachID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get admin assignment failed: %w", err)
	}
	return beachID, nil
}

func (r *pgxRepository) AddAdmin(ctx context.Context, beachID, userID string) error {
	if _, err := r.q(ctx).Exec(ctx,
		`INSERT INTO public.beach_admins (beach_id, user_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		beachID, userID,
	); err != nil {
		return fmt.Errorf("add beach admin failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) RemoveAdmin(ctx context.Context, beachID, userID string) error {
	if _, err := r.q(ctx).Exec(ctx,
		`DELETE FROM public.beach_admins WHERE beach_id = $1 AND user_id = $2`,
		beachID, userID,
	); err != nil {
		return fmt.Errorf("remove beach admin failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) RemoveAdminsByBeach(ctx context.Context, beachID string) error {
	if _, err := r.q(ctx).Exec(ctx,
		`DELETE FROM public.beach_admins WHERE beach_id = $1`,
		beachID,
	); err != nil {
		return fmt.Errorf("remove beach admins failed: %w", err)
	}
	return nil
}
