package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playamar/beach-admin-backend/internal/db"
)

// Repository defines data access methods for bookings and their sunbed
// links. Methods resolve their querier from the context so multi-step
// mutations share one transaction.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, b *Booking) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*Stats, error)
	// Sunbed link methods
	AddSunbedLinks(ctx context.Context, bookingID string, sunbedIDs []string) error
	SunbedIDs(ctx context.Context, bookingID string) ([]string, error)
	RemoveSunbedLinks(ctx context.Context, bookingID string) error
	RemoveSunbedLinksByZone(ctx context.Context, zoneID string) error
	// Beach cascade
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

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	err := r.q(ctx).QueryRow(ctx,
		`INSERT INTO public.bookings
		 (beach_id, zone_id, customer_name, customer_email, check_in_date, check_out_date,
		  total_price, status, payment_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		b.BeachID, b.ZoneID, b.CustomerName, b.CustomerEmail, b.CheckInDate, b.CheckOutDate,
		b.TotalPrice, b.Status, b.PaymentStatus,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	var b Booking
	err := r.q(ctx).QueryRow(ctx,
		`SELECT b.id, b.beach_id, b.zone_id, b.customer_name, b.customer_email,
		        b.check_in_date, b.check_out_date, b.total_price, b.status, b.payment_status,
		        b.created_at, b.updated_at, be.name, be.location
		 FROM public.bookings b
		 JOIN public.beaches be ON b.beach_id = be.id
		 WHERE b.id = $1`,
		id,
	).Scan(
		&b.ID, &b.BeachID, &b.ZoneID, &b.CustomerName, &b.CustomerEmail,
		&b.CheckInDate, &b.CheckOutDate, &b.TotalPrice, &b.Status, &b.PaymentStatus,
		&b.CreatedAt, &b.UpdatedAt, &b.BeachName, &b.BeachLocation,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}

	ids, err := r.SunbedIDs(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.SunbedIDs = ids
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.beach_id", "b.zone_id", "b.customer_name", "b.customer_email",
		"b.check_in_date", "b.check_out_date", "b.total_price", "b.status", "b.payment_status",
		"b.created_at", "b.updated_at", "be.name", "be.location",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.beaches be ON b.beach_id = be.id")

	if filter.BeachID != "" {
		query = query.Where(squirrel.Eq{"b.beach_id": filter.BeachID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if !filter.CheckInFrom.IsZero() {
		query = query.Where(squirrel.GtOrEq{"b.check_in_date": filter.CheckInFrom})
	}
	if !filter.CheckInTo.IsZero() {
		query = query.Where(squirrel.LtOrEq{"b.check_in_date": filter.CheckInTo})
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"b.customer_name": kw},
			squirrel.ILike{"b.customer_email": kw},
		})
	}

	query = query.OrderBy("b.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.BeachID, &b.ZoneID, &b.CustomerName, &b.CustomerEmail,
			&b.CheckInDate, &b.CheckOutDate, &b.TotalPrice, &b.Status, &b.PaymentStatus,
			&b.CreatedAt, &b.UpdatedAt, &b.BeachName, &b.BeachLocation,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	ct, err := r.q(ctx).Exec(ctx,
		`UPDATE public.bookings
		 SET customer_name = $1, customer_email = $2, check_in_date = $3, check_out_date = $4,
		     total_price = $5, status = $6, payment_status = $7, updated_at = now()
		 WHERE id = $8`,
		b.CustomerName, b.CustomerEmail, b.CheckInDate, b.CheckOutDate,
		b.TotalPrice, b.Status, b.PaymentStatus, b.ID,
	)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.q(ctx).Exec(ctx, `DELETE FROM public.bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.q(ctx).QueryRow(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE check_in_date >= current_date AND status IN ('pending', 'confirmed'))
		 FROM public.bookings`,
	).Scan(&s.Total, &s.Upcoming)
	if err != nil {
		return nil, fmt.Errorf("booking stats failed: %w", err)
	}
	return &s, nil
}

// ------------------------
//   Sunbed link methods
// ------------------------

func (r *pgxRepository) AddSunbedLinks(ctx context.Context, bookingID string, sunbedIDs []string) error {
	if len(sunbedIDs) == 0 {
		return nil
	}
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Insert("public.booking_sunbeds").Columns("booking_id", "sunbed_id")
	for _, id := range sunbedIDs {
		query = query.Values(bookingID, id)
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build add sunbed links query failed: %w", err)
	}
	if _, err := r.q(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("add sunbed links failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) SunbedIDs(ctx context.Context, bookingID string) ([]string, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT sunbed_id FROM public.booking_sunbeds WHERE booking_id = $1`,
		bookingID,
	)
	if err != nil {
		return nil, fmt.Errorf("list booking sunbeds failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan booking sunbed failed: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *pgxRepository) RemoveSunbedLinks(ctx context.Context, bookingID string) error {
	if _, err := r.q(ctx).Exec(ctx,
		`DELETE FROM public.booking_sunbeds WHERE booking_id = $1`, bookingID,
	); err != nil {
		return fmt.Errorf("remove sunbed links failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) RemoveSunbedLinksByZone(ctx context.Context, zoneID string) error {
	if _, err := r.q(ctx).Exec(ctx,
		`DELETE FROM public.booking_sunbeds bs
		 USING public.sunbeds s
		 WHERE bs.sunbed_id = s.id AND s.zone_id = $1`,
		zoneID,
	); err != nil {
		return fmt.Errorf("remove sunbed links by zone failed: %w", err)
	}
	return nil
}

// PurgeByBeach drops the beach's bookings and their sunbed links. Runs as
// part of the beach delete cascade.
func (r *pgxRepository) PurgeByBeach(ctx context.Context, beachID string) error {
	if _, err := r.q(ctx).Exec(ctx,
		`DELETE FROM public.booking_sunbeds bs
		 USING public.bookings b
		 WHERE bs.booking_id = b.id AND b.beach_id = $1`,
		beachID,
	); err != nil {
		return fmt.Errorf("purge booking sunbed links failed: %w", err)
	}
	if _, err := r.q(ctx).Exec(ctx,
		`DELETE FROM public.bookings WHERE beach_id = $1`, beachID,
	); err != nil {
		return fmt.Errorf("purge bookings failed: %w", err)
	}
	return nil
}
