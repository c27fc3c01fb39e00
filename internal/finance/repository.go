package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playamar/beach-admin-backend/internal/db"
)

// Repository defines data access methods for finance records and payouts.
type Repository interface {
	CreateRecord(ctx context.Context, rec *Record) error
	ListRecords(ctx context.Context, filter RecordFilter) ([]*Record, int, error)
	DeleteRecord(ctx context.Context, id string) error
	SummaryByType(ctx context.Context, beachID string) ([]TypeTotal, error)
	MonthlyRevenue(ctx context.Context, months int) ([]MonthlyRevenue, error)
	Overview(ctx context.Context) (*Overview, error)
	RemoveByBooking(ctx context.Context, bookingID string) error
	PurgeByBeach(ctx context.Context, beachID string) error
	// Payout methods
	CreatePayout(ctx context.Context, p *Payout) error
	GetPayout(ctx context.Context, id string) (*Payout, error)
	ListPayouts(ctx context.Context, filter PayoutFilter) ([]*Payout, int, error)
	UpdatePayout(ctx context.Context, p *Payout) error
	DeletePayout(ctx context.Context, id string) error
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

func (r *pgxRepository) CreateRecord(ctx context.Context, rec *Record) error {
	err := r.q(ctx).QueryRow(ctx,
		`INSERT INTO public.finance_records (type, amount, description, booking_id, beach_id, record_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		rec.Type, rec.Amount, rec.Description, rec.BookingID, rec.BeachID, rec.RecordDate,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("create finance record failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListRecords(ctx context.Context, filter RecordFilter) ([]*Record, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "type", "amount", "description", "booking_id", "beach_id", "record_date", "created_at",
		"count(*) OVER() as total_count",
	).
		From("public.finance_records")

	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"type": filter.Type})
	}
	if filter.BeachID != "" {
		query = query.Where(squirrel.Eq{"beach_id": filter.BeachID})
	}
	if filter.Month != 0 {
		query = query.Where(squirrel.Expr("extract(month from record_date) = ?", filter.Month))
	}
	if filter.Year != 0 {
		query = query.Where(squirrel.Expr("extract(year from record_date) = ?", filter.Year))
	}

	query = query.OrderBy("record_date DESC")

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
		return nil, 0, fmt.Errorf("build list finance records query failed: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list finance records failed: %w", err)
	}
	defer rows.Close()

	var records []*Record
	var total int
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID, &rec.Type, &rec.Amount, &rec.Description, &rec.BookingID, &rec.BeachID,
			&rec.RecordDate, &rec.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan finance record failed: %w", err)
		}
		records = append(records, &rec)
	}
	return records, total, nil
}

func (r *pgxRepository) DeleteRecord(ctx context.Context, id string) error {
	ct, err := r.q(ctx).Exec(ctx, `DELETE FROM public.finance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete finance record failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *pgxRepository) SummaryByType(ctx context.Context, beachID string) ([]TypeTotal, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("type", "coalesce(sum(amount), 0)").
		From("public.finance_records").
		GroupBy("type").
		OrderBy("type")
	if beachID != "" {
		query = query.Where(squirrel.Eq{"beach_id": beachID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build finance summary query failed: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("finance summary failed: %w", err)
	}
	defer rows.Close()

	var totals []TypeTotal
	for rows.Next() {
		var t TypeTotal
		if err := rows.Scan(&t.Type, &t.Total); err != nil {
			return nil, fmt.Errorf("scan finance summary failed: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, nil
}

func (r *pgxRepository) MonthlyRevenue(ctx context.Context, months int) ([]MonthlyRevenue, error) {
	rows, err := r.q(ctx).Query(ctx,
		`SELECT extract(year from record_date)::int AS y,
		        extract(month from record_date)::int AS m,
		        coalesce(sum(amount), 0)
		 FROM public.finance_records
		 WHERE type IN ('rental_income', 'service_fee')
		   AND record_date >= date_trunc('month', current_date) - make_interval(months => $1 - 1)
		 GROUP BY y, m
		 ORDER BY y, m`,
		months,
	)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue failed: %w", err)
	}
	defer rows.Close()

	var out []MonthlyRevenue
	for rows.Next() {
		var mr MonthlyRevenue
		if err := rows.Scan(&mr.Year, &mr.Month, &mr.Revenue); err != nil {
			return nil, fmt.Errorf("scan monthly revenue failed: %w", err)
		}
		out = append(out, mr)
	}
	return out, nil
}

func (r *pgxRepository) Overview(ctx context.Context) (*Overview, error) {
	var o Overview
	err := r.q(ctx).QueryRow(ctx,
		`SELECT
		   coalesce((SELECT sum(amount) FROM public.finance_records WHERE type IN ('rental_income', 'service_fee')), 0),
		   coalesce((SELECT sum(amount) FROM public.finance_records WHERE type = 'expense'), 0),
		   coalesce((SELECT sum(amount) FROM public.payouts WHERE status = 'pending'), 0)`,
	).Scan(&o.TotalRevenue, &o.TotalExpenses, &o.PendingPayouts)
	if err != nil {
		return nil, fmt.Errorf("finance overview failed: %w", err)
	}
	return &o, nil
}

func (r *pgxRepository) RemoveByBooking(ctx context.Context, bookingID string) error {
	if _, err := r.q(ctx).Exec(ctx,
		`DELETE FROM public.finance_records WHERE booking_id = $1`, bookingID,
	); err != nil {
		return fmt.Errorf("remove finance records by booking failed: %w", err)
	}
	return nil
}

// PurgeByBeach removes the beach's finance records and payouts, including
// records attached to the beach's bookings. Runs as part of the beach
// delete cascade.
func (r *pgxRepository) PurgeByBeach(ctx context.Context, beachID string) error {
	if _, err := r.q(ctx).Exec(ctx,
		`DELETE FROM public.finance_records
		 WHERE beach_id = $1
		    OR booking_id IN (SELECT id FROM public.bookings WHERE beach_id = $1)`,
		beachID,
	); err != nil {
		return fmt.Errorf("purge finance records failed: %w", err)
	}
	if _, err := r.q(ctx).Exec(ctx,
		`DELETE FROM public.payouts WHERE beach_id = $1`, beachID,
	); err != nil {
		return fmt.Errorf("purge payouts failed: %w", err)
	}
	return nil
}

// ------------------------
//     Payout methods
// ------------------------

func (r *pgxRepository) CreatePayout(ctx context.Context, p *Payout) error {
	err := r.q(ctx).QueryRow(ctx,
		`INSERT INTO public.payouts (beach_id, amount, status, notes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, requested_date`,
		p.BeachID, p.Amount, p.Status, p.Notes,
	).Scan(&p.ID, &p.RequestedDate)
	if err != nil {
		return fmt.Errorf("create payout failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetPayout(ctx context.Context, id string) (*Payout, error) {
	var p Payout
	err := r.q(ctx).QueryRow(ctx,
		`SELECT p.id, p.beach_id, b.name, p.amount, p.status, p.requested_date,
		        p.processed_date, p.processed_by, p.notes
		 FROM public.payouts p
		 JOIN public.beaches b ON p.beach_id = b.id
		 WHERE p.id = $1`,
		id,
	).Scan(
		&p.ID, &p.BeachID, &p.BeachName, &p.Amount, &p.Status, &p.RequestedDate,
		&p.ProcessedDate, &p.ProcessedBy, &p.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPayoutNotFound
		}
		return nil, fmt.Errorf("get payout failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) ListPayouts(ctx context.Context, filter PayoutFilter) ([]*Payout, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"p.id", "p.beach_id", "b.name", "p.amount", "p.status", "p.requested_date",
		"p.processed_date", "p.processed_by", "p.notes",
		"count(*) OVER() as total_count",
	).
		From("public.payouts p").
		Join("public.beaches b ON p.beach_id = b.id")

	if filter.BeachID != "" {
		query = query.Where(squirrel.Eq{"p.beach_id": filter.BeachID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"p.status": filter.Status})
	}

	query = query.OrderBy("p.requested_date DESC")

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
		return nil, 0, fmt.Errorf("build list payouts query failed: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payouts failed: %w", err)
	}
	defer rows.Close()

	var payouts []*Payout
	var total int
	for rows.Next() {
		var p Payout
		if err := rows.Scan(
			&p.ID, &p.BeachID, &p.BeachName, &p.Amount, &p.Status, &p.RequestedDate,
			&p.ProcessedDate, &p.ProcessedBy, &p.Notes, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan payout failed: %w", err)
		}
		payouts = append(payouts, &p)
	}
	return payouts, total, nil
}

func (r *pgxRepository) UpdatePayout(ctx context.Context, p *Payout) error {
	ct, err := r.q(ctx).Exec(ctx,
		`UPDATE public.payouts
		 SET amount = $1, status = $2, processed_date = $3, processed_by = $4, notes = $5
		 WHERE id = $6`,
		p.Amount, p.Status, p.ProcessedDate, p.ProcessedBy, p.Notes, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update payout failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrPayoutNotFound
	}
	return nil
}

func (r *pgxRepository) DeletePayout(ctx context.Context, id string) error {
	ct, err := r.q(ctx).Exec(ctx, `DELETE FROM public.payouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payout failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrPayoutNotFound
	}
	return nil
}
