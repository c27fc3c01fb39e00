package finance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playamar/beach-admin-backend/internal/pkg/apperror"
)

type fakeRepo struct {
	records map[string]*Record
	payouts map[string]*Payout
	seq     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[string]*Record{}, payouts: map[string]*Payout{}}
}

func (r *fakeRepo) CreateRecord(_ context.Context, rec *Record) error {
	r.seq++
	rec.ID = fmt.Sprintf("record-%d", r.seq)
	rec.CreatedAt = time.Now()
	copied := *rec
	r.records[rec.ID] = &copied
	return nil
}

func (r *fakeRepo) ListRecords(_ context.Context, _ RecordFilter) ([]*Record, int, error) {
	var out []*Record
	for _, rec := range r.records {
		copied := *rec
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (r *fakeRepo) DeleteRecord(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return ErrRecordNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeRepo) SummaryByType(_ context.Context, _ string) ([]TypeTotal, error) {
	totals := map[RecordType]float64{}
	for _, rec := range r.records {
		totals[rec.Type] += rec.Amount
	}
	var out []TypeTotal
	for typ, total := range totals {
		out = append(out, TypeTotal{Type: typ, Total: total})
	}
	return out, nil
}

func (r *fakeRepo) MonthlyRevenue(_ context.Context, _ int) ([]MonthlyRevenue, error) {
	return nil, nil
}

func (r *fakeRepo) Overview(_ context.Context) (*Overview, error) {
	var o Overview
	for _, rec := range r.records {
		if rec.Type == TypeExpense {
			o.TotalExpenses += rec.Amount
		} else {
			o.TotalRevenue += rec.Amount
		}
	}
	for _, p := range r.payouts {
		if p.Status == PayoutPending {
			o.PendingPayouts += p.Amount
		}
	}
	return &o, nil
}

func (r *fakeRepo) RemoveByBooking(_ context.Context, bookingID string) error {
	for id, rec := range r.records {
		if rec.BookingID != nil && *rec.BookingID == bookingID {
			delete(r.records, id)
		}
	}
	return nil
}

func (r *fakeRepo) PurgeByBeach(_ context.Context, beachID string) error {
	for id, rec := range r.records {
		if rec.BeachID != nil && *rec.BeachID == beachID {
			delete(r.records, id)
		}
	}
	for id, p := range r.payouts {
		if p.BeachID == beachID {
			delete(r.payouts, id)
		}
	}
	return nil
}

func (r *fakeRepo) CreatePayout(_ context.Context, p *Payout) error {
	r.seq++
	p.ID = fmt.Sprintf("payout-%d", r.seq)
	p.RequestedDate = time.Now()
	copied := *p
	r.payouts[p.ID] = &copied
	return nil
}

func (r *fakeRepo) GetPayout(_ context.Context, id string) (*Payout, error) {
	p, ok := r.payouts[id]
	if !ok {
		return nil, ErrPayoutNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepo) ListPayouts(_ context.Context, _ PayoutFilter) ([]*Payout, int, error) {
	var out []*Payout
	for _, p := range r.payouts {
		copied := *p
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (r *fakeRepo) UpdatePayout(_ context.Context, p *Payout) error {
	if _, ok := r.payouts[p.ID]; !ok {
		return ErrPayoutNotFound
	}
	copied := *p
	r.payouts[p.ID] = &copied
	return nil
}

func (r *fakeRepo) DeletePayout(_ context.Context, id string) error {
	if _, ok := r.payouts[id]; !ok {
		return ErrPayoutNotFound
	}
	delete(r.payouts, id)
	return nil
}

func TestCreateRecordValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	var appErr *apperror.AppError

	_, err := svc.CreateRecord(context.Background(), RecordInput{Type: "bogus", Amount: 10})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	_, err = svc.CreateRecord(context.Background(), RecordInput{Type: TypeExpense, Amount: 0})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	rec, err := svc.CreateRecord(context.Background(), RecordInput{Type: TypeExpense, Amount: 40, Description: "umbrella repair"})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.RecordDate.IsZero())
}

func TestRecordBookingIncomeWritesBothSides(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	require.NoError(t, svc.RecordBookingIncome(context.Background(), "booking-1", "beach-1", 100))

	require.Len(t, repo.records, 2)
	byType := map[RecordType]*Record{}
	for _, rec := range repo.records {
		byType[rec.Type] = rec
	}
	income := byType[TypeRentalIncome]
	require.NotNil(t, income)
	assert.Equal(t, 100.0, income.Amount)
	assert.Equal(t, "Rental income for booking booking-1", income.Description)

	fee := byType[TypeServiceFee]
	require.NotNil(t, fee)
	assert.InDelta(t, 10.0, fee.Amount, 1e-9)
	assert.Equal(t, "Service fee for booking booking-1", fee.Description)

	// Zero amounts write nothing.
	require.NoError(t, svc.RecordBookingIncome(context.Background(), "booking-2", "beach-1", 0))
	assert.Len(t, repo.records, 2)
}

func TestRemoveByBookingDropsBothRecords(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	require.NoError(t, svc.RecordBookingIncome(context.Background(), "booking-1", "beach-1", 100))
	require.NoError(t, svc.RecordBookingIncome(context.Background(), "booking-2", "beach-1", 50))

	require.NoError(t, svc.RemoveByBooking(context.Background(), "booking-1"))

	require.Len(t, repo.records, 2)
	for _, rec := range repo.records {
		assert.Equal(t, "booking-2", *rec.BookingID)
	}
}

func TestProcessPayoutTransitions(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	p, err := svc.RequestPayout(context.Background(), PayoutInput{BeachID: "beach-1", Amount: 500})
	require.NoError(t, err)
	assert.Equal(t, PayoutPending, p.Status)

	var appErr *apperror.AppError

	// Completing a pending payout is a conflict.
	_, err = svc.ProcessPayout(context.Background(), p.ID, PayoutCompleted, "user-1", "")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)

	approved, err := svc.ProcessPayout(context.Background(), p.ID, PayoutApproved, "user-1", "looks fine")
	require.NoError(t, err)
	assert.Equal(t, PayoutApproved, approved.Status)
	require.NotNil(t, approved.ProcessedBy)
	assert.Equal(t, "user-1", *approved.ProcessedBy)
	assert.NotNil(t, approved.ProcessedDate)
	assert.Equal(t, "looks fine", approved.Notes)

	// Approving or rejecting twice is a conflict.
	_, err = svc.ProcessPayout(context.Background(), p.ID, PayoutRejected, "user-1", "")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)

	completed, err := svc.ProcessPayout(context.Background(), p.ID, PayoutCompleted, "user-2", "")
	require.NoError(t, err)
	assert.Equal(t, PayoutCompleted, completed.Status)

	// "pending" is not a processing target.
	_, err = svc.ProcessPayout(context.Background(), p.ID, PayoutPending, "user-1", "")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestRequestPayoutValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	var appErr *apperror.AppError

	_, err := svc.RequestPayout(context.Background(), PayoutInput{Amount: 10})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	_, err = svc.RequestPayout(context.Background(), PayoutInput{BeachID: "beach-1", Amount: -5})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}
