package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/playamar/beach-admin-backend/internal/pkg/apperror"
)

// RecordInput carries the fields of a manually created finance record.
type RecordInput struct {
	Type        RecordType
	Amount      float64
	Description string
	BeachID     *string
	RecordDate  time.Time
}

// PayoutInput carries the fields of a new payout request.
type PayoutInput struct {
	BeachID string
	Amount  float64
	Notes   string
}

// Service defines business logic for finance records and payouts.
type Service interface {
	CreateRecord(ctx context.Context, input RecordInput) (*Record, error)
	ListRecords(ctx context.Context, filter RecordFilter) ([]*Record, int, error)
	DeleteRecord(ctx context.Context, id string) error
	SummaryByType(ctx context.Context, beachID string) ([]TypeTotal, error)
	MonthlyRevenue(ctx context.Context, months int) ([]MonthlyRevenue, error)
	Overview(ctx context.Context) (*Overview, error)
	// Booking hooks used by the booking module.
	RecordBookingIncome(ctx context.Context, bookingID, beachID string, amount float64) error
	RemoveByBooking(ctx context.Context, bookingID string) error
	// Payouts
	RequestPayout(ctx context.Context, input PayoutInput) (*Payout, error)
	GetPayout(ctx context.Context, id string) (*Payout, error)
	ListPayouts(ctx context.Context, filter PayoutFilter) ([]*Payout, int, error)
	ProcessPayout(ctx context.Context, id string, status PayoutStatus, processedBy, notes string) (*Payout, error)
	DeletePayout(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateRecord(ctx context.Context, input RecordInput) (*Record, error) {
	if !ValidRecordType(input.Type) {
		return nil, apperror.BadRequest("invalid record type")
	}
	if input.Amount <= 0 {
		return nil, apperror.BadRequest("amount must be positive")
	}
	if input.RecordDate.IsZero() {
		input.RecordDate = time.Now()
	}

	rec := &Record{
		Type:        input.Type,
		Amount:      input.Amount,
		Description: input.Description,
		BeachID:     input.BeachID,
		RecordDate:  input.RecordDate,
	}
	if err := s.repo.CreateRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) ListRecords(ctx context.Context, filter RecordFilter) ([]*Record, int, error) {
	if filter.Month < 0 || filter.Month > 12 {
		return nil, 0, apperror.BadRequest("month must be between 1 and 12")
	}
	return s.repo.ListRecords(ctx, filter)
}

func (s *service) DeleteRecord(ctx context.Context, id string) error {
	return s.repo.DeleteRecord(ctx, id)
}

func (s *service) SummaryByType(ctx context.Context, beachID string) ([]TypeTotal, error) {
	totals, err := s.repo.SummaryByType(ctx, beachID)
	if err != nil {
		return nil, err
	}
	if totals == nil {
		totals = []TypeTotal{}
	}
	return totals, nil
}

func (s *service) MonthlyRevenue(ctx context.Context, months int) ([]MonthlyRevenue, error) {
	if months < 1 {
		months = 6
	}
	out, err := s.repo.MonthlyRevenue(ctx, months)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []MonthlyRevenue{}
	}
	return out, nil
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	return s.repo.Overview(ctx)
}

// RecordBookingIncome writes the two sides of a paid booking: the full
// amount as rental income and the platform's cut as a service fee.
func (s *service) RecordBookingIncome(ctx context.Context, bookingID, beachID string, amount float64) error {
	if amount <= 0 {
		return nil
	}
	now := time.Now()
	income := &Record{
		Type:        TypeRentalIncome,
		Amount:      amount,
		Description: fmt.Sprintf("Rental income for booking %s", bookingID),
		BookingID:   &bookingID,
		BeachID:     &beachID,
		RecordDate:  now,
	}
	if err := s.repo.CreateRecord(ctx, income); err != nil {
		return err
	}
	fee := &Record{
		Type:        TypeServiceFee,
		Amount:      amount * ServiceFeeShare,
		Description: fmt.Sprintf("Service fee for booking %s", bookingID),
		BookingID:   &bookingID,
		BeachID:     &beachID,
		RecordDate:  now,
	}
	return s.repo.CreateRecord(ctx, fee)
}

func (s *service) RemoveByBooking(ctx context.Context, bookingID string) error {
	return s.repo.RemoveByBooking(ctx, bookingID)
}

// ------------------------
//        Payouts
// ------------------------

func (s *service) RequestPayout(ctx context.Context, input PayoutInput) (*Payout, error) {
	if input.BeachID == "" {
		return nil, apperror.BadRequest("beach id is required")
	}
	if input.Amount <= 0 {
		return nil, apperror.BadRequest("amount must be positive")
	}

	p := &Payout{
		BeachID: input.BeachID,
		Amount:  input.Amount,
		Status:  PayoutPending,
		Notes:   input.Notes,
	}
	if err := s.repo.CreatePayout(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.GetPayout(ctx, p.ID)
}

func (s *service) GetPayout(ctx context.Context, id string) (*Payout, error) {
	return s.repo.GetPayout(ctx, id)
}

func (s *service) ListPayouts(ctx context.Context, filter PayoutFilter) ([]*Payout, int, error) {
	return s.repo.ListPayouts(ctx, filter)
}

// ProcessPayout moves a payout through its lifecycle. Only pending payouts
// can be approved or rejected, and only approved payouts can be completed.
func (s *service) ProcessPayout(ctx context.Context, id string, status PayoutStatus, processedBy, notes string) (*Payout, error) {
	if !ValidPayoutStatus(status) || status == PayoutPending {
		return nil, apperror.BadRequest("invalid payout status")
	}

	p, err := s.repo.GetPayout(ctx, id)
	if err != nil {
		return nil, err
	}
	switch status {
	case PayoutApproved, PayoutRejected:
		if p.Status != PayoutPending {
			return nil, apperror.Conflict("payout has already been processed")
		}
	case PayoutCompleted:
		if p.Status != PayoutApproved {
			return nil, apperror.Conflict("only approved payouts can be completed")
		}
	}

	now := time.Now()
	p.Status = status
	p.ProcessedDate = &now
	p.ProcessedBy = &processedBy
	if notes != "" {
		p.Notes = notes
	}
	if err := s.repo.UpdatePayout(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeletePayout(ctx context.Context, id string) error {
	return s.repo.DeletePayout(ctx, id)
}
