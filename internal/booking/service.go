package booking

import (
	"context"
	"time"

	"github.com/playamar/beach-admin-backend/internal/beach"
	"github.com/playamar/beach-admin-backend/internal/db"
	"github.com/playamar/beach-admin-backend/internal/notify"
	"github.com/playamar/beach-admin-backend/internal/pkg/apperror"
)

// BeachCoordinator is the slice of the beach module the booking module
// drives: holding and freeing sunbeds and refreshing derived figures.
// Implemented by beach.Service.
type BeachCoordinator interface {
	RequireBeach(ctx context.Context, beachID string) error
	ReserveForBooking(ctx context.Context, beachID string, sunbedIDs []string) error
	ReleaseForBooking(ctx context.Context, sunbedIDs []string) ([]string, error)
	RecomputeOccupancy(ctx context.Context, beachID string) (*beach.Beach, error)
	EmitOccupancy(b *beach.Beach)
}

// FinanceRecorder writes the money side of a booking. Implemented by the
// finance service.
type FinanceRecorder interface {
	RecordBookingIncome(ctx context.Context, bookingID, beachID string, amount float64) error
	RemoveByBooking(ctx context.Context, bookingID string) error
}

// CreateInput carries the fields of a new booking.
type CreateInput struct {
	BeachID       string
	ZoneID        *string
	CustomerName  string
	CustomerEmail string
	CheckInDate   time.Time
	CheckOutDate  time.Time
	TotalPrice    float64
	Status        Status
	PaymentStatus PaymentStatus
	SunbedIDs     []string
}

// UpdateInput carries a partial booking update. Nil fields stay untouched.
type UpdateInput struct {
	CustomerName  *string
	CustomerEmail *string
	CheckInDate   *time.Time
	CheckOutDate  *time.Time
	TotalPrice    *float64
	Status        *Status
	PaymentStatus *PaymentStatus
}

// Service defines business logic for bookings. Creating, cancelling and
// deleting a booking move its sunbeds and refresh the owning beach's
// occupancy inside one transaction.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Booking, error)
	Cancel(ctx context.Context, id string) (*Booking, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo    Repository
	beaches BeachCoordinator
	finance FinanceRecorder
	tx      db.TxManager
	emitter notify.Emitter
}

func NewService(repo Repository, beaches BeachCoordinator, finance FinanceRecorder, tx db.TxManager, emitter notify.Emitter) Service {
	return &service{repo: repo, beaches: beaches, finance: finance, tx: tx, emitter: emitter}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Booking, error) {
	if input.CustomerName == "" {
		return nil, apperror.BadRequest("customer name is required")
	}
	if input.CheckInDate.IsZero() || input.CheckOutDate.IsZero() {
		return nil, apperror.BadRequest("check-in and check-out dates are required")
	}
	if input.CheckOutDate.Before(input.CheckInDate) {
		return nil, apperror.BadRequest("check-out must not be before check-in")
	}
	if input.Status == "" {
		input.Status = StatusPending
	}
	if !ValidStatus(input.Status) {
		return nil, apperror.BadRequest("invalid booking status")
	}
	if input.PaymentStatus == "" {
		input.PaymentStatus = PaymentPending
	}
	if !ValidPaymentStatus(input.PaymentStatus) {
		return nil, apperror.BadRequest("invalid payment status")
	}

	b := &Booking{
		BeachID:       input.BeachID,
		ZoneID:        input.ZoneID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CheckInDate:   input.CheckInDate,
		CheckOutDate:  input.CheckOutDate,
		TotalPrice:    input.TotalPrice,
		Status:        input.Status,
		PaymentStatus: input.PaymentStatus,
		SunbedIDs:     input.SunbedIDs,
	}

	var updated *beach.Beach
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.beaches.RequireBeach(ctx, input.BeachID); err != nil {
			return err
		}
		if len(input.SunbedIDs) > 0 {
			if err := s.beaches.ReserveForBooking(ctx, input.BeachID, input.SunbedIDs); err != nil {
				return err
			}
		}
		if err := s.repo.Create(ctx, b); err != nil {
			return err
		}
		if err := s.repo.AddSunbedLinks(ctx, b.ID, input.SunbedIDs); err != nil {
			return err
		}
		if b.Status == StatusConfirmed || b.Status == StatusCompleted {
			if err := s.finance.RecordBookingIncome(ctx, b.ID, b.BeachID, b.TotalPrice); err != nil {
				return err
			}
		}
		var err error
		updated, err = s.beaches.RecomputeOccupancy(ctx, input.BeachID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.emit(notify.SubjectBookingCreated, notify.BookingCreatedEvent{
		BookingID: b.ID,
		BeachID:   b.BeachID,
		SunbedIDs: b.SunbedIDs,
	})
	s.beaches.EmitOccupancy(updated)
	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, input UpdateInput) (*Booking, error) {
	if input.Status != nil && *input.Status == StatusCancelled {
		return s.Cancel(ctx, id)
	}

	var b *Booking
	var updated *beach.Beach
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		b, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		prevStatus := b.Status

		if input.CustomerName != nil {
			b.CustomerName = *input.CustomerName
		}
		if input.CustomerEmail != nil {
			b.CustomerEmail = *input.CustomerEmail
		}
		if input.CheckInDate != nil {
			b.CheckInDate = *input.CheckInDate
		}
		if input.CheckOutDate != nil {
			b.CheckOutDate = *input.CheckOutDate
		}
		if b.CheckOutDate.Before(b.CheckInDate) {
			return apperror.BadRequest("check-out must not be before check-in")
		}
		if input.TotalPrice != nil {
			b.TotalPrice = *input.TotalPrice
		}
		if input.Status != nil {
			if !ValidStatus(*input.Status) {
				return apperror.BadRequest("invalid booking status")
			}
			b.Status = *input.Status
		}
		if input.PaymentStatus != nil {
			if !ValidPaymentStatus(*input.PaymentStatus) {
				return apperror.BadRequest("invalid payment status")
			}
			b.PaymentStatus = *input.PaymentStatus
		}

		// Reviving a cancelled booking takes its beds back.
		if prevStatus == StatusCancelled && b.Status.Occupying() && len(b.SunbedIDs) > 0 {
			if err := s.beaches.ReserveForBooking(ctx, b.BeachID, b.SunbedIDs); err != nil {
				return err
			}
		}
		if prevStatus == StatusPending && (b.Status == StatusConfirmed || b.Status == StatusCompleted) {
			if err := s.finance.RecordBookingIncome(ctx, b.ID, b.BeachID, b.TotalPrice); err != nil {
				return err
			}
		}

		if err := s.repo.Update(ctx, b); err != nil {
			return err
		}
		updated, err = s.beaches.RecomputeOccupancy(ctx, b.BeachID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.beaches.EmitOccupancy(updated)
	return b, nil
}

// Cancel releases the booking's sunbeds and marks a paid booking as
// refunded. Cancelling an already cancelled booking is a no-op.
func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	var b *Booking
	var updated *beach.Beach
	var freed []string
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		b, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if b.Status == StatusCancelled {
			return nil
		}

		freed, err = s.beaches.ReleaseForBooking(ctx, b.SunbedIDs)
		if err != nil {
			return err
		}
		b.Status = StatusCancelled
		if b.PaymentStatus == PaymentPaid {
			b.PaymentStatus = PaymentRefunded
		}
		if err := s.repo.Update(ctx, b); err != nil {
			return err
		}
		updated, err = s.beaches.RecomputeOccupancy(ctx, b.BeachID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return b, nil
	}

	s.emit(notify.SubjectBookingCancelled, notify.BookingCancelledEvent{
		BookingID:    b.ID,
		BeachID:      b.BeachID,
		FreedSunbeds: freed,
	})
	s.beaches.EmitOccupancy(updated)
	return b, nil
}

// Delete removes the booking entirely, freeing its beds and dropping its
// finance records.
func (s *service) Delete(ctx context.Context, id string) error {
	var b *Booking
	var updated *beach.Beach
	var freed []string
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		b, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if b.Status.Occupying() {
			freed, err = s.beaches.ReleaseForBooking(ctx, b.SunbedIDs)
			if err != nil {
				return err
			}
		}
		if err := s.finance.RemoveByBooking(ctx, id); err != nil {
			return err
		}
		if err := s.repo.RemoveSunbedLinks(ctx, id); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		updated, err = s.beaches.RecomputeOccupancy(ctx, b.BeachID)
		return err
	})
	if err != nil {
		return err
	}

	s.emit(notify.SubjectBookingCancelled, notify.BookingCancelledEvent{
		BookingID:    b.ID,
		BeachID:      b.BeachID,
		FreedSunbeds: freed,
	})
	s.beaches.EmitOccupancy(updated)
	return nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

func (s *service) emit(subject string, payload any) {
	_ = s.emitter.Emit(subject, payload)
}
