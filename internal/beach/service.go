package beach

import (
	"context"
	"fmt"

	"github.com/playamar/beach-admin-backend/internal/db"
	"github.com/playamar/beach-admin-backend/internal/notify"
	"github.com/playamar/beach-admin-backend/internal/pkg/apperror"
)

// UserDirectory is the slice of the user module the beach module needs for
// admin assignment checks.
type UserDirectory interface {
	Exists(ctx context.Context, userID string) (bool, error)
	CountAdmins(ctx context.Context) (int, error)
}

// BookingLinkCleaner removes booking-side references to sunbeds so that zone
// and beach mutations can delete bed rows without violating foreign keys.
type BookingLinkCleaner interface {
	RemoveSunbedLinksByZone(ctx context.Context, zoneID string) error
	PurgeByBeach(ctx context.Context, beachID string) error
}

// FinanceCleaner removes finance records and payouts tied to a beach.
type FinanceCleaner interface {
	PurgeByBeach(ctx context.Context, beachID string) error
}

// AlertCleaner removes alerts tied to a beach.
type AlertCleaner interface {
	PurgeByBeach(ctx context.Context, beachID string) error
}

// CreateInput carries the caller-editable fields of a new beach.
// TotalCapacity seeds the legacy capacity figure used until zones exist.
type CreateInput struct {
	Name          string
	Location      string
	Status        Status
	PricePerDay   float64
	Amenities     []string
	Images        []string
	TotalCapacity int
}

// UpdateInput carries a partial beach update. Nil fields are left untouched.
type UpdateInput struct {
	Name        *string
	Location    *string
	Status      *Status
	PricePerDay *float64
	Amenities   *[]string
}

// ZoneInput describes a new zone. When Sunbeds is non-empty it overrides the
// generated grid wholesale.
type ZoneInput struct {
	Name    string
	Rows    int
	Cols    int
	Sunbeds []Sunbed
}

// ZonePatch carries a partial zone update. Nil dimensions keep the current
// grid; a non-empty Sunbeds list replaces the zone's beds outright.
type ZonePatch struct {
	Name    *string
	Rows    *int
	Cols    *int
	Sunbeds []Sunbed
}

// Service defines business logic for beaches, zones, sunbeds and admin
// assignment. Multi-step mutations run in a single transaction and the
// derived occupancy figures are recomputed before that transaction commits.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*Beach, error)
	GetByID(ctx context.Context, id string) (*Beach, error)
	List(ctx context.Context, filter Filter) ([]*Beach, int, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Beach, error)
	Delete(ctx context.Context, id string) error
	AttachImage(ctx context.Context, beachID, url string) (*Beach, error)
	OccupancyOverview(ctx context.Context) ([]OccupancyOverviewItem, error)
	StatsSummary(ctx context.Context) (*StatsSummary, error)
	// Zone operations
	AddZone(ctx context.Context, beachID string, input ZoneInput) (*Beach, error)
	UpdateZone(ctx context.Context, beachID, zoneID string, patch ZonePatch) (*Beach, error)
	DeleteZone(ctx context.Context, beachID, zoneID string) (*Beach, error)
	UpdateSunbedStatus(ctx context.Context, beachID, zoneID, sunbedID string, status SunbedStatus) (*Beach, error)
	// Admin assignment
	AssignAdmins(ctx context.Context, beachID string, userIDs []string) (*Beach, error)
	RemoveAdmin(ctx context.Context, beachID, userID string) (*Beach, error)
	// Booking coordination. These expect to run inside the caller's transaction.
	RequireBeach(ctx context.Context, beachID string) error
	ReserveForBooking(ctx context.Context, beachID string, sunbedIDs []string) error
	ReleaseForBooking(ctx context.Context, sunbedIDs []string) ([]string, error)
	RecomputeOccupancy(ctx context.Context, beachID string) (*Beach, error)
	EmitOccupancy(b *Beach)
}

type service struct {
	repo     Repository
	users    UserDirectory
	bookings BookingLinkCleaner
	finance  FinanceCleaner
	alerts   AlertCleaner
	tx       db.TxManager
	emitter  notify.Emitter
}

func NewService(
	repo Repository,
	users UserDirectory,
	bookings BookingLinkCleaner,
	finance FinanceCleaner,
	alerts AlertCleaner,
	tx db.TxManager,
	emitter notify.Emitter,
) Service {
	return &service{
		repo:     repo,
		users:    users,
		bookings: bookings,
		finance:  finance,
		alerts:   alerts,
		tx:       tx,
		emitter:  emitter,
	}
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Beach, error) {
	if input.Name == "" {
		return nil, apperror.BadRequest("name is required")
	}
	if input.Status == "" {
		input.Status = StatusActive
	}
	if !ValidStatus(input.Status) {
		return nil, apperror.BadRequest("invalid beach status")
	}
	if input.Amenities == nil {
		input.Amenities = []string{}
	}
	if input.Images == nil {
		input.Images = []string{}
	}

	b := &Beach{
		Name:          input.Name,
		Location:      input.Location,
		Status:        input.Status,
		PricePerDay:   input.PricePerDay,
		Amenities:     input.Amenities,
		Images:        input.Images,
		TotalCapacity: input.TotalCapacity,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	b.Zones = []Zone{}
	b.Admins = []AdminRef{}
	return b, nil
}

// GetByID loads the full aggregate: the beach row, its zones with sunbeds
// and its assigned admins.
func (s *service) GetByID(ctx context.Context, id string) (*Beach, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.loadAggregate(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) loadAggregate(ctx context.Context, b *Beach) error {
	zones, err := s.repo.ListZones(ctx, b.ID)
	if err != nil {
		return err
	}
	for i := range zones {
		beds, err := s.repo.ListSunbeds(ctx, zones[i].ID)
		if err != nil {
			return err
		}
		zones[i].Sunbeds = beds
	}
	if zones == nil {
		zones = []Zone{}
	}
	b.Zones = zones

	admins, err := s.repo.ListAdmins(ctx, b.ID)
	if err != nil {
		return err
	}
	if admins == nil {
		admins = []AdminRef{}
	}
	b.Admins = admins
	return nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Beach, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, input UpdateInput) (*Beach, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.BadRequest("name must not be empty")
		}
		b.Name = *input.Name
	}
	if input.Location != nil {
		b.Location = *input.Location
	}
	if input.Status != nil {
		if !ValidStatus(*input.Status) {
			return nil, apperror.BadRequest("invalid beach status")
		}
		b.Status = *input.Status
	}
	if input.PricePerDay != nil {
		b.PricePerDay = *input.PricePerDay
	}
	if input.Amenities != nil {
		b.Amenities = *input.Amenities
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	if err := s.loadAggregate(ctx, b); err != nil {
		return nil, err
	}
	s.EmitOccupancy(b)
	return b, nil
}

// Delete removes the beach and everything hanging off it. The schema has no
// cascading foreign keys, so dependents go first: finance and alerts, then
// bookings with their sunbed links, then sunbeds, zones and admin links.
func (s *service) Delete(ctx context.Context, id string) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.finance.PurgeByBeach(ctx, id); err != nil {
			return err
		}
		if err := s.alerts.PurgeByBeach(ctx, id); err != nil {
			return err
		}
		if err := s.bookings.PurgeByBeach(ctx, id); err != nil {
			return err
		}
		zones, err := s.repo.ListZones(ctx, id)
		if err != nil {
			return err
		}
		for _, z := range zones {
			if err := s.repo.DeleteSunbedsByZone(ctx, z.ID); err != nil {
				return err
			}
			if err := s.repo.DeleteZone(ctx, z.ID); err != nil {
				return err
			}
		}
		if err := s.repo.RemoveAdminsByBeach(ctx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
}

func (s *service) AttachImage(ctx context.Context, beachID, url string) (*Beach, error) {
	b, err := s.repo.GetByID(ctx, beachID)
	if err != nil {
		return nil, err
	}
	b.Images = append(b.Images, url)
	if err := s.repo.UpdateImages(ctx, beachID, b.Images); err != nil {
		return nil, err
	}
	if err := s.loadAggregate(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) OccupancyOverview(ctx context.Context) ([]OccupancyOverviewItem, error) {
	items, err := s.repo.OccupancyOverview(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []OccupancyOverviewItem{}
	}
	return items, nil
}

func (s *service) StatsSummary(ctx context.Context) (*StatsSummary, error) {
	total, err := s.repo.CountBeaches(ctx)
	if err != nil {
		return nil, err
	}
	admins, err := s.users.CountAdmins(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsSummary{TotalBeaches: total, ActiveAdmins: admins}, nil
}

// ------------------------
//     Zone operations
// ------------------------

func (s *service) AddZone(ctx context.Context, beachID string, input ZoneInput) (*Beach, error) {
	if input.Name == "" {
		return nil, apperror.BadRequest("zone name is required")
	}
	if input.Rows < 0 || input.Cols < 0 {
		return nil, apperror.BadRequest("rows and cols must not be negative")
	}

	var b *Beach
	var created *Zone
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, beachID); err != nil {
			return err
		}
		z := &Zone{BeachID: beachID, Name: input.Name, Rows: input.Rows, Cols: input.Cols}
		if err := s.repo.CreateZone(ctx, z); err != nil {
			return err
		}
		beds := GenerateGrid(input.Rows, input.Cols)
		if len(input.Sunbeds) > 0 {
			beds = NormalizeSunbeds(input.Sunbeds)
		}
		if err := s.repo.InsertSunbeds(ctx, z.ID, beds); err != nil {
			return err
		}
		var err error
		z.Sunbeds, err = s.repo.ListSunbeds(ctx, z.ID)
		if err != nil {
			return err
		}
		created = z

		b, err = s.recompute(ctx, beachID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := s.loadAggregate(ctx, b); err != nil {
		return nil, err
	}
	s.emitZone(beachID, created)
	s.EmitOccupancy(b)
	return b, nil
}

func (s *service) UpdateZone(ctx context.Context, beachID, zoneID string, patch ZonePatch) (*Beach, error) {
	if patch.Rows != nil && *patch.Rows < 0 || patch.Cols != nil && *patch.Cols < 0 {
		return nil, apperror.BadRequest("rows and cols must not be negative")
	}

	var b *Beach
	var updated *Zone
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		z, err := s.repo.GetZone(ctx, beachID, zoneID)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			if *patch.Name == "" {
				return apperror.BadRequest("zone name must not be empty")
			}
			z.Name = *patch.Name
		}

		resized := false
		if patch.Rows != nil && *patch.Rows != z.Rows {
			z.Rows = *patch.Rows
			resized = true
		}
		if patch.Cols != nil && *patch.Cols != z.Cols {
			z.Cols = *patch.Cols
			resized = true
		}
		if err := s.repo.UpdateZone(ctx, z); err != nil {
			return err
		}

		switch {
		case len(patch.Sunbeds) > 0:
			// Explicit bed list wins over any grid resize.
			if err := s.replaceSunbeds(ctx, zoneID, NormalizeSunbeds(patch.Sunbeds)); err != nil {
				return err
			}
		case resized:
			existing, err := s.repo.ListSunbeds(ctx, zoneID)
			if err != nil {
				return err
			}
			if err := s.replaceSunbeds(ctx, zoneID, ResizeGrid(existing, z.Rows, z.Cols)); err != nil {
				return err
			}
		}

		z.Sunbeds, err = s.repo.ListSunbeds(ctx, zoneID)
		if err != nil {
			return err
		}
		updated = z

		b, err = s.recompute(ctx, beachID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := s.loadAggregate(ctx, b); err != nil {
		return nil, err
	}
	s.emitZone(beachID, updated)
	s.EmitOccupancy(b)
	return b, nil
}

// replaceSunbeds swaps a zone's bed rows wholesale. Booking links pointing
// at the old rows are dropped first so the delete does not trip foreign keys.
func (s *service) replaceSunbeds(ctx context.Context, zoneID string, beds []Sunbed) error {
	if err := s.bookings.RemoveSunbedLinksByZone(ctx, zoneID); err != nil {
		return err
	}
	if err := s.repo.DeleteSunbedsByZone(ctx, zoneID); err != nil {
		return err
	}
	return s.repo.InsertSunbeds(ctx, zoneID, beds)
}

func (s *service) DeleteZone(ctx context.Context, beachID, zoneID string) (*Beach, error) {
	var b *Beach
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetZone(ctx, beachID, zoneID); err != nil {
			return err
		}
		if err := s.bookings.RemoveSunbedLinksByZone(ctx, zoneID); err != nil {
			return err
		}
		if err := s.repo.DeleteSunbedsByZone(ctx, zoneID); err != nil {
			return err
		}
		if err := s.repo.DeleteZone(ctx, zoneID); err != nil {
			return err
		}
		var err error
		b, err = s.recompute(ctx, beachID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := s.loadAggregate(ctx, b); err != nil {
		return nil, err
	}
	s.EmitOccupancy(b)
	return b, nil
}

func (s *service) UpdateSunbedStatus(ctx context.Context, beachID, zoneID, sunbedID string, status SunbedStatus) (*Beach, error) {
	if !ValidSunbedStatus(status) {
		return nil, apperror.BadRequest("invalid sunbed status")
	}

	var b *Beach
	var bed *Sunbed
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetZone(ctx, beachID, zoneID); err != nil {
			return err
		}
		var err error
		bed, err = s.repo.GetSunbed(ctx, zoneID, sunbedID)
		if err != nil {
			return err
		}
		if err := s.repo.SetSunbedStatus(ctx, sunbedID, status); err != nil {
			return err
		}
		bed.Status = status

		b, err = s.recompute(ctx, beachID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := s.loadAggregate(ctx, b); err != nil {
		return nil, err
	}
	s.emit(notify.SubjectSunbedUpdate, notify.SunbedUpdateEvent{
		BeachID: beachID,
		ZoneID:  zoneID,
		Sunbed:  sunbedPayload(*bed),
	})
	s.EmitOccupancy(b)
	return b, nil
}

// ------------------------
//    Admin assignment
// ------------------------

// AssignAdmins links users to a beach. A user already administering this or
// any other beach is a conflict, so assignment never silently reassigns.
func (s *service) AssignAdmins(ctx context.Context, beachID string, userIDs []string) (*Beach, error) {
	if len(userIDs) == 0 {
		return nil, apperror.BadRequest("at least one user id is required")
	}

	var b *Beach
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		b, err = s.repo.GetByID(ctx, beachID)
		if err != nil {
			return err
		}
		for _, userID := range userIDs {
			exists, err := s.users.Exists(ctx, userID)
			if err != nil {
				return err
			}
			if !exists {
				return apperror.NotFound("user not found")
			}
			assigned, err := s.repo.AdminAssignment(ctx, userID)
			if err != nil {
				return err
			}
			if assigned == beachID {
				return apperror.Conflict("user is already an admin of this beach")
			}
			if assigned != "" {
				return apperror.Conflict("user is already assigned to another beach")
			}
			if err := s.repo.AddAdmin(ctx, beachID, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.loadAggregate(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// RemoveAdmin unlinks a user from a beach. Removing a user who is not
// assigned is a no-op, so retried removals succeed.
func (s *service) RemoveAdmin(ctx context.Context, beachID, userID string) (*Beach, error) {
	b, err := s.repo.GetByID(ctx, beachID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveAdmin(ctx, beachID, userID); err != nil {
		return nil, err
	}
	if err := s.loadAggregate(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ------------------------
//   Booking coordination
// ------------------------

// RequireBeach resolves the beach row and nothing else. Callers outside
// this package use it to fail fast before writing rows that reference the
// beach.
func (s *service) RequireBeach(ctx context.Context, beachID string) error {
	_, err := s.repo.GetByID(ctx, beachID)
	return err
}

// ReserveForBooking flips the given beds to reserved. The beds are locked
// first; any bed missing, outside the beach, or not currently available
// fails the whole reservation.
func (s *service) ReserveForBooking(ctx context.Context, beachID string, sunbedIDs []string) error {
	beds, err := s.repo.GetSunbedsForUpdate(ctx, sunbedIDs)
	if err != nil {
		return err
	}
	if len(beds) != len(sunbedIDs) {
		return apperror.NotFound("one or more sunbeds not found")
	}

	for _, bed := range beds {
		owner, err := s.repo.BeachIDOfSunbed(ctx, bed.ID)
		if err != nil {
			return err
		}
		if owner != beachID {
			return apperror.BadRequest(fmt.Sprintf("sunbed %s does not belong to this beach", bed.Code))
		}
		if bed.Status != SunbedAvailable {
			return apperror.Conflict(fmt.Sprintf("sunbed %s is not available", bed.Code))
		}
	}
	return s.repo.SetSunbedsStatus(ctx, sunbedIDs, SunbedReserved)
}

// ReleaseForBooking flips reserved beds back to available and returns the
// ids it actually freed. Beds that were deleted or manually retired in the
// meantime are skipped.
func (s *service) ReleaseForBooking(ctx context.Context, sunbedIDs []string) ([]string, error) {
	beds, err := s.repo.GetSunbedsForUpdate(ctx, sunbedIDs)
	if err != nil {
		return nil, err
	}
	var freed []string
	for _, bed := range beds {
		if bed.Status == SunbedReserved || bed.Status == SunbedSelected {
			freed = append(freed, bed.ID)
		}
	}
	if err := s.repo.SetSunbedsStatus(ctx, freed, SunbedAvailable); err != nil {
		return nil, err
	}
	return freed, nil
}

func (s *service) RecomputeOccupancy(ctx context.Context, beachID string) (*Beach, error) {
	return s.recompute(ctx, beachID)
}

func (s *service) recompute(ctx context.Context, beachID string) (*Beach, error) {
	b, err := s.repo.GetByID(ctx, beachID)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.SunbedStatusCounts(ctx, beachID)
	if err != nil {
		return nil, err
	}
	capacity, current, rate := Occupancy(counts, b.TotalCapacity)
	if err := s.repo.UpdateDerived(ctx, beachID, capacity, current, rate); err != nil {
		return nil, err
	}
	b.TotalCapacity = capacity
	b.CurrentBookings = current
	b.OccupancyRate = rate
	return b, nil
}

// ------------------------
//    Event emission
// ------------------------

// EmitOccupancy publishes the beach's current derived figures. Emission is
// best effort and never fails the calling operation.
func (s *service) EmitOccupancy(b *Beach) {
	s.emit(notify.SubjectBeachOccupancy, notify.BeachOccupancyEvent{
		BeachID:         b.ID,
		OccupancyRate:   b.OccupancyRate,
		CurrentBookings: b.CurrentBookings,
		Capacity:        b.TotalCapacity,
		Status:          string(b.Status),
	})
}

func (s *service) emitZone(beachID string, z *Zone) {
	s.emit(notify.SubjectZoneUpdate, notify.ZoneUpdateEvent{
		BeachID: beachID,
		Zone:    zonePayload(z),
	})
}

func (s *service) emit(subject string, payload any) {
	_ = s.emitter.Emit(subject, payload)
}

func sunbedPayload(b Sunbed) notify.SunbedPayload {
	return notify.SunbedPayload{
		ID:     b.ID,
		Code:   b.Code,
		Row:    b.Row,
		Col:    b.Col,
		Status: string(b.Status),
	}
}

func zonePayload(z *Zone) notify.ZonePayload {
	beds := make([]notify.SunbedPayload, 0, len(z.Sunbeds))
	for _, b := range z.Sunbeds {
		beds = append(beds, sunbedPayload(b))
	}
	return notify.ZonePayload{
		ID:      z.ID,
		Name:    z.Name,
		Rows:    z.Rows,
		Cols:    z.Cols,
		Sunbeds: beds,
	}
}
