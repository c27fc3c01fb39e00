package beach

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playamar/beach-admin-backend/internal/notify"
	"github.com/playamar/beach-admin-backend/internal/pkg/apperror"
)

// fakeRepo is an in-memory Repository good enough to exercise the service
// logic without Postgres.
type fakeRepo struct {
	beaches map[string]*Beach
	zones   map[string]*Zone
	beds    map[string]*Sunbed
	admins  map[string]string // userID -> beachID
	seq     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		beaches: map[string]*Beach{},
		zones:   map[string]*Zone{},
		beds:    map[string]*Sunbed{},
		admins:  map[string]string{},
	}
}

func (r *fakeRepo) nextID(prefix string) string {
	r.seq++
	return fmt.Sprintf("%s-%d", prefix, r.seq)
}

func (r *fakeRepo) Create(_ context.Context, b *Beach) error {
	b.ID = r.nextID("beach")
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	copied := *b
	r.beaches[b.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Beach, error) {
	b, ok := r.beaches[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]*Beach, int, error) {
	var out []*Beach
	for _, b := range r.beaches {
		copied := *b
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, b *Beach) error {
	if _, ok := r.beaches[b.ID]; !ok {
		return ErrNotFound
	}
	copied := *b
	r.beaches[b.ID] = &copied
	return nil
}

func (r *fakeRepo) UpdateImages(_ context.Context, beachID string, images []string) error {
	b, ok := r.beaches[beachID]
	if !ok {
		return ErrNotFound
	}
	b.Images = images
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.beaches[id]; !ok {
		return ErrNotFound
	}
	delete(r.beaches, id)
	return nil
}

func (r *fakeRepo) UpdateDerived(_ context.Context, beachID string, capacity, current, rate int) error {
	b, ok := r.beaches[beachID]
	if !ok {
		return ErrNotFound
	}
	b.TotalCapacity = capacity
	b.CurrentBookings = current
	b.OccupancyRate = rate
	return nil
}

func (r *fakeRepo) SunbedStatusCounts(_ context.Context, beachID string) (StatusCounts, error) {
	counts := StatusCounts{}
	for _, bed := range r.beds {
		z := r.zones[bed.ZoneID]
		if z != nil && z.BeachID == beachID {
			counts[bed.Status]++
		}
	}
	return counts, nil
}

func (r *fakeRepo) OccupancyOverview(_ context.Context) ([]OccupancyOverviewItem, error) {
	var items []OccupancyOverviewItem
	for _, b := range r.beaches {
		items = append(items, OccupancyOverviewItem{
			BeachID:         b.ID,
			Name:            b.Name,
			OccupancyRate:   b.OccupancyRate,
			Capacity:        b.TotalCapacity,
			CurrentBookings: b.CurrentBookings,
		})
	}
	return items, nil
}

func (r *fakeRepo) CountBeaches(_ context.Context) (int, error) {
	return len(r.beaches), nil
}

func (r *fakeRepo) CreateZone(_ context.Context, z *Zone) error {
	z.ID = r.nextID("zone")
	z.CreatedAt = time.Now()
	copied := *z
	copied.Sunbeds = nil
	r.zones[z.ID] = &copied
	return nil
}

func (r *fakeRepo) GetZone(_ context.Context, beachID, zoneID string) (*Zone, error) {
	z, ok := r.zones[zoneID]
	if !ok || z.BeachID != beachID {
		return nil, ErrZoneNotFound
	}
	copied := *z
	return &copied, nil
}

func (r *fakeRepo) ListZones(_ context.Context, beachID string) ([]Zone, error) {
	var out []Zone
	for _, z := range r.zones {
		if z.BeachID == beachID {
			out = append(out, *z)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) UpdateZone(_ context.Context, z *Zone) error {
	stored, ok := r.zones[z.ID]
	if !ok {
		return ErrZoneNotFound
	}
	stored.Name = z.Name
	stored.Rows = z.Rows
	stored.Cols = z.Cols
	return nil
}

func (r *fakeRepo) DeleteZone(_ context.Context, zoneID string) error {
	if _, ok := r.zones[zoneID]; !ok {
		return ErrZoneNotFound
	}
	delete(r.zones, zoneID)
	return nil
}

func (r *fakeRepo) InsertSunbeds(_ context.Context, zoneID string, beds []Sunbed) error {
	for _, bed := range beds {
		bed.ID = r.nextID("bed")
		bed.ZoneID = zoneID
		copied := bed
		r.beds[bed.ID] = &copied
	}
	return nil
}

func (r *fakeRepo) ListSunbeds(_ context.Context, zoneID string) ([]Sunbed, error) {
	var out []Sunbed
	for _, bed := range r.beds {
		if bed.ZoneID == zoneID {
			out = append(out, *bed)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out, nil
}

func (r *fakeRepo) DeleteSunbedsByZone(_ context.Context, zoneID string) error {
	for id, bed := range r.beds {
		if bed.ZoneID == zoneID {
			delete(r.beds, id)
		}
	}
	return nil
}

func (r *fakeRepo) GetSunbed(_ context.Context, zoneID, sunbedID string) (*Sunbed, error) {
	bed, ok := r.beds[sunbedID]
	if !ok || bed.ZoneID != zoneID {
		return nil, ErrSunbedNotFound
	}
	copied := *bed
	return &copied, nil
}

func (r *fakeRepo) GetSunbedsForUpdate(_ context.Context, ids []string) ([]Sunbed, error) {
	var out []Sunbed
	for _, id := range ids {
		if bed, ok := r.beds[id]; ok {
			out = append(out, *bed)
		}
	}
	return out, nil
}

func (r *fakeRepo) SetSunbedStatus(_ context.Context, sunbedID string, status SunbedStatus) error {
	bed, ok := r.beds[sunbedID]
	if !ok {
		return ErrSunbedNotFound
	}
	bed.Status = status
	return nil
}

func (r *fakeRepo) SetSunbedsStatus(_ context.Context, ids []string, status SunbedStatus) error {
	for _, id := range ids {
		if bed, ok := r.beds[id]; ok {
			bed.Status = status
		}
	}
	return nil
}

func (r *fakeRepo) BeachIDOfSunbed(_ context.Context, sunbedID string) (string, error) {
	bed, ok := r.beds[sunbedID]
	if !ok {
		return "", ErrSunbedNotFound
	}
	return r.zones[bed.ZoneID].BeachID, nil
}

func (r *fakeRepo) ListAdmins(_ context.Context, beachID string) ([]AdminRef, error) {
	var out []AdminRef
	for userID, bID := range r.admins {
		if bID == beachID {
			out = append(out, AdminRef{ID: userID})
		}
	}
	return out, nil
}

func (r *fakeRepo) AdminAssignment(_ context.Context, userID string) (string, error) {
	return r.admins[userID], nil
}

func (r *fakeRepo) AddAdmin(_ context.Context, beachID, userID string) error {
	r.admins[userID] = beachID
	return nil
}

func (r *fakeRepo) RemoveAdmin(_ context.Context, beachID, userID string) error {
	if r.admins[userID] == beachID {
		delete(r.admins, userID)
	}
	return nil
}

func (r *fakeRepo) RemoveAdminsByBeach(_ context.Context, beachID string) error {
	for userID, bID := range r.admins {
		if bID == beachID {
			delete(r.admins, userID)
		}
	}
	return nil
}

type fakeUsers struct {
	users map[string]bool
}

func (u *fakeUsers) Exists(_ context.Context, id string) (bool, error) {
	return u.users[id], nil
}

func (u *fakeUsers) CountAdmins(_ context.Context) (int, error) {
	return len(u.users), nil
}

// fakeCleaner records the order dependents get purged in.
type fakeCleaner struct {
	name string
	log  *[]string
}

func (c *fakeCleaner) PurgeByBeach(_ context.Context, _ string) error {
	*c.log = append(*c.log, c.name)
	return nil
}

func (c *fakeCleaner) RemoveSunbedLinksByZone(_ context.Context, _ string) error {
	*c.log = append(*c.log, c.name+":links")
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingEmitter captures every published subject.
type recordingEmitter struct {
	subjects []string
}

func (e *recordingEmitter) Emit(subject string, _ any) error {
	e.subjects = append(e.subjects, subject)
	return nil
}

func (e *recordingEmitter) Close() error { return nil }

type fixture struct {
	repo    *fakeRepo
	users   *fakeUsers
	emitter *recordingEmitter
	log     []string
	svc     Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:    newFakeRepo(),
		users:   &fakeUsers{users: map[string]bool{}},
		emitter: &recordingEmitter{},
	}
	cleaner := func(name string) *fakeCleaner { return &fakeCleaner{name: name, log: &f.log} }
	f.svc = NewService(
		f.repo, f.users,
		cleaner("bookings"), cleaner("finance"), cleaner("alerts"),
		fakeTxManager{}, f.emitter,
	)
	return f
}

func (f *fixture) createBeach(t *testing.T) *Beach {
	t.Helper()
	b, err := f.svc.Create(context.Background(), CreateInput{Name: "Golden Sands", Status: StatusActive})
	require.NoError(t, err)
	return b
}

func TestCreateBeachValidation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), CreateInput{})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	_, err = f.svc.Create(context.Background(), CreateInput{Name: "x", Status: "bogus"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestAddZoneGeneratesGridAndRecomputes(t *testing.T) {
	f := newFixture()
	b := f.createBeach(t)

	updated, err := f.svc.AddZone(context.Background(), b.ID, ZoneInput{Name: "A", Rows: 2, Cols: 3})
	require.NoError(t, err)

	assert.Equal(t, 6, updated.TotalCapacity)
	assert.Equal(t, 0, updated.CurrentBookings)
	assert.Equal(t, 0, updated.OccupancyRate)
	require.Len(t, updated.Zones, 1)
	assert.Len(t, updated.Zones[0].Sunbeds, 6)

	assert.Contains(t, f.emitter.subjects, notify.SubjectZoneUpdate)
	assert.Contains(t, f.emitter.subjects, notify.SubjectBeachOccupancy)
}

func TestUpdateSunbedStatusDrivesOccupancy(t *testing.T) {
	f := newFixture()
	b := f.createBeach(t)
	updated, err := f.svc.AddZone(context.Background(), b.ID, ZoneInput{Name: "A", Rows: 2, Cols: 3})
	require.NoError(t, err)
	zone := updated.Zones[0]

	// Reserve two of six beds: 33% occupancy.
	for _, bed := range zone.Sunbeds[:2] {
		updated, err = f.svc.UpdateSunbedStatus(context.Background(), b.ID, zone.ID, bed.ID, SunbedReserved)
		require.NoError(t, err)
	}
	assert.Equal(t, 6, updated.TotalCapacity)
	assert.Equal(t, 2, updated.CurrentBookings)
	assert.Equal(t, 33, updated.OccupancyRate)

	_, err = f.svc.UpdateSunbedStatus(context.Background(), b.ID, zone.ID, zone.Sunbeds[0].ID, "bogus")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestUpdateZoneResizePreservesBedState(t *testing.T) {
	f := newFixture()
	b := f.createBeach(t)
	updated, err := f.svc.AddZone(context.Background(), b.ID, ZoneInput{Name: "A", Rows: 2, Cols: 2})
	require.NoError(t, err)
	zone := updated.Zones[0]

	// Reserve the bed at (1,1).
	var target Sunbed
	for _, bed := range zone.Sunbeds {
		if bed.Row == 1 && bed.Col == 1 {
			target = bed
		}
	}
	_, err = f.svc.UpdateSunbedStatus(context.Background(), b.ID, zone.ID, target.ID, SunbedReserved)
	require.NoError(t, err)

	rows, cols := 1, 2
	updated, err = f.svc.UpdateZone(context.Background(), b.ID, zone.ID, ZonePatch{Rows: &rows, Cols: &cols})
	require.NoError(t, err)

	require.Len(t, updated.Zones, 1)
	beds := updated.Zones[0].Sunbeds
	require.Len(t, beds, 2)
	assert.Equal(t, SunbedReserved, beds[0].Status)
	assert.Equal(t, SunbedAvailable, beds[1].Status)

	assert.Equal(t, 2, updated.TotalCapacity)
	assert.Equal(t, 1, updated.CurrentBookings)
	assert.Equal(t, 50, updated.OccupancyRate)
}

func TestUpdateZoneExplicitSunbedsOverrideResize(t *testing.T) {
	f := newFixture()
	b := f.createBeach(t)
	updated, err := f.svc.AddZone(context.Background(), b.ID, ZoneInput{Name: "A", Rows: 2, Cols: 2})
	require.NoError(t, err)
	zone := updated.Zones[0]

	rows := 5
	updated, err = f.svc.UpdateZone(context.Background(), b.ID, zone.ID, ZonePatch{
		Rows: &rows,
		Sunbeds: []Sunbed{
			{Row: 1, Col: 1, Status: SunbedReserved},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Zones[0].Sunbeds, 1)
	assert.Equal(t, 1, updated.TotalCapacity)
	assert.Equal(t, 1, updated.CurrentBookings)
	assert.Equal(t, 100, updated.OccupancyRate)
}

func TestDeleteZoneRecomputes(t *testing.T) {
	f := newFixture()
	b := f.createBeach(t)
	updated, err := f.svc.AddZone(context.Background(), b.ID, ZoneInput{Name: "A", Rows: 2, Cols: 2})
	require.NoError(t, err)

	updated, err = f.svc.DeleteZone(context.Background(), b.ID, updated.Zones[0].ID)
	require.NoError(t, err)

	assert.Empty(t, updated.Zones)
	assert.Equal(t, 0, updated.CurrentBookings)
	assert.Equal(t, 0, updated.OccupancyRate)
	// Booking links for the zone's beds were dropped first.
	assert.Contains(t, f.log, "bookings:links")
}

func TestAssignAdmins(t *testing.T) {
	f := newFixture()
	b := f.createBeach(t)
	other, err := f.svc.Create(context.Background(), CreateInput{Name: "Other"})
	require.NoError(t, err)
	f.users.users["u1"] = true
	f.users.users["u2"] = true

	_, err = f.svc.AssignAdmins(context.Background(), b.ID, []string{"u1"})
	require.NoError(t, err)

	var appErr *apperror.AppError

	// Same beach again: conflict.
	_, err = f.svc.AssignAdmins(context.Background(), b.ID, []string{"u1"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)

	// Another beach: still conflict, one beach per admin.
	_, err = f.svc.AssignAdmins(context.Background(), other.ID, []string{"u1"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)

	// Unknown user: not found.
	_, err = f.svc.AssignAdmins(context.Background(), b.ID, []string{"ghost"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)

	// Empty list: bad request.
	_, err = f.svc.AssignAdmins(context.Background(), b.ID, nil)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestRemoveAdminIsIdempotent(t *testing.T) {
	f := newFixture()
	b := f.createBeach(t)
	f.users.users["u1"] = true

	_, err := f.svc.AssignAdmins(context.Background(), b.ID, []string{"u1"})
	require.NoError(t, err)

	_, err = f.svc.RemoveAdmin(context.Background(), b.ID, "u1")
	require.NoError(t, err)

	// Removing again succeeds.
	updated, err := f.svc.RemoveAdmin(context.Background(), b.ID, "u1")
	require.NoError(t, err)
	assert.Empty(t, updated.Admins)
}

func TestDeleteBeachCascadeOrder(t *testing.T) {
	f := newFixture()
	b := f.createBeach(t)
	_, err := f.svc.AddZone(context.Background(), b.ID, ZoneInput{Name: "A", Rows: 1, Cols: 1})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), b.ID))

	assert.Equal(t, []string{"finance", "alerts", "bookings"}, f.log)
	_, err = f.svc.GetByID(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.repo.zones)
	assert.Empty(t, f.repo.beds)
}

func TestRequireBeach(t *testing.T) {
	f := newFixture()
	b := f.createBeach(t)

	require.NoError(t, f.svc.RequireBeach(context.Background(), b.ID))
	assert.ErrorIs(t, f.svc.RequireBeach(context.Background(), "ghost"), ErrNotFound)
}

func TestReserveForBooking(t *testing.T) {
	f := newFixture()
	b := f.createBeach(t)
	updated, err := f.svc.AddZone(context.Background(), b.ID, ZoneInput{Name: "A", Rows: 1, Cols: 2})
	require.NoError(t, err)
	beds := updated.Zones[0].Sunbeds

	require.NoError(t, f.svc.ReserveForBooking(context.Background(), b.ID, []string{beds[0].ID}))

	var appErr *apperror.AppError

	// Already reserved: conflict, and no partial flip.
	err = f.svc.ReserveForBooking(context.Background(), b.ID, []string{beds[0].ID, beds[1].ID})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)

	// Unknown bed: not found.
	err = f.svc.ReserveForBooking(context.Background(), b.ID, []string{"ghost"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)

	// Bed from another beach: bad request.
	other, err := f.svc.Create(context.Background(), CreateInput{Name: "Other"})
	require.NoError(t, err)
	err = f.svc.ReserveForBooking(context.Background(), other.ID, []string{beds[1].ID})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestReleaseForBookingSkipsNonReservedBeds(t *testing.T) {
	f := newFixture()
	b := f.createBeach(t)
	updated, err := f.svc.AddZone(context.Background(), b.ID, ZoneInput{Name: "A", Rows: 1, Cols: 3})
	require.NoError(t, err)
	beds := updated.Zones[0].Sunbeds

	require.NoError(t, f.svc.ReserveForBooking(context.Background(), b.ID, []string{beds[0].ID}))
	_, err = f.svc.UpdateSunbedStatus(context.Background(), b.ID, updated.Zones[0].ID, beds[2].ID, SunbedUnavailable)
	require.NoError(t, err)

	freed, err := f.svc.ReleaseForBooking(context.Background(), []string{beds[0].ID, beds[1].ID, beds[2].ID})
	require.NoError(t, err)
	assert.Equal(t, []string{beds[0].ID}, freed)

	counts, err := f.repo.SunbedStatusCounts(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[SunbedAvailable])
	assert.Equal(t, 1, counts[SunbedUnavailable])
}

func TestErrorsWrapSentinels(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	b := f.createBeach(t)
	_, err = f.svc.UpdateZone(context.Background(), b.ID, "missing", ZonePatch{})
	assert.True(t, errors.Is(err, ErrZoneNotFound))
}
