package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playamar/beach-admin-backend/internal/beach"
	"github.com/playamar/beach-admin-backend/internal/booking"
	"github.com/playamar/beach-admin-backend/internal/finance"
)

// The fakes embed the module interfaces and override only what the
// dashboard calls.

type fakeBeachService struct {
	beach.Service
	overview []beach.OccupancyOverviewItem
}

func (f *fakeBeachService) OccupancyOverview(_ context.Context) ([]beach.OccupancyOverviewItem, error) {
	return f.overview, nil
}

type fakeBookingService struct {
	booking.Service
	stats booking.Stats
}

func (f *fakeBookingService) Stats(_ context.Context) (*booking.Stats, error) {
	return &f.stats, nil
}

type fakeFinanceService struct {
	finance.Service
	overview finance.Overview
	monthly  []finance.MonthlyRevenue
}

func (f *fakeFinanceService) Overview(_ context.Context) (*finance.Overview, error) {
	return &f.overview, nil
}

func (f *fakeFinanceService) MonthlyRevenue(_ context.Context, _ int) ([]finance.MonthlyRevenue, error) {
	return f.monthly, nil
}

func TestStatsAggregation(t *testing.T) {
	beaches := &fakeBeachService{overview: []beach.OccupancyOverviewItem{
		{BeachID: "b1", Name: "North", Capacity: 60, CurrentBookings: 20, OccupancyRate: 33},
		{BeachID: "b2", Name: "South", Capacity: 40, CurrentBookings: 30, OccupancyRate: 75},
	}}
	bookings := &fakeBookingService{stats: booking.Stats{Total: 12, Upcoming: 4}}
	fin := &fakeFinanceService{
		overview: finance.Overview{TotalRevenue: 1500, TotalExpenses: 300, PendingPayouts: 200},
		monthly:  []finance.MonthlyRevenue{{Year: 2026, Month: 8, Revenue: 900}},
	}

	svc := NewService(beaches, bookings, fin, nil, 0)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 100, stats.TotalCapacity)
	assert.Equal(t, 50, stats.TotalOccupied)
	assert.Equal(t, 54, stats.AverageOccupancy)
	assert.Equal(t, 12, stats.Bookings.Total)
	assert.Equal(t, 1500.0, stats.Finance.TotalRevenue)
	require.Len(t, stats.MonthlyRevenue, 1)
	assert.Len(t, stats.Beaches, 2)
}

func TestStatsEmptyOverview(t *testing.T) {
	svc := NewService(&fakeBeachService{}, &fakeBookingService{}, &fakeFinanceService{}, nil, 0)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalCapacity)
	assert.Zero(t, stats.AverageOccupancy)
}
