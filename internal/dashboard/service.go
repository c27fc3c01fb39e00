package dashboard

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/playamar/beach-admin-backend/internal/beach"
	"github.com/playamar/beach-admin-backend/internal/booking"
	"github.com/playamar/beach-admin-backend/internal/finance"
	"github.com/playamar/beach-admin-backend/internal/logger"
	"github.com/redis/go-redis/v9"
)

const statsCacheKey = "dashboard:stats"

// Stats is the aggregated dashboard payload.
type Stats struct {
	TotalCapacity    int                           `json:"totalCapacity"`
	TotalOccupied    int                           `json:"totalOccupied"`
	AverageOccupancy int                           `json:"averageOccupancy"`
	Bookings         booking.Stats                 `json:"bookings"`
	Finance          finance.Overview              `json:"finance"`
	MonthlyRevenue   []finance.MonthlyRevenue      `json:"monthlyRevenue"`
	Beaches          []beach.OccupancyOverviewItem `json:"beaches"`
}

// Service assembles the dashboard from the other modules. Results are
// cached in Redis for a short TTL since every admin session polls this.
type Service interface {
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	beaches  beach.Service
	bookings booking.Service
	finance  finance.Service
	cache    *redis.Client // nil disables caching
	cacheTTL time.Duration
}

func NewService(beaches beach.Service, bookings booking.Service, fin finance.Service, cache *redis.Client, cacheTTL time.Duration) Service {
	return &service{
		beaches:  beaches,
		bookings: bookings,
		finance:  fin,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var stats Stats
			if err := json.Unmarshal(cached, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				logger.Get().Warn("dashboard stats cache write failed", "error", err)
			}
		}
	}
	return stats, nil
}

func (s *service) build(ctx context.Context) (*Stats, error) {
	overview, err := s.beaches.OccupancyOverview(ctx)
	if err != nil {
		return nil, err
	}
	bookingStats, err := s.bookings.Stats(ctx)
	if err != nil {
		return nil, err
	}
	finOverview, err := s.finance.Overview(ctx)
	if err != nil {
		return nil, err
	}
	monthly, err := s.finance.MonthlyRevenue(ctx, 6)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Bookings:       *bookingStats,
		Finance:        *finOverview,
		MonthlyRevenue: monthly,
		Beaches:        overview,
	}
	var rateSum int
	for _, item := range overview {
		stats.TotalCapacity += item.Capacity
		stats.TotalOccupied += item.CurrentBookings
		rateSum += item.OccupancyRate
	}
	if len(overview) > 0 {
		stats.AverageOccupancy = int(math.Round(float64(rateSum) / float64(len(overview))))
	}
	return stats, nil
}
