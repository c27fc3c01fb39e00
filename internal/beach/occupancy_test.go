package beach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOccupancy(t *testing.T) {
	t.Run("counts reserved and selected as occupied", func(t *testing.T) {
		counts := StatusCounts{
			SunbedAvailable: 4,
			SunbedReserved:  1,
			SunbedSelected:  1,
		}
		capacity, current, rate := Occupancy(counts, 0)
		assert.Equal(t, 6, capacity)
		assert.Equal(t, 2, current)
		assert.Equal(t, 33, rate)
	})

	t.Run("unavailable beds shrink the denominator, not the rate", func(t *testing.T) {
		counts := StatusCounts{
			SunbedReserved:    2,
			SunbedAvailable:   2,
			SunbedUnavailable: 4,
		}
		capacity, current, rate := Occupancy(counts, 0)
		assert.Equal(t, 8, capacity)
		assert.Equal(t, 2, current)
		// 2 occupied out of 4 bookable beds.
		assert.Equal(t, 50, rate)
	})

	t.Run("all beds unavailable yields zero rate", func(t *testing.T) {
		counts := StatusCounts{SunbedUnavailable: 3}
		capacity, current, rate := Occupancy(counts, 0)
		assert.Equal(t, 3, capacity)
		assert.Equal(t, 0, current)
		assert.Equal(t, 0, rate)
	})

	t.Run("no sunbeds keeps the legacy capacity", func(t *testing.T) {
		capacity, current, rate := Occupancy(StatusCounts{}, 120)
		assert.Equal(t, 120, capacity)
		assert.Equal(t, 0, current)
		assert.Equal(t, 0, rate)
	})

	t.Run("fully occupied", func(t *testing.T) {
		counts := StatusCounts{SunbedReserved: 5}
		capacity, current, rate := Occupancy(counts, 0)
		assert.Equal(t, 5, capacity)
		assert.Equal(t, 5, current)
		assert.Equal(t, 100, rate)
	})

	t.Run("idempotent over the same counts", func(t *testing.T) {
		counts := StatusCounts{SunbedAvailable: 3, SunbedReserved: 1}
		c1, b1, r1 := Occupancy(counts, 0)
		c2, b2, r2 := Occupancy(counts, 0)
		assert.Equal(t, c1, c2)
		assert.Equal(t, b1, b2)
		assert.Equal(t, r1, r2)
	})
}

func TestCountStatuses(t *testing.T) {
	beds := []Sunbed{
		{Status: SunbedAvailable},
		{Status: SunbedAvailable},
		{Status: SunbedReserved},
		{Status: SunbedUnavailable},
	}
	counts := CountStatuses(beds)
	assert.Equal(t, 2, counts[SunbedAvailable])
	assert.Equal(t, 1, counts[SunbedReserved])
	assert.Equal(t, 1, counts[SunbedUnavailable])
	assert.Equal(t, 0, counts[SunbedSelected])
}
