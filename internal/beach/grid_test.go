package beach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGrid(t *testing.T) {
	beds := GenerateGrid(2, 3)
	require.Len(t, beds, 6)

	// Row-major order with 1-based codes.
	assert.Equal(t, "R1C1", beds[0].Code)
	assert.Equal(t, "R1C3", beds[2].Code)
	assert.Equal(t, "R2C1", beds[3].Code)
	assert.Equal(t, "R2C3", beds[5].Code)

	for _, b := range beds {
		assert.Equal(t, SunbedAvailable, b.Status)
		assert.Zero(t, b.PriceModifier)
	}
}

func TestGenerateGridZeroDimensions(t *testing.T) {
	assert.Empty(t, GenerateGrid(0, 5))
	assert.Empty(t, GenerateGrid(3, 0))
	assert.Empty(t, GenerateGrid(0, 0))
}

func TestResizeGridPreservesSurvivingPositions(t *testing.T) {
	existing := GenerateGrid(2, 2)
	for i := range existing {
		if existing[i].Row == 1 && existing[i].Col == 1 {
			existing[i].Status = SunbedReserved
			existing[i].PriceModifier = 1.5
		}
		if existing[i].Row == 2 && existing[i].Col == 1 {
			existing[i].Status = SunbedUnavailable
		}
	}

	beds := ResizeGrid(existing, 1, 2)
	require.Len(t, beds, 2)

	assert.Equal(t, SunbedReserved, beds[0].Status)
	assert.Equal(t, 1.5, beds[0].PriceModifier)
	// (1,2) had no special state and stays available.
	assert.Equal(t, SunbedAvailable, beds[1].Status)
}

func TestResizeGridGrowsWithAvailableBeds(t *testing.T) {
	existing := GenerateGrid(1, 1)
	existing[0].Status = SunbedReserved

	beds := ResizeGrid(existing, 2, 2)
	require.Len(t, beds, 4)

	assert.Equal(t, SunbedReserved, beds[0].Status)
	for _, b := range beds[1:] {
		assert.Equal(t, SunbedAvailable, b.Status)
	}
}

func TestNormalizeSunbeds(t *testing.T) {
	beds := NormalizeSunbeds([]Sunbed{
		{Row: 1, Col: 1, Status: "bogus"},
		{Row: 1, Col: 2, Code: "VIP1", Status: SunbedReserved, PriceModifier: 5.0},
	})

	assert.Equal(t, "R1C1", beds[0].Code)
	assert.Equal(t, SunbedAvailable, beds[0].Status)
	assert.Zero(t, beds[0].PriceModifier)

	assert.Equal(t, "VIP1", beds[1].Code)
	assert.Equal(t, SunbedReserved, beds[1].Status)
	assert.Equal(t, 5.0, beds[1].PriceModifier)
}
