package beach

import "math"

// StatusCounts maps a sunbed status to the number of beds in that status
// across a whole beach.
type StatusCounts map[SunbedStatus]int

// Occupancy derives the beach-level figures from sunbed status counts.
//
// TotalCapacity counts every bed regardless of status. CurrentBookings
// counts occupied beds (reserved or selected). The rate is the occupied
// share of bookable beds, so unavailable beds shrink the denominator
// instead of dragging the rate down. With no bookable beds the rate is 0.
//
// legacyCapacity is returned as the capacity when the beach owns no sunbeds
// at all, preserving a manually entered figure on beaches without zones.
func Occupancy(counts StatusCounts, legacyCapacity int) (capacity, currentBookings, rate int) {
	for s, n := range counts {
		capacity += n
		switch s {
		case SunbedReserved, SunbedSelected:
			currentBookings += n
		}
	}
	if capacity == 0 {
		return legacyCapacity, 0, 0
	}
	bookable := capacity - counts[SunbedUnavailable]
	if bookable <= 0 {
		return capacity, currentBookings, 0
	}
	rate = int(math.Round(float64(currentBookings) / float64(bookable) * 100))
	return capacity, currentBookings, rate
}

// CountStatuses tallies a sunbed slice into StatusCounts.
func CountStatuses(beds []Sunbed) StatusCounts {
	counts := make(StatusCounts, 4)
	for _, b := range beds {
		counts[b.Status]++
	}
	return counts
}
