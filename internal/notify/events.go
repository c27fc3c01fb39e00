package notify

// Subjects for the change notification fan-out.
const (
	SubjectBeachOccupancy   = "beach.occupancy"
	SubjectZoneUpdate       = "zone.update"
	SubjectSunbedUpdate     = "sunbed.update"
	SubjectBookingCreated   = "booking.created"
	SubjectBookingCancelled = "booking.cancelled"
)

// BeachOccupancyEvent is emitted whenever a beach's derived occupancy changes.
type BeachOccupancyEvent struct {
	BeachID         string `json:"beachId"`
	OccupancyRate   int    `json:"occupancyRate"`
	CurrentBookings int    `json:"currentBookings"`
	Capacity        int    `json:"capacity"`
	Status          string `json:"status"`
}

// SunbedPayload describes one sunbed inside zone/sunbed events.
type SunbedPayload struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Status string `json:"status"`
}

// ZonePayload describes a zone and its beds inside zone events.
type ZonePayload struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Rows    int             `json:"rows"`
	Cols    int             `json:"cols"`
	Sunbeds []SunbedPayload `json:"sunbeds"`
}

// ZoneUpdateEvent is emitted after a zone is created or changed.
type ZoneUpdateEvent struct {
	BeachID string      `json:"beachId"`
	Zone    ZonePayload `json:"zone"`
}

// SunbedUpdateEvent is emitted after a single sunbed's status changes.
type SunbedUpdateEvent struct {
	BeachID string        `json:"beachId"`
	ZoneID  string        `json:"zoneId"`
	Sunbed  SunbedPayload `json:"sunbed"`
}

// BookingCreatedEvent is emitted after a booking is created.
type BookingCreatedEvent struct {
	BookingID string   `json:"bookingId"`
	BeachID   string   `json:"beachId"`
	SunbedIDs []string `json:"sunbedIds"`
}

// BookingCancelledEvent is emitted after a booking is cancelled,
// carrying the sunbeds that were released back to available.
type BookingCancelledEvent struct {
	BookingID    string   `json:"bookingId"`
	BeachID      string   `json:"beachId"`
	FreedSunbeds []string `json:"freedSunbeds"`
}
