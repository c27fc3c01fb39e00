package beach

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("beach not found")
	ErrZoneNotFound   = errors.New("zone not found")
	ErrSunbedNotFound = errors.New("sunbed not found")
)

// Status enumerates the operational states of a beach.
type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusMaintenance Status = "maintenance"
)

// ValidStatus reports whether s is a known beach status.
func ValidStatus(s Status) bool {
	return s == StatusActive || s == StatusInactive || s == StatusMaintenance
}

// SunbedStatus enumerates the states of a single sunbed.
// "selected" is a transitional UI state and counts as occupied.
type SunbedStatus string

const (
	SunbedAvailable   SunbedStatus = "available"
	SunbedReserved    SunbedStatus = "reserved"
	SunbedUnavailable SunbedStatus = "unavailable"
	SunbedSelected    SunbedStatus = "selected"
)

// ValidSunbedStatus reports whether s is a known sunbed status.
func ValidSunbedStatus(s SunbedStatus) bool {
	switch s {
	case SunbedAvailable, SunbedReserved, SunbedUnavailable, SunbedSelected:
		return true
	}
	return false
}

// Sunbed is the smallest reservable unit, positioned at (row, col) within a zone.
type Sunbed struct {
	ID            string
	ZoneID        string
	Code          string
	Row           int
	Col           int
	Status        SunbedStatus
	PriceModifier float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Zone is a named rectangular grid subdivision of a beach's sunbed inventory.
// The sunbed count equals Rows×Cols unless an explicit sunbed list override
// was supplied.
type Zone struct {
	ID        string
	BeachID   string
	Name      string
	Rows      int
	Cols      int
	CreatedAt time.Time
	Sunbeds   []Sunbed
}

// AdminRef is a lightweight view of a user assigned to administer a beach.
type AdminRef struct {
	ID    string
	Email string
	Name  string
}

// Beach is the aggregate root. TotalCapacity, CurrentBookings and
// OccupancyRate are derived from the owned sunbeds and recomputed inside
// the same transaction as every sunbed or zone mutation.
type Beach struct {
	ID              string
	Name            string
	Location        string
	Status          Status
	PricePerDay     float64
	Amenities       []string
	Images          []string
	TotalCapacity   int
	CurrentBookings int
	OccupancyRate   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Zones           []Zone
	Admins          []AdminRef
}

// Filter defines parameters for listing beaches.
type Filter struct {
	Keyword  string // matches name or location
	Status   string
	Page     int
	PageSize int
}

// OccupancyOverviewItem is one row of the all-beaches occupancy view.
type OccupancyOverviewItem struct {
	BeachID         string `json:"beachId"`
	Name            string `json:"name"`
	OccupancyRate   int    `json:"occupancyRate"`
	Capacity        int    `json:"capacity"`
	CurrentBookings int    `json:"currentBookings"`
}

// StatsSummary is the aggregate headline for the beach listing page.
type StatsSummary struct {
	TotalBeaches int `json:"totalBeaches"`
	ActiveAdmins int `json:"activeAdmins"`
}
