package http

import (
	"time"

	"github.com/playamar/beach-admin-backend/internal/beach"
	"github.com/playamar/beach-admin-backend/internal/pkg/request"
)

// SunbedResponse is the API shape of a single sunbed.
type SunbedResponse struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`
	Row           int     `json:"row"`
	Col           int     `json:"col"`
	Status        string  `json:"status"`
	PriceModifier float64 `json:"priceModifier"`
}

// ZoneResponse is the API shape of a zone including its sunbed grid.
type ZoneResponse struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Rows    int              `json:"rows"`
	Cols    int              `json:"cols"`
	Sunbeds []SunbedResponse `json:"sunbeds"`
}

// AdminResponse is the brief shape of an assigned admin.
type AdminResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// BeachResponse is the full aggregate returned by detail endpoints and by
// every mutation, so clients always see fresh derived figures.
type BeachResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Location        string          `json:"location"`
	Status          string          `json:"status"`
	PricePerDay     float64         `json:"pricePerDay"`
	Amenities       []string        `json:"amenities"`
	Images          []string        `json:"images"`
	TotalCapacity   int             `json:"totalCapacity"`
	CurrentBookings int             `json:"currentBookings"`
	OccupancyRate   int             `json:"occupancyRate"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Zones           []ZoneResponse  `json:"zones"`
	Admins          []AdminResponse `json:"admins"`
}

func NewSunbedResponse(b beach.Sunbed) SunbedResponse {
	return SunbedResponse{
		ID:            b.ID,
		Code:          b.Code,
		Row:           b.Row,
		Col:           b.Col,
		Status:        string(b.Status),
		PriceModifier: b.PriceModifier,
	}
}

func NewZoneResponse(z beach.Zone) ZoneResponse {
	beds := make([]SunbedResponse, 0, len(z.Sunbeds))
	for _, b := range z.Sunbeds {
		beds = append(beds, NewSunbedResponse(b))
	}
	return ZoneResponse{
		ID:      z.ID,
		Name:    z.Name,
		Rows:    z.Rows,
		Cols:    z.Cols,
		Sunbeds: beds,
	}
}

func NewBeachResponse(b *beach.Beach) BeachResponse {
	zones := make([]ZoneResponse, 0, len(b.Zones))
	for _, z := range b.Zones {
		zones = append(zones, NewZoneResponse(z))
	}
	admins := make([]AdminResponse, 0, len(b.Admins))
	for _, a := range b.Admins {
		admins = append(admins, AdminResponse{ID: a.ID, Email: a.Email, Name: a.Name})
	}
	return BeachResponse{
		ID:              b.ID,
		Name:            b.Name,
		Location:        b.Location,
		Status:          string(b.Status),
		PricePerDay:     b.PricePerDay,
		Amenities:       b.Amenities,
		Images:          b.Images,
		TotalCapacity:   b.TotalCapacity,
		CurrentBookings: b.CurrentBookings,
		OccupancyRate:   b.OccupancyRate,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		Zones:           zones,
		Admins:          admins,
	}
}

// BeachListItem is the compact shape used by the paginated listing.
type BeachListItem struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Location        string    `json:"location"`
	Status          string    `json:"status"`
	PricePerDay     float64   `json:"pricePerDay"`
	TotalCapacity   int       `json:"totalCapacity"`
	CurrentBookings int       `json:"currentBookings"`
	OccupancyRate   int       `json:"occupancyRate"`
	CreatedAt       time.Time `json:"createdAt"`
}

func NewBeachListItem(b *beach.Beach) BeachListItem {
	return BeachListItem{
		ID:              b.ID,
		Name:            b.Name,
		Location:        b.Location,
		Status:          string(b.Status),
		PricePerDay:     b.PricePerDay,
		TotalCapacity:   b.TotalCapacity,
		CurrentBookings: b.CurrentBookings,
		OccupancyRate:   b.OccupancyRate,
		CreatedAt:       b.CreatedAt,
	}
}

// ListBeachesRequest defines query parameters for listing beaches.
type ListBeachesRequest struct {
	request.ListParams
	Keyword string `form:"q"`
	Status  string `form:"status" binding:"omitempty,oneof=active inactive maintenance"`
}

// CreateBeachRequest defines the payload for creating a beach.
type CreateBeachRequest struct {
	Name          string   `json:"name" binding:"required"`
	Location      string   `json:"location"`
	Status        string   `json:"status" binding:"omitempty,oneof=active inactive maintenance"`
	PricePerDay   float64  `json:"pricePerDay" binding:"omitempty,gte=0"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	TotalCapacity int      `json:"totalCapacity" binding:"omitempty,gte=0"`
}

// UpdateBeachRequest defines the partial update payload. Pointers
// distinguish "field not sent" from "field sent empty".
type UpdateBeachRequest struct {
	Name        *string   `json:"name"`
	Location    *string   `json:"location"`
	Status      *string   `json:"status" binding:"omitempty,oneof=active inactive maintenance"`
	PricePerDay *float64  `json:"pricePerDay" binding:"omitempty,gte=0"`
	Amenities   *[]string `json:"amenities"`
}

// SunbedSpec is a caller-supplied bed in an explicit zone layout.
type SunbedSpec struct {
	Code          string  `json:"code"`
	Row           int     `json:"row" binding:"required,gte=1"`
	Col           int     `json:"col" binding:"required,gte=1"`
	Status        string  `json:"status"`
	PriceModifier float64 `json:"priceModifier"`
}

func (s SunbedSpec) toDomain() beach.Sunbed {
	return beach.Sunbed{
		Code:          s.Code,
		Row:           s.Row,
		Col:           s.Col,
		Status:        beach.SunbedStatus(s.Status),
		PriceModifier: s.PriceModifier,
	}
}

func toDomainSunbeds(specs []SunbedSpec) []beach.Sunbed {
	beds := make([]beach.Sunbed, len(specs))
	for i, s := range specs {
		beds[i] = s.toDomain()
	}
	return beds
}

// CreateZoneRequest defines the payload for adding a zone. An explicit
// sunbeds list overrides the generated rows×cols grid.
type CreateZoneRequest struct {
	Name    string       `json:"name" binding:"required"`
	Rows    int          `json:"rows" binding:"gte=0"`
	Cols    int          `json:"cols" binding:"gte=0"`
	Sunbeds []SunbedSpec `json:"sunbeds"`
}

// UpdateZoneRequest defines the partial zone update payload.
type UpdateZoneRequest struct {
	Name    *string      `json:"name"`
	Rows    *int         `json:"rows" binding:"omitempty,gte=0"`
	Cols    *int         `json:"cols" binding:"omitempty,gte=0"`
	Sunbeds []SunbedSpec `json:"sunbeds"`
}

// UpdateSunbedRequest defines the payload for flipping a bed's status.
type UpdateSunbedRequest struct {
	Status string `json:"status" binding:"required,oneof=available reserved unavailable selected"`
}

// AssignAdminsRequest accepts either a single user id or a list.
type AssignAdminsRequest struct {
	UserID  string   `json:"userId"`
	UserIDs []string `json:"userIds"`
}

func (r AssignAdminsRequest) allIDs() []string {
	ids := r.UserIDs
	if r.UserID != "" {
		ids = append(ids, r.UserID)
	}
	return ids
}
