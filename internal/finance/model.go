package finance

import (
	"errors"
	"time"
)

var (
	ErrRecordNotFound = errors.New("finance record not found")
	ErrPayoutNotFound = errors.New("payout not found")
)

// RecordType enumerates the categories of a finance record.
type RecordType string

const (
	TypeRentalIncome RecordType = "rental_income"
	TypeServiceFee   RecordType = "service_fee"
	TypeExpense      RecordType = "expense"
)

// ValidRecordType reports whether t is a known record type.
func ValidRecordType(t RecordType) bool {
	return t == TypeRentalIncome || t == TypeServiceFee || t == TypeExpense
}

// ServiceFeeShare is the platform cut recorded alongside every booking's
// rental income.
const ServiceFeeShare = 0.10

// Record is a single money movement, optionally tied to a booking or beach.
type Record struct {
	ID          string
	Type        RecordType
	Amount      float64
	Description string
	BookingID   *string
	BeachID     *string
	RecordDate  time.Time
	CreatedAt   time.Time
}

// RecordFilter defines parameters for listing finance records.
type RecordFilter struct {
	Type     string
	BeachID  string
	Month    int // 1-12, zero means any
	Year     int
	Page     int
	PageSize int
}

// TypeTotal is one row of the by-type summary.
type TypeTotal struct {
	Type  RecordType `json:"type"`
	Total float64    `json:"total"`
}

// MonthlyRevenue is one month of the revenue breakdown.
type MonthlyRevenue struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
}

// Overview is the finance headline: totals plus pending payout exposure.
type Overview struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalExpenses  float64 `json:"totalExpenses"`
	PendingPayouts float64 `json:"pendingPayouts"`
}

// PayoutStatus enumerates payout lifecycle states.
type PayoutStatus string

const (
	PayoutPending   PayoutStatus = "pending"
	PayoutApproved  PayoutStatus = "approved"
	PayoutRejected  PayoutStatus = "rejected"
	PayoutCompleted PayoutStatus = "completed"
)

// ValidPayoutStatus reports whether s is a known payout status.
func ValidPayoutStatus(s PayoutStatus) bool {
	switch s {
	case PayoutPending, PayoutApproved, PayoutRejected, PayoutCompleted:
		return true
	}
	return false
}

// Payout is a beach operator's request to withdraw accumulated revenue.
type Payout struct {
	ID            string
	BeachID       string
	BeachName     string
	Amount        float64
	Status        PayoutStatus
	RequestedDate time.Time
	ProcessedDate *time.Time
	ProcessedBy   *string
	Notes         string
}

// PayoutFilter defines parameters for listing payouts.
type PayoutFilter struct {
	BeachID  string
	Status   string
	Page     int
	PageSize int
}
