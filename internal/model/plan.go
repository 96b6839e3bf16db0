package model

import (
	"time"
)

const (
	DropReasonNoResource       = "no_resource"
	DropReasonHorizonExhausted = "horizon_exhausted"
)

// BookingDetail records the provenance of hours booked on a resource day.
type BookingDetail struct {
	OrderID     int     `json:"orderId"`
	OrderNumber string  `json:"orderNumber"`
	MarkID      int     `json:"markId,omitempty"`
	Label       string  `json:"label"`
	Hours       float64 `json:"hours"`
	Simulated   bool    `json:"simulated"`

	// Drying marks paint-drying occupancy: it consumes capacity but is not
	// working time.
	Drying bool `json:"drying,omitempty"`
}

type DayLoad struct {
	Booked  float64          `json:"booked"`
	Details []*BookingDetail `json:"details"`
}

// LoadMatrix is the per-resource, per-ISO-date ledger of one scheduling run.
// It is built fresh per run and never persisted by the engine.
type LoadMatrix map[int]map[string]*DayLoad

// ScheduledOperation is an operation with a concrete placement.
type ScheduledOperation struct {
	OrderID     int       `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	MarkID      int       `json:"markId,omitempty"`
	OperationID int       `json:"operationId,omitempty"`
	Stage       string    `json:"stage"`
	Label       string    `json:"label"`
	ResourceID  int       `json:"resourceId"`
	Hours       float64   `json:"hours"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Simulated   bool      `json:"simulated"`
}

// OrderTimeline is the per-order completion forecast.
type OrderTimeline struct {
	OrderID     int       `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Deadline    time.Time `json:"deadline"`
	Late        bool      `json:"late"`
	LateDays    int       `json:"lateDays"`
	Simulated   bool      `json:"simulated"`
}

// DroppedOperation surfaces demand the allocator could not place instead of
// silently omitting it.
type DroppedOperation struct {
	OrderID     int     `json:"orderId"`
	OrderNumber string  `json:"orderNumber"`
	MarkID      int     `json:"markId,omitempty"`
	Stage       string  `json:"stage"`
	Label       string  `json:"label"`
	Hours       float64 `json:"hours"`
	Reason      string  `json:"reason"`
	Simulated   bool    `json:"simulated"`
}

type PlanResult struct {
	GeneratedAt time.Time `json:"generatedAt"`

	// Simulated is set when the run included what-if orders.
	Simulated bool `json:"simulated"`

	Load       LoadMatrix            `json:"load"`
	Operations []*ScheduledOperation `json:"operations"`
	Timelines  []*OrderTimeline      `json:"timelines"`
	Dropped    []*DroppedOperation   `json:"dropped"`
}
