package model

import (
	"github.com/uptrace/bun"
)

// Operation is one step of a mark's route. Operations are created by the
// route generator and consumed, never mutated, by the scheduling engine.
type Operation struct {
	bun.BaseModel `bun:"operations,alias:op"`

	OperationID int    `bun:",pk,autoincrement" json:"id"`
	MarkID      int    `json:"markId"`
	Stage       string `json:"stage"`
	Label       string `json:"label"`

	// Seq orders a mark's route; operations sharing a Seq and carrying no
	// mutual dependency are logically parallel.
	Seq int `json:"seq"`

	// Minutes is the planned effort for a single copy of the mark.
	Minutes float64 `json:"minutes"`

	// ActualMinutes is the cumulative effort already reported from the floor,
	// across the whole batch.
	ActualMinutes float64 `json:"actualMinutes"`

	DependsOn            []string `bun:"type:jsonb" json:"dependsOn"`
	NeedsLarge           bool     `json:"needsLarge"`
	PreferredResourceIDs []int    `bun:"type:jsonb" json:"preferredResourceIds"`

	// DryingMinutes is only meaningful for painting: calendar-blocking time
	// on the paint resource that is not working time.
	DryingMinutes float64 `json:"dryingMinutes"`
}

// PlannedHours returns the total planned effort of the batch in hours.
func (op *Operation) PlannedHours(count int) float64 {
	if count < 1 {
		count = 1
	}
	return op.Minutes * float64(count) / 60
}

// RemainingHours returns planned minus reported effort, floored at zero.
// Rounding happens in the engine after aggregation.
func (op *Operation) RemainingHours(count int) float64 {
	remaining := op.PlannedHours(count) - op.ActualMinutes/60
	if remaining <= 0 {
		return 0
	}
	return remaining
}

func (op *Operation) DryingHoursValue() float64 {
	return op.DryingMinutes / 60
}
