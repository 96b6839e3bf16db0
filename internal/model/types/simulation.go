package types

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// SimulatedOrder is a hypothetical order injected into a what-if run. It is
// expanded through the route generator exactly like a real order and competes
// for capacity identically, but never touches committed state.
type SimulatedOrder struct {
	Name     string    `json:"name" validate:"required,max=64"`
	Priority int       `json:"priority" validate:"required,min=1"`
	Deadline time.Time `json:"deadline" validate:"required"`

	// Tonnage of the single representative unit.
	Tonnage    float64 `json:"tonnage" validate:"required,gt=0"`
	Complexity string  `json:"complexity" validate:"required,oneof=simple medium complex"`
	Size       string  `json:"size" validate:"required,oneof=small medium large xlarge"`

	HasProfileCut    bool       `json:"hasProfileCut"`
	HasSheetCut      bool       `json:"hasSheetCut"`
	NeedsRolling     bool       `json:"needsRolling"`
	SheetThicknessMM null.Float `json:"sheetThicknessMm"`

	HeaviestPieceTonnes float64 `json:"heaviestPieceTonnes" validate:"min=0"`
}

type SimulationRequest struct {
	Orders []*SimulatedOrder `json:"orders" validate:"required,min=1,max=50,dive"`
}
