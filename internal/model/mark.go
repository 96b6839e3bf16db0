package model

import (
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// Mark is one fabrication unit of an order, possibly produced in multiple
// identical copies.
type Mark struct {
	bun.BaseModel `bun:"marks,alias:mk"`

	MarkID  int    `bun:",pk,autoincrement" json:"id"`
	OrderID int    `json:"orderId"`
	Name    string `json:"name"`

	// WeightTonnes is the weight of a single copy; norms operate on it
	// directly, batch quantity is applied by the engine.
	WeightTonnes float64 `json:"weightTonnes"`
	Count        int     `json:"count"`

	MaxLengthMM  float64 `json:"maxLengthMm"`
	SizeCategory string  `json:"sizeCategory"`
	Complexity   string  `json:"complexity"`

	HasProfileCut    bool       `json:"hasProfileCut"`
	HasSheetCut      bool       `json:"hasSheetCut"`
	NeedsRolling     bool       `json:"needsRolling"`
	SheetThicknessMM null.Float `json:"sheetThicknessMm"`

	// HeaviestPieceTonnes drives the crane coefficient on profile cutting.
	HeaviestPieceTonnes float64 `json:"heaviestPieceTonnes"`

	Operations []*Operation `bun:"rel:has-many,join:mark_id=mark_id" json:"operations,omitempty"`
}
