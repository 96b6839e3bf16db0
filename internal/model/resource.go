package model

import (
	"github.com/uptrace/bun"
)

// Resource is a finite-capacity production cell specialized to one stage.
// Resources are immutable for the duration of one scheduling run.
type Resource struct {
	bun.BaseModel `bun:"resources,alias:r"`

	ResourceID int    `bun:",pk,autoincrement" json:"id"`
	Name       string `json:"name"`
	Stage      string `json:"stage"`

	// DailyHours is the bookable capacity of one working day.
	DailyHours float64 `json:"dailyHours"`

	LargeCapable bool `json:"largeCapable"`
	Available    bool `json:"available"`
}
