package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

type Order struct {
	bun.BaseModel `bun:"orders,alias:o"`

	OrderID  int         `bun:",pk,autoincrement" json:"id"`
	Number   string      `json:"number"`
	Customer null.String `json:"customer,omitempty"`

	// Priority ranks orders for the allocator; a lower numeral is more urgent.
	Priority int       `json:"priority"`
	Deadline time.Time `json:"deadline"`
	Status   string    `json:"status"`

	Marks []*Mark `bun:"rel:has-many,join:order_id=order_id" json:"marks,omitempty"`
}
