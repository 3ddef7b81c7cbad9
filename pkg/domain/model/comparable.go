package model

import (
	"time"

	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

// Comparable is one comparable sale transaction attached to a session
type Comparable struct {
	ID        types.ComparableID
	SessionID types.SessionID
	Address   string
	SaleDate  time.Time
	AreaSqm   float64
	Price     float64
	CreatedAt time.Time
}

// PricePerSqm returns the unit price, or 0 for a zero area
func (c *Comparable) PricePerSqm() float64 {
	if c.AreaSqm <= 0 {
		return 0
	}
	return c.Price / c.AreaSqm
}
