package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Customer aggregates (TotalOrders, TotalSpentCents) are caches maintained
// on order creation, not a ledger recomputed from history.
type Customer struct {
	gorm.Model
	Name            string         `json:"name"`
	Phone           string         `json:"phone" gorm:"size:24;uniqueIndex"`
	Email           string         `json:"email"`
	City            string         `json:"city"`
	TotalOrders     int            `json:"totalOrders"`
	TotalSpentCents int64          `json:"totalSpentCents"`
	Tags            datatypes.JSON `json:"tags"`
	Blocked         bool           `json:"blocked"`
}
