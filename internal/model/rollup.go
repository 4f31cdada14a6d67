package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type AlertCode string

const (
	AlertExpiringSoon   AlertCode = "expiring_soon"
	AlertPastExpiration AlertCode = "past_expiration"
	AlertStockCritical  AlertCode = "stock_critical"
	AlertProblems       AlertCode = "problems"
)

type Alert struct {
	Code  AlertCode
	Count int
}

// RollupParams carries the externally configured thresholds.
type RollupParams struct {
	Now time.Time
	// Days ahead of Now that count as "expiring soon".
	ExpiryWindowDays int
	// Fixed reorder point; 0 disables the check.
	ReorderPoint int
	// Capacity and the share of it below which stock is critical; a zero
	// capacity disables the check.
	Capacity      int
	CriticalRatio float64
}

// ProductRollup is the derived view over all units of one product.
type ProductRollup struct {
	ProductID string
	SKU       string

	Counts map[UnitState]int

	ReceivedOrigin         int
	InTransitOrigin        int
	InTransitDestination   int
	AvailableAtDestination int
	Reserved               int
	Sold                   int
	Expired                int
	Damaged                int

	InTransit  int
	Problems   int
	TotalUnits int

	TotalValue  decimal.Decimal
	AverageCost decimal.Decimal

	ExpiringSoon   int
	PastExpiration int
	NextExpiration *time.Time

	StockCritical bool
	Alerts        []Alert

	// Available unit ids in first-expire-first-out order.
	AllocationOrder []string
	// Units still held (non-terminal) per warehouse.
	ByWarehouse map[string]int

	ComputedAt time.Time
}
