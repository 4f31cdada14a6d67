// Package inventoryv1 holds the JSON wire types of the inventory HTTP API.
package inventoryv1

import (
	"time"

	"github.com/shopspring/decimal"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ReceiveRequest struct {
	PurchaseOrderID string          `json:"purchase_order_id"`
	ProductID       string          `json:"product_id"`
	SKU             string          `json:"sku,omitempty"`
	LotCode         string          `json:"lot_code,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	ExpirationDate  *time.Time      `json:"expiration_date,omitempty"`
	WarehouseID     string          `json:"warehouse_id"`
	Country         string          `json:"country,omitempty"`
	ReceivedAt      *time.Time      `json:"received_at,omitempty"`
}

type Unit struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	SKU             string          `json:"sku"`
	LotCode         string          `json:"lot_code,omitempty"`
	PurchaseOrderID string          `json:"purchase_order_id,omitempty"`
	WarehouseID     string          `json:"warehouse_id"`
	Country         string          `json:"country,omitempty"`
	State           string          `json:"state"`
	AllowedTargets  []string        `json:"allowed_targets"`
	ExpirationDate  *time.Time      `json:"expiration_date,omitempty"`
	Cost            decimal.Decimal `json:"cost"`
	Reference       string          `json:"reference,omitempty"`
	Reason          string          `json:"reason,omitempty"`
	ReceivedAt      *time.Time      `json:"received_at,omitempty"`
	TransferredAt   *time.Time      `json:"transferred_at,omitempty"`
	ArrivedAt       *time.Time      `json:"arrived_at,omitempty"`
	ReservedAt      *time.Time      `json:"reserved_at,omitempty"`
	SoldAt          *time.Time      `json:"sold_at,omitempty"`
	DisposedAt      *time.Time      `json:"disposed_at,omitempty"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

type UnitList struct {
	Items []Unit `json:"items"`
}

type TransitionRequest struct {
	TargetState string     `json:"target_state"`
	At          *time.Time `json:"at,omitempty"`
	WarehouseID string     `json:"warehouse_id,omitempty"`
	Country     string     `json:"country,omitempty"`
	Reference   string     `json:"reference,omitempty"`
	Reason      string     `json:"reason,omitempty"`
}

type BatchTransitionRequest struct {
	UnitIDs []string `json:"unit_ids"`
	TransitionRequest
}

type UnitFailure struct {
	UnitID  string `json:"unit_id"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type BatchTransitionResponse struct {
	Updated  []Unit        `json:"updated"`
	Failures []UnitFailure `json:"failures"`
}

type Alert struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

type Rollup struct {
	ProductID              string          `json:"product_id"`
	SKU                    string          `json:"sku"`
	Counts                 map[string]int  `json:"counts"`
	ReceivedOrigin         int             `json:"received_origin"`
	InTransitOrigin        int             `json:"in_transit_origin"`
	InTransitDestination   int             `json:"in_transit_destination"`
	AvailableAtDestination int             `json:"available_at_destination"`
	Reserved               int             `json:"reserved"`
	Sold                   int             `json:"sold"`
	Expired                int             `json:"expired"`
	Damaged                int             `json:"damaged"`
	InTransit              int             `json:"in_transit"`
	Problems               int             `json:"problems"`
	TotalUnits             int             `json:"total_units"`
	TotalValue             decimal.Decimal `json:"total_value"`
	AverageCost            decimal.Decimal `json:"average_cost"`
	ExpiringSoon           int             `json:"expiring_soon"`
	PastExpiration         int             `json:"past_expiration"`
	NextExpiration         *time.Time      `json:"next_expiration,omitempty"`
	StockCritical          bool            `json:"stock_critical"`
	Alerts                 []Alert         `json:"alerts"`
	AllocationOrder        []string        `json:"allocation_order"`
	ByWarehouse            map[string]int  `json:"by_warehouse"`
	ComputedAt             time.Time       `json:"computed_at"`
}

type EntityMetrics struct {
	ActiveProducts int `json:"active_products"`
	TotalProducts  int `json:"total_products"`
}

type Entity struct {
	ID             string        `json:"id"`
	Kind           string        `json:"kind"`
	Code           string        `json:"code"`
	Name           string        `json:"name"`
	NormalizedName string        `json:"normalized_name"`
	Slug           string        `json:"slug"`
	Description    string        `json:"description,omitempty"`
	Icon           string        `json:"icon,omitempty"`
	Color          string        `json:"color,omitempty"`
	Active         bool          `json:"active"`
	Level          int           `json:"level,omitempty"`
	ParentID       string        `json:"parent_id,omitempty"`
	Order          int           `json:"order,omitempty"`
	Metrics        EntityMetrics `json:"metrics"`
	CreatedAt      *time.Time    `json:"created_at,omitempty"`
	UpdatedAt      *time.Time    `json:"updated_at,omitempty"`
}

type EntityList struct {
	Items []Entity `json:"items"`
}

type CreateEntityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	Level       int    `json:"level,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
	Order       int    `json:"order,omitempty"`
}

type UpdateEntityRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
	Order       *int    `json:"order,omitempty"`
}

type QuickCreateRequest struct {
	Name string `json:"name"`
}

type QuickCreateResponse struct {
	Entity  Entity `json:"entity"`
	Created bool   `json:"created"`
}

type ProductFailure struct {
	ProductID string `json:"product_id"`
	Message   string `json:"message"`
}

type Propagation struct {
	Kind       string           `json:"kind"`
	EntityID   string           `json:"entity_id"`
	Matched    int              `json:"matched"`
	Affected   int              `json:"affected"`
	Unchanged  int              `json:"unchanged"`
	Errors     []ProductFailure `json:"errors"`
	DurationMS int64            `json:"duration_ms"`
}

type UpdateEntityResponse struct {
	Entity      Entity        `json:"entity"`
	Propagation []Propagation `json:"propagation"`
	Message     string        `json:"message,omitempty"`
}

type RepairRequest struct {
	Kinds []string `json:"kinds,omitempty"`
}

type EntityFailure struct {
	Kind     string `json:"kind"`
	EntityID string `json:"entity_id"`
	Message  string `json:"message"`
}

type RepairResponse struct {
	Entities  int             `json:"entities"`
	Affected  int             `json:"affected"`
	Unchanged int             `json:"unchanged"`
	Results   []Propagation   `json:"results"`
	Errors    []EntityFailure `json:"errors"`
	Message   string          `json:"message,omitempty"`
}
