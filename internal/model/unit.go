package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type UnitState string

const (
	StateReceivedOrigin       UnitState = "received_origin"
	StateInTransitOrigin      UnitState = "in_transit_origin"
	StateInTransitDestination UnitState = "in_transit_destination"
	StateAvailableDestination UnitState = "available_destination"
	StateReserved             UnitState = "reserved"
	StateSold                 UnitState = "sold"
	StateExpired              UnitState = "expired"
	StateDamaged              UnitState = "damaged"
)

// States lists every state in lifecycle order.
var States = []UnitState{
	StateReceivedOrigin,
	StateInTransitOrigin,
	StateInTransitDestination,
	StateAvailableDestination,
	StateReserved,
	StateSold,
	StateExpired,
	StateDamaged,
}

// forward holds the single happy-path successor of each non-terminal state.
// Expired and damaged are reachable from every non-terminal state.
var forward = map[UnitState]UnitState{
	StateReceivedOrigin:       StateInTransitOrigin,
	StateInTransitOrigin:      StateInTransitDestination,
	StateInTransitDestination: StateAvailableDestination,
	StateAvailableDestination: StateReserved,
	StateReserved:             StateSold,
}

func (s UnitState) Valid() bool {
	switch s {
	case StateReceivedOrigin, StateInTransitOrigin, StateInTransitDestination,
		StateAvailableDestination, StateReserved, StateSold, StateExpired, StateDamaged:
		return true
	default:
		return false
	}
}

func (s UnitState) Terminal() bool {
	return s == StateSold || s == StateExpired || s == StateDamaged
}

// Problem reports whether the unit was written off by an inspection.
func (s UnitState) Problem() bool {
	return s == StateExpired || s == StateDamaged
}

func CanTransition(from, to UnitState) bool {
	if !from.Valid() || !to.Valid() || from.Terminal() {
		return false
	}
	if to.Problem() {
		return true
	}
	return forward[from] == to
}

// AllowedTargets returns the states reachable from s in one step.
func AllowedTargets(s UnitState) []UnitState {
	if !s.Valid() || s.Terminal() {
		return nil
	}
	return []UnitState{forward[s], StateExpired, StateDamaged}
}

// Unit is one physical item of stock.
type Unit struct {
	ID              string
	ProductID       string
	SKU             string
	LotCode         string
	PurchaseOrderID string

	WarehouseID string
	Country     string

	State          UnitState
	ExpirationDate *time.Time
	// Immutable once the unit is received.
	Cost decimal.Decimal

	// Reservation or sale reference, set when entering reserved or sold.
	Reference string
	// Why the unit was written off, set when entering expired or damaged.
	Reason string

	ReceivedAt    *time.Time
	TransferredAt *time.Time
	ArrivedAt     *time.Time
	ReservedAt    *time.Time
	SoldAt        *time.Time
	DisposedAt    *time.Time
	UpdatedAt     *time.Time
}

type TransitionMetadata struct {
	// Moment of the transition. Zero means now.
	At time.Time
	// Destination warehouse; only accepted when entering
	// in_transit_destination or available_destination.
	WarehouseID string
	Country     string
	Reference   string
	Reason      string
}

type TransitionParams struct {
	UnitID   string
	Target   UnitState
	Metadata TransitionMetadata
}

type BatchTransitionParams struct {
	UnitIDs  []string
	Target   UnitState
	Metadata TransitionMetadata
}

type UnitFailure struct {
	UnitID string
	Err    error
}

type BatchTransitionResult struct {
	Updated  []*Unit
	Failures []UnitFailure
}

// PurchaseOrderLine is the slice of a received purchase order that turns into
// physical units.
type PurchaseOrderLine struct {
	PurchaseOrderID string
	ProductID       string
	SKU             string
	LotCode         string
	Quantity        int
	UnitCost        decimal.Decimal
	ExpirationDate  *time.Time
	WarehouseID     string
	Country         string
	ReceivedAt      time.Time
}

type UnitOrder string

const (
	UnitOrderDefault UnitOrder = ""
	UnitOrderFEFO    UnitOrder = "fefo"
)
