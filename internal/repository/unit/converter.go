package repository

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/you-humble/supplement-inventory/internal/model"
)

func EntityToModel(e *UnitEntity) (*model.Unit, error) {
	if e == nil {
		return nil, nil
	}

	cost, err := decimal.NewFromString(e.Cost.String())
	if err != nil {
		return nil, fmt.Errorf("unit %s: cost %q: %w", e.ID, e.Cost.String(), err)
	}

	return &model.Unit{
		ID:              e.ID,
		ProductID:       e.ProductID,
		SKU:             e.SKU,
		LotCode:         e.LotCode,
		PurchaseOrderID: e.PurchaseOrderID,
		WarehouseID:     e.WarehouseID,
		Country:         e.Country,
		State:           model.UnitState(e.State),
		ExpirationDate:  e.ExpirationDate,
		Cost:            cost,
		Reference:       e.Reference,
		Reason:          e.Reason,
		ReceivedAt:      e.ReceivedAt,
		TransferredAt:   e.TransferredAt,
		ArrivedAt:       e.ArrivedAt,
		ReservedAt:      e.ReservedAt,
		SoldAt:          e.SoldAt,
		DisposedAt:      e.DisposedAt,
		UpdatedAt:       e.UpdatedAt,
	}, nil
}

func EntityFromModel(u *model.Unit) (*UnitEntity, error) {
	if u == nil {
		return nil, nil
	}

	cost, err := bson.ParseDecimal128(u.Cost.String())
	if err != nil {
		return nil, err
	}

	return &UnitEntity{
		ID:              u.ID,
		ProductID:       u.ProductID,
		SKU:             u.SKU,
		LotCode:         u.LotCode,
		PurchaseOrderID: u.PurchaseOrderID,
		WarehouseID:     u.WarehouseID,
		Country:         u.Country,
		State:           string(u.State),
		ExpirationDate:  u.ExpirationDate,
		Cost:            cost,
		Reference:       u.Reference,
		Reason:          u.Reason,
		ReceivedAt:      u.ReceivedAt,
		TransferredAt:   u.TransferredAt,
		ArrivedAt:       u.ArrivedAt,
		ReservedAt:      u.ReservedAt,
		SoldAt:          u.SoldAt,
		DisposedAt:      u.DisposedAt,
		UpdatedAt:       u.UpdatedAt,
	}, nil
}

// lifecycleSet lists the fields a transition may touch. Identity and cost are
// never part of it.
func lifecycleSet(u *model.Unit) bson.M {
	return bson.M{
		"state":          string(u.State),
		"warehouse_id":   u.WarehouseID,
		"country":        u.Country,
		"reference":      u.Reference,
		"reason":         u.Reason,
		"transferred_at": u.TransferredAt,
		"arrived_at":     u.ArrivedAt,
		"reserved_at":    u.ReservedAt,
		"sold_at":        u.SoldAt,
		"disposed_at":    u.DisposedAt,
		"updated_at":     u.UpdatedAt,
	}
}
