package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type UnitEntity struct {
	ID              string          `bson:"_id"`
	ProductID       string          `bson:"product_id"`
	SKU             string          `bson:"sku"`
	LotCode         string          `bson:"lot_code,omitempty"`
	PurchaseOrderID string          `bson:"purchase_order_id,omitempty"`
	WarehouseID     string          `bson:"warehouse_id"`
	Country         string          `bson:"country,omitempty"`
	State           string          `bson:"state"`
	ExpirationDate  *time.Time      `bson:"expiration_date,omitempty"`
	Cost            bson.Decimal128 `bson:"cost"`
	Reference       string          `bson:"reference,omitempty"`
	Reason          string          `bson:"reason,omitempty"`
	ReceivedAt      *time.Time      `bson:"received_at,omitempty"`
	TransferredAt   *time.Time      `bson:"transferred_at,omitempty"`
	ArrivedAt       *time.Time      `bson:"arrived_at,omitempty"`
	ReservedAt      *time.Time      `bson:"reserved_at,omitempty"`
	SoldAt          *time.Time      `bson:"sold_at,omitempty"`
	DisposedAt      *time.Time      `bson:"disposed_at,omitempty"`
	UpdatedAt       *time.Time      `bson:"updated_at,omitempty"`
}
