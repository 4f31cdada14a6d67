package repository

import "time"

type ProductEntity struct {
	ID            string           `bson:"_id"`
	SKU           string           `bson:"sku"`
	Name          string           `bson:"name"`
	Active        bool             `bson:"active"`
	CategoryIDs   []string         `bson:"category_ids,omitempty"`
	Categories    []SnapshotEntity `bson:"categories,omitempty"`
	TagIDs        []string         `bson:"tag_ids,omitempty"`
	Tags          []SnapshotEntity `bson:"tags,omitempty"`
	ProductTypeID string           `bson:"product_type_id,omitempty"`
	ProductType   *SnapshotEntity  `bson:"product_type,omitempty"`
	ReorderPoint  *int             `bson:"reorder_point,omitempty"`
	Capacity      *int             `bson:"capacity,omitempty"`
	Version       int64            `bson:"version"`
	UpdatedAt     *time.Time       `bson:"updated_at,omitempty"`
}

type SnapshotEntity struct {
	ID         string `bson:"id"`
	Code       string `bson:"code"`
	Name       string `bson:"name"`
	Slug       string `bson:"slug,omitempty"`
	Icon       string `bson:"icon,omitempty"`
	Color      string `bson:"color,omitempty"`
	Level      int    `bson:"level,omitempty"`
	ParentID   string `bson:"parent_id,omitempty"`
	ParentName string `bson:"parent_name,omitempty"`
}
