package repository

import "time"

type EntityDocument struct {
	ID             string          `bson:"_id"`
	Code           string          `bson:"code"`
	Name           string          `bson:"name"`
	NormalizedName string          `bson:"normalized_name"`
	Slug           string          `bson:"slug"`
	Description    string          `bson:"description,omitempty"`
	Icon           string          `bson:"icon,omitempty"`
	Color          string          `bson:"color,omitempty"`
	Active         bool            `bson:"active"`
	Level          int             `bson:"level,omitempty"`
	ParentID       string          `bson:"parent_id,omitempty"`
	Order          int             `bson:"order"`
	Metrics        MetricsDocument `bson:"metrics"`
	CreatedAt      *time.Time      `bson:"created_at,omitempty"`
	UpdatedAt      *time.Time      `bson:"updated_at,omitempty"`
}

type MetricsDocument struct {
	ActiveProducts int `bson:"active_products"`
	TotalProducts  int `bson:"total_products"`
}
