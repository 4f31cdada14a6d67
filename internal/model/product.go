package model

import (
	"slices"
	"time"
)

// Snapshot is the denormalized copy of a classification entity embedded in a
// product.
type Snapshot struct {
	ID         string
	Code       string
	Name       string
	Slug       string
	Icon       string
	Color      string
	Level      int
	ParentID   string
	ParentName string
}

// Product is the read model shared with the catalogue screens. Only the fields
// the core relies on are modelled.
type Product struct {
	ID     string
	SKU    string
	Name   string
	Active bool

	CategoryIDs   []string
	Categories    []Snapshot
	TagIDs        []string
	Tags          []Snapshot
	ProductTypeID string
	ProductType   *Snapshot

	// Per-product overrides for the stock-critical thresholds.
	ReorderPoint *int
	Capacity     *int

	Version   int64
	UpdatedAt *time.Time
}

// Snapshots returns the embedded snapshots for kind as a slice. A product
// type is held as a single optional value.
func (p *Product) Snapshots(kind EntityKind) []Snapshot {
	switch kind {
	case KindCategory:
		return p.Categories
	case KindTag:
		return p.Tags
	case KindProductType:
		if p.ProductType == nil {
			return nil
		}
		return []Snapshot{*p.ProductType}
	default:
		return nil
	}
}

func (p *Product) References(kind EntityKind, id string) bool {
	switch kind {
	case KindCategory:
		return slices.Contains(p.CategoryIDs, id)
	case KindTag:
		return slices.Contains(p.TagIDs, id)
	case KindProductType:
		return p.ProductTypeID == id
	default:
		return false
	}
}

// SetSnapshots stores snaps as the embedded snapshots of kind.
func (p *Product) SetSnapshots(kind EntityKind, snaps []Snapshot) {
	switch kind {
	case KindCategory:
		p.Categories = snaps
	case KindTag:
		p.Tags = snaps
	case KindProductType:
		if len(snaps) == 0 {
			p.ProductType = nil
			return
		}
		s := snaps[0]
		p.ProductType = &s
	}
}

// CountMetrics derives entity metrics from the products referencing it.
func CountMetrics(products []*Product) EntityMetrics {
	m := EntityMetrics{TotalProducts: len(products)}
	for _, p := range products {
		if p != nil && p.Active {
			m.ActiveProducts++
		}
	}
	return m
}
