package model

import "time"

type EntityKind string

const (
	KindCategory    EntityKind = "category"
	KindTag         EntityKind = "tag"
	KindProductType EntityKind = "product_type"
)

var Kinds = []EntityKind{KindCategory, KindTag, KindProductType}

func (k EntityKind) Valid() bool {
	return k == KindCategory || k == KindTag || k == KindProductType
}

// CodePrefix is the human-readable prefix of sequential codes, e.g. CAT-0007.
func (k EntityKind) CodePrefix() string {
	switch k {
	case KindCategory:
		return "CAT"
	case KindTag:
		return "TAG"
	case KindProductType:
		return "TPR"
	default:
		return ""
	}
}

const (
	CategoryLevelRoot  = 1
	CategoryLevelChild = 2
)

type EntityMetrics struct {
	ActiveProducts int
	TotalProducts  int
}

// Entity is the canonical record of a Category, Tag or ProductType.
type Entity struct {
	ID             string
	Kind           EntityKind
	Code           string
	Name           string
	NormalizedName string
	Slug           string
	Description    string
	Icon           string
	Color          string
	Active         bool

	// Category only.
	Level    int
	ParentID string
	Order    int

	Metrics   EntityMetrics
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

type CreateEntityParams struct {
	Kind        EntityKind
	Name        string
	Description string
	Icon        string
	Color       string
	Level       int
	ParentID    string
	Order       int
}

// UpdateEntityParams carries optional changes; nil fields are left untouched.
type UpdateEntityParams struct {
	Name        *string
	Description *string
	Icon        *string
	Color       *string
	ParentID    *string
	Order       *int
}

func (p UpdateEntityParams) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Icon == nil &&
		p.Color == nil && p.ParentID == nil && p.Order == nil
}

type UpdateEntityResult struct {
	Entity      *Entity
	Propagation []*PropagationResult
}

// Snapshot projects the entity into the form embedded in products. parent is
// only consulted for level-2 categories.
func (e *Entity) Snapshot(parent *Entity) Snapshot {
	s := Snapshot{
		ID:    e.ID,
		Code:  e.Code,
		Name:  e.Name,
		Slug:  e.Slug,
		Icon:  e.Icon,
		Color: e.Color,
	}
	if e.Kind == KindCategory {
		s.Level = e.Level
		s.ParentID = e.ParentID
		if parent != nil && parent.ID == e.ParentID {
			s.ParentName = parent.Name
		}
	}
	return s
}

// EntityFilter narrows List. Zero values match everything.
type EntityFilter struct {
	ActiveOnly bool
	Level      int
	ParentID   string
}

func (f EntityFilter) Match(e *Entity) bool {
	if f.ActiveOnly && !e.Active {
		return false
	}
	if f.Level != 0 && e.Level != f.Level {
		return false
	}
	if f.ParentID != "" && e.ParentID != f.ParentID {
		return false
	}
	return true
}
