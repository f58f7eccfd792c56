package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// component sort options for filtering
const (
	SortPriceAsc      = "price_asc"
	SortPriceDesc     = "price_desc"
	SortCreatedAtDesc = "created_at_desc"
	SortLikesDesc     = "likes_desc"
	SortViewsDesc     = "views_desc"
	SortPopular       = "popular"
)

// Component is reusable UI component entity
type Component struct {
	ID            uuid.UUID
	Name          string
	Description   string
	HTML          string
	CSS           string
	JS            string
	PreviewURL    string
	Type          string
	Framework     string
	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
	Views         int64
	Likes         int64
	Tags          []Tag
	CreatedBy     uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	IsActive      bool
}

// Tag is component tag entity
type Tag struct {
	ID   uuid.UUID
	Name string
}

// ComponentFilter is set of filtering and sorting options for component listing
type ComponentFilter struct {
	Keyword   string
	Framework string
	Type      string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	TagIDs    []uuid.UUID
	SortBy    string
	Page      int
	PageSize  int
}

// Normalize clamps pagination bounds
func (f *ComponentFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 10
	}
	if f.PageSize > 50 {
		f.PageSize = 50
	}
}

// IsValidSort reports whether sort option is known. Empty means default.
func IsValidSort(s string) bool {
	switch s {
	case "", SortPriceAsc, SortPriceDesc, SortCreatedAtDesc, SortLikesDesc, SortViewsDesc, SortPopular:
		return true
	}
	return false
}
