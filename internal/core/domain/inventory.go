package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ItemStatus string

const (
	ItemStatusAvailable ItemStatus = "available"
	ItemStatusListed    ItemStatus = "listed"
	ItemStatusOrdered   ItemStatus = "ordered"
	ItemStatusSold      ItemStatus = "sold"
	ItemStatusDeleted   ItemStatus = "deleted"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusAvailable, ItemStatusListed, ItemStatusOrdered, ItemStatusSold, ItemStatusDeleted:
		return true
	}
	return false
}

type InventoryPhoto struct {
	ID          string `json:"id"`
	InventoryID string `json:"inventory_id"`
	FilePath    string `json:"file_path"`
	FileName    string `json:"file_name"`
	IsPrimary   bool   `json:"is_primary"`
}

// InventoryItem is a unit of stock with a lifecycle status independent of
// any order. Items are never physically removed; deletion is a status.
type InventoryItem struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Make        string           `json:"make,omitempty"`
	Family      string           `json:"family,omitempty"`
	Subcategory string           `json:"subcategory,omitempty"`
	Possibility string           `json:"possibility,omitempty"`
	Status      ItemStatus       `json:"status"`
	EstPrice    decimal.Decimal  `json:"est_price"`
	Location    string           `json:"location,omitempty"`
	Source      string           `json:"source,omitempty"`
	SellerID    string           `json:"seller_id,omitempty"`
	Comment     string           `json:"comment,omitempty"`
	Remark      string           `json:"remark,omitempty"`
	Photos      []InventoryPhoto `json:"photos,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CanChangeItemStatus reports whether an item may move from current to
// next. Ordered items are frozen against relisting or unlisting.
func CanChangeItemStatus(current, next ItemStatus) bool {
	if current == ItemStatusOrdered && (next == ItemStatusAvailable || next == ItemStatusListed) {
		return false
	}
	return true
}

// ItemFilter is a closed filter record: Query matches name, type or id as
// a case-insensitive substring, the remaining fields match exactly when
// set.
type ItemFilter struct {
	Query       string
	Type        string
	Possibility string
	Location    string
	Source      string
	Status      ItemStatus
}

func (f ItemFilter) Matches(item InventoryItem) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(item.Name), q) &&
			!strings.Contains(strings.ToLower(item.Type), q) &&
			!strings.Contains(strings.ToLower(item.ID), q) {
			return false
		}
	}
	if f.Type != "" && item.Type != f.Type {
		return false
	}
	if f.Possibility != "" && item.Possibility != f.Possibility {
		return false
	}
	if f.Location != "" && item.Location != f.Location {
		return false
	}
	if f.Source != "" && item.Source != f.Source {
		return false
	}
	if f.Status != "" && item.Status != f.Status {
		return false
	}
	return true
}
