package domain

import "github.com/shopspring/decimal"

// CartLine is an ephemeral pre-checkout selection of one inventory item.
// It carries a snapshot of the item, not a live reference; quantity is
// fixed at 1.
type CartLine struct {
	ID          string          `json:"id"`
	InventoryID string          `json:"inventory_id"`
	Name        string          `json:"name"`
	Type        string          `json:"type,omitempty"`
	Location    string          `json:"location,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// CartLineFromItem snapshots an inventory item into a cart line.
func CartLineFromItem(item InventoryItem) CartLine {
	return CartLine{
		InventoryID: item.ID,
		Name:        item.Name,
		Type:        item.Type,
		Location:    item.Location,
		Price:       item.EstPrice,
		Quantity:    1,
	}
}
