package entity

import "time"

// Stock es la cantidad de un producto en una bodega. Única fuente de cantidad:
// el producto no guarda stock. Una fila por (ProductID, WarehouseID).
type Stock struct {
	ID          string
	OwnerID     string
	ProductID   string
	WarehouseID string
	Quantity    int64
	MinQuantity int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BelowMin indica si la cantidad está por debajo del mínimo configurado.
func (s *Stock) BelowMin() bool {
	return s.MinQuantity > 0 && s.Quantity < s.MinQuantity
}
