package dto

import "time"

// Tipos de evento del catálogo.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent evento publicado tras escribir un producto.
type ProductEvent struct {
	Type        string    `json:"type"`
	OwnerID     string    `json:"owner_id"`
	ProductID   string    `json:"product_id"`
	WarehouseID string    `json:"warehouse_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
