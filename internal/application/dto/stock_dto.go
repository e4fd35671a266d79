package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockRequest entrada para crear la fila de stock de un producto en una bodega.
type CreateStockRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	WarehouseID string `json:"warehouse_id" validate:"required"`
	Quantity    int64  `json:"quantity" validate:"min=0"`
	MinQuantity int64  `json:"min_quantity" validate:"min=0"`
}

// UpdateStockRequest ajuste directo de cantidad o mínimo de una fila existente.
type UpdateStockRequest struct {
	Quantity    *int64 `json:"quantity" validate:"omitempty,min=0"`
	MinQuantity *int64 `json:"min_quantity" validate:"omitempty,min=0"`
}

// StockResponse salida de una fila de stock.
type StockResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	MinQuantity int64     `json:"min_quantity"`
	BelowMin    bool      `json:"below_min"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockListResponse filas de stock de un producto.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
}

// ReplenishmentItem sugerencia de reposición de un producto (Priority 1 = más urgente).
type ReplenishmentItem struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	CategoryName  string          `json:"category_name"`
	Quantity      int64           `json:"quantity"`
	MinQuantity   int64           `json:"min_quantity"`
	IdealQuantity int64           `json:"ideal_quantity"`
	SuggestedQty  int64           `json:"suggested_qty"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	Priority      int             `json:"priority"`
}

// ReplenishmentResponse lista de reposición de una bodega.
type ReplenishmentResponse struct {
	WarehouseID string              `json:"warehouse_id"`
	Items       []ReplenishmentItem `json:"items"`
}
