package repository

import (
	"context"

	"github.com/jhoicas/wms-catalog/internal/domain/entity"
)

// StockRepository define el puerto del ledger de stock por (producto, bodega).
type StockRepository interface {
	// Create inserta una fila nueva; domain.ErrConflict si el par (producto, bodega) ya existe.
	Create(ctx context.Context, stock *entity.Stock) error
	// Get devuelve nil, nil si no hay fila para el par.
	Get(ctx context.Context, ownerID, productID, warehouseID string) (*entity.Stock, error)
	// Update modifica cantidad y mínimo de una fila existente; false si no existe.
	Update(ctx context.Context, stock *entity.Stock) (bool, error)
	// FindByWarehouse devuelve solo los productos con fila en esa bodega, indexados por product id.
	FindByWarehouse(ctx context.Context, ownerID, warehouseID string, productIDs []string) (map[string]*entity.Stock, error)
	ListByProduct(ctx context.Context, ownerID, productID string) ([]*entity.Stock, error)
	// DeleteByProduct es idempotente: sin filas devuelve 0, nil.
	DeleteByProduct(ctx context.Context, ownerID, productID string) (int64, error)
}

// LegacyStockRow cantidad guardada en el producto por el modelo anterior (producto+bodega).
type LegacyStockRow struct {
	ProductID   string
	OwnerID     string
	WarehouseID string
	Quantity    int64
}

// LegacyStockRepository lee y limpia las columnas de cantidad del modelo anterior.
type LegacyStockRepository interface {
	ListPending(ctx context.Context) ([]LegacyStockRow, error)
	Clear(ctx context.Context, productID string) error
}
