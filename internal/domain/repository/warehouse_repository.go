package repository

import (
	"context"

	"github.com/jhoicas/wms-catalog/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	// Create devuelve domain.ErrConflict si (owner, code) ya existe.
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Warehouse, error)
	// ListByOwner devuelve las bodegas del owner ordenadas por nombre.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Warehouse, error)
}
