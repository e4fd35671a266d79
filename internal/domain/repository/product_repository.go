package repository

import (
	"context"

	"github.com/jhoicas/wms-catalog/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Product, error)
	// Update reescribe los campos de definición; no toca stock.
	Update(ctx context.Context, product *entity.Product) error
	// ListByOwner lista productos del owner (más recientes primero). categoryID vacío = todas.
	ListByOwner(ctx context.Context, ownerID, categoryID string) ([]*entity.Product, error)
	// Delete devuelve false si no existía un producto con ese id para el owner.
	Delete(ctx context.Context, ownerID, id string) (bool, error)
}
