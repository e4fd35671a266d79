package repository

import (
	"context"

	"github.com/jhoicas/wms-catalog/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Todas las lecturas van filtradas por owner; GetByID devuelve nil, nil si no existe para ese owner.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// ListByOwner devuelve las categorías del owner ordenadas por nombre.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Category, error)
}
