package repository

import (
	"context"

	"github.com/jhoicas/wms-catalog/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create devuelve domain.ErrDuplicate si el username ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// List devuelve los usuarios más recientes primero.
	List(ctx context.Context) ([]*entity.User, error)
}
