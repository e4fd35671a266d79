package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/wms-catalog/internal/application/dto"
	"github.com/jhoicas/wms-catalog/internal/domain"
	"github.com/jhoicas/wms-catalog/internal/domain/entity"
	"github.com/jhoicas/wms-catalog/internal/domain/repository"
)

// WarehouseUseCase casos de uso para bodegas.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una nueva bodega. El código es único por owner (ErrConflict si se repite).
func (uc *WarehouseUseCase) Create(ctx context.Context, ownerID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	name := strings.TrimSpace(in.Name)
	code := strings.TrimSpace(in.Code)
	address := strings.TrimSpace(in.Address)
	if name == "" || code == "" || address == "" {
		return nil, fmt.Errorf("%w: name, code y address son requeridos", domain.ErrInvalidInput)
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:             uuid.New().String(),
		OwnerID:        ownerID,
		Name:           name,
		Code:           code,
		Address:        address,
		AddressComment: in.AddressComment,
		Comment:        in.Comment,
		Group:          in.Group,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega del owner.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.WarehouseResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	warehouse, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas del owner ordenadas por nombre.
func (uc *WarehouseUseCase) List(ctx context.Context, ownerID string) (*dto.WarehouseListResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{Items: items}, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:             w.ID,
		Name:           w.Name,
		Code:           w.Code,
		Address:        w.Address,
		AddressComment: w.AddressComment,
		Comment:        w.Comment,
		Group:          w.Group,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}
