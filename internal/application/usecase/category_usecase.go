package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/wms-catalog/internal/application/dto"
	"github.com/jhoicas/wms-catalog/internal/domain"
	"github.com/jhoicas/wms-catalog/internal/domain/catalog"
	"github.com/jhoicas/wms-catalog/internal/domain/entity"
	"github.com/jhoicas/wms-catalog/internal/domain/repository"
)

// CategoryUseCase casos de uso para categorías del owner.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. Si viene parentID debe existir para el mismo owner.
func (uc *CategoryUseCase) Create(ctx context.Context, ownerID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	parentID := ""
	if in.ParentID != nil {
		parentID = strings.TrimSpace(*in.ParentID)
	}
	if parentID != "" {
		parent, err := uc.repo.GetByID(ctx, ownerID, parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("%w: categoría padre", domain.ErrNotFound)
		}
	}
	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		ParentID:  parentID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update renombra o mueve una categoría. Rechaza el movimiento si crea un ciclo.
func (uc *CategoryUseCase) Update(ctx context.Context, ownerID, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	category, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
		}
		category.Name = name
	}
	if in.ParentID != nil {
		parentID := strings.TrimSpace(*in.ParentID)
		if parentID != "" && parentID != category.ParentID {
			all, err := uc.repo.ListByOwner(ctx, ownerID)
			if err != nil {
				return nil, err
			}
			if !containsCategory(all, parentID) {
				return nil, fmt.Errorf("%w: categoría padre", domain.ErrNotFound)
			}
			if catalog.WouldCycle(all, category.ID, parentID) {
				return nil, fmt.Errorf("%w: el padre crearía un ciclo", domain.ErrInvalidInput)
			}
		}
		category.ParentID = parentID
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List lista las categorías del owner ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context, ownerID string) (*dto.CategoryListResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items}, nil
}

func containsCategory(list []*entity.Category, id string) bool {
	for _, c := range list {
		if c.ID == id {
			return true
		}
	}
	return false
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		ParentID:  optionalID(c.ParentID),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
