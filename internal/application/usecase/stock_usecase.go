package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/wms-catalog/internal/application/dto"
	"github.com/jhoicas/wms-catalog/internal/domain"
	"github.com/jhoicas/wms-catalog/internal/domain/entity"
	"github.com/jhoicas/wms-catalog/internal/domain/repository"
)

// StockUseCase camino separado para escribir cantidades (el producto nunca las toca).
type StockUseCase struct {
	stockRepo     repository.StockRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo, productRepo: productRepo, warehouseRepo: warehouseRepo}
}

// CreateInitial crea la fila de un par (producto, bodega). Si ya existe: ErrConflict, nunca se fusiona.
func (uc *StockUseCase) CreateInitial(ctx context.Context, ownerID string, in dto.CreateStockRequest) (*dto.StockResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validateQuantities(in.Quantity, in.MinQuantity); err != nil {
		return nil, err
	}
	if err := uc.checkPair(ctx, ownerID, in.ProductID, in.WarehouseID); err != nil {
		return nil, err
	}
	now := time.Now()
	stock := &entity.Stock{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		MinQuantity: in.MinQuantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.stockRepo.Create(ctx, stock); err != nil {
		return nil, err
	}
	return toStockResponse(stock), nil
}

// Set ajusta cantidad y/o mínimo de una fila existente. Sin fila: ErrNotFound.
func (uc *StockUseCase) Set(ctx context.Context, ownerID, productID, warehouseID string, in dto.UpdateStockRequest) (*dto.StockResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	stock, err := uc.stockRepo.Get(ctx, ownerID, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	if in.Quantity != nil {
		stock.Quantity = *in.Quantity
	}
	if in.MinQuantity != nil {
		stock.MinQuantity = *in.MinQuantity
	}
	if err := validateQuantities(stock.Quantity, stock.MinQuantity); err != nil {
		return nil, err
	}
	stock.UpdatedAt = time.Now()
	ok, err := uc.stockRepo.Update(ctx, stock)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return toStockResponse(stock), nil
}

// Get devuelve la fila del par o ErrNotFound. Para lecturas de catálogo la ausencia es cantidad 0.
func (uc *StockUseCase) Get(ctx context.Context, ownerID, productID, warehouseID string) (*dto.StockResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	stock, err := uc.stockRepo.Get(ctx, ownerID, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	return toStockResponse(stock), nil
}

// ListByProduct devuelve las filas de stock de un producto del owner en todas sus bodegas.
func (uc *StockUseCase) ListByProduct(ctx context.Context, ownerID, productID string) (*dto.StockListResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.stockRepo.ListByProduct(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return &dto.StockListResponse{Items: items}, nil
}

func (uc *StockUseCase) checkPair(ctx context.Context, ownerID, productID, warehouseID string) error {
	if productID == "" || warehouseID == "" {
		return fmt.Errorf("%w: product_id y warehouse_id son requeridos", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(ctx, ownerID, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto", domain.ErrNotFound)
	}
	warehouse, err := uc.warehouseRepo.GetByID(ctx, ownerID, warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return fmt.Errorf("%w: bodega", domain.ErrNotFound)
	}
	return nil
}

func validateQuantities(quantity, minQuantity int64) error {
	if quantity < 0 || minQuantity < 0 {
		return fmt.Errorf("%w: quantity y min_quantity no pueden ser negativos", domain.ErrInvalidInput)
	}
	return nil
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	return &dto.StockResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		WarehouseID: s.WarehouseID,
		Quantity:    s.Quantity,
		MinQuantity: s.MinQuantity,
		BelowMin:    s.BelowMin(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
