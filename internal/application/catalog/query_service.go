package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/wms-catalog/internal/application/dto"
	"github.com/jhoicas/wms-catalog/internal/application/usecase"
	"github.com/jhoicas/wms-catalog/internal/domain"
	domaincatalog "github.com/jhoicas/wms-catalog/internal/domain/catalog"
	"github.com/jhoicas/wms-catalog/internal/domain/entity"
	"github.com/jhoicas/wms-catalog/internal/domain/repository"
)

// unknownCategory nombre mostrado cuando la categoría del producto ya no existe.
const unknownCategory = "Unknown"

// QueryService compone catálogo, ledger de stock y categorías para las lecturas.
// Los joins se hacen aquí, de forma explícita; los repositorios no expanden relaciones.
type QueryService struct {
	productRepo   repository.ProductRepository
	stockRepo     repository.StockRepository
	categoryRepo  repository.CategoryRepository
	warehouseRepo repository.WarehouseRepository
}

// NewQueryService construye el servicio de consultas del catálogo.
func NewQueryService(
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	categoryRepo repository.CategoryRepository,
	warehouseRepo repository.WarehouseRepository,
) *QueryService {
	return &QueryService{
		productRepo:   productRepo,
		stockRepo:     stockRepo,
		categoryRepo:  categoryRepo,
		warehouseRepo: warehouseRepo,
	}
}

// ListForWarehouse lista los productos del owner (filtro exacto por categoría opcional) con la
// cantidad de la bodega indicada. Sin fila de stock la cantidad es 0. Con "all" o vacío todas las
// cantidades son 0: no se agregan bodegas.
func (s *QueryService) ListForWarehouse(ctx context.Context, ownerID, warehouseID, categoryID string) (*dto.ProductListResponse, error) {
	views, err := s.views(ctx, ownerID, warehouseID, categoryID)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Items: views}, nil
}

// CategoryTree arma el árbol de categorías del owner con los productos colgados de su nodo.
// Productos con categoría fuera del árbol no aparecen aquí (sí en ListForWarehouse).
func (s *QueryService) CategoryTree(ctx context.Context, ownerID, warehouseID string) (*dto.CategoryTreeResponse, error) {
	views, err := s.views(ctx, ownerID, warehouseID, "")
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	roots := domaincatalog.BuildTree[dto.ProductView](categories)
	unplaced := domaincatalog.Attach(roots, views, func(v dto.ProductView) string { return v.CategoryID })
	return &dto.CategoryTreeResponse{Roots: toNodeResponses(roots, nil), Unplaced: unplaced}, nil
}

func (s *QueryService) views(ctx context.Context, ownerID, warehouseID, categoryID string) ([]dto.ProductView, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	warehouseID = usecase.NormalizeWarehouseID(warehouseID)
	if warehouseID != "" {
		wh, err := s.warehouseRepo.GetByID(ctx, ownerID, warehouseID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, fmt.Errorf("%w: bodega", domain.ErrNotFound)
		}
	}

	products, err := s.productRepo.ListByOwner(ctx, ownerID, categoryID)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	stocks := map[string]*entity.Stock{}
	if warehouseID != "" && len(products) > 0 {
		ids := make([]string, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}
		stocks, err = s.stockRepo.FindByWarehouse(ctx, ownerID, warehouseID, ids)
		if err != nil {
			return nil, err
		}
	}

	views := make([]dto.ProductView, 0, len(products))
	for _, p := range products {
		v := dto.ProductView{
			ProductResponse: *usecase.ToProductResponse(p),
			CategoryName:    unknownCategory,
			WarehouseID:     warehouseID,
		}
		if name, ok := names[p.CategoryID]; ok {
			v.CategoryName = name
		}
		if st, ok := stocks[p.ID]; ok {
			v.Quantity = st.Quantity
			v.MinQuantity = st.MinQuantity
			v.BelowMin = st.BelowMin()
		}
		views = append(views, v)
	}
	return views, nil
}

// toNodeResponses el padre sale de la posición en el árbol: una raíz cuyo padre no existe queda sin parent.
func toNodeResponses(nodes []*domaincatalog.Node[dto.ProductView], parent *string) []dto.CategoryNodeResponse {
	out := make([]dto.CategoryNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		products := n.Items
		if products == nil {
			products = []dto.ProductView{}
		}
		id := n.Category.ID
		out = append(out, dto.CategoryNodeResponse{
			ID:       n.Category.ID,
			Name:     n.Category.Name,
			ParentID: parent,
			Children: toNodeResponses(n.Children, &id),
			Products: products,
		})
	}
	return out
}
