package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-catalog/internal/application/dto"
	"github.com/jhoicas/wms-catalog/internal/application/usecase"
	"github.com/jhoicas/wms-catalog/internal/domain"
)

// Replenishment devuelve los productos de la bodega bajo su mínimo con la cantidad sugerida
// para subir al 150% del mínimo. Requiere una bodega concreta ("all" no tiene cantidades).
func (s *QueryService) Replenishment(ctx context.Context, ownerID, warehouseID string) (*dto.ReplenishmentResponse, error) {
	if usecase.NormalizeWarehouseID(warehouseID) == "" {
		return nil, fmt.Errorf("%w: la reposición requiere una bodega", domain.ErrInvalidInput)
	}
	views, err := s.views(ctx, ownerID, warehouseID, "")
	if err != nil {
		return nil, err
	}

	items := make([]dto.ReplenishmentItem, 0)
	for _, v := range views {
		if !v.BelowMin {
			continue
		}
		ideal := (v.MinQuantity*3 + 1) / 2
		suggested := ideal - v.Quantity
		items = append(items, dto.ReplenishmentItem{
			ProductID:     v.ID,
			ProductName:   v.Name,
			CategoryName:  v.CategoryName,
			Quantity:      v.Quantity,
			MinQuantity:   v.MinQuantity,
			IdealQuantity: ideal,
			SuggestedQty:  suggested,
			EstimatedCost: v.Price.Mul(decimal.NewFromInt(suggested)),
		})
	}

	// Mayor déficit relativo primero; empate por nombre.
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		ra := float64(a.MinQuantity-a.Quantity) / float64(a.MinQuantity)
		rb := float64(b.MinQuantity-b.Quantity) / float64(b.MinQuantity)
		if ra != rb {
			return ra > rb
		}
		return a.ProductName < b.ProductName
	})
	for i := range items {
		items[i].Priority = i + 1
	}
	return &dto.ReplenishmentResponse{WarehouseID: usecase.NormalizeWarehouseID(warehouseID), Items: items}, nil
}
