package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/wms-catalog/internal/domain"
	"github.com/jhoicas/wms-catalog/internal/domain/entity"
	"github.com/jhoicas/wms-catalog/internal/domain/repository"
)

// MigrationResult resumen de una corrida de migración.
type MigrationResult struct {
	Migrated int
	Skipped  int
	// Invalid filas con cantidad negativa o bodega ajena/inexistente; quedan sin limpiar
	// para revisión manual.
	Invalid int
}

// LegacyMigration mueve la cantidad guardada en el producto (modelo anterior) al ledger de stock.
// Si el ledger ya tiene fila para el par, esa fila manda y la cantidad legacy se descarta.
// Es idempotente: las filas ya migradas quedan limpias y no se vuelven a leer.
type LegacyMigration struct {
	legacyRepo    repository.LegacyStockRepository
	stockRepo     repository.StockRepository
	warehouseRepo repository.WarehouseRepository
}

// NewLegacyMigration construye la migración.
func NewLegacyMigration(
	legacyRepo repository.LegacyStockRepository,
	stockRepo repository.StockRepository,
	warehouseRepo repository.WarehouseRepository,
) *LegacyMigration {
	return &LegacyMigration{legacyRepo: legacyRepo, stockRepo: stockRepo, warehouseRepo: warehouseRepo}
}

// Run ejecuta la migración completa.
func (m *LegacyMigration) Run(ctx context.Context) (MigrationResult, error) {
	var res MigrationResult
	rows, err := m.legacyRepo.ListPending(ctx)
	if err != nil {
		return res, fmt.Errorf("listar stock legacy: %w", err)
	}
	for _, row := range rows {
		if row.Quantity < 0 {
			log.Warn().Str("product_id", row.ProductID).Int64("quantity", row.Quantity).Msg("cantidad legacy negativa, no se migra")
			res.Invalid++
			continue
		}
		wh, err := m.warehouseRepo.GetByID(ctx, row.OwnerID, row.WarehouseID)
		if err != nil {
			return res, fmt.Errorf("bodega de producto %s: %w", row.ProductID, err)
		}
		if wh == nil {
			log.Warn().Str("product_id", row.ProductID).Str("warehouse_id", row.WarehouseID).Msg("bodega legacy inexistente o de otro owner, no se migra")
			res.Invalid++
			continue
		}
		now := time.Now()
		err = m.stockRepo.Create(ctx, &entity.Stock{
			ID:          uuid.New().String(),
			OwnerID:     row.OwnerID,
			ProductID:   row.ProductID,
			WarehouseID: row.WarehouseID,
			Quantity:    row.Quantity,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		switch {
		case err == nil:
			res.Migrated++
		case errors.Is(err, domain.ErrConflict):
			res.Skipped++
		case errors.Is(err, domain.ErrInvalidInput):
			log.Warn().Err(err).Str("product_id", row.ProductID).Msg("fila legacy rechazada por la base, no se migra")
			res.Invalid++
			continue
		default:
			return res, fmt.Errorf("migrar producto %s: %w", row.ProductID, err)
		}
		if err := m.legacyRepo.Clear(ctx, row.ProductID); err != nil {
			return res, fmt.Errorf("limpiar producto %s: %w", row.ProductID, err)
		}
	}
	return res, nil
}
