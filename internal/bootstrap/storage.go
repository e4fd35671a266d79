// Package bootstrap arma los adaptadores de almacenamiento según la configuración.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/wms-catalog/internal/application/ports"
	"github.com/jhoicas/wms-catalog/internal/domain/repository"
	"github.com/jhoicas/wms-catalog/internal/infrastructure/memory"
	"github.com/jhoicas/wms-catalog/internal/infrastructure/postgres"
	"github.com/jhoicas/wms-catalog/pkg/config"
)

// Storage repositorios del backend elegido y su función de cierre.
type Storage struct {
	Users      repository.UserRepository
	Categories repository.CategoryRepository
	Warehouses repository.WarehouseRepository
	Products   repository.ProductRepository
	Stock      repository.StockRepository
	Legacy     repository.LegacyStockRepository
	Tx         ports.CatalogTxRunner
	Close      func()
}

// OpenStorage abre PostgreSQL (aplicando migraciones) o el store en memoria.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos no sobreviven al reinicio")
		s := memory.NewStore()
		return &Storage{
			Users:      s.Users(),
			Categories: s.Categories(),
			Warehouses: s.Warehouses(),
			Products:   s.Products(),
			Stock:      s.Stock(),
			Legacy:     s.Legacy(),
			Tx:         s.TxRunner(),
			Close:      func() {},
		}, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Storage{
			Users:      postgres.NewUserRepository(pool),
			Categories: postgres.NewCategoryRepository(pool),
			Warehouses: postgres.NewWarehouseRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			Stock:      postgres.NewStockRepository(pool),
			Legacy:     postgres.NewLegacyStockRepository(pool),
			Tx:         postgres.NewTxRunner(pool),
			Close:      pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento no soportado: %s", cfg.Storage.Driver)
}
