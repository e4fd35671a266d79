package ports

import (
	"context"

	"github.com/jhoicas/wms-catalog/internal/domain/repository"
)

// CatalogTxRunner ejecuta fn con repositorios de producto y stock atados a la misma transacción.
// Se usa para crear un producto con su stock inicial y para el borrado en cascada.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		stockRepo repository.StockRepository,
	) error) error
}
