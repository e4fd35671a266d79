package postgres

import (
	"context"

	"github.com/jhoicas/wms-catalog/internal/domain/repository"
)

var _ repository.LegacyStockRepository = (*LegacyStockRepo)(nil)

// LegacyStockRepo lee las columnas legacy_warehouse_id / legacy_quantity de products.
type LegacyStockRepo struct {
	q Querier
}

// NewLegacyStockRepository construye el adaptador.
func NewLegacyStockRepository(q Querier) *LegacyStockRepo {
	return &LegacyStockRepo{q: q}
}

// ListPending filas pendientes de migrar, por id de producto.
func (r *LegacyStockRepo) ListPending(ctx context.Context) ([]repository.LegacyStockRow, error) {
	query := `
		SELECT id, owner_id, legacy_warehouse_id, COALESCE(legacy_quantity, 0)
		FROM products WHERE legacy_warehouse_id IS NOT NULL ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrap("list legacy stock", err)
	}
	defer rows.Close()
	var list []repository.LegacyStockRow
	for rows.Next() {
		var row repository.LegacyStockRow
		if err := rows.Scan(&row.ProductID, &row.OwnerID, &row.WarehouseID, &row.Quantity); err != nil {
			return nil, wrap("scan legacy stock", err)
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list legacy stock", err)
	}
	return list, nil
}

// Clear marca el producto como migrado.
func (r *LegacyStockRepo) Clear(ctx context.Context, productID string) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET legacy_warehouse_id = NULL, legacy_quantity = NULL WHERE id = $1`, productID)
	if err != nil {
		return wrap("clear legacy stock", err)
	}
	return nil
}
