package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-catalog/internal/domain"
	"github.com/jhoicas/wms-catalog/internal/domain/entity"
	"github.com/jhoicas/wms-catalog/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo ledger de stock por (producto, bodega) sobre PostgreSQL.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, owner_id, product_id, warehouse_id, quantity, min_quantity, created_at, updated_at`

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	err := row.Scan(&s.ID, &s.OwnerID, &s.ProductID, &s.WarehouseID, &s.Quantity, &s.MinQuantity, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta la fila; el par (product_id, warehouse_id) duplicado es ErrConflict.
func (r *StockRepo) Create(ctx context.Context, s *entity.Stock) error {
	query := `INSERT INTO stock (` + stockColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.OwnerID, s.ProductID, s.WarehouseID, s.Quantity, s.MinQuantity, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return wrap("insert stock", err)
	}
	return nil
}

// Get devuelve la fila del par o nil, nil.
func (r *StockRepo) Get(ctx context.Context, ownerID, productID, warehouseID string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE owner_id = $1 AND product_id = $2 AND warehouse_id = $3`
	s, err := scanStock(r.q.QueryRow(ctx, query, ownerID, productID, warehouseID))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, wrap("get stock", err)
	}
	return s, nil
}

// Update cambia cantidad y mínimo.
func (r *StockRepo) Update(ctx context.Context, s *entity.Stock) (bool, error) {
	query := `
		UPDATE stock SET quantity = $4, min_quantity = $5, updated_at = $6
		WHERE owner_id = $1 AND product_id = $2 AND warehouse_id = $3`
	tag, err := r.q.Exec(ctx, query, s.OwnerID, s.ProductID, s.WarehouseID, s.Quantity, s.MinQuantity, s.UpdatedAt)
	if err != nil {
		if isNoRow(err) {
			return false, nil
		}
		return false, wrap("update stock", err)
	}
	return tag.RowsAffected() > 0, nil
}

// FindByWarehouse trae en una sola consulta las filas de la bodega para los productos dados.
func (r *StockRepo) FindByWarehouse(ctx context.Context, ownerID, warehouseID string, productIDs []string) (map[string]*entity.Stock, error) {
	out := make(map[string]*entity.Stock, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + stockColumns + ` FROM stock
		WHERE owner_id = $1 AND warehouse_id = $2 AND product_id = ANY($3::uuid[])`
	rows, err := r.q.Query(ctx, query, ownerID, warehouseID, productIDs)
	if err != nil {
		if isNoRow(err) {
			return out, nil
		}
		return nil, wrap("find stock by warehouse", err)
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, wrap("scan stock", err)
		}
		out[s.ProductID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("find stock by warehouse", err)
	}
	return out, nil
}

// ListByProduct filas del producto en todas las bodegas, por warehouse_id.
func (r *StockRepo) ListByProduct(ctx context.Context, ownerID, productID string) ([]*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE owner_id = $1 AND product_id = $2 ORDER BY warehouse_id`
	rows, err := r.q.Query(ctx, query, ownerID, productID)
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, wrap("list stock", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, wrap("scan stock", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list stock", err)
	}
	return list, nil
}

// DeleteByProduct borra todas las filas del producto; 0 si no había.
func (r *StockRepo) DeleteByProduct(ctx context.Context, ownerID, productID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock WHERE owner_id = $1 AND product_id = $2`, ownerID, productID)
	if err != nil {
		if isNoRow(err) {
			return 0, nil
		}
		return 0, wrap("delete stock", err)
	}
	return tag.RowsAffected(), nil
}
