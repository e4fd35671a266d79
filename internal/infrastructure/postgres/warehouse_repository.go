package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-catalog/internal/domain"
	"github.com/jhoicas/wms-catalog/internal/domain/entity"
	"github.com/jhoicas/wms-catalog/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, owner_id, name, code, address, address_comment, comment, warehouse_group, created_at, updated_at`

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := row.Scan(&w.ID, &w.OwnerID, &w.Name, &w.Code, &w.Address, &w.AddressComment,
		&w.Comment, &w.Group, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Create persiste una nueva bodega. (owner_id, code) duplicado -> ErrConflict.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (` + warehouseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.OwnerID, w.Name, w.Code, w.Address, w.AddressComment, w.Comment, w.Group,
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return wrap("insert warehouse", err)
	}
	return nil
}

// GetByID obtiene una bodega del owner.
func (r *WarehouseRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = $1 AND owner_id = $2`
	w, err := scanWarehouse(r.q.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, wrap("get warehouse", err)
	}
	return w, nil
}

// ListByOwner lista bodegas del owner ordenadas por nombre.
func (r *WarehouseRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE owner_id = $1 ORDER BY name, id`
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, wrap("list warehouses", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, wrap("scan warehouse", err)
		}
		list = append(list, w)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list warehouses", err)
	}
	return list, nil
}
