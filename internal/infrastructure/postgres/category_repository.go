package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-catalog/internal/domain/entity"
	"github.com/jhoicas/wms-catalog/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, owner_id, COALESCE(parent_id::text, ''), name, created_at, updated_at`

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.OwnerID, &c.ParentID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, owner_id, parent_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.ID, c.OwnerID, nullIfEmpty(c.ParentID), c.Name, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return wrap("insert category", err)
	}
	return nil
}

// GetByID obtiene una categoría del owner.
func (r *CategoryRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND owner_id = $2`
	c, err := scanCategory(r.q.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, wrap("get category", err)
	}
	return c, nil
}

// Update actualiza nombre y padre.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE categories SET name = $3, parent_id = $4, updated_at = $5
		WHERE id = $1 AND owner_id = $2`
	_, err := r.q.Exec(ctx, query, c.ID, c.OwnerID, c.Name, nullIfEmpty(c.ParentID), c.UpdatedAt)
	if err != nil {
		return wrap("update category", err)
	}
	return nil
}

// ListByOwner lista las categorías del owner ordenadas por nombre.
func (r *CategoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE owner_id = $1 ORDER BY name, id`
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, wrap("list categories", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, wrap("scan category", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list categories", err)
	}
	return list, nil
}
