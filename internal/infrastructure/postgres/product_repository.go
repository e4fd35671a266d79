package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-catalog/internal/domain/entity"
	"github.com/jhoicas/wms-catalog/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// barcodeRow forma JSONB de un código de barras.
type barcodeRow struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

const productColumns = `id, owner_id, category_id, name, photos, description, article, code, external_code,
	price, discount_price, is_discount_active, characteristics, country, unit, barcodes, created_at, updated_at`

func encodeJSONFields(p *entity.Product) (chars, barcodes []byte, err error) {
	m := p.Characteristics
	if m == nil {
		m = map[string]string{}
	}
	if chars, err = json.Marshal(m); err != nil {
		return nil, nil, fmt.Errorf("marshal characteristics: %w", err)
	}
	rows := make([]barcodeRow, 0, len(p.Barcodes))
	for _, b := range p.Barcodes {
		rows = append(rows, barcodeRow{Type: b.Type, Value: b.Value})
	}
	if barcodes, err = json.Marshal(rows); err != nil {
		return nil, nil, fmt.Errorf("marshal barcodes: %w", err)
	}
	return chars, barcodes, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p        entity.Product
		discount decimal.NullDecimal
		chars    []byte
		barcodes []byte
	)
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.CategoryID, &p.Name, &p.Photos, &p.Description, &p.Article, &p.Code,
		&p.ExternalCode, &p.Price, &discount, &p.IsDiscountActive, &chars, &p.Country, &p.Unit,
		&barcodes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if discount.Valid {
		d := discount.Decimal
		p.DiscountPrice = &d
	}
	if len(chars) > 0 {
		if err := json.Unmarshal(chars, &p.Characteristics); err != nil {
			return nil, fmt.Errorf("unmarshal characteristics: %w", err)
		}
	}
	if len(barcodes) > 0 {
		var rows []barcodeRow
		if err := json.Unmarshal(barcodes, &rows); err != nil {
			return nil, fmt.Errorf("unmarshal barcodes: %w", err)
		}
		for _, b := range rows {
			p.Barcodes = append(p.Barcodes, entity.Barcode{Type: b.Type, Value: b.Value})
		}
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	chars, barcodes, err := encodeJSONFields(p)
	if err != nil {
		return err
	}
	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err = r.q.Exec(ctx, query,
		p.ID, p.OwnerID, p.CategoryID, p.Name, photos, p.Description, p.Article, p.Code,
		p.ExternalCode, p.Price, p.DiscountPrice, p.IsDiscountActive, chars, p.Country, p.Unit,
		barcodes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return wrap("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto del owner por ID.
func (r *ProductRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND owner_id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, wrap("get product", err)
	}
	return p, nil
}

// Update reescribe la definición del producto. Las columnas legacy y el stock no se tocan.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	chars, barcodes, err := encodeJSONFields(p)
	if err != nil {
		return err
	}
	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}
	query := `
		UPDATE products SET
			category_id = $3, name = $4, photos = $5, description = $6, article = $7, code = $8,
			external_code = $9, price = $10, discount_price = $11, is_discount_active = $12,
			characteristics = $13, country = $14, unit = $15, barcodes = $16, updated_at = $17
		WHERE id = $1 AND owner_id = $2`
	_, err = r.q.Exec(ctx, query,
		p.ID, p.OwnerID, p.CategoryID, p.Name, photos, p.Description, p.Article, p.Code,
		p.ExternalCode, p.Price, p.DiscountPrice, p.IsDiscountActive, chars, p.Country, p.Unit,
		barcodes, p.UpdatedAt,
	)
	if err != nil {
		return wrap("update product", err)
	}
	return nil
}

// ListByOwner lista productos del owner, más recientes primero. categoryID vacío = todas.
func (r *ProductRepo) ListByOwner(ctx context.Context, ownerID, categoryID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE owner_id = $1 AND ($2::text = '' OR category_id::text = $2)
		ORDER BY created_at DESC, id`
	rows, err := r.q.Query(ctx, query, ownerID, categoryID)
	if err != nil {
		return nil, wrap("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrap("scan product", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list products", err)
	}
	return list, nil
}

// Delete elimina el producto del owner. Las filas de stock caen por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		if isNoRow(err) {
			return false, nil
		}
		return false, wrap("delete product", err)
	}
	return tag.RowsAffected() > 0, nil
}
