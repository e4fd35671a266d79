package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/wms-catalog/internal/application/ports"
	"github.com/jhoicas/wms-catalog/internal/domain"
	"github.com/jhoicas/wms-catalog/internal/domain/entity"
	"github.com/jhoicas/wms-catalog/internal/domain/repository"
)

var (
	_ repository.CategoryRepository    = (*CategoryRepo)(nil)
	_ repository.WarehouseRepository   = (*WarehouseRepo)(nil)
	_ repository.ProductRepository     = (*ProductRepo)(nil)
	_ repository.StockRepository       = (*StockRepo)(nil)
	_ repository.UserRepository        = (*UserRepo)(nil)
	_ repository.LegacyStockRepository = (*LegacyStockRepo)(nil)
	_ ports.CatalogTxRunner            = (*TxRunner)(nil)
)

type stockKey struct{ productID, warehouseID string }

type warehouseKey struct{ ownerID, code string }

// Store almacenamiento en memoria con las mismas restricciones únicas que PostgreSQL
// ((owner, code) en bodegas, (producto, bodega) en stock, username en usuarios).
// Pensado para tests y ejecución local (STORAGE_DRIVER=memory).
type Store struct {
	mu         sync.RWMutex
	categories map[string]*entity.Category
	warehouses map[string]*entity.Warehouse
	whCodes    map[warehouseKey]string
	products   map[string]*entity.Product
	stock      map[stockKey]*entity.Stock
	users      map[string]*entity.User
	usernames  map[string]string
	legacy     map[string]repository.LegacyStockRow
	seq        int64
	order      map[string]int64 // orden de inserción para "más recientes primero"
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		categories: map[string]*entity.Category{},
		warehouses: map[string]*entity.Warehouse{},
		whCodes:    map[warehouseKey]string{},
		products:   map[string]*entity.Product{},
		stock:      map[stockKey]*entity.Stock{},
		users:      map[string]*entity.User{},
		usernames:  map[string]string{},
		legacy:     map[string]repository.LegacyStockRow{},
		order:      map[string]int64{},
	}
}

func (s *Store) next(id string) {
	s.seq++
	s.order[id] = s.seq
}

// Categories devuelve el repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Warehouses devuelve el repositorio de bodegas.
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{s: s} }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Stock devuelve el ledger de stock.
func (s *Store) Stock() *StockRepo { return &StockRepo{s: s} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Legacy devuelve el acceso a cantidades del modelo anterior.
func (s *Store) Legacy() *LegacyStockRepo { return &LegacyStockRepo{s: s} }

// TxRunner devuelve un runner que ejecuta fn sin aislamiento ni rollback.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// TxRunner ejecuta el callback con los repositorios del store. No hay rollback: si el segundo
// paso falla, lo escrito en el primero se mantiene (producto sin fila de stock = cantidad 0).
type TxRunner struct{ s *Store }

// RunCatalog implementa ports.CatalogTxRunner.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(repository.ProductRepository, repository.StockRepository) error) error {
	if err := ctx.Err(); err != nil {
		return domain.ErrUnavailable
	}
	return fn(r.s.Products(), r.s.Stock())
}

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.categories[c.ID] = &cp
	r.s.next(c.ID)
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.categories[c.ID]
	if !ok || cur.OwnerID != c.OwnerID {
		return nil
	}
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *CategoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Category
	for _, c := range r.s.categories {
		if c.OwnerID == ownerID {
			cp := *c
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct{ s *Store }

func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := warehouseKey{w.OwnerID, w.Code}
	if _, dup := r.s.whCodes[key]; dup {
		return domain.ErrConflict
	}
	cp := *w
	r.s.warehouses[w.ID] = &cp
	r.s.whCodes[key] = w.ID
	r.s.next(w.ID)
	return nil
}

func (r *WarehouseRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.warehouses[id]
	if !ok || w.OwnerID != ownerID {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *WarehouseRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.OwnerID == ownerID {
			cp := *w
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// ProductRepo productos en memoria.
type ProductRepo struct{ s *Store }

func copyProduct(p *entity.Product) *entity.Product {
	cp := *p
	cp.Photos = append([]string(nil), p.Photos...)
	cp.Barcodes = append([]entity.Barcode(nil), p.Barcodes...)
	cp.Characteristics = make(map[string]string, len(p.Characteristics))
	for k, v := range p.Characteristics {
		cp.Characteristics[k] = v
	}
	if p.DiscountPrice != nil {
		d := *p.DiscountPrice
		cp.DiscountPrice = &d
	}
	return &cp
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.products[p.ID]; dup {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = copyProduct(p)
	r.s.next(p.ID)
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok || p.OwnerID != ownerID {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok || cur.OwnerID != p.OwnerID {
		return nil
	}
	r.s.products[p.ID] = copyProduct(p)
	return nil
}

func (r *ProductRepo) ListByOwner(ctx context.Context, ownerID, categoryID string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.OwnerID != ownerID {
			continue
		}
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		list = append(list, copyProduct(p))
	}
	sort.Slice(list, func(i, j int) bool { return r.s.order[list[i].ID] > r.s.order[list[j].ID] })
	return list, nil
}

func (r *ProductRepo) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.OwnerID != ownerID {
		return false, nil
	}
	delete(r.s.products, id)
	delete(r.s.legacy, id)
	return true, nil
}

// StockRepo ledger de stock en memoria.
type StockRepo struct{ s *Store }

func (r *StockRepo) Create(ctx context.Context, st *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := stockKey{st.ProductID, st.WarehouseID}
	if _, dup := r.s.stock[key]; dup {
		return domain.ErrConflict
	}
	cp := *st
	r.s.stock[key] = &cp
	r.s.next(st.ID)
	return nil
}

func (r *StockRepo) Get(ctx context.Context, ownerID, productID, warehouseID string) (*entity.Stock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.stock[stockKey{productID, warehouseID}]
	if !ok || st.OwnerID != ownerID {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (r *StockRepo) Update(ctx context.Context, st *entity.Stock) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := stockKey{st.ProductID, st.WarehouseID}
	cur, ok := r.s.stock[key]
	if !ok || cur.OwnerID != st.OwnerID {
		return false, nil
	}
	cur.Quantity = st.Quantity
	cur.MinQuantity = st.MinQuantity
	cur.UpdatedAt = st.UpdatedAt
	return true, nil
}

func (r *StockRepo) FindByWarehouse(ctx context.Context, ownerID, warehouseID string, productIDs []string) (map[string]*entity.Stock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]*entity.Stock, len(productIDs))
	for _, pid := range productIDs {
		st, ok := r.s.stock[stockKey{pid, warehouseID}]
		if !ok || st.OwnerID != ownerID {
			continue
		}
		cp := *st
		out[pid] = &cp
	}
	return out, nil
}

func (r *StockRepo) ListByProduct(ctx context.Context, ownerID, productID string) ([]*entity.Stock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Stock
	for k, st := range r.s.stock {
		if k.productID == productID && st.OwnerID == ownerID {
			cp := *st
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].WarehouseID < list[j].WarehouseID })
	return list, nil
}

func (r *StockRepo) DeleteByProduct(ctx context.Context, ownerID, productID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for k, st := range r.s.stock {
		if k.productID == productID && st.OwnerID == ownerID {
			delete(r.s.stock, k)
			n++
		}
	}
	return n, nil
}

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.usernames[u.Username]; dup {
		return domain.ErrDuplicate
	}
	cp := *u
	r.s.users[u.ID] = &cp
	r.s.usernames[u.Username] = u.ID
	r.s.next(u.ID)
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	id, ok := r.s.usernames[username]
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		cp := *u
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return r.s.order[list[i].ID] > r.s.order[list[j].ID] })
	return list, nil
}

// LegacyStockRepo cantidades del modelo anterior, solo para la migración.
type LegacyStockRepo struct{ s *Store }

// Seed registra una cantidad legacy en un producto existente.
func (r *LegacyStockRepo) Seed(row repository.LegacyStockRow) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.legacy[row.ProductID] = row
}

func (r *LegacyStockRepo) ListPending(ctx context.Context) ([]repository.LegacyStockRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]repository.LegacyStockRow, 0, len(r.s.legacy))
	for _, row := range r.s.legacy {
		list = append(list, row)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	return list, nil
}

func (r *LegacyStockRepo) Clear(ctx context.Context, productID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.legacy, productID)
	return nil
}
