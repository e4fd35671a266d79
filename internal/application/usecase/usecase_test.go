package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-catalog/internal/application/dto"
	"github.com/jhoicas/wms-catalog/internal/application/usecase"
	"github.com/jhoicas/wms-catalog/internal/infrastructure/memory"
)

const (
	ownerA = "11111111-1111-1111-1111-111111111111"
	ownerB = "22222222-2222-2222-2222-222222222222"
)

type fakeMedia struct {
	mu   sync.Mutex
	n    int
	fail error
}

func (f *fakeMedia) Store(_ context.Context, filename, _ string, _ []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return "", f.fail
	}
	f.n++
	return fmt.Sprintf("https://cdn.test/%d-%s", f.n, filename), nil
}

type recordingPublisher struct {
	mu        sync.Mutex
	events    []dto.ProductEvent
	deadlines []time.Time
	ctxErrs   []error
}

func (p *recordingPublisher) Publish(ctx context.Context, ev dto.ProductEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	dl, _ := ctx.Deadline()
	p.deadlines = append(p.deadlines, dl)
	p.ctxErrs = append(p.ctxErrs, ctx.Err())
	return nil
}

type fixture struct {
	store     *memory.Store
	media     *fakeMedia
	events    *recordingPublisher
	category  *usecase.CategoryUseCase
	warehouse *usecase.WarehouseUseCase
	product   *usecase.ProductUseCase
	stock     *usecase.StockUseCase
}

func newFixture() *fixture {
	s := memory.NewStore()
	m := &fakeMedia{}
	ev := &recordingPublisher{}
	return &fixture{
		store:     s,
		media:     m,
		events:    ev,
		category:  usecase.NewCategoryUseCase(s.Categories()),
		warehouse: usecase.NewWarehouseUseCase(s.Warehouses()),
		product:   usecase.NewProductUseCase(s.TxRunner(), s.Products(), s.Categories(), s.Warehouses(), m, ev),
		stock:     usecase.NewStockUseCase(s.Stock(), s.Products(), s.Warehouses()),
	}
}

func (f *fixture) mustCategory(t *testing.T, owner, name string, parent *string) string {
	t.Helper()
	out, err := f.category.Create(context.Background(), owner, dto.CreateCategoryRequest{Name: name, ParentID: parent})
	require.NoError(t, err)
	return out.ID
}

func (f *fixture) mustWarehouse(t *testing.T, owner, code string) string {
	t.Helper()
	out, err := f.warehouse.Create(context.Background(), owner, dto.CreateWarehouseRequest{
		Name: "Bodega " + code, Code: code, Address: "Calle 1",
	})
	require.NoError(t, err)
	return out.ID
}

func productRequest(categoryID, name string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		CategoryID: categoryID,
		Name:       name,
		Price:      decimal.RequireFromString("12.50"),
		Country:    "CO",
		Unit:       "pcs",
	}
}

func qty(n int64) *int64 { return &n }

func strPtr(s string) *string { return &s }

func newUserUseCase(f *fixture) *usecase.UserUseCase {
	return usecase.NewUserUseCase(f.store.Users())
}
