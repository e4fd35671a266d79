package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-catalog/internal/application/dto"
	"github.com/jhoicas/wms-catalog/internal/domain"
	"github.com/jhoicas/wms-catalog/internal/domain/entity"
)

func TestCategoryCreate_PadreDeOtroOwner(t *testing.T) {
	f := newFixture()
	parentB := f.mustCategory(t, ownerB, "Raíz B", nil)

	_, err := f.category.Create(context.Background(), ownerA, dto.CreateCategoryRequest{Name: "Hija", ParentID: &parentB})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCategoryCreate_SinNombre(t *testing.T) {
	f := newFixture()
	_, err := f.category.Create(context.Background(), ownerA, dto.CreateCategoryRequest{Name: "  "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCategoryUpdate_RechazaCiclo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.mustCategory(t, ownerA, "A", nil)
	b := f.mustCategory(t, ownerA, "B", &a)
	c := f.mustCategory(t, ownerA, "C", &b)

	_, err := f.category.Update(ctx, ownerA, a, dto.UpdateCategoryRequest{ParentID: &c})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.category.Update(ctx, ownerA, a, dto.UpdateCategoryRequest{ParentID: &a})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "una categoría no puede ser su propio padre")
}

func TestCategoryUpdate_MoverARaiz(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.mustCategory(t, ownerA, "A", nil)
	b := f.mustCategory(t, ownerA, "B", &a)

	out, err := f.category.Update(ctx, ownerA, b, dto.UpdateCategoryRequest{ParentID: strPtr(""), Name: strPtr("B2")})
	require.NoError(t, err)
	assert.Nil(t, out.ParentID)
	assert.Equal(t, "B2", out.Name)
}

func TestCategoryList_OrdenadoYAislado(t *testing.T) {
	f := newFixture()
	f.mustCategory(t, ownerA, "Zapatos", nil)
	f.mustCategory(t, ownerA, "Abrigos", nil)
	f.mustCategory(t, ownerB, "Ajena", nil)

	out, err := f.category.List(context.Background(), ownerA)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Abrigos", out.Items[0].Name)
	assert.Equal(t, "Zapatos", out.Items[1].Name)
}

func TestWarehouseCreate_CodigoUnicoPorOwner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.mustWarehouse(t, ownerA, "W1")

	_, err := f.warehouse.Create(ctx, ownerA, dto.CreateWarehouseRequest{Name: "Otra", Code: "W1", Address: "x"})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	_, err = f.warehouse.Create(ctx, ownerB, dto.CreateWarehouseRequest{Name: "Otra", Code: "W1", Address: "x"})
	assert.NoError(t, err, "el mismo código es válido para otro owner")
}

func TestWarehouseCreate_FaltanCampos(t *testing.T) {
	f := newFixture()
	_, err := f.warehouse.Create(context.Background(), ownerA, dto.CreateWarehouseRequest{Name: "x", Code: "W1"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestWarehouseGetByID_OtroOwner(t *testing.T) {
	f := newFixture()
	wh := f.mustWarehouse(t, ownerA, "W1")
	_, err := f.warehouse.GetByID(context.Background(), ownerB, wh)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStockCreate_ParDuplicadoEsConflicto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cat := f.mustCategory(t, ownerA, "Herramientas", nil)
	wh := f.mustWarehouse(t, ownerA, "W1")
	p, err := f.product.Create(ctx, ownerA, productRequest(cat, "Martillo"))
	require.NoError(t, err)

	_, err = f.stock.CreateInitial(ctx, ownerA, dto.CreateStockRequest{ProductID: p.ID, WarehouseID: wh, Quantity: 1})
	require.NoError(t, err)
	_, err = f.stock.CreateInitial(ctx, ownerA, dto.CreateStockRequest{ProductID: p.ID, WarehouseID: wh, Quantity: 9})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	st, err := f.stock.Get(ctx, ownerA, p.ID, wh)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.Quantity, "la fila existente no se fusiona")
}

func TestStockSet_AjusteYMinimo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cat := f.mustCategory(t, ownerA, "Herramientas", nil)
	wh := f.mustWarehouse(t, ownerA, "W1")
	in := productRequest(cat, "Martillo")
	in.WarehouseID = wh
	in.Quantity = qty(10)
	p, err := f.product.Create(ctx, ownerA, in)
	require.NoError(t, err)

	out, err := f.stock.Set(ctx, ownerA, p.ID, wh, dto.UpdateStockRequest{Quantity: qty(1), MinQuantity: qty(5)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Quantity)
	assert.True(t, out.BelowMin)

	_, err = f.stock.Set(ctx, ownerA, p.ID, wh, dto.UpdateStockRequest{Quantity: qty(-3)})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestStockSet_SinFila(t *testing.T) {
	f := newFixture()
	_, err := f.stock.Set(context.Background(), ownerA, "p", "w", dto.UpdateStockRequest{Quantity: qty(1)})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStockCreate_ProductoDeOtroOwner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cat := f.mustCategory(t, ownerB, "Herramientas", nil)
	p, err := f.product.Create(ctx, ownerB, productRequest(cat, "Martillo"))
	require.NoError(t, err)
	wh := f.mustWarehouse(t, ownerA, "W1")

	_, err = f.stock.CreateInitial(ctx, ownerA, dto.CreateStockRequest{ProductID: p.ID, WarehouseID: wh})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserCreate_SoloAdmin(t *testing.T) {
	f := newFixture()
	uc := newUserUseCase(f)
	ctx := context.Background()
	admin := entity.Identity{UserID: entity.SuperAdminID, Role: entity.RoleAdmin}
	client := entity.Identity{UserID: ownerA, Role: entity.RoleClient}

	_, err := uc.Create(ctx, client, dto.CreateUserRequest{Username: "ana", Password: "secreto123"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	out, err := uc.Create(ctx, admin, dto.CreateUserRequest{Username: "ana", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleClient, out.Role, "rol por defecto")

	_, err = uc.Create(ctx, admin, dto.CreateUserRequest{Username: "ana", Password: "otro12345"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	_, err = uc.Create(ctx, admin, dto.CreateUserRequest{Username: "beto", Password: "secreto123", Role: "root"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	list, err := uc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}
