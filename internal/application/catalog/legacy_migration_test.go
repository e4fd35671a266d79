package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-catalog/internal/application/catalog"
	"github.com/jhoicas/wms-catalog/internal/domain/repository"
)

func TestLegacyMigration_MueveYEsIdempotente(t *testing.T) {
	s := newSeed()
	ctx := context.Background()
	s.warehouse(t, ownerA, "w1", "W1")
	s.warehouse(t, ownerA, "w2", "W2")
	s.product(t, ownerA, "p1", "c1", "Martillo")
	s.product(t, ownerA, "p2", "c1", "Clavo")
	s.product(t, ownerA, "p3", "c1", "Roto")
	s.stock(t, ownerA, "p2", "w2", 9, 0)

	legacy := s.store.Legacy()
	legacy.Seed(repository.LegacyStockRow{ProductID: "p1", OwnerID: ownerA, WarehouseID: "w1", Quantity: 3})
	legacy.Seed(repository.LegacyStockRow{ProductID: "p2", OwnerID: ownerA, WarehouseID: "w2", Quantity: 50})
	legacy.Seed(repository.LegacyStockRow{ProductID: "p3", OwnerID: ownerA, WarehouseID: "w1", Quantity: -2})

	m := catalog.NewLegacyMigration(legacy, s.store.Stock(), s.store.Warehouses())
	res, err := m.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.MigrationResult{Migrated: 1, Skipped: 1, Invalid: 1}, res)

	assert.Equal(t, int64(3), quantities(t, s, ownerA, "w1", "")["p1"])
	assert.Equal(t, int64(9), quantities(t, s, ownerA, "w2", "")["p2"], "el ledger existente manda")
	assert.Equal(t, int64(0), quantities(t, s, ownerA, "w1", "")["p3"], "negativos no se migran")

	res, err = m.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.MigrationResult{Invalid: 1}, res, "segunda corrida: solo queda la fila inválida")
}

// Una fila legacy cuya bodega es de otro owner o no existe no crea stock y queda pendiente.
func TestLegacyMigration_BodegaAjenaOInexistente(t *testing.T) {
	s := newSeed()
	ctx := context.Background()
	s.warehouse(t, ownerB, "wb", "WB")
	s.product(t, ownerA, "pa", "c1", "Martillo")
	s.product(t, ownerA, "pz", "c1", "Clavo")

	legacy := s.store.Legacy()
	legacy.Seed(repository.LegacyStockRow{ProductID: "pa", OwnerID: ownerA, WarehouseID: "wb", Quantity: 7})
	legacy.Seed(repository.LegacyStockRow{ProductID: "pz", OwnerID: ownerA, WarehouseID: "no-existe", Quantity: 4})

	m := catalog.NewLegacyMigration(legacy, s.store.Stock(), s.store.Warehouses())
	res, err := m.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.MigrationResult{Invalid: 2}, res)

	for _, id := range []string{"pa", "pz"} {
		rows, err := s.store.Stock().ListByProduct(ctx, ownerA, id)
		require.NoError(t, err)
		assert.Empty(t, rows, "no se crea stock para %s", id)
	}
	rows, err := s.store.Stock().ListByProduct(ctx, ownerB, "pa")
	require.NoError(t, err)
	assert.Empty(t, rows, "la bodega de otro owner no recibe stock")

	pending, err := legacy.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2, "las columnas legacy quedan para revisión")
}
