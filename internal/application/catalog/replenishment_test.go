package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-catalog/internal/domain"
)

func TestReplenishment_OrdenPorDeficit(t *testing.T) {
	s := newSeed()
	s.category(t, ownerA, "c1", "", "Herramientas")
	s.warehouse(t, ownerA, "w1", "W1")
	s.product(t, ownerA, "p1", "c1", "Martillo")
	s.product(t, ownerA, "p2", "c1", "Taladro")
	s.product(t, ownerA, "p3", "c1", "Sierra")
	s.stock(t, ownerA, "p1", "w1", 8, 10) // 20% bajo el mínimo
	s.stock(t, ownerA, "p2", "w1", 1, 4)  // 75%
	s.stock(t, ownerA, "p3", "w1", 9, 3)  // sobre el mínimo

	out, err := s.query.Replenishment(context.Background(), ownerA, "w1")
	require.NoError(t, err)
	require.Len(t, out.Items, 2)

	first := out.Items[0]
	assert.Equal(t, "p2", first.ProductID)
	assert.Equal(t, 1, first.Priority)
	assert.Equal(t, int64(6), first.IdealQuantity)
	assert.Equal(t, int64(5), first.SuggestedQty)
	assert.Equal(t, "5", first.EstimatedCost.String())

	assert.Equal(t, "p1", out.Items[1].ProductID)
	assert.Equal(t, int64(15), out.Items[1].IdealQuantity)
	assert.Equal(t, int64(7), out.Items[1].SuggestedQty)
}

func TestReplenishment_RequiereBodega(t *testing.T) {
	s := newSeed()
	_, err := s.query.Replenishment(context.Background(), ownerA, "all")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestReplenishment_BodegaDeOtroOwner(t *testing.T) {
	s := newSeed()
	s.warehouse(t, ownerB, "w1", "W1")
	_, err := s.query.Replenishment(context.Background(), ownerA, "w1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
