package entity_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/wms-catalog/internal/domain"
	"github.com/jhoicas/wms-catalog/internal/domain/entity"
)

func validProduct() *entity.Product {
	return &entity.Product{
		ID:         "p1",
		OwnerID:    "acme",
		CategoryID: "c1",
		Name:       "Martillo",
		Price:      decimal.NewFromInt(10),
		Country:    "CO",
		Unit:       "pcs",
		Barcodes:   []entity.Barcode{{Type: entity.BarcodeEAN13, Value: "7701234567890"}},
	}
}

func TestProductValidate_Valido(t *testing.T) {
	assert.NoError(t, validProduct().Validate())
}

func TestProductValidate_Invalidos(t *testing.T) {
	cases := map[string]func(p *entity.Product){
		"sin nombre":        func(p *entity.Product) { p.Name = "" },
		"sin categoría":     func(p *entity.Product) { p.CategoryID = "" },
		"sin unidad":        func(p *entity.Product) { p.Unit = "" },
		"once fotos":        func(p *entity.Product) { p.Photos = make([]string, entity.MaxPhotos+1) },
		"descripción larga": func(p *entity.Product) { p.Description = strings.Repeat("a", entity.MaxDescriptionLen+1) },
		"precio negativo":   func(p *entity.Product) { p.Price = decimal.NewFromInt(-1) },
		"barcode inválido":  func(p *entity.Product) { p.Barcodes = []entity.Barcode{{Type: "QR", Value: "x"}} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validProduct()
			mutate(p)
			err := p.Validate()
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "debe ser error de validación: %v", err)
		})
	}
}

func TestProductValidate_DescripcionEnRunas(t *testing.T) {
	p := validProduct()
	p.Description = strings.Repeat("ñ", entity.MaxDescriptionLen)
	assert.NoError(t, p.Validate(), "el límite cuenta caracteres, no bytes")
}

func TestIdentity_OwnerNormalizaSuperAdminLegacy(t *testing.T) {
	id := entity.Identity{UserID: "super-admin", Role: entity.RoleAdmin}
	assert.Equal(t, entity.SuperAdminID, id.Owner())
	assert.True(t, id.IsAdmin())
}
