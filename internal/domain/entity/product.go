package entity

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-catalog/internal/domain"
)

// Límites del catálogo.
const (
	MaxPhotos         = 10
	MaxDescriptionLen = 5000
)

// Tipos de código de barras soportados.
const (
	BarcodeEAN8    = "EAN8"
	BarcodeEAN13   = "EAN13"
	BarcodeCode128 = "Code128"
	BarcodeGTIN    = "GTIN"
	BarcodeUPC     = "UPC"
)

// Barcode código de barras de un producto.
type Barcode struct {
	Type  string
	Value string
}

// ValidBarcodeType indica si t es uno de los tipos soportados.
func ValidBarcodeType(t string) bool {
	switch t {
	case BarcodeEAN8, BarcodeEAN13, BarcodeCode128, BarcodeGTIN, BarcodeUPC:
		return true
	}
	return false
}

// Product es la definición global de un producto del owner, independiente de bodega.
// La cantidad vive en Stock, nunca aquí.
type Product struct {
	ID               string
	OwnerID          string
	CategoryID       string
	Name             string
	Photos           []string // URLs, en orden
	Description      string
	Article          string
	Code             string
	ExternalCode     string
	Price            decimal.Decimal
	DiscountPrice    *decimal.Decimal
	IsDiscountActive bool
	Characteristics  map[string]string
	Country          string
	Unit             string
	Barcodes         []Barcode
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate verifica los invariantes del producto. Devuelve un error que envuelve domain.ErrInvalidInput.
func (p *Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if p.CategoryID == "" {
		return fmt.Errorf("%w: category es requerida", domain.ErrInvalidInput)
	}
	if p.Country == "" || p.Unit == "" {
		return fmt.Errorf("%w: country y unit son requeridos", domain.ErrInvalidInput)
	}
	if len(p.Photos) > MaxPhotos {
		return fmt.Errorf("%w: máximo %d fotos", domain.ErrInvalidInput, MaxPhotos)
	}
	if utf8.RuneCountInString(p.Description) > MaxDescriptionLen {
		return fmt.Errorf("%w: description supera %d caracteres", domain.ErrInvalidInput, MaxDescriptionLen)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	if p.DiscountPrice != nil && p.DiscountPrice.IsNegative() {
		return fmt.Errorf("%w: discount_price no puede ser negativo", domain.ErrInvalidInput)
	}
	for _, b := range p.Barcodes {
		if !ValidBarcodeType(b.Type) {
			return fmt.Errorf("%w: tipo de código de barras %q no soportado", domain.ErrInvalidInput, b.Type)
		}
		if b.Value == "" {
			return fmt.Errorf("%w: código de barras vacío", domain.ErrInvalidInput)
		}
	}
	return nil
}
