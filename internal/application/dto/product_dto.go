package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// BarcodeDTO código de barras (type: EAN8, EAN13, Code128, GTIN, UPC).
type BarcodeDTO struct {
	Type  string `json:"type" validate:"required,oneof=EAN8 EAN13 Code128 GTIN UPC"`
	Value string `json:"value" validate:"required"`
}

// CharacteristicDTO par clave/valor libre del producto.
type CharacteristicDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Characteristics acepta una lista [{key,value}], un objeto {"k":"v"} o ese mismo JSON
// codificado como string (formularios). JSON mal formado es error, no se ignora.
type Characteristics []CharacteristicDTO

// UnmarshalJSON implementa json.Unmarshaler.
func (c *Characteristics) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = nil
		return nil
	}
	switch b[0] {
	case '[':
		var list []CharacteristicDTO
		if err := json.Unmarshal(b, &list); err != nil {
			return fmt.Errorf("characteristics: %w", err)
		}
		*c = list
	case '{':
		var m map[string]string
		if err := json.Unmarshal(b, &m); err != nil {
			return fmt.Errorf("characteristics: %w", err)
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		list := make([]CharacteristicDTO, 0, len(keys))
		for _, k := range keys {
			list = append(list, CharacteristicDTO{Key: k, Value: m[k]})
		}
		*c = list
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("characteristics: %w", err)
		}
		if s == "" {
			*c = nil
			return nil
		}
		return c.UnmarshalJSON([]byte(s))
	default:
		return fmt.Errorf("characteristics: formato no soportado")
	}
	return nil
}

// ToMap colapsa los pares; si una clave se repite gana el último valor. Claves vacías se omiten.
func (c Characteristics) ToMap() map[string]string {
	m := make(map[string]string, len(c))
	for _, kv := range c {
		if kv.Key == "" {
			continue
		}
		m[kv.Key] = kv.Value
	}
	return m
}

// PhotoUpload foto a subir al media store antes de escribir el producto (data en base64 en JSON).
type PhotoUpload struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// CreateProductRequest entrada para crear un producto.
// WarehouseID opcional: si viene (y no es "all") se crea también la fila de stock inicial.
type CreateProductRequest struct {
	CategoryID       string           `json:"category" validate:"required"`
	Name             string           `json:"name" validate:"required,min=1,max=200"`
	Description      string           `json:"description" validate:"max=5000"`
	Article          string           `json:"article"`
	Code             string           `json:"code"`
	ExternalCode     string           `json:"external_code"`
	Price            decimal.Decimal  `json:"price"`
	DiscountPrice    *decimal.Decimal `json:"discount_price"`
	IsDiscountActive bool             `json:"is_discount_active"`
	Characteristics  Characteristics  `json:"characteristics"`
	Country          string           `json:"country" validate:"required"`
	Unit             string           `json:"unit" validate:"required"`
	Barcodes         []BarcodeDTO     `json:"barcodes"`
	Uploads          []PhotoUpload    `json:"uploads" validate:"max=10"`
	WarehouseID      string           `json:"warehouse"`
	Quantity         *int64           `json:"quantity"`
	MinQuantity      *int64           `json:"min_quantity"`
}

// UpdateProductRequest entrada para actualizar un producto. No modifica stock.
// Uploads se añaden al final de las fotos existentes.
type UpdateProductRequest struct {
	CategoryID       *string          `json:"category"`
	Name             *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description      *string          `json:"description" validate:"omitempty,max=5000"`
	Article          *string          `json:"article"`
	Code             *string          `json:"code"`
	ExternalCode     *string          `json:"external_code"`
	Price            *decimal.Decimal `json:"price"`
	DiscountPrice    *decimal.Decimal `json:"discount_price"`
	IsDiscountActive *bool            `json:"is_discount_active"`
	Characteristics  *Characteristics `json:"characteristics"`
	Country          *string          `json:"country"`
	Unit             *string          `json:"unit"`
	Barcodes         *[]BarcodeDTO    `json:"barcodes"`
	Uploads          []PhotoUpload    `json:"uploads"`
}

// ProductResponse salida de un producto (definición global, sin cantidad).
type ProductResponse struct {
	ID               string            `json:"id"`
	CategoryID       string            `json:"category_id"`
	Name             string            `json:"name"`
	Photos           []string          `json:"photos"`
	Description      string            `json:"description"`
	Article          string            `json:"article,omitempty"`
	Code             string            `json:"code,omitempty"`
	ExternalCode     string            `json:"external_code,omitempty"`
	Price            decimal.Decimal   `json:"price"`
	DiscountPrice    *decimal.Decimal  `json:"discount_price,omitempty"`
	IsDiscountActive bool              `json:"is_discount_active"`
	Characteristics  map[string]string `json:"characteristics"`
	Country          string            `json:"country"`
	Unit             string            `json:"unit"`
	Barcodes         []BarcodeDTO      `json:"barcodes"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// ProductView producto con la cantidad de la bodega consultada (0 si no hay fila o si es "all").
type ProductView struct {
	ProductResponse
	CategoryName string `json:"category_name"`
	WarehouseID  string `json:"warehouse_id,omitempty"`
	Quantity     int64  `json:"quantity"`
	MinQuantity  int64  `json:"min_quantity"`
	BelowMin     bool   `json:"below_min"`
}

// ProductListResponse lista de productos vistos desde una bodega.
type ProductListResponse struct {
	Items []ProductView `json:"items"`
}
