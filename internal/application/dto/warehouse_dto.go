package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=200"`
	Code           string `json:"code" validate:"required,min=1,max=50"`
	Address        string `json:"address" validate:"required"`
	AddressComment string `json:"address_comment"`
	Comment        string `json:"comment"`
	Group          string `json:"group"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	Address        string    `json:"address"`
	AddressComment string    `json:"address_comment,omitempty"`
	Comment        string    `json:"comment,omitempty"`
	Group          string    `json:"group,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// WarehouseListResponse lista de bodegas ordenada por nombre.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
}
