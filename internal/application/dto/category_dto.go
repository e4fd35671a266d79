package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría. ParentID vacío o nil = raíz.
type CreateCategoryRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	ParentID *string `json:"parent_id"`
}

// UpdateCategoryRequest entrada para renombrar o mover una categoría.
// ParentID con "" la convierte en raíz.
type UpdateCategoryRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	ParentID *string `json:"parent_id"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse lista de categorías ordenada por nombre.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}

// CategoryNodeResponse nodo del árbol con sus hijos y productos.
type CategoryNodeResponse struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	ParentID *string                `json:"parent"`
	Children []CategoryNodeResponse `json:"children"`
	Products []ProductView          `json:"products"`
}

// CategoryTreeResponse bosque de categorías. Unplaced cuenta productos cuya categoría no está en el árbol.
type CategoryTreeResponse struct {
	Roots    []CategoryNodeResponse `json:"roots"`
	Unplaced int                    `json:"unplaced"`
}
