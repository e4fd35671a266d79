package entity

import "time"

// Category representa una categoría de productos de un owner (árbol por ParentID).
type Category struct {
	ID        string
	OwnerID   string
	ParentID  string // vacío si es raíz
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool { return c.ParentID == "" }
