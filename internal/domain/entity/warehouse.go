package entity

import "time"

// Warehouse representa una bodega del owner. Code es único por owner.
type Warehouse struct {
	ID             string
	OwnerID        string
	Name           string
	Code           string
	Address        string
	AddressComment string
	Comment        string
	Group          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
