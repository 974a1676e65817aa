package entity

import "time"

// Supplier proveedor de repuestos.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
