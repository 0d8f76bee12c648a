package entity

import "time"

// Shop representa un taller/organización del sistema (multi-tenant).
// Ninguna operación de inventario puede ver ni tocar datos de otro taller.
type Shop struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
