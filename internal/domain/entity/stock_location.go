package entity

import "time"

// DefaultLocationCode es la ubicación que se auto-provisiona en el primer
// uso de inventario de un taller. Todo taller debe tener al menos una
// ubicación antes de registrar movimientos.
const DefaultLocationCode = "MAIN"

// StockLocation representa un contenedor físico o lógico de stock dentro de
// un taller (ej. "MAIN", "MOSTRADOR", "CAMIONETA-1").
type StockLocation struct {
	ID        string
	ShopID    string
	Code      string // único por taller
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
