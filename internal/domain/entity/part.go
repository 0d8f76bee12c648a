package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part representa un repuesto comprable/almacenable del catálogo del taller.
// UnitCost es el costo de catálogo (promedio ponderado, se actualiza en
// recepciones); el stock por ubicación vive en PartStock.
type Part struct {
	ID          string
	ShopID      string
	SKU         string // código único por taller
	Name        string
	Description string
	UnitCost    decimal.Decimal // costo por defecto al consumir sin override
	Price       decimal.Decimal // precio de venta sugerido
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
