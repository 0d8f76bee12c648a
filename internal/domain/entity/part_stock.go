package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartStock es el snapshot derivado del ledger: saldo actual de un repuesto
// en una ubicación. Es una caché mantenida por el propio ledger (nunca la
// escriben los callers) y en todo punto quiescente OnHand es igual a la suma
// firmada de los StockMove de ese par (repuesto, ubicación).
//
// OnHand puede quedar negativo: el consumo no se bloquea contra disponible.
// Un saldo negativo es una anomalía detectable, no un estado oculto.
type PartStock struct {
	ShopID     string
	PartID     string
	LocationID string
	OnHand     decimal.Decimal
	Reserved   decimal.Decimal
	UpdatedAt  time.Time
}

// Available devuelve la cantidad disponible: en mano menos reservada.
func (s PartStock) Available() decimal.Decimal {
	return s.OnHand.Sub(s.Reserved)
}
