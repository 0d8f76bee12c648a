package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Disposiciones al anular una línea con repuestos asignados.
const (
	DispositionReturnToStock = "return_to_stock" // contramovimiento +qty en la ubicación original
	DispositionKeepConsumed  = "keep_consumed"   // el consumo queda; el repuesto no vuelve
	DispositionScrap         = "scrap"           // el repuesto quedó inservible; tampoco vuelve
)

// ValidDisposition indica si la disposición pertenece al conjunto cerrado.
func ValidDisposition(d string) bool {
	switch d {
	case DispositionReturnToStock, DispositionKeepConsumed, DispositionScrap:
		return true
	}
	return false
}

// Allocation liga una cantidad consumida con la línea de orden de trabajo
// que la consumió y con el StockMove que hizo la deducción.
//
// Invariante: Qty es igual al valor absoluto del delta del movimiento
// referenciado. La reversión nunca muta el movimiento original: se apunta
// un contramovimiento nuevo y la fila de allocation se elimina.
type Allocation struct {
	ID              string
	ShopID          string
	WorkOrderID     string
	WorkOrderLineID string
	PartID          string
	LocationID      string
	Qty             decimal.Decimal  // magnitud, siempre positiva
	UnitCost        *decimal.Decimal // costo al momento de consumir; nil si no se conocía
	StockMoveID     string
	CreatedBy       string
	CreatedAt       time.Time
}
