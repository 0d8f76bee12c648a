package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Razones de movimiento de stock (enumeración cerrada).
const (
	ReasonConsume  = "consume"   // salida hacia una orden de trabajo
	ReasonReturnIn = "return_in" // reingreso por void de una línea
	ReasonReceive  = "receive"   // entrada por orden de compra
	ReasonAdjust   = "adjust"    // ajuste manual (conteo, corrección)
	ReasonScrap    = "scrap"     // baja por daño/desecho
)

// Tipos de referencia del movimiento (puntero polimórfico a la entidad causante).
const (
	RefKindWorkOrder     = "work_order"
	RefKindPurchaseOrder = "purchase_order"
	RefKindManual        = "manual"
)

// ValidReason indica si la razón pertenece a la enumeración cerrada.
func ValidReason(reason string) bool {
	switch reason {
	case ReasonConsume, ReasonReturnIn, ReasonReceive, ReasonAdjust, ReasonScrap:
		return true
	}
	return false
}

// StockMove es una entrada inmutable del libro mayor de inventario: todo
// cambio de cantidad de un repuesto en una ubicación queda registrado aquí.
// Nunca se actualiza ni se borra; una corrección es un nuevo movimiento
// que compensa al anterior.
type StockMove struct {
	ID         string
	ShopID     string
	PartID     string
	LocationID string
	Qty        decimal.Decimal // delta firmado: positivo entrada, negativo salida
	Reason     string          // ver constantes Reason*
	RefKind    string          // ver constantes RefKind*
	RefID      string          // id de la entidad causante
	CreatedBy  string          // UserID
	CreatedAt  time.Time
}
