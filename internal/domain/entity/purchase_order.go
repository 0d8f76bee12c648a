package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseOrderStatusOpen     = "open"
	PurchaseOrderStatusPartial  = "partial"
	PurchaseOrderStatusReceived = "received"
)

// PurchaseOrder representa un pedido a proveedor. El flujo de aprobación y
// la gestión de proveedores quedan fuera del motor; aquí solo importa el
// avance de recepción.
type PurchaseOrder struct {
	ID         string
	ShopID     string
	Number     string
	VendorName string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseOrderLine lleva los contadores de pedido/recepción. ReceivedQty
// nunca supera OrderedQty; la recepción hace clamp.
type PurchaseOrderLine struct {
	ID              string
	ShopID          string
	PurchaseOrderID string
	PartID          string
	OrderedQty      decimal.Decimal
	ReceivedQty     decimal.Decimal
	UnitCost        decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Remaining devuelve la cantidad pendiente de recibir.
func (l PurchaseOrderLine) Remaining() decimal.Decimal {
	r := l.OrderedQty.Sub(l.ReceivedQty)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}
