package dto

import "github.com/shopspring/decimal"

// CreatePurchaseOrderRequest body para abrir una orden de compra con líneas.
type CreatePurchaseOrderRequest struct {
	Number     string                     `json:"number"`
	VendorName string                     `json:"vendor_name,omitempty"`
	Lines      []PurchaseOrderLineRequest `json:"lines"`
}

// PurchaseOrderLineRequest línea del pedido.
type PurchaseOrderLineRequest struct {
	PartID     string          `json:"part_id"`
	OrderedQty decimal.Decimal `json:"ordered_qty"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse orden de compra.
type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	Number     string                      `json:"number"`
	VendorName string                      `json:"vendor_name,omitempty"`
	Status     string                      `json:"status"`
	Lines      []PurchaseOrderLineResponse `json:"lines,omitempty"`
}

// PurchaseOrderLineResponse línea con avance de recepción.
type PurchaseOrderLineResponse struct {
	ID          string          `json:"id"`
	PartID      string          `json:"part_id"`
	OrderedQty  decimal.Decimal `json:"ordered_qty"`
	ReceivedQty decimal.Decimal `json:"received_qty"`
	Remaining   decimal.Decimal `json:"remaining"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// ReceiveRequest body para registrar una recepción (contra línea u orden).
type ReceiveRequest struct {
	Qty        decimal.Decimal `json:"qty"`
	LocationID string          `json:"location_id"`
}

// ReceiptResponse resumen de lo aplicado en una recepción.
type ReceiptResponse struct {
	Moves       []StockMoveResponse `json:"moves"`
	AppliedQty  decimal.Decimal     `json:"applied_qty"`
	OrderStatus string              `json:"order_status"`
}
