package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/inventory/adjustments: movimiento
// manual (conteo, corrección, baja por daño).
type AdjustStockRequest struct {
	PartID     string          `json:"part_id"`
	LocationID string          `json:"location_id"`
	Qty        decimal.Decimal `json:"qty"`    // delta firmado, nunca cero
	Reason     string          `json:"reason"` // adjust o scrap
	Note       string          `json:"note,omitempty"`
}

// StockMoveResponse una entrada del libro mayor de movimientos.
type StockMoveResponse struct {
	ID         string          `json:"id"`
	PartID     string          `json:"part_id"`
	LocationID string          `json:"location_id"`
	Qty        decimal.Decimal `json:"qty"`
	Reason     string          `json:"reason"`
	RefKind    string          `json:"ref_kind,omitempty"`
	RefID      string          `json:"ref_id,omitempty"`
	CreatedBy  string          `json:"created_by,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PartStockResponse saldo de un repuesto en una ubicación.
type PartStockResponse struct {
	PartID     string          `json:"part_id"`
	LocationID string          `json:"location_id"`
	OnHand     decimal.Decimal `json:"on_hand"`
	Reserved   decimal.Decimal `json:"reserved"`
	Available  decimal.Decimal `json:"available"`
}

// BalanceCheckResponse resultado de comparar snapshot contra ledger.
type BalanceCheckResponse struct {
	PartID     string          `json:"part_id"`
	LocationID string          `json:"location_id"`
	OnHand     decimal.Decimal `json:"on_hand"`
	LedgerSum  string          `json:"ledger_sum"`
	Balanced   bool            `json:"balanced"`
}
