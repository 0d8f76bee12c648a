package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// Las razones forman una enumeración cerrada: cualquier string fuera del
// conjunto se rechaza antes de tocar el ledger.
func TestValidReason_Cerrada(t *testing.T) {
	for _, r := range []string{
		entity.ReasonConsume, entity.ReasonReturnIn, entity.ReasonReceive,
		entity.ReasonAdjust, entity.ReasonScrap,
	} {
		assert.True(t, entity.ValidReason(r), "razón %q debe ser válida", r)
	}
	for _, r := range []string{"", "transfer", "CONSUME", "devolucion"} {
		assert.False(t, entity.ValidReason(r), "razón %q debe rechazarse", r)
	}
}

func TestValidDisposition_Cerrada(t *testing.T) {
	for _, d := range []string{
		entity.DispositionReturnToStock, entity.DispositionKeepConsumed, entity.DispositionScrap,
	} {
		assert.True(t, entity.ValidDisposition(d))
	}
	for _, d := range []string{"", "return", "RETURN_TO_STOCK"} {
		assert.False(t, entity.ValidDisposition(d))
	}
}

func TestPartStock_Available(t *testing.T) {
	s := entity.PartStock{
		OnHand:   decimal.NewFromInt(10),
		Reserved: decimal.NewFromInt(3),
	}
	assert.True(t, decimal.NewFromInt(7).Equal(s.Available()))
}

func TestPurchaseOrderLine_Remaining_NuncaNegativo(t *testing.T) {
	l := entity.PurchaseOrderLine{
		OrderedQty:  decimal.NewFromInt(5),
		ReceivedQty: decimal.NewFromInt(8),
	}
	assert.True(t, l.Remaining().IsZero(), "remaining no baja de cero aunque el contador se pase")
}
