package workorder_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Taller-api/internal/application/workorder"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/tenant"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type consumeFixture struct {
	uc        *workorder.ConsumePartUseCase
	movRepo   *memMoveRepo
	stockRepo *memStockRepo
	allocRepo *memAllocRepo
	woRepo    *memWorkOrderRepo
}

// newConsumeFixture arma un taller con una orden abierta, una línea abierta y
// un repuesto con costo de catálogo $80 y 10 unidades en loc-1.
func newConsumeFixture(t *testing.T) *consumeFixture {
	t.Helper()
	movRepo := &memMoveRepo{}
	stockRepo := newMemStockRepo()
	allocRepo := newMemAllocRepo()
	woRepo := newMemWorkOrderRepo()

	seed := tenant.WithShop(context.Background(), "shop-1")
	order := &entity.WorkOrder{ID: "wo-1", Number: "OT-001", Status: entity.WorkOrderStatusOpen}
	require.NoError(t, woRepo.CreateOrder(seed, order))
	line := &entity.WorkOrderLine{ID: "line-1", WorkOrderID: "wo-1", Description: "Cambio de filtro", Qty: d("1"), Status: entity.LineStatusOpen}
	require.NoError(t, woRepo.CreateLine(seed, line))
	require.NoError(t, stockRepo.ApplyDelta(seed, "part-1", "loc-1", d("10")))

	partRepo := newMemPartRepo(&entity.Part{ID: "part-1", SKU: "FIL-001", Name: "Filtro", UnitCost: d("80")})
	tx := &fakeTxRunner{movRepo: movRepo, stockRepo: stockRepo, allocRepo: allocRepo, woRepo: woRepo}
	uc := workorder.NewConsumePartUseCase(tx, woRepo, partRepo, &stubResolver{locationID: "loc-1"})
	return &consumeFixture{uc: uc, movRepo: movRepo, stockRepo: stockRepo, allocRepo: allocRepo, woRepo: woRepo}
}

func TestConsume_QtyNoPositiva_Rechazada(t *testing.T) {
	f := newConsumeFixture(t)
	for _, qty := range []string{"0", "-2"} {
		_, err := f.uc.Consume(context.Background(), workorder.ConsumeInput{
			LineID: "line-1", PartID: "part-1", Qty: d(qty),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "qty %s", qty)
	}
}

func TestConsume_LineaInexistente_NotFound(t *testing.T) {
	f := newConsumeFixture(t)
	_, err := f.uc.Consume(context.Background(), workorder.ConsumeInput{
		LineID: "no-existe", PartID: "part-1", Qty: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El caller de otro taller no puede consumir sobre la línea, aunque conozca el ID.
func TestConsume_CallerDeOtroTaller_Forbidden(t *testing.T) {
	f := newConsumeFixture(t)
	_, err := f.uc.Consume(context.Background(), workorder.ConsumeInput{
		LineID: "line-1", PartID: "part-1", Qty: d("1"), CallerShopID: "shop-2",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.movRepo.moves)
}

// El tenant sale del sello de la propia línea: el contexto del caller puede
// venir sin taller (flujos internos) y el consumo igual procede.
func TestConsume_TenantDescubiertoDesdeLaLinea(t *testing.T) {
	f := newConsumeFixture(t)
	alloc, err := f.uc.Consume(context.Background(), workorder.ConsumeInput{
		LineID: "line-1", PartID: "part-1", Qty: d("2"), UserID: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "shop-1", alloc.ShopID)
}

// Camino feliz: movimiento -qty + allocation en el mismo paso, con el
// invariante alloc.Qty == |move.Qty| y el puntero al movimiento.
func TestConsume_MovimientoYAllocationLigados(t *testing.T) {
	f := newConsumeFixture(t)
	alloc, err := f.uc.Consume(context.Background(), workorder.ConsumeInput{
		LineID: "line-1", PartID: "part-1", Qty: d("3"), CallerShopID: "shop-1", UserID: "user-1",
	})
	require.NoError(t, err)

	require.Len(t, f.movRepo.moves, 1)
	move := f.movRepo.moves[0]
	assert.True(t, d("-3").Equal(move.Qty), "el movimiento de consumo es negativo")
	assert.Equal(t, entity.ReasonConsume, move.Reason)
	assert.Equal(t, entity.RefKindWorkOrder, move.RefKind)
	assert.Equal(t, "wo-1", move.RefID, "la referencia apunta a la orden de trabajo")

	assert.True(t, alloc.Qty.Equal(move.Qty.Abs()), "alloc.Qty == |move.Qty|")
	assert.Equal(t, move.ID, alloc.StockMoveID)
	assert.Equal(t, "line-1", alloc.WorkOrderLineID)

	snap, err := f.stockRepo.Get(context.Background(), "part-1", "loc-1")
	require.NoError(t, err)
	assert.True(t, d("7").Equal(snap.OnHand))
}

// Consumir más de lo disponible no se bloquea: el saldo queda negativo.
func TestConsume_SinBloqueoPorDisponible(t *testing.T) {
	f := newConsumeFixture(t)
	_, err := f.uc.Consume(context.Background(), workorder.ConsumeInput{
		LineID: "line-1", PartID: "part-1", Qty: d("25"), CallerShopID: "shop-1",
	})
	require.NoError(t, err)

	snap, err := f.stockRepo.Get(context.Background(), "part-1", "loc-1")
	require.NoError(t, err)
	assert.True(t, d("-15").Equal(snap.OnHand))

	negative, err := f.stockRepo.ListNegative(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, negative, 1)
}

// Costo: el override manda; sin override se estampa el costo de catálogo.
func TestConsume_CostoOverrideYCatalogo(t *testing.T) {
	f := newConsumeFixture(t)

	override := d("55")
	alloc, err := f.uc.Consume(context.Background(), workorder.ConsumeInput{
		LineID: "line-1", PartID: "part-1", Qty: d("1"), UnitCost: &override, CallerShopID: "shop-1",
	})
	require.NoError(t, err)
	require.NotNil(t, alloc.UnitCost)
	assert.True(t, d("55").Equal(*alloc.UnitCost))

	alloc, err = f.uc.Consume(context.Background(), workorder.ConsumeInput{
		LineID: "line-1", PartID: "part-1", Qty: d("1"), CallerShopID: "shop-1",
	})
	require.NoError(t, err)
	require.NotNil(t, alloc.UnitCost)
	assert.True(t, d("80").Equal(*alloc.UnitCost), "sin override se usa el catálogo")
}

func TestConsume_LineaAnulada_Conflict(t *testing.T) {
	f := newConsumeFixture(t)
	f.woRepo.lines["line-1"].Status = entity.LineStatusVoided
	_, err := f.uc.Consume(context.Background(), workorder.ConsumeInput{
		LineID: "line-1", PartID: "part-1", Qty: d("1"), CallerShopID: "shop-1",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Una orden facturada es inmutable: nada de consumos nuevos.
func TestConsume_OrdenFacturada_Conflict(t *testing.T) {
	f := newConsumeFixture(t)
	f.woRepo.orders["wo-1"].Status = entity.WorkOrderStatusInvoiced
	_, err := f.uc.Consume(context.Background(), workorder.ConsumeInput{
		LineID: "line-1", PartID: "part-1", Qty: d("1"), CallerShopID: "shop-1",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.movRepo.moves)
}

func TestConsume_RepuestoInexistente_NotFound(t *testing.T) {
	f := newConsumeFixture(t)
	_, err := f.uc.Consume(context.Background(), workorder.ConsumeInput{
		LineID: "line-1", PartID: "no-existe", Qty: d("1"), CallerShopID: "shop-1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
