package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Taller-api/internal/application/purchasing"
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

func receiveCtx() context.Context {
	return tenant.WithShop(context.Background(), "shop-1")
}

type receiveFixture struct {
	uc        *purchasing.ReceiveUseCase
	movRepo   *memMoveRepo
	stockRepo *memStockRepo
	poRepo    *memPurchaseOrderRepo
	partRepo  *memPartRepo
}

// newReceiveFixture arma una orden abierta con una línea: 10 unidades de
// part-1 pedidas a $120, catálogo en $100, recepción en loc-1.
func newReceiveFixture(t *testing.T) *receiveFixture {
	t.Helper()
	movRepo := &memMoveRepo{}
	stockRepo := newMemStockRepo()
	poRepo := newMemPurchaseOrderRepo()
	partRepo := newMemPartRepo(&entity.Part{ID: "part-1", SKU: "FIL-001", Name: "Filtro", UnitCost: d("100")})
	locationRepo := newMemLocationRepo(&entity.StockLocation{ID: "loc-1", Code: "MAIN"})

	ctx := receiveCtx()
	require.NoError(t, poRepo.CreateOrder(ctx, &entity.PurchaseOrder{
		ID: "po-1", Number: "OC-001", VendorName: "Proveedor Uno", Status: entity.PurchaseOrderStatusOpen,
	}))
	require.NoError(t, poRepo.CreateLine(ctx, &entity.PurchaseOrderLine{
		ID: "pol-1", PurchaseOrderID: "po-1", PartID: "part-1",
		OrderedQty: d("10"), UnitCost: d("120"), CreatedAt: time.Now(),
	}))

	tx := &fakeTxRunner{movRepo: movRepo, stockRepo: stockRepo, poRepo: poRepo, partRepo: partRepo}
	uc := purchasing.NewReceiveUseCase(tx, poRepo, locationRepo)
	return &receiveFixture{uc: uc, movRepo: movRepo, stockRepo: stockRepo, poRepo: poRepo, partRepo: partRepo}
}

func TestReceiveLine_SinTenant_Falla(t *testing.T) {
	f := newReceiveFixture(t)
	_, err := f.uc.ReceiveLine(context.Background(), purchasing.ReceiveLineInput{
		LineID: "pol-1", Qty: d("5"), LocationID: "loc-1",
	})
	assert.ErrorIs(t, err, domain.ErrTenantContext)
}

func TestReceiveLine_EntradaInvalida(t *testing.T) {
	f := newReceiveFixture(t)

	_, err := f.uc.ReceiveLine(receiveCtx(), purchasing.ReceiveLineInput{
		LineID: "pol-1", Qty: d("0"), LocationID: "loc-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "qty cero")

	_, err = f.uc.ReceiveLine(receiveCtx(), purchasing.ReceiveLineInput{
		LineID: "pol-1", Qty: d("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin ubicación")

	_, err = f.uc.ReceiveLine(receiveCtx(), purchasing.ReceiveLineInput{
		LineID: "pol-1", Qty: d("5"), LocationID: "loc-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "ubicación inexistente")
}

func TestReceiveLine_LineaInexistente_NotFound(t *testing.T) {
	f := newReceiveFixture(t)
	_, err := f.uc.ReceiveLine(receiveCtx(), purchasing.ReceiveLineInput{
		LineID: "no-existe", Qty: d("5"), LocationID: "loc-1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Recepción parcial: movimiento receive en el ledger, contador avanzado y la
// orden pasa a partial.
func TestReceiveLine_Parcial(t *testing.T) {
	f := newReceiveFixture(t)
	result, err := f.uc.ReceiveLine(receiveCtx(), purchasing.ReceiveLineInput{
		LineID: "pol-1", Qty: d("4"), LocationID: "loc-1", UserID: "user-1",
	})
	require.NoError(t, err)

	require.Len(t, result.Moves, 1)
	move := result.Moves[0]
	assert.True(t, d("4").Equal(move.Qty))
	assert.Equal(t, entity.ReasonReceive, move.Reason)
	assert.Equal(t, entity.RefKindPurchaseOrder, move.RefKind)
	assert.Equal(t, "po-1", move.RefID)
	assert.True(t, d("4").Equal(result.AppliedQty))
	assert.Equal(t, entity.PurchaseOrderStatusPartial, result.OrderStatus)

	line, err := f.poRepo.GetLineByID(receiveCtx(), "pol-1")
	require.NoError(t, err)
	assert.True(t, d("4").Equal(line.ReceivedQty))

	snap, err := f.stockRepo.Get(context.Background(), "part-1", "loc-1")
	require.NoError(t, err)
	assert.True(t, d("4").Equal(snap.OnHand))
}

// Llegan más unidades de las pedidas: el ledger registra las físicas
// completas, pero el contador hace clamp en lo pedido.
func TestReceiveLine_ClampDelContador(t *testing.T) {
	f := newReceiveFixture(t)
	result, err := f.uc.ReceiveLine(receiveCtx(), purchasing.ReceiveLineInput{
		LineID: "pol-1", Qty: d("12"), LocationID: "loc-1",
	})
	require.NoError(t, err)

	assert.True(t, d("12").Equal(result.Moves[0].Qty), "el ledger refleja lo físico")
	assert.True(t, d("10").Equal(result.AppliedQty), "el contador se acredita hasta lo pedido")
	assert.Equal(t, entity.PurchaseOrderStatusReceived, result.OrderStatus)

	line, err := f.poRepo.GetLineByID(receiveCtx(), "pol-1")
	require.NoError(t, err)
	assert.True(t, d("10").Equal(line.ReceivedQty), "ReceivedQty nunca supera OrderedQty")

	snap, err := f.stockRepo.Get(context.Background(), "part-1", "loc-1")
	require.NoError(t, err)
	assert.True(t, d("12").Equal(snap.OnHand), "las 12 unidades físicas entran igual")
}

// Costo promedio ponderado: 10 en mano a $100 + 20 recibidas a $130 = $120.
func TestReceiveLine_CostoPromedioPonderado(t *testing.T) {
	f := newReceiveFixture(t)
	require.NoError(t, f.stockRepo.ApplyDelta(context.Background(), "part-1", "loc-1", d("10")))
	f.poRepo.lines["pol-1"].OrderedQty = d("20")
	f.poRepo.lines["pol-1"].UnitCost = d("130")

	_, err := f.uc.ReceiveLine(receiveCtx(), purchasing.ReceiveLineInput{
		LineID: "pol-1", Qty: d("20"), LocationID: "loc-1",
	})
	require.NoError(t, err)

	part, err := f.partRepo.GetByID(context.Background(), "part-1")
	require.NoError(t, err)
	assert.True(t, d("120").Equal(part.UnitCost), "(10*100 + 20*130) / 30 = 120")
}

// Sin stock previo el costo de entrada manda.
func TestReceiveLine_StockCero_CostoDeEntrada(t *testing.T) {
	f := newReceiveFixture(t)
	_, err := f.uc.ReceiveLine(receiveCtx(), purchasing.ReceiveLineInput{
		LineID: "pol-1", Qty: d("5"), LocationID: "loc-1",
	})
	require.NoError(t, err)

	part, err := f.partRepo.GetByID(context.Background(), "part-1")
	require.NoError(t, err)
	assert.True(t, d("120").Equal(part.UnitCost))
}

// Línea sin costo declarado: el catálogo no se toca.
func TestReceiveLine_SinCostoDeLinea_CatalogoIntacto(t *testing.T) {
	f := newReceiveFixture(t)
	f.poRepo.lines["pol-1"].UnitCost = decimal.Zero

	_, err := f.uc.ReceiveLine(receiveCtx(), purchasing.ReceiveLineInput{
		LineID: "pol-1", Qty: d("5"), LocationID: "loc-1",
	})
	require.NoError(t, err)

	part, err := f.partRepo.GetByID(context.Background(), "part-1")
	require.NoError(t, err)
	assert.True(t, d("100").Equal(part.UnitCost))
}

// Recepciones sucesivas: partial mientras quede pendiente, received al cerrar.
func TestReceiveLine_TransicionDeEstado(t *testing.T) {
	f := newReceiveFixture(t)

	result, err := f.uc.ReceiveLine(receiveCtx(), purchasing.ReceiveLineInput{
		LineID: "pol-1", Qty: d("6"), LocationID: "loc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusPartial, result.OrderStatus)

	result, err = f.uc.ReceiveLine(receiveCtx(), purchasing.ReceiveLineInput{
		LineID: "pol-1", Qty: d("4"), LocationID: "loc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusReceived, result.OrderStatus)

	order, err := f.poRepo.GetOrderByID(receiveCtx(), "po-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusReceived, order.Status)
}

// ReceiveOrder reparte FIFO por fecha de creación de línea: llena la primera
// hasta lo pendiente y sigue con la siguiente.
func TestReceiveOrder_RepartoFIFO(t *testing.T) {
	f := newReceiveFixture(t)
	f.poRepo.lines["pol-1"].OrderedQty = d("4")
	require.NoError(t, f.partRepo.Create(context.Background(), &entity.Part{ID: "part-2", SKU: "BUJ-001", Name: "Bujía", UnitCost: d("30")}))
	require.NoError(t, f.poRepo.CreateLine(receiveCtx(), &entity.PurchaseOrderLine{
		ID: "pol-2", PurchaseOrderID: "po-1", PartID: "part-2",
		OrderedQty: d("6"), UnitCost: d("35"), CreatedAt: time.Now().Add(time.Second),
	}))

	result, err := f.uc.ReceiveOrder(receiveCtx(), purchasing.ReceiveOrderInput{
		OrderID: "po-1", Qty: d("7"), LocationID: "loc-1", UserID: "user-1",
	})
	require.NoError(t, err)

	require.Len(t, result.Moves, 2)
	assert.Equal(t, "part-1", result.Moves[0].PartID)
	assert.True(t, d("4").Equal(result.Moves[0].Qty), "la primera línea se llena completa")
	assert.Equal(t, "part-2", result.Moves[1].PartID)
	assert.True(t, d("3").Equal(result.Moves[1].Qty), "el resto va a la segunda")
	assert.True(t, d("7").Equal(result.AppliedQty))
	assert.Equal(t, entity.PurchaseOrderStatusPartial, result.OrderStatus)

	result, err = f.uc.ReceiveOrder(receiveCtx(), purchasing.ReceiveOrderInput{
		OrderID: "po-1", Qty: d("3"), LocationID: "loc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusReceived, result.OrderStatus)
}

// El sobrante más allá de lo pedido en todas las líneas no se acredita.
func TestReceiveOrder_SobranteNoSeAcredita(t *testing.T) {
	f := newReceiveFixture(t)
	result, err := f.uc.ReceiveOrder(receiveCtx(), purchasing.ReceiveOrderInput{
		OrderID: "po-1", Qty: d("15"), LocationID: "loc-1",
	})
	require.NoError(t, err)

	assert.True(t, d("10").Equal(result.AppliedQty))
	require.Len(t, result.Moves, 1)
	assert.True(t, d("10").Equal(result.Moves[0].Qty), "a nivel orden solo entra lo pendiente por línea")
}

func TestReceiveOrder_OrdenInexistente_NotFound(t *testing.T) {
	f := newReceiveFixture(t)
	_, err := f.uc.ReceiveOrder(receiveCtx(), purchasing.ReceiveOrderInput{
		OrderID: "no-existe", Qty: d("5"), LocationID: "loc-1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Orden ya cerrada: no hay líneas abiertas contra las cuales recibir.
func TestReceiveOrder_SinLineasAbiertas_Conflict(t *testing.T) {
	f := newReceiveFixture(t)
	_, err := f.uc.ReceiveLine(receiveCtx(), purchasing.ReceiveLineInput{
		LineID: "pol-1", Qty: d("10"), LocationID: "loc-1",
	})
	require.NoError(t, err)

	_, err = f.uc.ReceiveOrder(receiveCtx(), purchasing.ReceiveOrderInput{
		OrderID: "po-1", Qty: d("5"), LocationID: "loc-1",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
