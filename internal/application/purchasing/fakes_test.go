package purchasing_test

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Taller-api/internal/application/purchasing"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/domain/tenant"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para la recepción. Las líneas abiertas se listan por fecha
// de creación ascendente, igual que el adaptador real (orden FIFO).
// ──────────────────────────────────────────────────────────────────────────────

type memMoveRepo struct {
	moves []*entity.StockMove
}

func (r *memMoveRepo) Create(ctx context.Context, move *entity.StockMove) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	if move.ID == "" {
		move.ID = uuid.New().String()
	}
	move.ShopID = shopID
	cp := *move
	r.moves = append(r.moves, &cp)
	return nil
}

func (r *memMoveRepo) GetByID(_ context.Context, id string) (*entity.StockMove, error) {
	for _, m := range r.moves {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memMoveRepo) ListByPart(_ context.Context, partID string, _, _ *time.Time, _, _ int) ([]*entity.StockMove, error) {
	var out []*entity.StockMove
	for _, m := range r.moves {
		if m.PartID == partID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMoveRepo) ListByLocation(_ context.Context, locationID string, _, _ *time.Time, _, _ int) ([]*entity.StockMove, error) {
	var out []*entity.StockMove
	for _, m := range r.moves {
		if m.LocationID == locationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMoveRepo) SumByPartAndLocation(_ context.Context, partID, locationID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.moves {
		if m.PartID == partID && m.LocationID == locationID {
			sum = sum.Add(m.Qty)
		}
	}
	return sum, nil
}

func (r *memMoveRepo) FindOrphanConsumes(_ context.Context, _ int) ([]*entity.StockMove, error) {
	return nil, nil
}

type memStockRepo struct {
	rows map[string]*entity.PartStock
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{rows: make(map[string]*entity.PartStock)}
}

func stockKey(partID, locationID string) string { return partID + "|" + locationID }

func (r *memStockRepo) Get(_ context.Context, partID, locationID string) (*entity.PartStock, error) {
	if s, ok := r.rows[stockKey(partID, locationID)]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.PartStock{PartID: partID, LocationID: locationID}, nil
}

func (r *memStockRepo) ApplyDelta(_ context.Context, partID, locationID string, delta decimal.Decimal) error {
	key := stockKey(partID, locationID)
	s, ok := r.rows[key]
	if !ok {
		s = &entity.PartStock{PartID: partID, LocationID: locationID}
		r.rows[key] = s
	}
	s.OnHand = s.OnHand.Add(delta)
	return nil
}

func (r *memStockRepo) ListByPart(_ context.Context, partID string) ([]*entity.PartStock, error) {
	var out []*entity.PartStock
	for _, s := range r.rows {
		if s.PartID == partID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memStockRepo) ListByLocation(_ context.Context, locationID string, _, _ int) ([]*entity.PartStock, error) {
	var out []*entity.PartStock
	for _, s := range r.rows {
		if s.LocationID == locationID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memStockRepo) ListNegative(_ context.Context, _ int) ([]*entity.PartStock, error) {
	return nil, nil
}

type memPartRepo struct {
	parts map[string]*entity.Part
}

func newMemPartRepo(parts ...*entity.Part) *memPartRepo {
	r := &memPartRepo{parts: make(map[string]*entity.Part)}
	for _, p := range parts {
		r.parts[p.ID] = p
	}
	return r
}

func (r *memPartRepo) Create(_ context.Context, part *entity.Part) error {
	r.parts[part.ID] = part
	return nil
}

func (r *memPartRepo) GetByID(_ context.Context, id string) (*entity.Part, error) {
	return r.parts[id], nil
}

func (r *memPartRepo) GetBySKU(_ context.Context, _ string) (*entity.Part, error) { return nil, nil }
func (r *memPartRepo) Update(_ context.Context, _ *entity.Part) error             { return nil }

func (r *memPartRepo) UpdateCost(_ context.Context, partID string, cost decimal.Decimal) error {
	if p, ok := r.parts[partID]; ok {
		p.UnitCost = cost
	}
	return nil
}

func (r *memPartRepo) List(_ context.Context, _, _ int) ([]*entity.Part, error) { return nil, nil }
func (r *memPartRepo) Search(_ context.Context, _ string, _, _ int) ([]*entity.Part, error) {
	return nil, nil
}

type memLocationRepo struct {
	locations map[string]*entity.StockLocation
}

func newMemLocationRepo(locations ...*entity.StockLocation) *memLocationRepo {
	r := &memLocationRepo{locations: make(map[string]*entity.StockLocation)}
	for _, l := range locations {
		r.locations[l.ID] = l
	}
	return r
}

func (r *memLocationRepo) Create(_ context.Context, location *entity.StockLocation) error {
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	r.locations[location.ID] = location
	return nil
}

func (r *memLocationRepo) GetByID(_ context.Context, id string) (*entity.StockLocation, error) {
	return r.locations[id], nil
}

func (r *memLocationRepo) GetByCode(_ context.Context, code string) (*entity.StockLocation, error) {
	for _, l := range r.locations {
		if l.Code == code {
			return l, nil
		}
	}
	return nil, nil
}

func (r *memLocationRepo) List(_ context.Context, _, _ int) ([]*entity.StockLocation, error) {
	return nil, nil
}

type memPurchaseOrderRepo struct {
	orders map[string]*entity.PurchaseOrder
	lines  map[string]*entity.PurchaseOrderLine
}

func newMemPurchaseOrderRepo() *memPurchaseOrderRepo {
	return &memPurchaseOrderRepo{
		orders: make(map[string]*entity.PurchaseOrder),
		lines:  make(map[string]*entity.PurchaseOrderLine),
	}
}

func (r *memPurchaseOrderRepo) CreateOrder(ctx context.Context, order *entity.PurchaseOrder) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.ShopID = shopID
	r.orders[order.ID] = order
	return nil
}

func (r *memPurchaseOrderRepo) GetOrderByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	o, ok := r.orders[id]
	if !ok || o.ShopID != shopID {
		return nil, nil
	}
	return o, nil
}

func (r *memPurchaseOrderRepo) ListOrders(_ context.Context, _, _ int) ([]*entity.PurchaseOrder, error) {
	return nil, nil
}

func (r *memPurchaseOrderRepo) UpdateOrderStatus(_ context.Context, id, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *memPurchaseOrderRepo) CreateLine(ctx context.Context, line *entity.PurchaseOrderLine) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	line.ShopID = shopID
	r.lines[line.ID] = line
	return nil
}

func (r *memPurchaseOrderRepo) GetLineByID(ctx context.Context, id string) (*entity.PurchaseOrderLine, error) {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	l, ok := r.lines[id]
	if !ok || l.ShopID != shopID {
		return nil, nil
	}
	return l, nil
}

func (r *memPurchaseOrderRepo) ListLinesByOrder(_ context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderLine, error) {
	return r.linesOf(purchaseOrderID, false), nil
}

func (r *memPurchaseOrderRepo) ListOpenLinesByOrder(_ context.Context, purchaseOrderID string) ([]*entity.PurchaseOrderLine, error) {
	return r.linesOf(purchaseOrderID, true), nil
}

func (r *memPurchaseOrderRepo) linesOf(purchaseOrderID string, onlyOpen bool) []*entity.PurchaseOrderLine {
	var out []*entity.PurchaseOrderLine
	for _, l := range r.lines {
		if l.PurchaseOrderID != purchaseOrderID {
			continue
		}
		if onlyOpen && !l.ReceivedQty.LessThan(l.OrderedQty) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *memPurchaseOrderRepo) AddReceivedQty(_ context.Context, lineID string, qty decimal.Decimal) error {
	l, ok := r.lines[lineID]
	if !ok {
		return domain.ErrNotFound
	}
	l.ReceivedQty = l.ReceivedQty.Add(qty)
	return nil
}

// fakeTxRunner pasa los fakes al callback; sin transacción real.
type fakeTxRunner struct {
	movRepo   *memMoveRepo
	stockRepo *memStockRepo
	poRepo    *memPurchaseOrderRepo
	partRepo  *memPartRepo
}

var _ purchasing.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) RunReceiving(ctx context.Context, fn func(
	movRepo repository.StockMoveRepository,
	stockRepo repository.PartStockRepository,
	poRepo repository.PurchaseOrderRepository,
	partRepo repository.PartRepository,
) error) error {
	return fn(r.movRepo, r.stockRepo, r.poRepo, r.partRepo)
}
