package workorder_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Taller-api/internal/application/workorder"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/domain/tenant"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para consumo y void. Create estampa el taller del contexto
// como los adaptadores reales; el resto es un mapa sin transacciones.
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
	var out []*entity.PartStock
	for _, s := range r.rows {
		if s.OnHand.IsNegative() {
			out = append(out, s)
		}
	}
	return out, nil
}

type memAllocRepo struct {
	allocs map[string]*entity.Allocation
}

func newMemAllocRepo() *memAllocRepo {
	return &memAllocRepo{allocs: make(map[string]*entity.Allocation)}
}

func (r *memAllocRepo) Create(ctx context.Context, alloc *entity.Allocation) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	if alloc.ID == "" {
		alloc.ID = uuid.New().String()
	}
	alloc.ShopID = shopID
	r.allocs[alloc.ID] = alloc
	return nil
}

func (r *memAllocRepo) GetByID(_ context.Context, id string) (*entity.Allocation, error) {
	return r.allocs[id], nil
}

func (r *memAllocRepo) ListByLine(_ context.Context, workOrderLineID string) ([]*entity.Allocation, error) {
	var out []*entity.Allocation
	for _, a := range r.allocs {
		if a.WorkOrderLineID == workOrderLineID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAllocRepo) ListByOrder(_ context.Context, workOrderID string) ([]*entity.Allocation, error) {
	var out []*entity.Allocation
	for _, a := range r.allocs {
		if a.WorkOrderID == workOrderID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAllocRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.allocs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.allocs, id)
	return nil
}

type memWorkOrderRepo struct {
	orders map[string]*entity.WorkOrder
	lines  map[string]*entity.WorkOrderLine
}

func newMemWorkOrderRepo() *memWorkOrderRepo {
	return &memWorkOrderRepo{
		orders: make(map[string]*entity.WorkOrder),
		lines:  make(map[string]*entity.WorkOrderLine),
	}
}

func (r *memWorkOrderRepo) CreateOrder(ctx context.Context, order *entity.WorkOrder) error {
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

func (r *memWorkOrderRepo) GetOrderByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
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

func (r *memWorkOrderRepo) ListOrders(_ context.Context, _, _ int) ([]*entity.WorkOrder, error) {
	var out []*entity.WorkOrder
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *memWorkOrderRepo) UpdateOrderStatus(_ context.Context, id, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *memWorkOrderRepo) CreateLine(ctx context.Context, line *entity.WorkOrderLine) error {
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

func (r *memWorkOrderRepo) GetLineAnyShop(_ context.Context, id string) (*entity.WorkOrderLine, error) {
	l, ok := r.lines[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *memWorkOrderRepo) GetLineByID(ctx context.Context, id string) (*entity.WorkOrderLine, error) {
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

func (r *memWorkOrderRepo) ListLinesByOrder(_ context.Context, workOrderID string) ([]*entity.WorkOrderLine, error) {
	var out []*entity.WorkOrderLine
	for _, l := range r.lines {
		if l.WorkOrderID == workOrderID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memWorkOrderRepo) MarkLineVoided(_ context.Context, line *entity.WorkOrderLine) error {
	stored, ok := r.lines[line.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = line.Status
	stored.VoidedAt = line.VoidedAt
	stored.VoidedBy = line.VoidedBy
	stored.VoidReason = line.VoidReason
	stored.VoidNote = line.VoidNote
	return nil
}

func (r *memWorkOrderRepo) DeleteLine(_ context.Context, id string) error {
	if _, ok := r.lines[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.lines, id)
	return nil
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

func (r *memPartRepo) List(_ context.Context, _, _ int) ([]*entity.Part, error)   { return nil, nil }
func (r *memPartRepo) Search(_ context.Context, _ string, _, _ int) ([]*entity.Part, error) {
	return nil, nil
}

// stubResolver devuelve siempre la misma ubicación.
type stubResolver struct {
	locationID string
}

func (s *stubResolver) Resolve(_ context.Context, _, explicitID string) (string, error) {
	if explicitID != "" {
		return explicitID, nil
	}
	return s.locationID, nil
}

// fakeTxRunner pasa los fakes al callback; sin transacción real.
type fakeTxRunner struct {
	movRepo   *memMoveRepo
	stockRepo *memStockRepo
	allocRepo *memAllocRepo
	woRepo    *memWorkOrderRepo
}

var _ workorder.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) RunAllocation(ctx context.Context, fn func(
	movRepo repository.StockMoveRepository,
	stockRepo repository.PartStockRepository,
	allocRepo repository.AllocationRepository,
	lineRepo repository.WorkOrderRepository,
) error) error {
	return fn(r.movRepo, r.stockRepo, r.allocRepo, r.woRepo)
}
