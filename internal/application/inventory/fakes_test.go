package inventory_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appinventory "github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/internal/domain/tenant"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. Imitan los contratos de los adaptadores reales: Create
// estampa el taller del contexto (y falla sin él), Get del snapshot devuelve
// fila en cero si no existe, ListByPart conserva orden estable de inserción
// (los adaptadores reales ordenan por código de ubicación).
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
	order []string
	rows  map[string]*entity.PartStock
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
		r.order = append(r.order, key)
	}
	s.OnHand = s.OnHand.Add(delta)
	s.UpdatedAt = time.Now()
	return nil
}

// seed inserta un snapshot directo (solo para armar escenarios).
func (r *memStockRepo) seed(s *entity.PartStock) {
	key := stockKey(s.PartID, s.LocationID)
	if _, ok := r.rows[key]; !ok {
		r.order = append(r.order, key)
	}
	r.rows[key] = s
}

func (r *memStockRepo) ListByPart(_ context.Context, partID string) ([]*entity.PartStock, error) {
	var out []*entity.PartStock
	for _, key := range r.order {
		if s := r.rows[key]; s.PartID == partID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memStockRepo) ListByLocation(_ context.Context, locationID string, _, _ int) ([]*entity.PartStock, error) {
	var out []*entity.PartStock
	for _, key := range r.order {
		if s := r.rows[key]; s.LocationID == locationID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memStockRepo) ListNegative(_ context.Context, _ int) ([]*entity.PartStock, error) {
	var out []*entity.PartStock
	for _, key := range r.order {
		if s := r.rows[key]; s.OnHand.IsNegative() {
			out = append(out, s)
		}
	}
	return out, nil
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
	if part.ID == "" {
		part.ID = uuid.New().String()
	}
	r.parts[part.ID] = part
	return nil
}

func (r *memPartRepo) GetByID(_ context.Context, id string) (*entity.Part, error) {
	return r.parts[id], nil
}

func (r *memPartRepo) GetBySKU(_ context.Context, sku string) (*entity.Part, error) {
	for _, p := range r.parts {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memPartRepo) Update(_ context.Context, part *entity.Part) error {
	r.parts[part.ID] = part
	return nil
}

func (r *memPartRepo) UpdateCost(_ context.Context, partID string, cost decimal.Decimal) error {
	if p, ok := r.parts[partID]; ok {
		p.UnitCost = cost
	}
	return nil
}

func (r *memPartRepo) List(_ context.Context, _, _ int) ([]*entity.Part, error) {
	var out []*entity.Part
	for _, p := range r.parts {
		out = append(out, p)
	}
	return out, nil
}

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

func (r *memLocationRepo) Create(ctx context.Context, location *entity.StockLocation) error {
	shopID, err := tenant.ShopID(ctx)
	if err != nil {
		return err
	}
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	location.ShopID = shopID
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
	var out []*entity.StockLocation
	for _, l := range r.locations {
		out = append(out, l)
	}
	return out, nil
}

// fakeTxRunner pasa los fakes al callback sin transacción real: los tests
// verifican la semántica del caso de uso, no el commit de PostgreSQL.
type fakeTxRunner struct {
	movRepo   *memMoveRepo
	stockRepo *memStockRepo
}

var _ appinventory.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMoveRepository,
	stockRepo repository.PartStockRepository,
) error) error {
	return fn(r.movRepo, r.stockRepo)
}
