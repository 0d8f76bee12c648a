package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	appinventory "github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/application/purchasing"
	"github.com/jhoicas/Taller-api/internal/application/workorder"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos transaccionales de cada caso de uso.
var _ appinventory.TxRunner = (*TxRunner)(nil)
var _ workorder.TxRunner = (*TxRunner)(nil)
var _ purchasing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, pasando
// repos atados a la tx. Es la única forma de escribir el ledger: el append
// del movimiento y el incremento del snapshot comparten transacción, así un
// retorno exitoso garantiza que el snapshot refleja el movimiento.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del ledger (movimientos + snapshot).
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMoveRepository,
	stockRepo repository.PartStockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockMoveRepository(tx), NewPartStockRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAllocation inicia una transacción para consumo/void de líneas: ledger,
// snapshot, allocations y líneas de orden de trabajo en la misma tx.
func (r *TxRunner) RunAllocation(ctx context.Context, fn func(
	movRepo repository.StockMoveRepository,
	stockRepo repository.PartStockRepository,
	allocRepo repository.AllocationRepository,
	lineRepo repository.WorkOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewStockMoveRepository(tx),
		NewPartStockRepository(tx),
		NewAllocationRepository(tx),
		NewWorkOrderRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReceiving inicia una transacción para recepción de órdenes de compra:
// ledger, snapshot, líneas de compra y costo de catálogo en la misma tx.
func (r *TxRunner) RunReceiving(ctx context.Context, fn func(
	movRepo repository.StockMoveRepository,
	stockRepo repository.PartStockRepository,
	poRepo repository.PurchaseOrderRepository,
	partRepo repository.PartRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewStockMoveRepository(tx),
		NewPartStockRepository(tx),
		NewPurchaseOrderRepository(tx),
		NewPartRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
