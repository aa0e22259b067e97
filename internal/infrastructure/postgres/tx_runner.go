package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dgomezm/custodia-pos/internal/application/custody"
	"github.com/dgomezm/custodia-pos/internal/application/inventory"
	"github.com/dgomezm/custodia-pos/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and custody.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ custody.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL acotada por
// timeout: si la transacción no completa a tiempo se aborta y revierte entera,
// sin dejar escrituras hermanas a medias (evento sin estado, línea sin stock).
type TxRunner struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewTxRunner construye el runner con el pool y el timeout por transacción.
func NewTxRunner(pool *pgxpool.Pool, timeout time.Duration) *TxRunner {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TxRunner{pool: pool, timeout: timeout}
}

// Run inicia una transacción con repos de inventario y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	entryRepo repository.MovementEntryRepository,
	folioRepo repository.FolioRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewProductRepository(q), NewMovementEntryRepository(q), NewFolioRepository(q))
	})
}

// RunCustody inicia una transacción con repos de custodia y hace Commit o Rollback.
func (r *TxRunner) RunCustody(ctx context.Context, fn func(
	itemRepo repository.CustodyItemRepository,
	eventRepo repository.CustodyEventRepository,
	folioRepo repository.FolioRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewCustodyItemRepository(q), NewCustodyEventRepository(q), NewFolioRepository(q))
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
