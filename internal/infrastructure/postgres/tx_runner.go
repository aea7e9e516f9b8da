package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/logicshaper19/palmtrace/internal/application/traceability"
	"github.com/logicshaper19/palmtrace/internal/domain/repository"
)

// Ensure TxRunner implements the traceability port.
var _ traceability.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with tx-bound repositories, and
// commits, or rolls back when fn fails.
func (r *TxRunner) Run(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	allocationRepo repository.AllocationRepository,
	provenanceRepo repository.ProvenanceRepository,
	transformationRepo repository.TransformationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batchRepo := NewBatchRepository(tx)
	allocationRepo := NewAllocationRepository(tx)
	provenanceRepo := NewProvenanceRepository(tx)
	transformationRepo := NewTransformationRepository(tx)

	if err := fn(batchRepo, allocationRepo, provenanceRepo, transformationRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
