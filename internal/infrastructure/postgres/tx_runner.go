package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Clientes-api/internal/application/billing"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

var _ billing.CustomerTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCustomers inicia una transacción READ COMMITTED, ejecuta fn con el repo de clientes
// atado a la tx y hace Commit o Rollback.
//
// La exclusión con las facturas no depende del nivel de aislamiento sino de bloqueos de fila:
// fn toma la fila del cliente con GetForUpdate y el trigger de invoices (migración 000003)
// pide FOR KEY SHARE sobre la misma fila. Con READ COMMITTED cada sentencia posterior al
// bloqueo ve las facturas ya confirmadas, de modo que el resumen leído después del
// GetForUpdate incluye toda factura que haya terminado antes.
func (r *TxRunner) RunCustomers(ctx context.Context, fn func(customerRepo repository.CustomerRepository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCustomerRepository(tx)); err != nil {
		if isSerializationFailure(err) || isDeadlock(err) {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) || isDeadlock(err) {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
