package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo lectura de facturas por cliente (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// ListByCustomer devuelve las facturas del cliente (incluye borradores), más recientes primero.
func (r *InvoiceRepo) ListByCustomer(ctx context.Context, customerID string) ([]entity.Invoice, error) {
	query := `
		SELECT id, company_id, customer_id, series, COALESCE(number, 0), date, draft,
		       gross_amount, paid_amount, created_at, updated_at
		FROM invoices WHERE customer_id = $1
		ORDER BY date DESC, number DESC NULLS FIRST`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.Series, &inv.Number, &inv.Date, &inv.Draft,
			&inv.GrossAmount, &inv.PaidAmount, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}
