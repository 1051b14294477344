// Package customer contiene los servicios de dominio del cliente de facturación:
// resumen financiero, guarda de eliminación, predicados de búsqueda y exportación.
package customer

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// SummarizeInvoices suma GrossAmount y PaidAmount de las facturas no borrador.
// Un conjunto vacío produce total = pagado = 0.
func SummarizeInvoices(invoices []entity.Invoice) entity.FinancialSummary {
	total, paid := decimal.Zero, decimal.Zero
	for _, inv := range invoices {
		if inv.Draft {
			continue
		}
		total = total.Add(inv.GrossAmount)
		paid = paid.Add(inv.PaidAmount)
	}
	return entity.NewFinancialSummary(total, paid)
}
