package billing

import (
	"context"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

// CustomerTxRunner ejecuta fn dentro de una transacción con el repositorio de clientes atado a ella.
// La guarda de eliminación y el soft-delete deben ver la misma instantánea de saldos.
type CustomerTxRunner interface {
	RunCustomers(ctx context.Context, fn func(customerRepo repository.CustomerRepository) error) error
}

// StatementPDFGenerator genera el estado de cuenta del cliente en PDF.
type StatementPDFGenerator interface {
	GenerateStatementPDF(
		ctx context.Context,
		customer *entity.Customer,
		invoices []entity.Invoice,
		summary entity.FinancialSummary,
	) ([]byte, error)
}

// ExportConfig valores por defecto de la exportación CSV.
type ExportConfig struct {
	Delimiter rune
	Charset   string
}
