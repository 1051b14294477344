package repository

import (
	"context"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// InvoiceRepository puerto de lectura de facturas del cliente (estado de cuenta).
type InvoiceRepository interface {
	ListByCustomer(ctx context.Context, customerID string) ([]entity.Invoice, error)
}
