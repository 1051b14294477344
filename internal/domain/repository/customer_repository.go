package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Clientes-api/internal/domain/customer"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// CustomerFilter criterios de listado: búsqueda libre, solo activos y paginación.
type CustomerFilter struct {
	Terms      string
	OnlyActive bool
	Limit      int // 0 = sin límite (exportación)
	Offset     int
}

// Predicates traduce el filtro a predicados de dominio, descartando los nulos.
func (f CustomerFilter) Predicates() []customer.Predicate {
	return customer.Compact(customer.WithTerms(f.Terms), customer.OnlyActive(f.OnlyActive))
}

// CustomerRepository define el puerto de persistencia para Customer (facturación).
// Todas las lecturas excluyen clientes marcados como eliminados.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// GetForUpdate como GetByID pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Customer, error)
	GetByCompanyAndIdentification(ctx context.Context, companyID, identification string) (*entity.Customer, error)
	List(ctx context.Context, companyID string, filter CustomerFilter) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	// Summary suma gross_amount y paid_amount de las facturas no borrador del cliente.
	Summary(ctx context.Context, customerID string) (entity.FinancialSummary, error)
}
