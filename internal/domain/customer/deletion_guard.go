package customer

import (
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// DeletionState resultado de evaluar una solicitud de eliminación.
type DeletionState int

const (
	DeletionAllowed DeletionState = iota
	DeletionBlocked
)

// CheckDeletion evalúa la solicitud con el resumen leído justo antes de eliminar.
// Bloquea solo si total > pagado; un cliente que pagó de más se puede eliminar.
func CheckDeletion(c *entity.Customer, s entity.FinancialSummary) (DeletionState, error) {
	if s.HasUnpaidBalance() {
		return DeletionBlocked, &domain.DeletionBlockedError{CustomerID: c.ID, Due: s.Due()}
	}
	return DeletionAllowed, nil
}
