package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrCustomerHasUnpaidInvoices bloquea la eliminación de un cliente con saldo pendiente.
	ErrCustomerHasUnpaidInvoices = errors.New("This customer can't be deleted because it has unpaid invoices")
)

// ValidationError describe un campo inválido al persistir una entidad.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// DeletionBlockedError lo devuelve la guarda de eliminación cuando total > pagado.
// El mensaje es fijo; Due queda disponible para logs.
type DeletionBlockedError struct {
	CustomerID string
	Due        decimal.Decimal
}

func (e *DeletionBlockedError) Error() string {
	return ErrCustomerHasUnpaidInvoices.Error()
}

// Unwrap permite errors.Is(err, ErrCustomerHasUnpaidInvoices).
func (e *DeletionBlockedError) Unwrap() error { return ErrCustomerHasUnpaidInvoices }
