package entity

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice es la vista de lectura de una factura del cliente.
// Las facturas las escribe el subsistema de facturación; aquí solo se agregan.
type Invoice struct {
	ID          string
	CompanyID   string
	CustomerID  string
	Series      string
	Number      int64
	Date        time.Time
	Draft       bool // los borradores no cuentan para los totales
	GrossAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Label devuelve la referencia legible (serie + número).
func (i *Invoice) Label() string {
	if i.Draft {
		return "BORRADOR"
	}
	return i.Series + strconv.FormatInt(i.Number, 10)
}

// FinancialSummary es el estado financiero derivado de las facturas no borrador.
// No se persiste ni se cachea: se recalcula en cada consulta.
type FinancialSummary struct {
	Total decimal.Decimal
	Paid  decimal.Decimal
}

// NewFinancialSummary construye el resumen a partir de las dos sumas.
func NewFinancialSummary(total, paid decimal.Decimal) FinancialSummary {
	return FinancialSummary{Total: total, Paid: paid}
}

// Due = Total - Paid. Puede ser negativo si el cliente pagó de más.
func (s FinancialSummary) Due() decimal.Decimal {
	return s.Total.Sub(s.Paid)
}

// HasUnpaidBalance indica total > pagado (comparación estricta).
func (s FinancialSummary) HasUnpaidBalance() bool {
	return s.Total.GreaterThan(s.Paid)
}
