package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name             string            `json:"name" validate:"required,max=200"`
	Identification   string            `json:"identification,omitempty" validate:"max=50"`
	Email            string            `json:"email,omitempty" validate:"omitempty,email,max=200"`
	ContactPerson    string            `json:"contact_person,omitempty" validate:"max=200"`
	InvoicingAddress string            `json:"invoicing_address,omitempty"`
	ShippingAddress  string            `json:"shipping_address,omitempty"`
	Active           *bool             `json:"active,omitempty"` // por defecto true
	MetaAttributes   map[string]string `json:"meta_attributes,omitempty" validate:"omitempty,dive,keys,required,max=100,endkeys"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id. Los campos nil no se modifican;
// MetaAttributes, si viene, reemplaza el mapa completo.
type UpdateCustomerRequest struct {
	Name             *string           `json:"name,omitempty" validate:"omitempty,max=200"`
	Identification   *string           `json:"identification,omitempty" validate:"omitempty,max=50"`
	Email            *string           `json:"email,omitempty" validate:"omitempty,email,max=200"`
	ContactPerson    *string           `json:"contact_person,omitempty" validate:"omitempty,max=200"`
	InvoicingAddress *string           `json:"invoicing_address,omitempty"`
	ShippingAddress  *string           `json:"shipping_address,omitempty"`
	Active           *bool             `json:"active,omitempty"`
	MetaAttributes   map[string]string `json:"meta_attributes,omitempty" validate:"omitempty,dive,keys,required,max=100,endkeys"`
}

// ListCustomersRequest query de GET /api/customers y /api/customers/export.csv.
type ListCustomersRequest struct {
	Q          string `query:"q"`
	OnlyActive bool   `query:"only_active"`
	Charset    string `query:"charset"` // solo exportación: utf-8 | windows-1252
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

// CustomerResponse cliente en listados.
type CustomerResponse struct {
	ID               string            `json:"id"`
	CompanyID        string            `json:"company_id"`
	Name             string            `json:"name"`
	DisplayName      string            `json:"display_name"`
	Identification   string            `json:"identification,omitempty"`
	Email            string            `json:"email,omitempty"`
	ContactPerson    string            `json:"contact_person,omitempty"`
	InvoicingAddress string            `json:"invoicing_address,omitempty"`
	ShippingAddress  string            `json:"shipping_address,omitempty"`
	Active           bool              `json:"active"`
	MetaAttributes   map[string]string `json:"meta_attributes,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []*CustomerResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// FinancialSummaryResponse saldos calculados en vivo.
type FinancialSummaryResponse struct {
	Total decimal.Decimal `json:"total"`
	Paid  decimal.Decimal `json:"paid"`
	Due   decimal.Decimal `json:"due"`
}

// CustomerDetailResponse proyección estructurada del cliente más sus saldos.
type CustomerDetailResponse struct {
	Customer    map[string]any           `json:"customer"`
	DisplayName string                   `json:"display_name"`
	Summary     FinancialSummaryResponse `json:"summary"`
}
