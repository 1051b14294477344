package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/Clientes-api/internal/domain"
)

// DefaultDisplayName se usa cuando el cliente no tiene nombre, identificación ni email.
const DefaultDisplayName = "Customer"

// Customer representa un cliente de la empresa (facturación).
// NameSlug y DeletedAt son internos: no se exportan en la proyección estructurada.
type Customer struct {
	ID               string            `json:"id"`
	CompanyID        string            `json:"company_id"`
	Name             string            `json:"name"`
	NameSlug         string            `json:"name_slug"`
	Identification   string            `json:"identification"` // NIT, cédula, VAT...
	Email            string            `json:"email"`
	ContactPerson    string            `json:"contact_person"`
	InvoicingAddress string            `json:"invoicing_address"`
	ShippingAddress  string            `json:"shipping_address"`
	Active           bool              `json:"active"`
	MetaAttributes   map[string]string `json:"meta_attributes"` // atributos personalizados por despliegue
	DeletedAt        *time.Time        `json:"deleted_at"`      // soft-delete
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// Validate verifica las invariantes del registro antes de persistirlo.
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &domain.ValidationError{Field: "name", Message: "es requerido"}
	}
	return nil
}

// DisplayName devuelve la etiqueta legible: nombre, identificación, email o "Customer".
// Un campo con solo espacios cuenta como vacío.
func (c *Customer) DisplayName() string {
	switch {
	case strings.TrimSpace(c.Name) != "":
		return c.Name
	case strings.TrimSpace(c.Identification) != "":
		return c.Identification
	case strings.TrimSpace(c.Email) != "":
		return c.Email
	default:
		return DefaultDisplayName
	}
}

// MetaAttribute devuelve el valor del atributo personalizado o "" si no está definido.
func (c *Customer) MetaAttribute(key string) string {
	if c.MetaAttributes == nil {
		return ""
	}
	return c.MetaAttributes[key]
}

// IsDeleted indica si el cliente fue marcado como eliminado.
func (c *Customer) IsDeleted() bool {
	return c.DeletedAt != nil
}
