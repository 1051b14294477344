package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

func TestCustomer_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		customer entity.Customer
		want     string
	}{
		{"nombre primero", entity.Customer{Name: "Acme", Identification: "ID1", Email: "a@b.c"}, "Acme"},
		{"identificación si no hay nombre", entity.Customer{Identification: "ID1", Email: "a@b.c"}, "ID1"},
		{"email si no hay identificación", entity.Customer{Email: "a@b.c"}, "a@b.c"},
		{"literal por defecto", entity.Customer{}, "Customer"},
		{"identificación en blanco se salta", entity.Customer{Identification: "   ", Email: "a@b.c"}, "a@b.c"},
		{"email en blanco cae al literal", entity.Customer{Identification: "\t", Email: "  "}, "Customer"},
		{"nombre en blanco se salta", entity.Customer{Name: " ", Identification: "ID1"}, "ID1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.customer.DisplayName())
		})
	}
}

func TestCustomer_Validate(t *testing.T) {
	require.NoError(t, (&entity.Customer{Name: "Acme"}).Validate())

	for _, name := range []string{"", "   "} {
		err := (&entity.Customer{Name: name, Email: "a@b.c"}).Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))

		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "name", verr.Field)
	}
}

func TestCustomer_MetaAttributeEIsDeleted(t *testing.T) {
	c := entity.Customer{MetaAttributes: map[string]string{"vat_id": "X1"}}
	assert.Equal(t, "X1", c.MetaAttribute("vat_id"))
	assert.Equal(t, "", c.MetaAttribute("zone"))
	assert.Equal(t, "", (&entity.Customer{}).MetaAttribute("vat_id"))

	assert.False(t, c.IsDeleted())
	now := time.Now()
	c.DeletedAt = &now
	assert.True(t, c.IsDeleted())
}

func TestFinancialSummary_HasUnpaidBalance(t *testing.T) {
	s := entity.FinancialSummary{}
	assert.False(t, s.HasUnpaidBalance())
	assert.True(t, s.Due().IsZero())
}
