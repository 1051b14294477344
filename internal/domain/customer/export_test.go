package customer_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/customer"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

func exportBatch() []*entity.Customer {
	return []*entity.Customer{
		{
			ID: "c-1", Name: "Acme Corp", Identification: "900123456", Email: "billing@acme.test",
			ContactPerson: "Wile E.", InvoicingAddress: "Calle 1", ShippingAddress: "Calle 2",
			Active: true, MetaAttributes: map[string]string{"vat_id": "ES-B123"},
		},
		{ID: "c-2", Name: "Globex", Active: false},
	}
}

func TestMetaKeys_UnionOrdenada(t *testing.T) {
	batch := []*entity.Customer{
		{MetaAttributes: map[string]string{"zone": "N", "vat_id": "1"}},
		{MetaAttributes: map[string]string{"account": "x", "vat_id": "2"}},
		{},
	}
	assert.Equal(t, []string{"account", "vat_id", "zone"}, customer.MetaKeys(batch))
	assert.Empty(t, customer.MetaKeys(nil))
}

func TestCSVHeader_ColumnasDinamicasAntesDeActive(t *testing.T) {
	assert.Equal(t,
		[]string{"id", "name", "identification", "email", "contact_person", "invoicing_address", "shipping_address", "vat_id", "active"},
		customer.CSVHeader([]string{"vat_id"}))
}

func TestWriteCSV_CeldaVaciaParaClienteSinAtributo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, customer.WriteCSV(&buf, exportBatch()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "vat_id", records[0][7])
	assert.Equal(t, []string{"c-1", "Acme Corp", "900123456", "billing@acme.test", "Wile E.", "Calle 1", "Calle 2", "ES-B123", "true"}, records[1])
	assert.Equal(t, []string{"c-2", "Globex", "", "", "", "", "", "", "false"}, records[2])
}

func TestWriteCSV_SinAtributosPersonalizados(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, customer.WriteCSV(&buf, []*entity.Customer{{ID: "c-9", Name: "Solo", Active: true}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "id,name,identification,email,contact_person,invoicing_address,shipping_address,active", lines[0])
	assert.Equal(t, "c-9,Solo,,,,,,true", lines[1])
}

func TestWriteCSV_DelimitadorYCharset(t *testing.T) {
	var buf bytes.Buffer
	batch := []*entity.Customer{{ID: "c-1", Name: "Peña", Active: true}}
	require.NoError(t, customer.WriteCSV(&buf, batch,
		customer.WithDelimiter(';'), customer.WithCharset(customer.CharsetWindows1252)))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("id;name;")))
	assert.True(t, bytes.Contains(out, []byte{'P', 0xF1, 'a'}), "ñ debe codificarse como 0xF1 en windows-1252")
}

func TestWriteCSV_CharsetNoSoportado(t *testing.T) {
	err := customer.WriteCSV(&bytes.Buffer{}, exportBatch(), customer.WithCharset("ebcdic"))

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "charset", verr.Field)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolveCharset(t *testing.T) {
	cases := map[string]string{
		"":             customer.CharsetUTF8,
		"UTF-8":        customer.CharsetUTF8,
		"utf8":         customer.CharsetUTF8,
		"Windows-1252": customer.CharsetWindows1252,
		" cp1252 ":     customer.CharsetWindows1252,
	}
	for in, want := range cases {
		got, err := customer.ResolveCharset(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := customer.ResolveCharset("latin1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// failingWriter falla en toda escritura.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disco lleno") }

func TestWriteCSV_ErrorDeEscrituraEnWindows1252(t *testing.T) {
	err := customer.WriteCSV(failingWriter{}, exportBatch(), customer.WithCharset(customer.CharsetWindows1252))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disco lleno")
}

func TestProjection_ExcluyeCamposInternos(t *testing.T) {
	deletedAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	states := []*entity.Customer{
		exportBatch()[0],
		{ID: "c-3", Name: "Borrado", NameSlug: "borrado", DeletedAt: &deletedAt},
		{},
	}
	for _, c := range states {
		p, err := customer.Projection(c)
		require.NoError(t, err)
		assert.NotContains(t, p, "name_slug")
		assert.NotContains(t, p, "deleted_at")
		for _, field := range []string{"id", "company_id", "name", "identification", "email", "contact_person",
			"invoicing_address", "shipping_address", "active", "meta_attributes", "created_at", "updated_at"} {
			assert.Contains(t, p, field)
		}
	}
}

func TestProjection_AtributosAnidados(t *testing.T) {
	p, err := customer.Projection(exportBatch()[0])
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", p["name"])
	assert.Equal(t, true, p["active"])
	assert.Equal(t, map[string]any{"vat_id": "ES-B123"}, p["meta_attributes"])
}
