package customer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// Columnas fijas del CSV; las claves de atributos personalizados van entre
// shipping_address y active.
var (
	csvLeadingColumns = []string{
		"id", "name", "identification", "email", "contact_person",
		"invoicing_address", "shipping_address",
	}
	csvTrailingColumns = []string{"active"}
)

// internalFields no forman parte de la proyección estructurada.
var internalFields = []string{"name_slug", "deleted_at"}

// Charsets soportados para la exportación CSV.
const (
	CharsetUTF8        = "utf-8"
	CharsetWindows1252 = "windows-1252"
)

// ResolveCharset normaliza el nombre del charset de exportación. Vacío equivale a utf-8.
// Un charset no soportado es un error de validación del campo charset.
func ResolveCharset(charset string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", CharsetUTF8, "utf8":
		return CharsetUTF8, nil
	case CharsetWindows1252, "cp1252":
		return CharsetWindows1252, nil
	}
	return "", &domain.ValidationError{Field: "charset", Message: fmt.Sprintf("no soportado %q (utf-8 | windows-1252)", charset)}
}

// MetaKeys devuelve la unión de claves de atributos personalizados del lote,
// ordenada alfabéticamente para que el orden de columnas sea estable.
func MetaKeys(customers []*entity.Customer) []string {
	seen := make(map[string]struct{})
	for _, c := range customers {
		for k := range c.MetaAttributes {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CSVHeader cabecera: columnas fijas, una por clave conocida y active.
func CSVHeader(metaKeys []string) []string {
	header := make([]string, 0, len(csvLeadingColumns)+len(metaKeys)+len(csvTrailingColumns))
	header = append(header, csvLeadingColumns...)
	header = append(header, metaKeys...)
	return append(header, csvTrailingColumns...)
}

// TabularRow fila del cliente en el mismo orden que CSVHeader.
// Las claves que el cliente no tiene quedan vacías.
func TabularRow(c *entity.Customer, metaKeys []string) []string {
	row := make([]string, 0, len(csvLeadingColumns)+len(metaKeys)+len(csvTrailingColumns))
	row = append(row,
		c.ID, c.Name, c.Identification, c.Email, c.ContactPerson,
		c.InvoicingAddress, c.ShippingAddress,
	)
	for _, k := range metaKeys {
		row = append(row, c.MetaAttribute(k))
	}
	return append(row, strconv.FormatBool(c.Active))
}

type csvOptions struct {
	delimiter rune
	charset   string
}

// CSVOption opción funcional para WriteCSV.
type CSVOption func(*csvOptions)

// WithDelimiter cambia el separador de campos (por defecto coma).
func WithDelimiter(d rune) CSVOption {
	return func(o *csvOptions) {
		if d != 0 {
			o.delimiter = d
		}
	}
}

// WithCharset codifica la salida (utf-8 o windows-1252).
func WithCharset(charset string) CSVOption {
	return func(o *csvOptions) {
		if charset != "" {
			o.charset = charset
		}
	}
}

// WriteCSV escribe cabecera y filas del lote. Las claves dinámicas se calculan una vez por llamada.
func WriteCSV(w io.Writer, customers []*entity.Customer, opts ...CSVOption) (err error) {
	o := csvOptions{delimiter: ',', charset: CharsetUTF8}
	for _, opt := range opts {
		opt(&o)
	}
	charset, err := ResolveCharset(o.charset)
	if err != nil {
		return err
	}

	if charset == CharsetWindows1252 {
		tw := transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
		defer func() {
			if cerr := tw.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("csv: %w", cerr)
			}
		}()
		w = tw
	}

	keys := MetaKeys(customers)
	cw := csv.NewWriter(w)
	cw.Comma = o.delimiter
	if err := cw.Write(CSVHeader(keys)); err != nil {
		return fmt.Errorf("csv: escribir cabecera: %w", err)
	}
	for _, c := range customers {
		if err := cw.Write(TabularRow(c, keys)); err != nil {
			return fmt.Errorf("csv: escribir cliente %s: %w", c.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: %w", err)
	}
	return nil
}

// Projection devuelve todos los campos almacenados del cliente por nombre de columna,
// excepto name_slug y deleted_at. Los atributos personalizados van como mapa anidado.
func Projection(c *entity.Customer) (map[string]any, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("proyección: %w", err)
	}
	out := make(map[string]any)
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("proyección: %w", err)
	}
	for _, f := range internalFields {
		delete(out, f)
	}
	return out, nil
}
