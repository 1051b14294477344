// Package pdf genera el estado de cuenta del cliente en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre visible + Identificación │ Fecha de emisión │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Email / Contacto / Dirección de facturación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Factura | Fecha | Total | Pagado | Saldo             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total facturado / Pagado / SALDO PENDIENTE         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/Clientes-api/internal/application/billing"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

var _ appbilling.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStatementGenerator implementa billing.StatementPDFGenerator usando Maroto v2.
type MarotoStatementGenerator struct {
	now func() time.Time
}

// NewMarotoStatementGenerator construye el generador.
func NewMarotoStatementGenerator() *MarotoStatementGenerator {
	return &MarotoStatementGenerator{now: time.Now}
}

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatementPDF(
	_ context.Context,
	customer *entity.Customer,
	invoices []entity.Invoice,
	summary entity.FinancialSummary,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta", true).
		WithAuthor(customer.DisplayName(), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(customer, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(invoiceRows(invoices)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre visible + identificación (izq) y fecha de emisión (der).
func headerRow(customer *entity.Customer, issuedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(customer.DisplayName(), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Identificación: "+nonEmpty(customer.Identification, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+issuedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos de contacto y dirección de facturación.
func customerRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATOS DEL CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Contacto: %s",
				nonEmpty(customer.Email, "—"),
				nonEmpty(customer.ContactPerson, "—"),
			), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New("Dirección de facturación: "+nonEmpty(customer.InvoicingAddress, "—"),
				props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Factura", 3, align.Left),
		h("Fecha", 2, align.Center),
		h("Total", 2, align.Right),
		h("Pagado", 2, align.Right),
		h("Saldo", 3, align.Right),
	)
}

// invoiceRows: una fila por factura; los borradores se listan pero no suman.
func invoiceRows(invoices []entity.Invoice) []core.Row {
	if len(invoices) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin facturas registradas.", props.Text{Size: 8, Top: 1, Color: colorGray, Align: align.Center}),
		))}
	}
	rows := make([]core.Row, 0, len(invoices))
	for _, inv := range invoices {
		due := inv.GrossAmount.Sub(inv.PaidAmount)
		style := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if inv.Draft {
			style.Color = colorGray
		}
		rows = append(rows, row.New(7).Add(
			col.New(3).Add(text.New(inv.Label(), props.Text{Size: 8, Top: 1, Left: 1, Color: style.Color})),
			col.New(2).Add(text.New(inv.Date.Format("02/01/2006"), props.Text{Size: 8, Align: align.Center, Top: 1, Color: style.Color})),
			col.New(2).Add(text.New(formatMoney(inv.GrossAmount), style)),
			col.New(2).Add(text.New(formatMoney(inv.PaidAmount), style)),
			col.New(3).Add(text.New(formatMoney(due), style)),
		))
	}
	return rows
}

// totalsRow: bloque de totales alineado a la derecha. El saldo en rojo si es positivo.
func totalsRow(summary entity.FinancialSummary) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	dueColor := colorPrimary
	if summary.HasUnpaidBalance() {
		dueColor = colorDanger
	}

	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Total facturado:"),
			label("Pagado:"),
			text.New("SALDO PENDIENTE:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: dueColor, Right: 2,
			}),
		),
		col.New(3).Add(
			value(formatMoney(summary.Total)),
			value(formatMoney(summary.Paid)),
			text.New(formatMoney(summary.Due()), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: dueColor, Right: 1,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 1234567.5 → "$1.234.567,50", -50 → "-$50,00"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	intPart, frac, _ := strings.Cut(d.StringFixed(2), ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "," + frac
}
