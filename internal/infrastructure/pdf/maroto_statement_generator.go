// Package pdf implementa el estado de cuenta de un cliente en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio              │  STATEMENT + fecha           │
//	│  CLIENTE: nombre / email / teléfono                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Descripción | Estado | Monto                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Paid / Pending / Overdue / Total                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/taxdesk/clientdesk-api/internal/application/ports"
	"github.com/taxdesk/clientdesk-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorPaid    = &props.Color{Red: 21, Green: 128, Blue: 61}
	colorPending = &props.Color{Red: 161, Green: 98, Blue: 7}
	colorOverdue = &props.Color{Red: 185, Green: 28, Blue: 28}
)

var _ ports.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

// MarotoStatementGenerator implementa ports.StatementPDFGenerator usando Maroto v2.
type MarotoStatementGenerator struct {
	printer *message.Printer
}

// NewMarotoStatementGenerator construye el generador. Los montos se formatean en inglés (1,234.50).
func NewMarotoStatementGenerator() *MarotoStatementGenerator {
	return &MarotoStatementGenerator{printer: message.NewPrinter(language.English)}
}

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatementPDF(_ context.Context, data ports.StatementData) ([]byte, error) {
	if data.Client == nil {
		return nil, fmt.Errorf("pdf: cliente requerido")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Payment statement", true).
		WithAuthor(data.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data))
	m.AddRows(clientRow(data.Client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(data.Payments) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No payments recorded.", props.Text{Size: 8, Top: 2, Color: colorGray, Align: align.Center}),
		)))
	}
	for _, p := range data.Payments {
		m.AddRows(g.paymentRow(p))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoStatementGenerator) headerRow(data ports.StatementData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(data.BusinessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("PAYMENT STATEMENT", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Date: "+data.GeneratedAt.Format("2006-01-02"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func clientRow(c *entity.Client) core.Row {
	phone := "-"
	if c.Phone != nil {
		phone = *c.Phone
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 1}),
			text.New(fmt.Sprintf("Email: %s   |   Phone: %s   |   Client #%d", c.Email, phone, c.ID), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("Description", 5, align.Left),
		h("Status", 2, align.Center),
		h("Amount", 3, align.Right),
	)
}

func (g *MarotoStatementGenerator) paymentRow(p *entity.Payment) core.Row {
	desc := "-"
	if p.Description != nil {
		desc = *p.Description
	}
	return row.New(7).Add(
		col.New(2).Add(text.New(p.Date.Format("2006-01-02"), props.Text{Size: 8, Top: 1})),
		col.New(5).Add(text.New(desc, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(string(p.Status), props.Text{
			Size: 8, Top: 1, Align: align.Center, Style: fontstyle.Bold, Color: statusColor(p.Status),
		})),
		col.New(3).Add(text.New(g.money(p.Amount), props.Text{Size: 8, Top: 1, Align: align.Right})),
	)
}

func (g *MarotoStatementGenerator) totalsRow(data ports.StatementData) core.Row {
	label := func(s string, top float64, c *props.Color) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top, Color: c})
	}
	value := func(d decimal.Decimal, top float64) core.Component {
		return text.New(g.money(d), props.Text{Size: 9, Align: align.Right, Top: top})
	}
	met := data.Metrics
	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(
			label("Paid:", 1, colorPaid),
			label("Pending:", 7, colorPending),
			label("Overdue:", 13, colorOverdue),
			label("TOTAL:", 19, colorPrimary),
		),
		col.New(3).Add(
			value(met.PaidAmount, 1),
			value(met.PendingAmount, 7),
			value(met.OverdueAmount, 13),
			value(met.TotalRevenue, 19),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *MarotoStatementGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$%.2f", d.InexactFloat64())
}

func statusColor(s entity.PaymentStatus) *props.Color {
	switch s {
	case entity.PaymentStatusPaid:
		return colorPaid
	case entity.PaymentStatusPending:
		return colorPending
	case entity.PaymentStatusOverdue:
		return colorOverdue
	}
	return colorGray
}
