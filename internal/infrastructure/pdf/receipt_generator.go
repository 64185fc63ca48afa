// Package pdf genera el comprobante de donación (Saída) con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Organización        │  N° Salida + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BENEFICIARIO / DESTINO / OBSERVACIONES                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Cantidad | Unidad                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id de la salida + firma del receptor      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Doacoes-api/internal/application/exit"
	"github.com/jhoicas/Doacoes-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 105, Blue: 92}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ exit.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa exit.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct {
	organization string
}

// NewReceiptGenerator construye el generador; organization aparece en el encabezado.
func NewReceiptGenerator(organization string) *ReceiptGenerator {
	return &ReceiptGenerator{organization: organization}
}

// GenerateDonationReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateDonationReceipt(e *entity.Exit, lines []exit.ReceiptLine) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprovante de doação", true).
		WithAuthor(g.organization, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.organization, e))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(beneficiaryRows(e)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(e))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(organization string, e *entity.Exit) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(organization, "Doações"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(e.Type+" · "+e.Status, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("COMPROVANTE DE DOAÇÃO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(e.ID, props.Text{Size: 7, Align: align.Right, Top: 7}),
			text.New("Data: "+e.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func beneficiaryRows(e *entity.Exit) []core.Row {
	field := func(label, value string) core.Row {
		return row.New(6).Add(
			col.New(3).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(9).Add(text.New(nonEmpty(value, "-"), props.Text{Size: 8, Top: 1})),
		)
	}
	return []core.Row{
		field("Beneficiário:", e.Beneficiary),
		field("Destino:", e.Destination),
		field("Observações:", e.Notes),
	}
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Produto", 7, align.Left),
		h("Quantidade", 2, align.Right),
		h("Unidade", 2, align.Center),
	)
}

func tableRows(lines []exit.ReceiptLine) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(7).Add(text.New(l.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.Item.Quantity.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(nonEmpty(l.Item.UnitMeasure, "-"), props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return out
}

func footerRow(e *entity.Exit) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(e.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Recebi os itens acima descritos.", props.Text{Size: 8, Top: 8, Left: 3, Color: colorGray}),
			text.New("______________________________________", props.Text{Size: 9, Top: 24, Left: 3}),
			text.New("Assinatura do beneficiário", props.Text{Size: 7, Top: 30, Left: 3, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
