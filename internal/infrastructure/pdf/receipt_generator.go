// Package pdf genera el recibo de pago que el cobrador comparte con el
// cliente (impresora térmica portátil o WhatsApp).
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────┐
//	│  HEADER: Empresa  │  N° Recibo + Fecha    │
//	│  ───────────────────────────────────────  │
//	│  CLIENTE: Nombre + DNI                    │
//	│  ───────────────────────────────────────  │
//	│  MONTO PAGADO (grande) + método           │
//	│  SALDO RESTANTE                            │
//	│  ───────────────────────────────────────  │
//	│  FOOTER: cobrador + leyenda               │
//	└───────────────────────────────────────────┘
package pdf

import (
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

	"github.com/tu-usuario/cobranza-api/internal/application/ledger"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 96, Blue: 57}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ledger.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa ledger.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceipt genera el recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(data ledger.ReceiptData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de pago", true).
		WithAuthor(data.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(amountRow(data))
	m.AddRows(balanceRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: empresa (izq) y número de recibo + fecha (der).
func headerRow(data ledger.ReceiptData) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(data.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+shortID(data.PaymentID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6,
			}),
			text.New(data.PaidAt, props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// customerRow: nombre y DNI del cliente.
func customerRow(data ledger.ReceiptData) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   DNI: %s", data.CustomerName, data.CustomerDNI), props.Text{
				Size: 9, Top: 7,
			}),
		),
	)
}

// amountRow: el monto pagado en grande, con el método.
func amountRow(data ledger.ReceiptData) core.Row {
	return row.New(20).Add(
		col.New(12).Add(
			text.New("MONTO PAGADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
			text.New("S/ "+data.Amount.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 18, Align: align.Center, Color: colorPrimary, Top: 7,
			}),
			text.New(data.Method, props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 16,
			}),
		),
	)
}

// balanceRow: saldo restante tras el pago.
func balanceRow(data ledger.ReceiptData) core.Row {
	label := "Saldo restante: S/ " + data.Balance.StringFixed(2)
	if data.Balance.IsZero() {
		label = "CRÉDITO CANCELADO — ¡Gracias por su puntualidad!"
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 3,
			}),
		),
	)
}

// footerRow: cobrador y leyenda.
func footerRow(data ledger.ReceiptData) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Cobrador: "+data.CollectorName, props.Text{
				Size: 8, Color: colorGray, Top: 2,
			}),
			text.New("Este recibo es el único comprobante válido de su pago. Consérvelo.", props.Text{
				Size: 6.5, Color: colorGray, Top: 8,
			}),
		),
	)
}

// shortID recorta un UUID a su primer bloque para el número visible del recibo.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
