// Package pdf implementa la generación de la factura de reparación en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del taller + NIT  │  N° Orden + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TALLER: Dirección / Tel / Email                             │
//	│  VEHÍCULO: Placa, marca/modelo/año + dueño                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA REPUESTOS: Cant | Descripción | P.Unit | Subtotal     │
//	│  TABLA SERVICIOS: Descripción | Precio                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Repuestos / Servicios / Mano de obra / TOTAL       │
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

	"github.com/tallerpro/taller-api/internal/application/reparation"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	appcfg "github.com/tallerpro/taller-api/pkg/config"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa reparation.InvoicePDFGenerator usando Maroto v2.
// Los datos del taller (emisor) vienen de la configuración.
type MarotoPDFGenerator struct {
	garage appcfg.GarageConfig
}

var _ reparation.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(garage appcfg.GarageConfig) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{garage: garage}
}

// GenerateReparationPDF genera el PDF de la reparación y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReparationPDF(
	_ context.Context,
	rep *entity.Reparation,
	vehicle *entity.Vehicle,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de Reparación", true).
		WithAuthor(g.garage.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.garageRow())
	m.AddRows(vehicleRow(vehicle))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Repuestos
	if len(rep.Items) > 0 {
		m.AddRows(itemsHeaderRow())
		for _, r := range itemDetailRows(rep.Items) {
			m.AddRows(r)
		}
	}

	// Servicios
	if len(rep.Services) > 0 {
		m.AddRows(servicesHeaderRow())
		for _, r := range serviceDetailRows(rep.Services) {
			m.AddRows(r)
		}
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rep))

	// Descripción del trabajo
	m.AddRows(line.NewRow(3))
	m.AddRows(descriptionRows(rep)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del taller + NIT (izq) y N° de orden + fecha (der).
func (g *MarotoPDFGenerator) headerRow(rep *entity.Reparation) core.Row {
	orden := rep.ID
	if len(orden) > 8 {
		orden = orden[:8]
	}
	fecha := rep.StartDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.garage.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+g.garage.NIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE REPARACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("ORDEN "+orden, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// garageRow: datos de contacto del taller.
func (g *MarotoPDFGenerator) garageRow() core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL TALLER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(g.garage.Address, "—"),
				nonEmpty(g.garage.Phone, "—"),
				nonEmpty(g.garage.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// vehicleRow: vehículo atendido y datos del dueño.
func vehicleRow(v *entity.Vehicle) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("VEHÍCULO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s %s %d — Placa %s",
				v.Make, v.Model, v.Year, v.LicensePlate,
			), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Propietario: %s   |   Tel: %s   |   Email: %s",
				v.Owner.Name,
				nonEmpty(v.Owner.Phone, "—"),
				nonEmpty(v.Owner.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// itemsHeaderRow: cabecera de la tabla de repuestos.
func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Repuesto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// itemDetailRows: una fila por línea de repuesto, a precio de la foto.
func itemDetailRows(items []entity.ReparationItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		name := it.ItemName
		if name == "" {
			name = it.ItemID
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(it.SellPrice.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(it.TotalPrice.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// servicesHeaderRow: cabecera de la tabla de servicios.
func servicesHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Servicio", 9, align.Left),
		h("Precio", 3, align.Right),
	)
}

// serviceDetailRows: una fila por servicio, a precio de la foto.
func serviceDetailRows(services []entity.ReparationService) []core.Row {
	result := make([]core.Row, 0, len(services))
	for _, s := range services {
		name := s.ServiceName
		if name == "" {
			name = s.ServiceID
		}
		result = append(result, row.New(7).Add(
			col.New(9).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(s.Price.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(rep *entity.Reparation) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(32).Add(
		col.New(3),
		col.New(3).Add(
			label("Repuestos:"),
			label("Servicios:"),
			label("Mano de obra:"),
			grandLabel("TOTAL A PAGAR:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(rep.PartsCost.StringFixed(0))),
			value("$"+formatMoney(rep.ServicesCost.StringFixed(0))),
			value("$"+formatMoney(rep.LaborCost.StringFixed(0))),
			grandValue("$"+formatMoney(rep.TotalCost.StringFixed(0))),
		),
		col.New(3),
	)
}

// descriptionRows: descripción del trabajo y técnico responsable.
func descriptionRows(rep *entity.Reparation) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("DESCRIPCIÓN DEL TRABAJO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(rep.Description, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		)),
	}
	if rep.Technician != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Técnico responsable: "+rep.Technician, props.Text{
				Size: 8, Color: colorGray, Top: 1, Left: 1,
			}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
