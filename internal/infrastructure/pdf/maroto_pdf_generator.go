// Package pdf implementa el "Resumen de Oferta": una página A4 con los
// parámetros de la estrategia, los números del costeo base y la proyección
// de ganancia, pensada para que el emprendedor la comparta con su proveedor
// o su equipo de pauta.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Costealo + nombre del producto │ Estrategia + Fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COSTEO BASE: precio sugerido / costos / ganancia neta       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ESTRATEGIA: parámetros + derivados (o tabla de combos)      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROYECCIÓN: ganancia estimada / margen estimado             │
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

	appoferta "github.com/costealo/ofertas-api/internal/application/oferta"
	"github.com/costealo/ofertas-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 122, Blue: 87}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 50, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appoferta.OfertaPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa oferta.OfertaPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateOfertaPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOfertaPDF(
	_ context.Context,
	oferta *entity.Oferta,
	costeo *entity.Costeo,
	owner *entity.User,
) ([]byte, error) {
	author := "Costealo"
	if owner != nil {
		author = nonEmpty(owner.Name, author)
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de Oferta", true).
		WithAuthor(author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(oferta, costeo))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(costeoRows(costeo)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(strategyRows(oferta)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(projectionRow(oferta))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: marca + producto (izq) y estrategia + fecha (der).
func headerRow(oferta *entity.Oferta, costeo *entity.Costeo) core.Row {
	fecha := oferta.CreatedAt.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Costealo — Resumen de Oferta", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(costeo.ProductName, props.Text{
				Size: 10, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(strategyLabel(oferta.Strategy), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 2,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// costeoRows: los números base sobre los que se construyó la oferta.
func costeoRows(c *entity.Costeo) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("COSTEO BASE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(12).Add(
			labeledCol("Precio sugerido", money(c.SuggestedPrice.StringFixed(0))),
			labeledCol("Costo del producto", money(c.ProductCost.StringFixed(0))),
			labeledCol("Envío + otros", money(c.ShippingCost.Add(c.OtherCosts).StringFixed(0))),
			labeledCol("Ganancia neta/venta", money(c.NetProfitPerSale.StringFixed(0))),
		),
	}
}

// strategyRows: parámetros y derivados de la estrategia activa.
func strategyRows(o *entity.Oferta) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("ESTRATEGIA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	switch o.Strategy {
	case entity.StrategyDiscount:
		d := o.Discount
		rows = append(rows, row.New(12).Add(
			labeledCol("Descuento", d.DiscountPercent.StringFixed(0)+"%"),
			labeledCol("Precio de oferta", money(d.OfferPrice.StringFixed(0))),
			labeledCol("Nueva ganancia", money(d.NewProfit.StringFixed(0))),
			labeledCol("Nuevo margen", d.NewMarginPercent.StringFixed(2)+"%"),
		))
		if d.IsLowMargin {
			rows = append(rows, alertRow("Margen por debajo del 5%: revisa el precio antes de publicar."))
		}
	case entity.StrategyBundle:
		b := o.Bundle
		rows = append(rows, row.New(10).Add(
			labeledCol("Cantidad máxima", fmt.Sprintf("%d unidades", b.Quantity)),
			labeledCol("Margen adicional", b.MarginPercent.StringFixed(0)+"%"),
		))
		rows = append(rows, bundleTableHeader())
		for _, r := range b.PriceTable {
			rows = append(rows, row.New(6).Add(
				col.New(2).Add(text.New(fmt.Sprintf("%d", r.Quantity),
					props.Text{Size: 8, Align: align.Center, Top: 1})),
				col.New(3).Add(text.New(money(r.TotalPrice.StringFixed(0)),
					props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
				col.New(3).Add(text.New(money(r.PricePerUnit.StringFixed(0)),
					props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
				col.New(2).Add(text.New(money(r.SavingsPerUnit.StringFixed(0)),
					props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
				col.New(2).Add(text.New(money(r.TotalProfit.StringFixed(0)),
					props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			))
		}
	case entity.StrategyGift:
		g := o.Gift
		rows = append(rows, row.New(12).Add(
			labeledCol("Tipo de regalo", g.GiftType),
			labeledCol("Costo del regalo", money(g.GiftCost.StringFixed(0))),
			labeledCol("Valor percibido", money(g.PerceivedValue.StringFixed(0))),
			labeledCol("Nueva ganancia", money(g.NewProfit.StringFixed(0))),
		))
		if g.Description != "" {
			rows = append(rows, row.New(6).Add(col.New(12).Add(
				text.New("Regalo: "+g.Description, props.Text{Size: 8, Color: colorGray, Top: 1}),
			)))
		}
		if g.ExceedsMargin {
			rows = append(rows, alertRow("El costo del regalo supera la ganancia por venta: la oferta pierde dinero."))
		}
	}
	return rows
}

// bundleTableHeader: cabecera de la tabla de precios por cantidad.
func bundleTableHeader() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Precio total", 3, align.Right),
		h("Precio/unidad", 3, align.Right),
		h("Ahorro", 2, align.Right),
		h("Ganancia", 2, align.Right),
	)
}

// projectionRow: los dos escalares que resumen la oferta activada.
func projectionRow(o *entity.Oferta) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("Ganancia estimada por venta", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorGray, Top: 2,
			}),
			text.New(money(o.EstimatedProfit.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 8,
			}),
		),
		col.New(6).Add(
			text.New("Margen estimado", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorGray, Top: 2, Align: align.Right,
			}),
			text.New(o.EstimatedMarginPercent.StringFixed(2)+"%", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 8, Align: align.Right,
			}),
		),
	)
}

// alertRow: advertencia en rojo bajo la sección de estrategia.
func alertRow(msg string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New("⚠ "+msg, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorAlert, Top: 1,
		}),
	))
}

// labeledCol: etiqueta gris arriba, valor en negrita abajo.
func labeledCol(label, value string) core.Col {
	return col.New(3).Add(
		text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
		text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// strategyLabel: nombre legible de la estrategia para el header del PDF.
func strategyLabel(s entity.StrategyType) string {
	switch s {
	case entity.StrategyDiscount:
		return "Descuento"
	case entity.StrategyBundle:
		return "Combo"
	case entity.StrategyGift:
		return "Regalo"
	}
	return string(s)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func money(s string) string {
	return "$" + formatMoney(s)
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
