// Package xmlfeed serializa las ofertas activas de un usuario como un feed
// XML consumible por catálogos externos (tiendas Shopify/WooCommerce que
// importan promociones por archivo).
package xmlfeed

import (
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/costealo/ofertas-api/internal/domain/entity"
)

// Exporter construye el feed. Sin estado; se comparte entre requests.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Export serializa las ofertas con su costeo asociado. costeos mapea
// costeo_id → costeo; las ofertas cuyo costeo no esté en el mapa se emiten
// sin el bloque <producto>.
func (e *Exporter) Export(ofertas []*entity.Oferta, costeos map[string]*entity.Costeo) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	feed := doc.CreateElement("ofertas")
	feed.CreateAttr("generado", time.Now().UTC().Format(time.RFC3339))
	feed.CreateAttr("total", fmt.Sprintf("%d", len(ofertas)))

	for _, o := range ofertas {
		el := feed.CreateElement("oferta")
		el.CreateAttr("id", o.ID)
		el.CreateAttr("estrategia", string(o.Strategy))
		el.CreateElement("estado").SetText(o.Status)
		el.CreateElement("creada").SetText(o.CreatedAt.UTC().Format(time.RFC3339))
		el.CreateElement("ganancia_estimada").SetText(o.EstimatedProfit.StringFixed(2))
		el.CreateElement("margen_estimado").SetText(o.EstimatedMarginPercent.StringFixed(2))

		if c, ok := costeos[o.CosteoID]; ok {
			prod := el.CreateElement("producto")
			prod.CreateAttr("costeo_id", c.ID)
			prod.CreateElement("nombre").SetText(c.ProductName)
			prod.CreateElement("precio_sugerido").SetText(c.SuggestedPrice.StringFixed(2))
		}

		switch o.Strategy {
		case entity.StrategyDiscount:
			d := el.CreateElement("descuento")
			d.CreateElement("porcentaje").SetText(o.Discount.DiscountPercent.StringFixed(2))
			d.CreateElement("precio_oferta").SetText(o.Discount.OfferPrice.StringFixed(2))
		case entity.StrategyBundle:
			b := el.CreateElement("combo")
			b.CreateAttr("cantidad_maxima", fmt.Sprintf("%d", o.Bundle.Quantity))
			for _, r := range o.Bundle.PriceTable {
				fila := b.CreateElement("fila")
				fila.CreateAttr("cantidad", fmt.Sprintf("%d", r.Quantity))
				fila.CreateElement("precio_total").SetText(r.TotalPrice.StringFixed(2))
				fila.CreateElement("precio_unidad").SetText(r.PricePerUnit.StringFixed(2))
			}
		case entity.StrategyGift:
			g := el.CreateElement("regalo")
			g.CreateAttr("tipo", o.Gift.GiftType)
			g.CreateElement("descripcion").SetText(o.Gift.Description)
			g.CreateElement("valor_percibido").SetText(o.Gift.PerceivedValue.StringFixed(2))
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlfeed: serializar: %w", err)
	}
	return out, nil
}
