package xmlfeed

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costealo/ofertas-api/internal/domain/entity"
	"github.com/costealo/ofertas-api/internal/domain/pricing"
)

func TestExport_FeedConLasTresEstrategias(t *testing.T) {
	costeo := &entity.Costeo{
		ID:             "costeo-1",
		ProductName:    "Lámpara lunar",
		SuggestedPrice: decimal.NewFromInt(49900),
	}
	ofertas := []*entity.Oferta{
		{
			ID: "of-1", CosteoID: "costeo-1", Strategy: entity.StrategyDiscount, Status: "active",
			Discount: &entity.DiscountConfig{
				DiscountPercent: decimal.NewFromInt(20),
				OfferPrice:      decimal.NewFromInt(39920),
			},
		},
		{
			ID: "of-2", CosteoID: "costeo-1", Strategy: entity.StrategyBundle, Status: "active",
			Bundle: &entity.BundleConfig{
				Quantity: 2,
				PriceTable: []pricing.BundleRow{
					{Quantity: 1, TotalPrice: decimal.NewFromInt(49900), PricePerUnit: decimal.NewFromInt(49900)},
					{Quantity: 2, TotalPrice: decimal.NewFromInt(75900), PricePerUnit: decimal.NewFromInt(37950)},
				},
			},
		},
		{
			ID: "of-3", CosteoID: "costeo-1", Strategy: entity.StrategyGift, Status: "active",
			Gift: &entity.GiftConfig{
				GiftType:       entity.GiftTypeAccessory,
				Description:    "Cargador extra",
				PerceivedValue: decimal.NewFromInt(51900),
			},
		},
	}

	out, err := NewExporter().Export(ofertas, map[string]*entity.Costeo{"costeo-1": costeo})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.SelectElement("ofertas")
	require.NotNil(t, root)
	assert.Equal(t, "3", root.SelectAttrValue("total", ""))
	require.Len(t, root.SelectElements("oferta"), 3)

	// El descuento lleva su precio de oferta.
	descuento := root.SelectElements("oferta")[0]
	assert.Equal(t, "discount", descuento.SelectAttrValue("estrategia", ""))
	assert.Equal(t, "39920.00", descuento.SelectElement("descuento").SelectElement("precio_oferta").Text())
	assert.Equal(t, "Lámpara lunar", descuento.SelectElement("producto").SelectElement("nombre").Text())

	// El combo emite una fila por cantidad.
	combo := root.SelectElements("oferta")[1]
	assert.Len(t, combo.SelectElement("combo").SelectElements("fila"), 2)

	// El regalo lleva tipo y descripción.
	regalo := root.SelectElements("oferta")[2]
	assert.Equal(t, "accesorio", regalo.SelectElement("regalo").SelectAttrValue("tipo", ""))
	assert.Equal(t, "Cargador extra", regalo.SelectElement("regalo").SelectElement("descripcion").Text())
}

// Oferta con costeo desconocido: se emite sin el bloque <producto>.
func TestExport_CosteoAusente(t *testing.T) {
	ofertas := []*entity.Oferta{
		{
			ID: "of-1", CosteoID: "perdido", Strategy: entity.StrategyDiscount, Status: "active",
			Discount: &entity.DiscountConfig{},
		},
	}
	out, err := NewExporter().Export(ofertas, map[string]*entity.Costeo{})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	oferta := doc.SelectElement("ofertas").SelectElement("oferta")
	require.NotNil(t, oferta)
	assert.Nil(t, oferta.SelectElement("producto"))
}
