package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/costealo/ofertas-api/internal/domain/pricing"
)

// StrategyType identifica la estrategia de una oferta promocional.
type StrategyType string

// Estrategias soportadas (conjunto cerrado).
const (
	StrategyDiscount StrategyType = "discount" // descuento porcentual
	StrategyBundle   StrategyType = "bundle"   // combo multi-unidad
	StrategyGift     StrategyType = "gift"     // regalo incluido
)

// Valid indica si el valor pertenece al conjunto cerrado de estrategias.
func (s StrategyType) Valid() bool {
	switch s {
	case StrategyDiscount, StrategyBundle, StrategyGift:
		return true
	}
	return false
}

// Tipos de regalo para la estrategia gift.
const (
	GiftTypeProduct   = "producto"   // unidad adicional del mismo producto
	GiftTypeAccessory = "accesorio"  // accesorio físico complementario
	GiftTypeDigital   = "digital"    // ebook, guía, garantía extendida
	GiftTypeShipping  = "envio"      // envío gratis asumido como costo
)

// MaxGiftDescriptionLen límite de la descripción del regalo.
const MaxGiftDescriptionLen = 100

// DiscountConfig parámetros y resultados de la estrategia de descuento.
// Los campos derivados (OfferPrice en adelante) nunca son autoritativos:
// se reestablecen con pricing.CalculateDiscount en cada edición.
type DiscountConfig struct {
	DiscountPercent decimal.Decimal `json:"discount_percent"`

	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	OfferPrice       decimal.Decimal `json:"offer_price"`
	NewProfit        decimal.Decimal `json:"new_profit"`
	NewMarginPercent decimal.Decimal `json:"new_margin_percent"`
	IsLowMargin      bool            `json:"is_low_margin"`
}

// ApplyResult copia los campos derivados desde el resultado del calculador.
func (c *DiscountConfig) ApplyResult(r pricing.DiscountResult) {
	c.DiscountAmount = r.DiscountAmount
	c.OfferPrice = r.OfferPrice
	c.NewProfit = r.NewProfit
	c.NewMarginPercent = r.NewMarginPercent
	c.IsLowMargin = r.IsLowMargin
}

// BundleConfig parámetros y tabla derivada de la estrategia de combos.
// PriceTable tiene exactamente Quantity filas (1..Quantity) y es siempre
// salida de pricing.CalculateBundle, nunca editada a mano.
type BundleConfig struct {
	Quantity      int             `json:"quantity"`
	MarginPercent decimal.Decimal `json:"margin_percent"`

	PriceTable []pricing.BundleRow `json:"price_table"`
}

// GiftConfig parámetros y resultados de la estrategia de regalo.
type GiftConfig struct {
	GiftType    string          `json:"gift_type"`
	GiftCost    decimal.Decimal `json:"gift_cost"`
	Description string          `json:"description"`

	PerceivedValue  decimal.Decimal `json:"perceived_value"`
	NewProfit       decimal.Decimal `json:"new_profit"`
	ProfitReduction decimal.Decimal `json:"profit_reduction"`
	ExceedsMargin   bool            `json:"exceeds_margin"`
}

// ApplyResult copia los campos derivados desde el resultado del calculador.
func (c *GiftConfig) ApplyResult(r pricing.GiftResult) {
	c.PerceivedValue = r.PerceivedValue
	c.NewProfit = r.NewProfit
	c.ProfitReduction = r.ProfitReduction
	c.ExceedsMargin = r.ExceedsMargin
}

// Oferta es una configuración promocional activada a partir de un Costeo.
// Unión discriminada: exactamente uno de Discount/Bundle/Gift es no-nil y
// coincide con Strategy. Este núcleo la crea una sola vez y no la muta.
type Oferta struct {
	ID       string
	UserID   string
	CosteoID string

	Strategy StrategyType
	Discount *DiscountConfig
	Bundle   *BundleConfig
	Gift     *GiftConfig

	EstimatedProfit        decimal.Decimal // redondeado a 2 decimales
	EstimatedMarginPercent decimal.Decimal // redondeado a 2 decimales

	Status    string // active
	CreatedAt time.Time
	UpdatedAt time.Time
}
