// Package oferta implementa el motor de ofertas promocionales: el wizard de
// creación de 4 pasos, la guardia de cupo por plan y el coordinador de
// activación. El wizard es una máquina de estados explícita y en memoria;
// cada sesión de usuario posee la suya y no comparte estado mutable con otras.
package oferta

import (
	"github.com/shopspring/decimal"

	"github.com/costealo/ofertas-api/internal/domain"
	"github.com/costealo/ofertas-api/internal/domain/entity"
	"github.com/costealo/ofertas-api/internal/domain/pricing"
)

// Step paso actual del wizard. Flujo lineal con navegación hacia atrás.
type Step int

const (
	StepEstrategia  Step = 1 // elegir estrategia
	StepCosteo      Step = 2 // elegir costeo base
	StepConstructor Step = 3 // editar parámetros
	StepResumen     Step = 4 // vista previa y confirmación
)

// String nombre legible del paso (para respuestas HTTP y logs del caller).
func (s Step) String() string {
	switch s {
	case StepEstrategia:
		return "estrategia"
	case StepCosteo:
		return "costeo"
	case StepConstructor:
		return "constructor"
	case StepResumen:
		return "resumen"
	}
	return "desconocido"
}

// Semillas de parámetros al entrar al constructor (Step2 → Step3).
var (
	seedDiscountPercent = decimal.NewFromInt(10)
	seedBundleMargin    = decimal.NewFromInt(50)
)

const seedBundleQuantity = 5

// MaxBundleQuantity techo práctico de unidades por combo.
const MaxBundleQuantity = 10

// Wizard máquina de estados de creación de una oferta. No es segura para uso
// concurrente; el SessionStore serializa el acceso por sesión.
type Wizard struct {
	step     Step
	strategy entity.StrategyType
	costeo   *entity.Costeo // snapshot inmutable del costeo elegido

	discount entity.DiscountConfig
	bundle   entity.BundleConfig
	gift     entity.GiftConfig

	// Última siembra aplicada: si ni la estrategia ni el costeo cambiaron,
	// re-entrar al constructor conserva las ediciones del usuario.
	seededStrategy entity.StrategyType
	seededCosteoID string
}

// NewWizard crea un wizard en el paso 1, sin estrategia ni costeo.
func NewWizard() *Wizard {
	return &Wizard{step: StepEstrategia}
}

// Step devuelve el paso actual.
func (w *Wizard) Step() Step { return w.step }

// Strategy devuelve la estrategia seleccionada ("" si no hay).
func (w *Wizard) Strategy() entity.StrategyType { return w.strategy }

// Costeo devuelve el snapshot del costeo seleccionado (nil si no hay).
func (w *Wizard) Costeo() *entity.Costeo { return w.costeo }

// DiscountConfig copia del config de descuento actual.
func (w *Wizard) DiscountConfig() entity.DiscountConfig { return w.discount }

// BundleConfig copia del config de combo actual.
func (w *Wizard) BundleConfig() entity.BundleConfig { return w.bundle }

// GiftConfig copia del config de regalo actual.
func (w *Wizard) GiftConfig() entity.GiftConfig { return w.gift }

// SelectStrategy fija la estrategia (solo en el paso 1). Cambiarla descarta
// los parámetros editados de todas las estrategias, pero no el costeo.
func (w *Wizard) SelectStrategy(s entity.StrategyType) error {
	if w.step != StepEstrategia {
		return domain.ErrInvalidTransition
	}
	if !s.Valid() {
		return domain.ErrInvalidInput
	}
	if w.strategy != s {
		w.discount = entity.DiscountConfig{}
		w.bundle = entity.BundleConfig{}
		w.gift = entity.GiftConfig{}
		w.seededStrategy = ""
		w.seededCosteoID = ""
	}
	w.strategy = s
	return nil
}

// SelectCosteo fija el costeo base (solo en el paso 2). Se guarda una copia:
// el motor trata el costeo como snapshot inmutable durante la sesión.
func (w *Wizard) SelectCosteo(c *entity.Costeo) error {
	if w.step != StepCosteo {
		return domain.ErrInvalidTransition
	}
	if c == nil {
		return domain.ErrInvalidInput
	}
	snapshot := *c
	w.costeo = &snapshot
	return nil
}

// CanAdvance indica si el paso actual permite avanzar. Los pasos 3 y 4 son
// incondicionales: los parámetros siempre tienen defaults válidos.
func (w *Wizard) CanAdvance() bool {
	switch w.step {
	case StepEstrategia:
		return w.strategy != ""
	case StepCosteo:
		return w.costeo != nil
	default:
		return true
	}
}

// Next avanza al siguiente paso. En la transición Step2 → Step3 siembra los
// defaults de la estrategia activa contra el costeo seleccionado, de modo que
// el constructor nunca muestre valores calculados contra un costeo viejo o
// ausente. Si ni estrategia ni costeo cambiaron desde la última siembra, las
// ediciones del usuario se conservan.
func (w *Wizard) Next() error {
	if w.step >= StepResumen {
		return domain.ErrInvalidTransition
	}
	if !w.CanAdvance() {
		return domain.ErrInvalidInput
	}
	if w.step == StepCosteo {
		if w.seededStrategy != w.strategy || w.seededCosteoID != w.costeo.ID {
			w.seedDefaults()
		}
	}
	w.step++
	return nil
}

// Back retrocede un paso. Siempre permitido desde el paso 2 en adelante y
// nunca borra estado.
func (w *Wizard) Back() error {
	if w.step <= StepEstrategia {
		return domain.ErrInvalidTransition
	}
	w.step--
	return nil
}

// seedDefaults recalcula los tres configs con parámetros semilla contra el
// costeo actual: descuento 10%, combo de 5 unidades al 50%, regalo de costo 0.
func (w *Wizard) seedDefaults() {
	price := w.costeo.SuggestedPrice
	profit := w.costeo.NetProfitPerSale
	cost := w.costeo.ProductCost

	w.discount = entity.DiscountConfig{DiscountPercent: seedDiscountPercent}
	w.discount.ApplyResult(pricing.CalculateDiscount(price, profit, seedDiscountPercent))

	w.bundle = entity.BundleConfig{
		Quantity:      seedBundleQuantity,
		MarginPercent: seedBundleMargin,
		PriceTable:    pricing.CalculateBundle(price, cost, profit, seedBundleMargin, seedBundleQuantity),
	}

	w.gift = entity.GiftConfig{GiftType: entity.GiftTypeProduct, GiftCost: decimal.Zero}
	w.gift.ApplyResult(pricing.CalculateGift(price, profit, decimal.Zero))

	w.seededStrategy = w.strategy
	w.seededCosteoID = w.costeo.ID
}

// SetDiscountPercent edita el porcentaje de descuento y recalcula los campos
// derivados de forma síncrona. Rango permitido en este borde: [0, 100].
func (w *Wizard) SetDiscountPercent(pct decimal.Decimal) error {
	if err := w.editable(entity.StrategyDiscount); err != nil {
		return err
	}
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return domain.ErrInvalidInput
	}
	w.discount.DiscountPercent = pct
	w.discount.ApplyResult(pricing.CalculateDiscount(
		w.costeo.SuggestedPrice, w.costeo.NetProfitPerSale, pct,
	))
	return nil
}

// SetBundleParams edita cantidad y margen del combo y regenera la tabla.
// Cantidad en [1, MaxBundleQuantity]; margen en [0, 100].
func (w *Wizard) SetBundleParams(quantity int, marginPercent decimal.Decimal) error {
	if err := w.editable(entity.StrategyBundle); err != nil {
		return err
	}
	if quantity < 1 || quantity > MaxBundleQuantity {
		return domain.ErrInvalidInput
	}
	if marginPercent.IsNegative() || marginPercent.GreaterThan(decimal.NewFromInt(100)) {
		return domain.ErrInvalidInput
	}
	w.bundle.Quantity = quantity
	w.bundle.MarginPercent = marginPercent
	w.bundle.PriceTable = pricing.CalculateBundle(
		w.costeo.SuggestedPrice, w.costeo.ProductCost, w.costeo.NetProfitPerSale,
		marginPercent, quantity,
	)
	return nil
}

// SetGiftParams edita el regalo y recalcula los campos derivados.
// Costo ≥ 0; descripción hasta entity.MaxGiftDescriptionLen caracteres.
func (w *Wizard) SetGiftParams(giftType string, giftCost decimal.Decimal, description string) error {
	if err := w.editable(entity.StrategyGift); err != nil {
		return err
	}
	if giftCost.IsNegative() {
		return domain.ErrInvalidInput
	}
	if len([]rune(description)) > entity.MaxGiftDescriptionLen {
		return domain.ErrInvalidInput
	}
	switch giftType {
	case entity.GiftTypeProduct, entity.GiftTypeAccessory, entity.GiftTypeDigital, entity.GiftTypeShipping:
	default:
		return domain.ErrInvalidInput
	}
	w.gift.GiftType = giftType
	w.gift.GiftCost = giftCost
	w.gift.Description = description
	w.gift.ApplyResult(pricing.CalculateGift(
		w.costeo.SuggestedPrice, w.costeo.NetProfitPerSale, giftCost,
	))
	return nil
}

// editable valida que la edición corresponda al constructor y a la estrategia activa.
func (w *Wizard) editable(s entity.StrategyType) error {
	if w.step != StepConstructor {
		return domain.ErrInvalidTransition
	}
	if w.strategy != s {
		return domain.ErrInvalidInput
	}
	return nil
}
