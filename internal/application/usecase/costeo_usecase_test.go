package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costealo/ofertas-api/internal/application/dto"
	"github.com/costealo/ofertas-api/internal/domain"
	"github.com/costealo/ofertas-api/internal/domain/entity"
)

type memCosteoRepo struct {
	costeos map[string]*entity.Costeo
}

func newMemCosteoRepo() *memCosteoRepo {
	return &memCosteoRepo{costeos: map[string]*entity.Costeo{}}
}

func (m *memCosteoRepo) Create(c *entity.Costeo) error { m.costeos[c.ID] = c; return nil }
func (m *memCosteoRepo) GetByID(id string) (*entity.Costeo, error) {
	return m.costeos[id], nil
}
func (m *memCosteoRepo) ListByUser(userID string, _, _ int) ([]*entity.Costeo, error) {
	var out []*entity.Costeo
	for _, c := range m.costeos {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (m *memCosteoRepo) Update(c *entity.Costeo) error { m.costeos[c.ID] = c; return nil }
func (m *memCosteoRepo) Delete(id string) error        { delete(m.costeos, id); return nil }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic("decimal inválido en test: " + s)
	}
	return d
}

// La ganancia neta se deriva en el servidor, nunca llega del cliente.
func TestCosteoCreate_DerivaGananciaNeta(t *testing.T) {
	uc := NewCosteoUseCase(newMemCosteoRepo())

	out, err := uc.Create("user-1", dto.CreateCosteoRequest{
		ProductName:          "Lámpara lunar",
		ProductCost:          dec("20000"),
		ShippingCost:         dec("12000"),
		OtherCosts:           dec("5900"),
		SuggestedPrice:       dec("49900"),
		DesiredMarginPercent: dec("40"),
	})
	require.NoError(t, err)
	// 49900 − 20000 − 12000 − 5900 = 12000
	assert.True(t, out.NetProfitPerSale.Equal(dec("12000")), "ganancia: %s", out.NetProfitPerSale)
	assert.Equal(t, "user-1", out.UserID)
}

// Entradas inválidas: nombre vacío o costos negativos.
func TestCosteoCreate_Validacion(t *testing.T) {
	uc := NewCosteoUseCase(newMemCosteoRepo())

	_, err := uc.Create("user-1", dto.CreateCosteoRequest{ProductName: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create("user-1", dto.CreateCosteoRequest{
		ProductName: "Test", ProductCost: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El update parcial recalcula la ganancia con los valores fusionados.
func TestCosteoUpdate_RecalculaGanancia(t *testing.T) {
	repo := newMemCosteoRepo()
	uc := NewCosteoUseCase(repo)

	created, err := uc.Create("user-1", dto.CreateCosteoRequest{
		ProductName:    "Lámpara lunar",
		ProductCost:    dec("20000"),
		SuggestedPrice: dec("49900"),
	})
	require.NoError(t, err)

	nuevoPrecio := dec("60000")
	out, err := uc.Update("user-1", created.ID, dto.UpdateCosteoRequest{
		SuggestedPrice: &nuevoPrecio,
	})
	require.NoError(t, err)
	assert.True(t, out.SuggestedPrice.Equal(dec("60000")))
	assert.True(t, out.NetProfitPerSale.Equal(dec("40000")), "ganancia: %s", out.NetProfitPerSale)
	assert.Equal(t, "Lámpara lunar", out.ProductName, "los campos no enviados se conservan")
}

// Propiedad: otro usuario no puede leer, editar ni borrar el costeo.
func TestCosteo_Propiedad(t *testing.T) {
	repo := newMemCosteoRepo()
	uc := NewCosteoUseCase(repo)

	created, err := uc.Create("user-1", dto.CreateCosteoRequest{
		ProductName: "Test", SuggestedPrice: dec("1000"),
	})
	require.NoError(t, err)

	_, err = uc.GetByID("user-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.Delete("user-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetByID("user-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
