package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costealo/ofertas-api/internal/application/dto"
	"github.com/costealo/ofertas-api/internal/application/oferta"
	"github.com/costealo/ofertas-api/internal/application/usecase"
	"github.com/costealo/ofertas-api/internal/domain/entity"
	"github.com/costealo/ofertas-api/internal/domain/repository"
	apphttp "github.com/costealo/ofertas-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct{ users map[string]*entity.User }

func (m *memUserRepo) Create(u *entity.User) error { m.users[u.ID] = u; return nil }
func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	return m.users[id], nil
}
func (m *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUserRepo) Update(u *entity.User) error { m.users[u.ID] = u; return nil }

type memPlanRepo struct{ plan *entity.Plan }

func (m *memPlanRepo) GetByID(string) (*entity.Plan, error) { return m.plan, nil }
func (m *memPlanRepo) List() ([]*entity.Plan, error)        { return []*entity.Plan{m.plan}, nil }

type memCosteoRepo struct{ costeos map[string]*entity.Costeo }

func (m *memCosteoRepo) Create(c *entity.Costeo) error { m.costeos[c.ID] = c; return nil }
func (m *memCosteoRepo) GetByID(id string) (*entity.Costeo, error) {
	return m.costeos[id], nil
}
func (m *memCosteoRepo) ListByUser(string, int, int) ([]*entity.Costeo, error) { return nil, nil }
func (m *memCosteoRepo) Update(c *entity.Costeo) error                         { m.costeos[c.ID] = c; return nil }
func (m *memCosteoRepo) Delete(id string) error                                { delete(m.costeos, id); return nil }

type memOfertaRepo struct{ created []*entity.Oferta }

func (m *memOfertaRepo) Create(o *entity.Oferta) error { m.created = append(m.created, o); return nil }
func (m *memOfertaRepo) GetByID(string) (*entity.Oferta, error) { return nil, nil }
func (m *memOfertaRepo) ListByUser(string, int, int) ([]*entity.Oferta, error) {
	return m.created, nil
}
func (m *memOfertaRepo) CountByUser(string) (int, error) { return len(m.created), nil }
func (m *memOfertaRepo) Delete(string) error             { return nil }

type memTxRunner struct{ repo *memOfertaRepo }

func (m *memTxRunner) Run(_ context.Context, fn func(repository.OfertaRepository) error) error {
	return fn(m.repo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Montaje de la app
// ──────────────────────────────────────────────────────────────────────────────

type wizardTestEnv struct {
	app    *fiber.App
	repo   *memOfertaRepo
	header string
}

func newWizardTestEnv(t *testing.T, offersLimit, existing int) *wizardTestEnv {
	t.Helper()

	users := &memUserRepo{users: map[string]*entity.User{
		testUserID: {ID: testUserID, Email: "ana@example.com", Role: entity.RoleUser, PlanID: testPlanID, Status: "active"},
	}}
	plans := &memPlanRepo{plan: &entity.Plan{
		ID: testPlanID, Name: "Emprendedor",
		Limits: entity.PlanLimits{OffersLimit: offersLimit},
	}}
	costeos := &memCosteoRepo{costeos: map[string]*entity.Costeo{
		"costeo-1": {
			ID: "costeo-1", UserID: testUserID, ProductName: "Lámpara lunar",
			ProductCost:          decimal.NewFromInt(20000),
			SuggestedPrice:       decimal.NewFromInt(49900),
			NetProfitPerSale:     decimal.NewFromInt(12000),
			DesiredMarginPercent: decimal.NewFromInt(40),
		},
	}}
	repo := &memOfertaRepo{}
	for i := 0; i < existing; i++ {
		repo.created = append(repo.created, &entity.Oferta{UserID: testUserID})
	}

	sessions := oferta.NewSessionStore(0)
	userUC := usecase.NewUserUseCase(users)
	activateUC := oferta.NewActivateUseCase(&memTxRunner{repo: repo}, plans)

	app := fiber.New()
	wizard := app.Group("/api/wizard", apphttp.AuthMiddleware(testJWTSecret))
	h := apphttp.NewWizardHandler(sessions, costeos, userUC, activateUC)
	wizard.Post("/", h.Start)
	wizard.Get("/:sid", h.State)
	wizard.Put("/:sid/estrategia", h.SelectStrategy)
	wizard.Put("/:sid/costeo", h.SelectCosteo)
	wizard.Put("/:sid/parametros", h.UpdateParams)
	wizard.Post("/:sid/siguiente", h.Next)
	wizard.Post("/:sid/atras", h.Back)
	wizard.Post("/:sid/activar", h.Activate)
	wizard.Delete("/:sid", h.Cancel)

	return &wizardTestEnv{app: app, repo: repo, header: tokenForRole(t, "user")}
}

func (e *wizardTestEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", e.header)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeState(t *testing.T, resp *http.Response) dto.WizardStateResponse {
	t.Helper()
	defer resp.Body.Close()
	var state dto.WizardStateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	return state
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Flujo completo: estrategia → costeo → constructor → resumen → activar.
func TestWizardHTTP_FlujoCompletoDeDescuento(t *testing.T) {
	env := newWizardTestEnv(t, 5, 0)

	resp := env.do(t, http.MethodPost, "/api/wizard/", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	state := decodeState(t, resp)
	sid := state.SessionID
	require.NotEmpty(t, sid)
	assert.Equal(t, 1, state.Step)
	assert.False(t, state.CanAdvance, "sin estrategia no se puede avanzar")

	resp = env.do(t, http.MethodPut, "/api/wizard/"+sid+"/estrategia",
		dto.SelectStrategyRequest{Strategy: entity.StrategyDiscount})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decodeState(t, resp).CanAdvance)

	resp = env.do(t, http.MethodPost, "/api/wizard/"+sid+"/siguiente", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decodeState(t, resp).Step)

	resp = env.do(t, http.MethodPut, "/api/wizard/"+sid+"/costeo",
		dto.SelectCosteoRequest{CosteoID: "costeo-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/wizard/"+sid+"/siguiente", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state = decodeState(t, resp)
	assert.Equal(t, 3, state.Step)
	require.NotNil(t, state.Discount, "el constructor llega sembrado")
	assert.True(t, state.Discount.DiscountPercent.Equal(decimal.NewFromInt(10)))

	pct := decimal.NewFromInt(20)
	resp = env.do(t, http.MethodPut, "/api/wizard/"+sid+"/parametros",
		dto.UpdateParamsRequest{DiscountPercent: &pct})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state = decodeState(t, resp)
	assert.True(t, state.Discount.OfferPrice.Equal(decimal.NewFromInt(39920)))

	resp = env.do(t, http.MethodPost, "/api/wizard/"+sid+"/siguiente", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 4, decodeState(t, resp).Step)

	resp = env.do(t, http.MethodPost, "/api/wizard/"+sid+"/activar", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.OfertaResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, entity.StrategyDiscount, out.Strategy)
	assert.True(t, out.EstimatedProfit.Equal(decimal.NewFromInt(2020)))
	require.Len(t, env.repo.created, 1)

	// La sesión se cerró tras activar.
	resp = env.do(t, http.MethodGet, "/api/wizard/"+sid, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Cupo lleno: 409 con el límite en el cuerpo y nada persistido.
func TestWizardHTTP_CupoLlenoRetorna409ConLimite(t *testing.T) {
	env := newWizardTestEnv(t, 2, 2)

	resp := env.do(t, http.MethodPost, "/api/wizard/", nil)
	sid := decodeState(t, resp).SessionID

	for _, step := range []struct {
		method, path string
		body         any
	}{
		{http.MethodPut, "/estrategia", dto.SelectStrategyRequest{Strategy: entity.StrategyGift}},
		{http.MethodPost, "/siguiente", nil},
		{http.MethodPut, "/costeo", dto.SelectCosteoRequest{CosteoID: "costeo-1"}},
		{http.MethodPost, "/siguiente", nil},
		{http.MethodPost, "/siguiente", nil},
	} {
		resp := env.do(t, step.method, "/api/wizard/"+sid+step.path, step.body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp = env.do(t, http.MethodPost, "/api/wizard/"+sid+"/activar", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var errBody dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, "QUOTA_EXCEEDED", errBody.Code)
	require.NotNil(t, errBody.Limit)
	assert.Equal(t, 2, *errBody.Limit)
	assert.Len(t, env.repo.created, 2, "no se creó nada nuevo")

	// La sesión sigue viva para reintentar (p. ej. tras borrar una oferta).
	resp = env.do(t, http.MethodGet, "/api/wizard/"+sid, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// Avanzar sin cumplir el gating responde 400.
func TestWizardHTTP_GatingRetorna400(t *testing.T) {
	env := newWizardTestEnv(t, 5, 0)

	resp := env.do(t, http.MethodPost, "/api/wizard/", nil)
	sid := decodeState(t, resp).SessionID

	resp = env.do(t, http.MethodPost, "/api/wizard/"+sid+"/siguiente", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Un costeo inexistente responde 404 sin tocar la sesión.
func TestWizardHTTP_CosteoInexistenteRetorna404(t *testing.T) {
	env := newWizardTestEnv(t, 5, 0)

	resp := env.do(t, http.MethodPost, "/api/wizard/", nil)
	sid := decodeState(t, resp).SessionID

	resp = env.do(t, http.MethodPut, "/api/wizard/"+sid+"/estrategia",
		dto.SelectStrategyRequest{Strategy: entity.StrategyBundle})
	resp.Body.Close()
	resp = env.do(t, http.MethodPost, "/api/wizard/"+sid+"/siguiente", nil)
	resp.Body.Close()

	resp = env.do(t, http.MethodPut, "/api/wizard/"+sid+"/costeo",
		dto.SelectCosteoRequest{CosteoID: "costeo-inexistente"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Cancelar elimina la sesión.
func TestWizardHTTP_Cancelar(t *testing.T) {
	env := newWizardTestEnv(t, 5, 0)

	resp := env.do(t, http.MethodPost, "/api/wizard/", nil)
	sid := decodeState(t, resp).SessionID

	resp = env.do(t, http.MethodDelete, "/api/wizard/"+sid, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/wizard/"+sid, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
