package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cantina-engine/internal/application/dto"
	"github.com/jhoicas/cantina-engine/internal/application/inventory"
	"github.com/jhoicas/cantina-engine/internal/application/movement"
	"github.com/jhoicas/cantina-engine/internal/application/provision"
	"github.com/jhoicas/cantina-engine/internal/domain"
	"github.com/jhoicas/cantina-engine/internal/domain/entity"
	"github.com/jhoicas/cantina-engine/internal/domain/repository"
	apphttp "github.com/jhoicas/cantina-engine/internal/interfaces/http"
	"github.com/jhoicas/cantina-engine/pkg/config"
	"github.com/jhoicas/cantina-engine/pkg/logger"
)

// ─── Fakes de repositorios y puertos ─────────────────────────────────────────

type fakeTenantRepo struct {
	tenant *entity.Tenant
}

func (f *fakeTenantRepo) Create(*entity.Tenant) error { return nil }
func (f *fakeTenantRepo) GetByTelegramID(id int64) (*entity.Tenant, error) {
	if f.tenant == nil || f.tenant.TelegramID != id {
		return nil, domain.ErrTenantNotFound
	}
	return f.tenant, nil
}
func (f *fakeTenantRepo) CompleteOnboarding(int64, string, string, string) error { return nil }

type fakeWineRepo struct {
	wines map[int64]*entity.Wine
}

func (f *fakeWineRepo) ListByTenant(entity.Tenant) ([]*entity.Wine, error) {
	out := make([]*entity.Wine, 0, len(f.wines))
	for _, w := range f.wines {
		out = append(out, w)
	}
	return out, nil
}
func (f *fakeWineRepo) GetForUpdate(_ entity.Tenant, id int64) (*entity.Wine, error) {
	w, ok := f.wines[id]
	if !ok {
		return nil, domain.ErrWineNotFound
	}
	copied := *w
	return &copied, nil
}
func (f *fakeWineRepo) UpdateQuantity(_ entity.Tenant, id int64, qty int) error {
	f.wines[id].Quantity = qty
	return nil
}
func (f *fakeWineRepo) Upsert(entity.Tenant, *entity.Wine) error       { return nil }
func (f *fakeWineRepo) LowStock(entity.Tenant) ([]*entity.Wine, error) { return nil, nil }

type fakeLedger struct {
	entries []*entity.MovementLog
}

func (f *fakeLedger) Create(_ entity.Tenant, l *entity.MovementLog) error {
	f.entries = append(f.entries, l)
	return nil
}
func (f *fakeLedger) ListRecent(entity.Tenant, int) ([]*entity.MovementLog, error) {
	return f.entries, nil
}

type fakeInteractions struct{}

func (f *fakeInteractions) Create(entity.Tenant, *entity.InteractionLog) error { return nil }
func (f *fakeInteractions) ListRecent(entity.Tenant, int) ([]*entity.InteractionLog, error) {
	return nil, nil
}

type fakeBackups struct{}

func (f *fakeBackups) Create(entity.Tenant, *entity.InventoryBackup) error { return nil }
func (f *fakeBackups) ListRecent(entity.Tenant, int) ([]*entity.InventoryBackup, error) {
	return nil, nil
}

type fakeTxRunner struct {
	wines  *fakeWineRepo
	ledger *fakeLedger
}

func (f *fakeTxRunner) RunMovement(_ context.Context, fn func(repository.WineRepository, repository.MovementLogRepository) error) error {
	return fn(f.wines, f.ledger)
}

type fakeProvisioner struct {
	exists  bool
	dropped int
}

func (f *fakeProvisioner) Ensure(context.Context, entity.Tenant) error { return nil }
func (f *fakeProvisioner) Exists(context.Context, entity.Tenant) (bool, error) {
	return f.exists, nil
}
func (f *fakeProvisioner) Drop(context.Context, entity.Tenant) error {
	f.dropped++
	return nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func buildTestApp(t *testing.T) (*fiber.App, *fakeWineRepo, *fakeProvisioner) {
	t.Helper()
	log := logger.New(logger.Config{Level: "error"})
	tenant := &entity.Tenant{ID: 1, TelegramID: 42, BusinessName: "Enoteca Roma", Onboarded: true}
	tenantRepo := &fakeTenantRepo{tenant: tenant}
	wineRepo := &fakeWineRepo{wines: map[int64]*entity.Wine{
		1: {ID: 1, Name: "Barolo", Quantity: 10},
	}}
	ledger := &fakeLedger{}
	interactions := &fakeInteractions{}
	prov := &fakeProvisioner{exists: true}

	movementUC := movement.NewUseCase(tenantRepo, wineRepo, interactions,
		&fakeTxRunner{wines: wineRepo, ledger: ledger}, log)
	provisionUC := provision.NewUseCase(prov, tenantRepo, config.AdminConfig{TelegramIDs: []int64{1000}}, log)
	queryUC := inventory.NewQueryUseCase(tenantRepo, wineRepo, ledger, &fakeBackups{}, interactions)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		MovementUC:  movementUC,
		ProvisionUC: provisionUC,
		QueryUC:     queryUC,
	})
	return app, wineRepo, prov
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

// ─── Tests ───────────────────────────────────────────────────────────────────

func TestMovimientos_AplicaConsumo(t *testing.T) {
	app, wines, _ := buildTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/movements", dto.MovementRequest{
		TelegramID: 42,
		Text:       "ho venduto 3 bottiglie di barolo",
	}, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var result dto.MovementResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.True(t, result.Recognized)
	require.Len(t, result.Applied, 1)
	assert.Equal(t, 7, result.Applied[0].QuantityAfter)
	assert.Equal(t, 7, wines.wines[1].Quantity)
}

func TestMovimientos_TextoNoReconocido(t *testing.T) {
	app, _, _ := buildTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/movements", dto.MovementRequest{
		TelegramID: 42,
		Text:       "che vini ho in cantina?",
	}, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result dto.MovementResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.False(t, result.Recognized)
}

func TestMovimientos_SinTexto(t *testing.T) {
	app, _, _ := buildTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/movements", dto.MovementRequest{
		TelegramID: 42,
	}, nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMovimientos_TenantInexistente(t *testing.T) {
	app, _, _ := buildTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/movements", dto.MovementRequest{
		TelegramID: 99,
		Text:       "ho venduto 1 barolo",
	}, nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProvisioningStatus(t *testing.T) {
	app, _, _ := buildTestApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/v1/tenants/42/provisioning", nil, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status dto.ProvisioningStatusResponse
	require.NoError(t, json.Unmarshal(raw, &status))
	assert.True(t, status.Provisioned)
}

func TestTeardown_RequiereCabeceraAdmin(t *testing.T) {
	app, _, prov := buildTestApp(t)

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/v1/admin/tenants/42", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, prov.dropped)
}

func TestTeardown_NoAdminRechazado(t *testing.T) {
	app, _, prov := buildTestApp(t)

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/v1/admin/tenants/42", nil,
		map[string]string{"X-Admin-Telegram-ID": "555"})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, prov.dropped)
}

func TestTeardown_AdminPermitido(t *testing.T) {
	app, _, prov := buildTestApp(t)

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/v1/admin/tenants/42", nil,
		map[string]string{"X-Admin-Telegram-ID": "1000"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, prov.dropped)
}

func TestInventario_Listado(t *testing.T) {
	app, _, _ := buildTestApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/api/v1/tenants/42/inventory", nil, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, 1, body.Total)
}
