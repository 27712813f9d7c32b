package movement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cantina-engine/internal/application/dto"
	"github.com/jhoicas/cantina-engine/internal/domain"
	"github.com/jhoicas/cantina-engine/internal/domain/entity"
	"github.com/jhoicas/cantina-engine/internal/domain/repository"
	"github.com/jhoicas/cantina-engine/pkg/logger"
)

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
	wines  map[int64]*entity.Wine
	locked []int64
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
	f.locked = append(f.locked, id)
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

type fakeInteractions struct {
	entries []*entity.InteractionLog
}

func (f *fakeInteractions) Create(_ entity.Tenant, l *entity.InteractionLog) error {
	f.entries = append(f.entries, l)
	return nil
}
func (f *fakeInteractions) ListRecent(entity.Tenant, int) ([]*entity.InteractionLog, error) {
	return f.entries, nil
}

type fakeTxRunner struct {
	wines  *fakeWineRepo
	ledger *fakeLedger
	runs   int
}

func (f *fakeTxRunner) RunMovement(_ context.Context, fn func(repository.WineRepository, repository.MovementLogRepository) error) error {
	f.runs++
	return fn(f.wines, f.ledger)
}

func newTestUseCase(wines map[int64]*entity.Wine) (*UseCase, *fakeWineRepo, *fakeLedger, *fakeInteractions) {
	log := logger.New(logger.Config{Level: "error"})
	wineRepo := &fakeWineRepo{wines: wines}
	ledger := &fakeLedger{}
	interactions := &fakeInteractions{}
	tenant := &entity.Tenant{ID: 1, TelegramID: 42, BusinessName: "Enoteca Roma", Onboarded: true}
	uc := NewUseCase(
		&fakeTenantRepo{tenant: tenant},
		wineRepo,
		interactions,
		&fakeTxRunner{wines: wineRepo, ledger: ledger},
		log,
	)
	return uc, wineRepo, ledger, interactions
}

func TestProcess_ConsumoSimple(t *testing.T) {
	uc, wines, ledger, interactions := newTestUseCase(map[int64]*entity.Wine{
		1: {ID: 1, Name: "Barolo", Producer: "Conterno", Quantity: 10},
	})

	res, err := uc.Process(context.Background(), dto.MovementRequest{
		TelegramID: 42, Text: "ho venduto 3 bottiglie di barolo",
	})

	require.NoError(t, err)
	assert.True(t, res.Recognized)
	require.Len(t, res.Applied, 1)
	assert.Equal(t, "Barolo", res.Applied[0].WineName)
	assert.Equal(t, -3, res.Applied[0].QuantityChange)
	assert.Equal(t, 10, res.Applied[0].QuantityBefore)
	assert.Equal(t, 7, res.Applied[0].QuantityAfter)
	assert.False(t, res.Applied[0].Clamped)
	assert.Equal(t, 7, wines.wines[1].Quantity)

	require.Len(t, ledger.entries, 1)
	entry := ledger.entries[0]
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, entity.MovementConsumo, entry.MovementType)
	assert.Equal(t, "ho venduto 3 bottiglie di barolo", entry.SourceText)
	assert.Empty(t, entry.Notes)

	// user + assistant
	assert.Len(t, interactions.entries, 2)
}

func TestProcess_ConsumoRecortadoACero(t *testing.T) {
	uc, wines, ledger, _ := newTestUseCase(map[int64]*entity.Wine{
		1: {ID: 1, Name: "Fiano", Quantity: 2},
	})

	res, err := uc.Process(context.Background(), dto.MovementRequest{
		TelegramID: 42, Text: "ho consumato 5 fiano",
	})

	require.NoError(t, err)
	require.Len(t, res.Applied, 1)
	assert.Equal(t, 0, res.Applied[0].QuantityAfter)
	assert.Equal(t, -2, res.Applied[0].QuantityChange)
	assert.True(t, res.Applied[0].Clamped)
	assert.Contains(t, res.Applied[0].Warning, "quantità insufficiente")
	assert.Equal(t, 0, wines.wines[1].Quantity)

	require.Len(t, ledger.entries, 1)
	assert.Contains(t, ledger.entries[0].Notes, "richieste 5, disponibili 2")
}

func TestProcess_Rifornimento(t *testing.T) {
	uc, wines, _, _ := newTestUseCase(map[int64]*entity.Wine{
		1: {ID: 1, Name: "Prosecco", Quantity: 4},
	})

	res, err := uc.Process(context.Background(), dto.MovementRequest{
		TelegramID: 42, Text: "ho ricevuto dodici bottiglie di prosecco",
	})

	require.NoError(t, err)
	require.Len(t, res.Applied, 1)
	assert.Equal(t, 12, res.Applied[0].QuantityChange)
	assert.Equal(t, 16, wines.wines[1].Quantity)
}

func TestProcess_RettificaNegativa(t *testing.T) {
	uc, wines, ledger, _ := newTestUseCase(map[int64]*entity.Wine{
		1: {ID: 1, Name: "Chianti", Quantity: 9},
	})

	res, err := uc.Process(context.Background(), dto.MovementRequest{
		TelegramID: 42, Text: "rettifica: -4 chianti",
	})

	require.NoError(t, err)
	require.Len(t, res.Applied, 1)
	assert.Equal(t, entity.MovementRettifica, res.Applied[0].MovementType)
	assert.Equal(t, 5, wines.wines[1].Quantity)
	assert.Equal(t, entity.MovementRettifica, ledger.entries[0].MovementType)
}

func TestProcess_TextoSinMovimientos(t *testing.T) {
	uc, _, ledger, _ := newTestUseCase(map[int64]*entity.Wine{
		1: {ID: 1, Name: "Barolo", Quantity: 10},
	})

	res, err := uc.Process(context.Background(), dto.MovementRequest{
		TelegramID: 42, Text: "che vini ho in cantina?",
	})

	require.NoError(t, err)
	assert.False(t, res.Recognized)
	assert.Empty(t, res.Applied)
	assert.Empty(t, ledger.entries)
}

func TestProcess_VinoNoEncontrado(t *testing.T) {
	uc, wines, ledger, _ := newTestUseCase(map[int64]*entity.Wine{
		1: {ID: 1, Name: "Barolo", Quantity: 10},
	})

	res, err := uc.Process(context.Background(), dto.MovementRequest{
		TelegramID: 42, Text: "ho venduto 2 borgogna",
	})

	require.NoError(t, err)
	assert.True(t, res.Recognized)
	assert.Empty(t, res.Applied)
	require.Len(t, res.Unresolved, 1)
	assert.Contains(t, res.Unresolved[0], "borgogna")
	assert.Equal(t, 10, wines.wines[1].Quantity)
	assert.Empty(t, ledger.entries)
}

func TestProcess_MovimientosMultiples(t *testing.T) {
	uc, wines, ledger, _ := newTestUseCase(map[int64]*entity.Wine{
		1: {ID: 1, Name: "Etna Rosso", Quantity: 6},
		2: {ID: 2, Name: "Fiano di Avellino", Quantity: 3},
	})

	res, err := uc.Process(context.Background(), dto.MovementRequest{
		TelegramID: 42, Text: "ho consumato 1 etna e 1 fiano",
	})

	require.NoError(t, err)
	require.Len(t, res.Applied, 2)
	assert.Equal(t, 5, wines.wines[1].Quantity)
	assert.Equal(t, 2, wines.wines[2].Quantity)
	assert.Len(t, ledger.entries, 2)
	// Cada movimiento bloqueó su fila.
	assert.Equal(t, []int64{1, 2}, wines.locked)
}

func TestProcess_TenantSinOnboarding(t *testing.T) {
	log := logger.New(logger.Config{Level: "error"})
	wineRepo := &fakeWineRepo{wines: map[int64]*entity.Wine{}}
	uc := NewUseCase(
		&fakeTenantRepo{tenant: &entity.Tenant{ID: 1, TelegramID: 42}},
		wineRepo,
		&fakeInteractions{},
		&fakeTxRunner{wines: wineRepo, ledger: &fakeLedger{}},
		log,
	)

	_, err := uc.Process(context.Background(), dto.MovementRequest{
		TelegramID: 42, Text: "ho venduto 1 barolo",
	})

	assert.ErrorIs(t, err, domain.ErrNotProvisioned)
}
