package classifying

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/cache"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/database/postgres"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/repository/mocks"
	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
	"github.com/vfg2006/restaurant-inventory-api/pkg/apiErrors"
	"github.com/vfg2006/restaurant-inventory-api/pkg/clock"
	"go.uber.org/mock/gomock"
)

// memoryClassifications guarda os resultados em memória com a mesma chave única da tabela
type memoryClassifications struct {
	rows map[string]*domain.ClassificationResult
}

func newMemoryClassifications() *memoryClassifications {
	return &memoryClassifications{rows: make(map[string]*domain.ClassificationResult)}
}

func resultKey(businessID, itemID string, period domain.Period) string {
	return businessID + "|" + itemID + "|" + period.StartDate() + "|" + period.EndDate()
}

func (m *memoryClassifications) ExactCategories(_ context.Context, _ postgres.Queryer, businessID string, period domain.Period) (domain.CategoryMap, error) {
	out := make(domain.CategoryMap)
	for _, r := range m.rows {
		if r.BusinessID == businessID && r.PeriodStart.Equal(period.Start) && r.PeriodEnd.Equal(period.End) {
			out[r.ItemID] = r.Category
		}
	}
	return out, nil
}

func (m *memoryClassifications) LatestCategories(_ context.Context, _ postgres.Queryer, businessID string) (domain.CategoryMap, error) {
	latest := make(map[string]*domain.ClassificationResult)
	for _, r := range m.rows {
		if r.BusinessID != businessID {
			continue
		}
		if cur, ok := latest[r.ItemID]; !ok || r.PeriodEnd.After(cur.PeriodEnd) {
			latest[r.ItemID] = r
		}
	}
	out := make(domain.CategoryMap, len(latest))
	for id, r := range latest {
		out[id] = r.Category
	}
	return out, nil
}

func (m *memoryClassifications) UpsertMany(ctx context.Context, q postgres.Queryer, results []*domain.ClassificationResult) error {
	for _, r := range results {
		if err := m.Upsert(ctx, q, r); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryClassifications) Upsert(_ context.Context, _ postgres.Queryer, result *domain.ClassificationResult) error {
	key := resultKey(result.BusinessID, result.ItemID, domain.Period{Start: result.PeriodStart, End: result.PeriodEnd})
	copied := *result
	if existing, ok := m.rows[key]; ok && existing.CreatedAt.Before(copied.CreatedAt) {
		copied.CreatedAt = existing.CreatedAt
	}
	m.rows[key] = &copied
	return nil
}

func (m *memoryClassifications) Delete(_ context.Context, _ postgres.Queryer, businessID, itemID string, period domain.Period) (int64, error) {
	key := resultKey(businessID, itemID, period)
	if _, ok := m.rows[key]; !ok {
		return 0, nil
	}
	delete(m.rows, key)
	return 1, nil
}

func (m *memoryClassifications) History(_ context.Context, _ postgres.Queryer, filter domain.HistoryFilter) ([]*domain.ClassificationResult, error) {
	out := make([]*domain.ClassificationResult, 0)
	for _, r := range m.rows {
		if r.BusinessID == filter.BusinessID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryClassifications) LatestResults(ctx context.Context, q postgres.Queryer, businessID string) ([]*domain.ClassificationResult, error) {
	return m.History(ctx, q, domain.HistoryFilter{BusinessID: businessID})
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.InvalidationEvent
	err    error
}

func (n *recordingNotifier) NotifyAsync(_ context.Context, event domain.InvalidationEvent) <-chan error {
	n.mu.Lock()
	n.events = append(n.events, event)
	n.mu.Unlock()

	result := make(chan error, 1)
	result <- n.err
	close(result)
	return result
}

func (n *recordingNotifier) recorded() []domain.InvalidationEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.InvalidationEvent(nil), n.events...)
}

func categoryOf(t *testing.T, payload []byte, itemID string) domain.Category {
	t.Helper()
	for _, item := range decodeReport(t, payload).Items {
		if item.ItemID == itemID {
			return item.Category
		}
	}
	t.Fatalf("item %s ausente do relatório", itemID)
	return ""
}

func TestOverride_PromoteAndResetRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	facts := mocks.NewMockConsumptionFactRepository(ctrl)
	classifications := newMemoryClassifications()
	clk := clock.NewManual(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC))
	store := cache.NewMemoryStore(5000*time.Millisecond, clk)
	notifier := &recordingNotifier{}

	service := NewService(fakeTransactor{}, facts, classifications, store, clk, 14)
	overrides := NewOverrideManager(fakeTransactor{}, facts, classifications, store, notifier, clk, 14)

	ctx := context.Background()
	window, err := service.ResolvePeriod(nil, nil)
	require.NoError(t, err)

	// três cálculos completos e o snapshot da promoção; o reset não agrega
	expectFacts(facts, 4)
	facts.EXPECT().ItemBelongsToBusiness(gomock.Any(), gomock.Any(), "biz-1", "id3").Return(true, nil).Times(2)

	initial, err := service.ComputeFullPeriod(ctx, "biz-1", window)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryC, categoryOf(t, initial.Payload, "id3"))

	promoted, err := overrides.Promote(ctx, "biz-1", "id3")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryA, promoted.Category)
	assert.Equal(t, 50.0, promoted.TotalConsumptionValue, "snapshot do valor apenas do item")
	assert.Equal(t, window.Start, promoted.PeriodStart)

	afterPromote, err := service.ComputeFullPeriod(ctx, "biz-1", window)
	require.NoError(t, err)
	assert.Equal(t, domain.CacheMiss, afterPromote.Status, "a promoção invalida o cache do negócio")
	assert.Equal(t, domain.CategoryA, categoryOf(t, afterPromote.Payload, "id3"))

	reset, err := overrides.Reset(ctx, "biz-1", "id3")
	require.NoError(t, err)
	assert.True(t, reset.Deleted)

	afterReset, err := service.ComputeFullPeriod(ctx, "biz-1", window)
	require.NoError(t, err)
	assert.Equal(t, domain.CacheMiss, afterReset.Status)
	assert.NotEqual(t, domain.CategoryA, categoryOf(t, afterReset.Payload, "id3"))

	events := notifier.recorded()
	require.Len(t, events, 2)
	assert.Equal(t, "id3", events[0].ItemID)
	require.NotNil(t, events[0].NewCategory)
	assert.Equal(t, domain.CategoryA, *events[0].NewCategory)
	assert.Nil(t, events[1].NewCategory)
}

func TestOverride_EvictsEveryWindowOfBusiness(t *testing.T) {
	ctrl := gomock.NewController(t)
	facts := mocks.NewMockConsumptionFactRepository(ctrl)
	clk := clock.NewManual(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC))
	store := cache.NewMemoryStore(time.Minute, clk)
	notifier := &recordingNotifier{err: errors.New("barramento fora do ar")}
	overrides := NewOverrideManager(fakeTransactor{}, facts, newMemoryClassifications(), store, notifier, clk, 14)

	ctx := context.Background()
	windows := []domain.Period{
		domain.TrailingWindow(clk.Now(), 14),
		domain.TrailingWindow(clk.Now(), 30),
	}
	for _, w := range windows {
		require.NoError(t, store.Set(ctx, cache.NewKey("biz-1", w), []byte("{}")))
	}
	require.NoError(t, store.Set(ctx, cache.NewKey("biz-2", windows[0]), []byte("{}")))

	facts.EXPECT().ItemBelongsToBusiness(gomock.Any(), gomock.Any(), "biz-1", "id1").Return(true, nil)
	facts.EXPECT().ListItems(gomock.Any(), gomock.Any(), gomock.Any()).Return([]*domain.InventoryItemFact{}, nil)

	_, err := overrides.Promote(ctx, "biz-1", "id1")
	require.NoError(t, err, "falha do barramento não pode falhar a requisição")

	assert.Equal(t, 1, store.Len(), "somente o negócio de outro tenant permanece")
	entry, _ := store.Get(ctx, cache.NewKey("biz-2", windows[0]))
	assert.NotNil(t, entry)
}

func TestOverride_SetManualCategory(t *testing.T) {
	tests := []struct {
		name        string
		newCategory string
		setup       func(facts *mocks.MockConsumptionFactRepository)
		wantErr     error
		wantCode    string
	}{
		{
			name:        "Categoria B deve ser rejeitada",
			newCategory: "B",
			setup:       func(*mocks.MockConsumptionFactRepository) {},
			wantErr:     ErrCategoryNotAllowed,
			wantCode:    apiErrors.ErrInvalidCategory,
		},
		{
			name:        "Categoria C deve ser rejeitada",
			newCategory: "C",
			setup:       func(*mocks.MockConsumptionFactRepository) {},
			wantErr:     ErrCategoryNotAllowed,
			wantCode:    apiErrors.ErrInvalidCategory,
		},
		{
			name:        "Valor arbitrário deve ser rejeitado",
			newCategory: "Z",
			setup:       func(*mocks.MockConsumptionFactRepository) {},
			wantErr:     domain.ErrInvalidCategory,
			wantCode:    apiErrors.ErrInvalidCategory,
		},
		{
			name:        "Item de outro negócio deve retornar não encontrado",
			newCategory: "A",
			setup: func(facts *mocks.MockConsumptionFactRepository) {
				facts.EXPECT().ItemBelongsToBusiness(gomock.Any(), gomock.Any(), "biz-1", "id1").Return(false, nil)
			},
			wantErr:  ErrItemNotFound,
			wantCode: apiErrors.ErrItemNotFound,
		},
		{
			name:        "Categoria A em minúscula deve ser rejeitada",
			newCategory: "a",
			setup:       func(*mocks.MockConsumptionFactRepository) {},
			wantErr:     domain.ErrInvalidCategory,
			wantCode:    apiErrors.ErrInvalidCategory,
		},
		{
			name:        "Categoria A com espaços deve ser rejeitada",
			newCategory: " A ",
			setup:       func(*mocks.MockConsumptionFactRepository) {},
			wantErr:     domain.ErrInvalidCategory,
			wantCode:    apiErrors.ErrInvalidCategory,
		},
		{
			name:        "Categoria A exata é aceita",
			newCategory: "A",
			setup: func(facts *mocks.MockConsumptionFactRepository) {
				facts.EXPECT().ItemBelongsToBusiness(gomock.Any(), gomock.Any(), "biz-1", "id1").Return(true, nil)
				facts.EXPECT().ListItems(gomock.Any(), gomock.Any(), gomock.Any()).Return([]*domain.InventoryItemFact{}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			facts := mocks.NewMockConsumptionFactRepository(ctrl)
			tt.setup(facts)

			clk := clock.NewManual(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC))
			notifier := &recordingNotifier{}
			overrides := NewOverrideManager(fakeTransactor{}, facts, newMemoryClassifications(), cache.NewMemoryStore(time.Second, clk), notifier, clk, 14)

			result, err := overrides.SetManualCategory(context.Background(), "biz-1", "id1", tt.newCategory)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				var classErr *ClassificationError
				require.ErrorAs(t, err, &classErr)
				assert.Equal(t, tt.wantCode, classErr.Code)
				assert.Empty(t, notifier.recorded(), "rejeição não publica invalidação")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.CategoryA, result.Category)
			assert.Len(t, notifier.recorded(), 1)
		})
	}
}

func TestOverride_ResetWithoutRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	facts := mocks.NewMockConsumptionFactRepository(ctrl)
	facts.EXPECT().ItemBelongsToBusiness(gomock.Any(), gomock.Any(), "biz-1", "id1").Return(true, nil)

	clk := clock.NewManual(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC))
	overrides := NewOverrideManager(fakeTransactor{}, facts, newMemoryClassifications(), cache.NewMemoryStore(time.Second, clk), &recordingNotifier{}, clk, 14)

	result, err := overrides.Reset(context.Background(), "biz-1", "id1")
	require.NoError(t, err)
	assert.False(t, result.Deleted)
	assert.Equal(t, "2024-01-02", result.PeriodStart)
	assert.Equal(t, "2024-01-15", result.PeriodEnd)
}

func TestOverride_TransactionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	facts := mocks.NewMockConsumptionFactRepository(ctrl)
	clk := clock.NewManual(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC))
	notifier := &recordingNotifier{}
	overrides := NewOverrideManager(fakeTransactor{err: errors.New("deadlock")}, facts, newMemoryClassifications(), cache.NewMemoryStore(time.Second, clk), notifier, clk, 14)

	_, err := overrides.Promote(context.Background(), "biz-1", "id1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverrideFailed)
	assert.Empty(t, notifier.recorded())
}
