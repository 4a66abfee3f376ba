package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testWindow() domain.Period {
	return domain.Period{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestClassificationRepository_UpsertMany(t *testing.T) {
	window := testWindow()
	createdAt := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	insertPrefix := regexp.QuoteMeta("INSERT INTO abc_classification_results " +
		"(id,business_id,item_id,period_start,period_end,total_consumption_value,abc_category,created_at) " +
		"VALUES ($1,$2,$3,$4,$5,$6,$7,$8)")
	upsertSuffix := regexp.QuoteMeta("ON CONFLICT (business_id, item_id, period_start, period_end) DO UPDATE SET") +
		`\s+` + regexp.QuoteMeta("total_consumption_value = EXCLUDED.total_consumption_value,") +
		`\s+` + regexp.QuoteMeta("abc_category = EXCLUDED.abc_category,") +
		`\s+` + regexp.QuoteMeta("created_at = LEAST(abc_classification_results.created_at, EXCLUDED.created_at)")

	tests := []struct {
		name      string
		results   []*domain.ClassificationResult
		setup     func(mock sqlmock.Sqlmock)
		wantErr   error
		wantAnyID bool
	}{
		{
			name: "Upsert preserva o created_at mais antigo",
			results: []*domain.ClassificationResult{{
				ID: "r1", BusinessID: "biz-1", ItemID: "item-1",
				PeriodStart: window.Start, PeriodEnd: window.End,
				TotalConsumptionValue: 800, Category: domain.CategoryA, CreatedAt: createdAt,
			}},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(insertPrefix+`\s+`+upsertSuffix).
					WithArgs("r1", "biz-1", "item-1", "2024-01-01", "2024-01-14", 800.0, "A", createdAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "Várias linhas num único comando",
			results: []*domain.ClassificationResult{
				{ID: "r1", BusinessID: "biz-1", ItemID: "item-1", PeriodStart: window.Start, PeriodEnd: window.End, TotalConsumptionValue: 800, Category: domain.CategoryA, CreatedAt: createdAt},
				{ID: "r2", BusinessID: "biz-1", ItemID: "item-2", PeriodStart: window.Start, PeriodEnd: window.End, TotalConsumptionValue: 200, Category: domain.CategoryC, CreatedAt: createdAt},
			},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("VALUES ($1,$2,$3,$4,$5,$6,$7,$8),($9,$10,$11,$12,$13,$14,$15,$16)")+`\s+`+upsertSuffix).
					WithArgs(
						"r1", "biz-1", "item-1", "2024-01-01", "2024-01-14", 800.0, "A", createdAt,
						"r2", "biz-1", "item-2", "2024-01-01", "2024-01-14", 200.0, "C", createdAt,
					).
					WillReturnResult(sqlmock.NewResult(0, 2))
			},
		},
		{
			name: "Sem id gera um novo",
			results: []*domain.ClassificationResult{{
				BusinessID: "biz-1", ItemID: "item-1",
				PeriodStart: window.Start, PeriodEnd: window.End,
				TotalConsumptionValue: 10, Category: domain.CategoryB, CreatedAt: createdAt,
			}},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(insertPrefix).
					WithArgs(sqlmock.AnyArg(), "biz-1", "item-1", "2024-01-01", "2024-01-14", 10.0, "B", createdAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantAnyID: true,
		},
		{
			name: "Categoria inválida não chega ao banco",
			results: []*domain.ClassificationResult{{
				ID: "r1", BusinessID: "biz-1", ItemID: "item-1",
				PeriodStart: window.Start, PeriodEnd: window.End, Category: domain.Category("D"),
			}},
			setup:   func(sqlmock.Sqlmock) {},
			wantErr: domain.ErrInvalidCategory,
		},
		{
			name:    "Lista vazia não executa nada",
			results: nil,
			setup:   func(sqlmock.Sqlmock) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setup(mock)

			err := NewClassificationRepository().UpsertMany(context.Background(), db, tt.results)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			if tt.wantAnyID {
				assert.NotEmpty(t, tt.results[0].ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestClassificationRepository_LatestCategories(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT DISTINCT ON (acr.item_id) acr.item_id, acr.abc_category " +
			"FROM abc_classification_results acr WHERE acr.business_id = $1 " +
			"ORDER BY acr.item_id, acr.period_end DESC, acr.created_at DESC",
	)).
		WithArgs("biz-1").
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "abc_category"}).
			AddRow("item-1", "A").
			AddRow("item-2", "C"))

	categories, err := NewClassificationRepository().LatestCategories(context.Background(), db, "biz-1")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryMap{"item-1": domain.CategoryA, "item-2": domain.CategoryC}, categories)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassificationRepository_ExactCategories(t *testing.T) {
	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		want    domain.CategoryMap
		wantErr error
	}{
		{
			name: "Chave exata do período",
			rows: sqlmock.NewRows([]string{"item_id", "abc_category"}).AddRow("item-1", "B"),
			want: domain.CategoryMap{"item-1": domain.CategoryB},
		},
		{
			name: "Nenhum resultado para a janela",
			rows: sqlmock.NewRows([]string{"item_id", "abc_category"}),
			want: domain.CategoryMap{},
		},
		{
			name:    "Categoria persistida desconhecida é rejeitada",
			rows:    sqlmock.NewRows([]string{"item_id", "abc_category"}).AddRow("item-1", "D"),
			wantErr: domain.ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)

			mock.ExpectQuery(regexp.QuoteMeta(
				"SELECT acr.item_id, acr.abc_category FROM abc_classification_results acr " +
					"WHERE acr.business_id = $1 AND acr.period_end = $2 AND acr.period_start = $3",
			)).
				WithArgs("biz-1", "2024-01-14", "2024-01-01").
				WillReturnRows(tt.rows)

			categories, err := NewClassificationRepository().ExactCategories(context.Background(), db, "biz-1", testWindow())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, categories)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestClassificationRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
	}{
		{name: "Linha removida", affected: 1},
		{name: "Nada a remover", affected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)

			mock.ExpectExec(regexp.QuoteMeta(
				"DELETE FROM abc_classification_results " +
					"WHERE business_id = $1 AND item_id = $2 AND period_end = $3 AND period_start = $4",
			)).
				WithArgs("biz-1", "item-1", "2024-01-14", "2024-01-01").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			deleted, err := NewClassificationRepository().Delete(context.Background(), db, "biz-1", "item-1", testWindow())
			require.NoError(t, err)
			assert.Equal(t, tt.affected, deleted)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestClassificationRepository_History(t *testing.T) {
	db, mock := newMockDB(t)

	itemID := "item-1"
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM abc_classification_results acr LEFT JOIN inventory_items ii ON ii.id = acr.item_id " +
			"WHERE acr.business_id = $1 AND acr.item_id = $2 AND acr.period_start >= $3 " +
			"ORDER BY acr.created_at DESC, acr.period_end DESC",
	)).
		WithArgs("biz-1", "item-1", "2024-01-01").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "business_id", "item_id", "name", "period_start", "period_end", "total_consumption_value", "abc_category", "created_at",
		}).AddRow("r1", "biz-1", "item-1", "Tomate", start, start.AddDate(0, 0, 13), 800.0, "A", createdAt))

	results, err := NewClassificationRepository().History(context.Background(), db, domain.HistoryFilter{
		BusinessID: "biz-1",
		ItemID:     &itemID,
		StartDate:  &start,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Tomate", results[0].ItemName)
	assert.Equal(t, domain.CategoryA, results[0].Category)
	assert.Equal(t, createdAt, results[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
