package repository

//go:generate mockgen -source=classification.go -destination=mocks/classification_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/database/postgres"
	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
	"github.com/vfg2006/restaurant-inventory-api/pkg/utils"
)

const (
	classificationTable      = "abc_classification_results"
	classificationTableAlias = "abc_classification_results acr"
)

// upsert nunca avança o created_at original do registro
const classificationUpsertSuffix = `
	ON CONFLICT (business_id, item_id, period_start, period_end) DO UPDATE SET
		total_consumption_value = EXCLUDED.total_consumption_value,
		abc_category = EXCLUDED.abc_category,
		created_at = LEAST(abc_classification_results.created_at, EXCLUDED.created_at)
`

var classificationColumns = []string{
	"acr.id",
	"acr.business_id",
	"acr.item_id",
	"COALESCE(ii.name, '')",
	"acr.period_start",
	"acr.period_end",
	"acr.total_consumption_value",
	"acr.abc_category",
	"acr.created_at",
}

type ClassificationRepository interface {
	ExactCategories(ctx context.Context, q postgres.Queryer, businessID string, period domain.Period) (domain.CategoryMap, error)
	LatestCategories(ctx context.Context, q postgres.Queryer, businessID string) (domain.CategoryMap, error)
	UpsertMany(ctx context.Context, q postgres.Queryer, results []*domain.ClassificationResult) error
	Upsert(ctx context.Context, q postgres.Queryer, result *domain.ClassificationResult) error
	Delete(ctx context.Context, q postgres.Queryer, businessID, itemID string, period domain.Period) (int64, error)
	History(ctx context.Context, q postgres.Queryer, filter domain.HistoryFilter) ([]*domain.ClassificationResult, error)
	LatestResults(ctx context.Context, q postgres.Queryer, businessID string) ([]*domain.ClassificationResult, error)
}

type classificationRepository struct{}

func NewClassificationRepository() ClassificationRepository {
	return &classificationRepository{}
}

func (r *classificationRepository) ExactCategories(ctx context.Context, q postgres.Queryer, businessID string, period domain.Period) (domain.CategoryMap, error) {
	builder := squirrel.
		Select("acr.item_id", "acr.abc_category").
		From(classificationTableAlias).
		Where(squirrel.Eq{
			"acr.business_id":  businessID,
			"acr.period_start": period.StartDate(),
			"acr.period_end":   period.EndDate(),
		}).
		PlaceholderFormat(squirrel.Dollar)

	return r.categoryMap(ctx, q, builder)
}

// LatestCategories devolve, por item, a categoria do resultado mais recente em qualquer período
func (r *classificationRepository) LatestCategories(ctx context.Context, q postgres.Queryer, businessID string) (domain.CategoryMap, error) {
	builder := squirrel.
		Select("DISTINCT ON (acr.item_id) acr.item_id", "acr.abc_category").
		From(classificationTableAlias).
		Where(squirrel.Eq{"acr.business_id": businessID}).
		OrderBy("acr.item_id", "acr.period_end DESC", "acr.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.categoryMap(ctx, q, builder)
}

func (r *classificationRepository) categoryMap(ctx context.Context, q postgres.Queryer, builder squirrel.SelectBuilder) (domain.CategoryMap, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar categorias persistidas: %w", err)
	}
	defer rows.Close()

	categories := make(domain.CategoryMap)
	for rows.Next() {
		var itemID string
		var category domain.Category
		if err := rows.Scan(&itemID, &category); err != nil {
			return nil, fmt.Errorf("erro ao escanear categoria do item %s: %w", itemID, err)
		}
		categories[itemID] = category
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return categories, nil
}

func (r *classificationRepository) UpsertMany(ctx context.Context, q postgres.Queryer, results []*domain.ClassificationResult) error {
	if len(results) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert(classificationTable).
		Columns(
			"id",
			"business_id",
			"item_id",
			"period_start",
			"period_end",
			"total_consumption_value",
			"abc_category",
			"created_at",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, result := range results {
		if !result.Category.Valid() {
			return fmt.Errorf("%w: item %s", domain.ErrInvalidCategory, result.ItemID)
		}

		if result.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				return fmt.Errorf("erro ao gerar id do resultado: %w", err)
			}
			result.ID = id
		}

		query = query.Values(
			result.ID,
			result.BusinessID,
			result.ItemID,
			result.PeriodStart.Format(time.DateOnly),
			result.PeriodEnd.Format(time.DateOnly),
			result.TotalConsumptionValue,
			string(result.Category),
			result.CreatedAt,
		)
	}

	sqlQuery, args, err := query.Suffix(classificationUpsertSuffix).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	_, err = q.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}

func (r *classificationRepository) Upsert(ctx context.Context, q postgres.Queryer, result *domain.ClassificationResult) error {
	return r.UpsertMany(ctx, q, []*domain.ClassificationResult{result})
}

func (r *classificationRepository) Delete(ctx context.Context, q postgres.Queryer, businessID, itemID string, period domain.Period) (int64, error) {
	query, args, err := squirrel.
		Delete(classificationTable).
		Where(squirrel.Eq{
			"business_id":  businessID,
			"item_id":      itemID,
			"period_start": period.StartDate(),
			"period_end":   period.EndDate(),
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *classificationRepository) History(ctx context.Context, q postgres.Queryer, filter domain.HistoryFilter) ([]*domain.ClassificationResult, error) {
	builder := squirrel.
		Select(classificationColumns...).
		From(classificationTableAlias).
		LeftJoin("inventory_items ii ON ii.id = acr.item_id").
		Where(squirrel.Eq{"acr.business_id": filter.BusinessID}).
		OrderBy("acr.created_at DESC", "acr.period_end DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.ItemID != nil {
		builder = builder.Where(squirrel.Eq{"acr.item_id": *filter.ItemID})
	}
	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"acr.period_start": filter.StartDate.Format(time.DateOnly)})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"acr.period_end": filter.EndDate.Format(time.DateOnly)})
	}

	return r.listResults(ctx, q, builder)
}

// LatestResults devolve o resultado mais recente de cada item do negócio
func (r *classificationRepository) LatestResults(ctx context.Context, q postgres.Queryer, businessID string) ([]*domain.ClassificationResult, error) {
	columns := append([]string{"DISTINCT ON (acr.item_id) acr.id"}, classificationColumns[1:]...)

	builder := squirrel.
		Select(columns...).
		From(classificationTableAlias).
		LeftJoin("inventory_items ii ON ii.id = acr.item_id").
		Where(squirrel.Eq{"acr.business_id": businessID}).
		OrderBy("acr.item_id", "acr.period_end DESC", "acr.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.listResults(ctx, q, builder)
}

func (r *classificationRepository) listResults(ctx context.Context, q postgres.Queryer, builder squirrel.SelectBuilder) ([]*domain.ClassificationResult, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*domain.ClassificationResult{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	results := make([]*domain.ClassificationResult, 0)
	for rows.Next() {
		result, err := r.scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear resultado: %w", err)
		}
		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return results, nil
}

func (r *classificationRepository) scanResult(rows *sql.Rows) (*domain.ClassificationResult, error) {
	result := &domain.ClassificationResult{}

	err := rows.Scan(
		&result.ID,
		&result.BusinessID,
		&result.ItemID,
		&result.ItemName,
		&result.PeriodStart,
		&result.PeriodEnd,
		&result.TotalConsumptionValue,
		&result.Category,
		&result.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return result, nil
}
