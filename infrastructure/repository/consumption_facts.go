// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

//go:generate mockgen -source=consumption_facts.go -destination=mocks/consumption_facts_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/database/postgres"
	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
)

const (
	stockOutTypeUsage = "Usage"
	stockOutTypeWaste = "Waste"
)

// ConsumptionFactRepository lê os fatos de consumo e custo das tabelas de outros subsistemas.
// Nenhum método escreve nessas tabelas.
type ConsumptionFactRepository interface {
	ListItems(ctx context.Context, q postgres.Queryer, filter domain.FactFilter) ([]*domain.InventoryItemFact, error)
	ItemBelongsToBusiness(ctx context.Context, q postgres.Queryer, businessID, itemID string) (bool, error)
	RecipeUsage(ctx context.Context, q postgres.Queryer, filter domain.FactFilter, period domain.Period) (map[string]float64, error)
	DirectUsage(ctx context.Context, q postgres.Queryer, filter domain.FactFilter, period domain.Period) (map[string]float64, error)
	ListBatches(ctx context.Context, q postgres.Queryer, filter domain.FactFilter) ([]*domain.BatchFact, error)
	StockOutTotals(ctx context.Context, q postgres.Queryer, filter domain.FactFilter) (map[string]domain.StockOutTotals, error)
	WasteByItem(ctx context.Context, q postgres.Queryer, filter domain.FactFilter, period domain.Period) (map[string]domain.WasteFact, error)
}

type consumptionFactRepository struct{}

func NewConsumptionFactRepository() ConsumptionFactRepository {
	return &consumptionFactRepository{}
}

func withItemFilter(builder squirrel.SelectBuilder, column string, filter domain.FactFilter) squirrel.SelectBuilder {
	if filter.ItemID != nil {
		return builder.Where(squirrel.Eq{column: *filter.ItemID})
	}
	return builder
}

func (r *consumptionFactRepository) ListItems(ctx context.Context, q postgres.Queryer, filter domain.FactFilter) ([]*domain.InventoryItemFact, error) {
	builder := squirrel.
		Select(
			"ii.id",
			"ii.name",
			"COALESCE(ii.unit, '')",
			"COALESCE(ii.reorder_point, 0)",
			"COALESCE(ii.safety_stock, 0)",
			"COALESCE(ii.tracks_expiry, false)",
			"ii.shelf_life_days",
		).
		From("inventory_items ii").
		Where(squirrel.Eq{"ii.business_id": filter.BusinessID}).
		OrderBy("ii.name ASC", "ii.id ASC").
		PlaceholderFormat(squirrel.Dollar)
	builder = withItemFilter(builder, "ii.id", filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens de estoque: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.InventoryItemFact, 0)
	for rows.Next() {
		item := &domain.InventoryItemFact{}
		var shelfLife sql.NullInt64
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Unit,
			&item.ReorderPoint,
			&item.SafetyStock,
			&item.TracksExpiry,
			&shelfLife,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear item de estoque: %w", err)
		}
		if shelfLife.Valid {
			days := int(shelfLife.Int64)
			item.ShelfLifeDays = &days
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}

func (r *consumptionFactRepository) ItemBelongsToBusiness(ctx context.Context, q postgres.Queryer, businessID, itemID string) (bool, error) {
	query, args, err := squirrel.
		Select("1").
		From("inventory_items ii").
		Where(squirrel.Eq{"ii.id": itemID, "ii.business_id": businessID}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var exists int
	err = q.QueryRowContext(ctx, query, args...).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("erro ao verificar item: %w", err)
	}

	return true, nil
}

// RecipeUsage soma unidades vendidas × quantidade do ingrediente na receita
func (r *consumptionFactRepository) RecipeUsage(ctx context.Context, q postgres.Queryer, filter domain.FactFilter, period domain.Period) (map[string]float64, error) {
	builder := squirrel.
		Select("ri.inventory_item_id", "COALESCE(SUM(sli.quantity * ri.quantity), 0)").
		From("sales_line_items sli").
		Join("sales_transactions st ON st.id = sli.transaction_id").
		Join("recipes r ON r.menu_item_id = sli.menu_item_id AND r.business_id = st.business_id").
		Join("recipe_ingredients ri ON ri.recipe_id = r.id").
		Where(squirrel.Eq{"st.business_id": filter.BusinessID}).
		Where(squirrel.Expr("st.transaction_date::date BETWEEN ? AND ?", period.StartDate(), period.EndDate())).
		GroupBy("ri.inventory_item_id").
		PlaceholderFormat(squirrel.Dollar)
	builder = withItemFilter(builder, "ri.inventory_item_id", filter)

	return r.sumByItem(ctx, q, builder, "uso por receitas")
}

// DirectUsage soma as baixas de estoque do tipo Usage no período
func (r *consumptionFactRepository) DirectUsage(ctx context.Context, q postgres.Queryer, filter domain.FactFilter, period domain.Period) (map[string]float64, error) {
	builder := squirrel.
		Select("so.item_id", "COALESCE(SUM(so.quantity), 0)").
		From("stock_out_records so").
		Where(squirrel.Eq{"so.business_id": filter.BusinessID, "so.type": stockOutTypeUsage}).
		Where(squirrel.Expr("so.recorded_at::date BETWEEN ? AND ?", period.StartDate(), period.EndDate())).
		GroupBy("so.item_id").
		PlaceholderFormat(squirrel.Dollar)
	builder = withItemFilter(builder, "so.item_id", filter)

	return r.sumByItem(ctx, q, builder, "uso direto")
}

func (r *consumptionFactRepository) sumByItem(ctx context.Context, q postgres.Queryer, builder squirrel.SelectBuilder, label string) (map[string]float64, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query de %s: %w", label, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar %s: %w", label, err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var itemID string
		var total float64
		if err := rows.Scan(&itemID, &total); err != nil {
			return nil, fmt.Errorf("erro ao escanear %s: %w", label, err)
		}
		totals[itemID] += total
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return totals, nil
}

func (r *consumptionFactRepository) ListBatches(ctx context.Context, q postgres.Queryer, filter domain.FactFilter) ([]*domain.BatchFact, error) {
	builder := squirrel.
		Select("ib.item_id", "COALESCE(ib.quantity, 0)", "COALESCE(ib.unit_cost, 0)", "ib.received_date", "ib.expiry_date").
		From("inventory_batches ib").
		Where(squirrel.Eq{"ib.business_id": filter.BusinessID}).
		OrderBy("ib.received_date ASC").
		PlaceholderFormat(squirrel.Dollar)
	builder = withItemFilter(builder, "ib.item_id", filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar lotes: %w", err)
	}
	defer rows.Close()

	batches := make([]*domain.BatchFact, 0)
	for rows.Next() {
		batch := &domain.BatchFact{}
		var expiry sql.NullTime
		if err := rows.Scan(&batch.ItemID, &batch.Quantity, &batch.UnitCost, &batch.ReceivedDate, &expiry); err != nil {
			return nil, fmt.Errorf("erro ao escanear lote: %w", err)
		}
		if expiry.Valid {
			t := expiry.Time
			batch.ExpiryDate = &t
		}
		batches = append(batches, batch)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return batches, nil
}

// StockOutTotals soma todas as baixas (Usage e Waste) de todo o histórico
func (r *consumptionFactRepository) StockOutTotals(ctx context.Context, q postgres.Queryer, filter domain.FactFilter) (map[string]domain.StockOutTotals, error) {
	builder := squirrel.
		Select(
			"so.item_id",
			fmt.Sprintf("COALESCE(SUM(CASE WHEN so.type = '%s' THEN so.quantity ELSE 0 END), 0)", stockOutTypeUsage),
			fmt.Sprintf("COALESCE(SUM(CASE WHEN so.type = '%s' THEN so.quantity ELSE 0 END), 0)", stockOutTypeWaste),
		).
		From("stock_out_records so").
		Where(squirrel.Eq{"so.business_id": filter.BusinessID, "so.type": []string{stockOutTypeUsage, stockOutTypeWaste}}).
		GroupBy("so.item_id").
		PlaceholderFormat(squirrel.Dollar)
	builder = withItemFilter(builder, "so.item_id", filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar baixas de estoque: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]domain.StockOutTotals)
	for rows.Next() {
		var itemID string
		var t domain.StockOutTotals
		if err := rows.Scan(&itemID, &t.Usage, &t.Waste); err != nil {
			return nil, fmt.Errorf("erro ao escanear baixas de estoque: %w", err)
		}
		totals[itemID] = t
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return totals, nil
}

// WasteByItem lê os registros de desperdício do período
func (r *consumptionFactRepository) WasteByItem(ctx context.Context, q postgres.Queryer, filter domain.FactFilter, period domain.Period) (map[string]domain.WasteFact, error) {
	builder := squirrel.
		Select("w.item_id", "COALESCE(SUM(w.quantity), 0)", "COALESCE(SUM(w.quantity * COALESCE(w.unit_cost, 0)), 0)").
		From("wastage_records w").
		Where(squirrel.Eq{"w.business_id": filter.BusinessID}).
		Where(squirrel.Expr("w.recorded_at::date BETWEEN ? AND ?", period.StartDate(), period.EndDate())).
		GroupBy("w.item_id").
		PlaceholderFormat(squirrel.Dollar)
	builder = withItemFilter(builder, "w.item_id", filter)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar desperdícios: %w", err)
	}
	defer rows.Close()

	waste := make(map[string]domain.WasteFact)
	for rows.Next() {
		var itemID string
		var w domain.WasteFact
		if err := rows.Scan(&itemID, &w.Quantity, &w.Value); err != nil {
			return nil, fmt.Errorf("erro ao escanear desperdício: %w", err)
		}
		waste[itemID] = w
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return waste, nil
}
