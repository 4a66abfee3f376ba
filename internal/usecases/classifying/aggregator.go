package classifying

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/database/postgres"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/repository"
	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
	"github.com/vfg2006/restaurant-inventory-api/pkg/clock"
	"github.com/vfg2006/restaurant-inventory-api/pkg/utils"
)

var hundred = decimal.NewFromInt(100)

// Aggregator combina os fatos de consumo, custo, estoque e desperdício em linhas por item
type Aggregator struct {
	facts repository.ConsumptionFactRepository
	clock clock.Clock
}

func NewAggregator(facts repository.ConsumptionFactRepository, clk clock.Clock) *Aggregator {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Aggregator{facts: facts, clock: clk}
}

type usageFacts struct {
	recipe        map[string]float64
	direct        map[string]float64
	monthlyRecipe map[string]float64
	monthlyDirect map[string]float64
	batches       map[string][]*domain.BatchFact
	stockOut      map[string]domain.StockOutTotals
	waste         map[string]domain.WasteFact
}

// Aggregate devolve as linhas qualificadas ordenadas por nome. Um resultado vazio não é erro.
func (a *Aggregator) Aggregate(
	ctx context.Context,
	q postgres.Queryer,
	filter domain.FactFilter,
	period domain.Period,
	persisted domain.PersistedCategories,
) ([]domain.ConsumptionRow, error) {
	items, err := a.facts.ListItems(ctx, q, filter)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []domain.ConsumptionRow{}, nil
	}

	facts, err := a.loadFacts(ctx, q, filter, period)
	if err != nil {
		return nil, err
	}

	today := a.clock.Now()
	rows := make([]domain.ConsumptionRow, 0, len(items))
	for _, item := range items {
		row := buildRow(item, facts, today)
		if !qualifies(row, persisted) {
			continue
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ItemName != rows[j].ItemName {
			return rows[i].ItemName < rows[j].ItemName
		}
		return rows[i].ItemID < rows[j].ItemID
	})

	return rows, nil
}

func (a *Aggregator) loadFacts(ctx context.Context, q postgres.Queryer, filter domain.FactFilter, period domain.Period) (*usageFacts, error) {
	month := domain.CurrentMonth(a.clock.Now())
	facts := &usageFacts{}

	var err error
	if facts.recipe, err = a.facts.RecipeUsage(ctx, q, filter, period); err != nil {
		return nil, err
	}
	if facts.direct, err = a.facts.DirectUsage(ctx, q, filter, period); err != nil {
		return nil, err
	}
	if facts.monthlyRecipe, err = a.facts.RecipeUsage(ctx, q, filter, month); err != nil {
		return nil, err
	}
	if facts.monthlyDirect, err = a.facts.DirectUsage(ctx, q, filter, month); err != nil {
		return nil, err
	}

	batches, err := a.facts.ListBatches(ctx, q, filter)
	if err != nil {
		return nil, err
	}
	facts.batches = make(map[string][]*domain.BatchFact)
	for _, b := range batches {
		facts.batches[b.ItemID] = append(facts.batches[b.ItemID], b)
	}

	if facts.stockOut, err = a.facts.StockOutTotals(ctx, q, filter); err != nil {
		return nil, err
	}
	if facts.waste, err = a.facts.WasteByItem(ctx, q, filter, period); err != nil {
		return nil, err
	}

	return facts, nil
}

func buildRow(item *domain.InventoryItemFact, facts *usageFacts, today time.Time) domain.ConsumptionRow {
	recipe := decimal.NewFromFloat(facts.recipe[item.ID])
	direct := decimal.NewFromFloat(facts.direct[item.ID])
	totalUsed := recipe.Add(direct)

	batches := facts.batches[item.ID]
	avgCost := averageUnitCost(batches)
	latestCost := latestUnitCost(batches)

	unitCost := avgCost
	if unitCost.IsZero() {
		unitCost = latestCost
	}

	monthlyUsed := decimal.NewFromFloat(facts.monthlyRecipe[item.ID]).
		Add(decimal.NewFromFloat(facts.monthlyDirect[item.ID]))

	stock := currentStock(batches, facts.stockOut[item.ID], today)

	waste := facts.waste[item.ID]
	wasteQty := decimal.NewFromFloat(waste.Quantity)
	wasteValue := decimal.NewFromFloat(waste.Value)
	if wasteValue.IsZero() {
		wasteValue = wasteQty.Mul(unitCost)
	}
	wastePct := decimal.Zero
	if totalUsed.IsPositive() {
		wastePct = wasteQty.Div(totalUsed).Mul(hundred)
	}

	row := domain.ConsumptionRow{
		ItemID:                  item.ID,
		ItemName:                item.Name,
		Unit:                    item.Unit,
		RecipeQuantityUsed:      recipe.InexactFloat64(),
		DirectQuantityUsed:      direct.InexactFloat64(),
		TotalQuantityUsed:       totalUsed.InexactFloat64(),
		AvgUnitCost:             avgCost.Round(4).InexactFloat64(),
		LatestUnitCost:          latestCost.Round(4).InexactFloat64(),
		ConsumptionValue:        totalUsed.Mul(unitCost).Round(2).InexactFloat64(),
		CurrentStock:            stock.InexactFloat64(),
		ReorderPoint:            item.ReorderPoint,
		SafetyStock:             item.SafetyStock,
		TracksExpiry:            item.TracksExpiry,
		ShelfLifeDays:           item.ShelfLifeDays,
		WasteQuantity:           wasteQty.InexactFloat64(),
		WasteValue:              wasteValue.Round(2).InexactFloat64(),
		WastePercentage:         utils.RoundWithTwoDecimalPlace(wastePct.InexactFloat64()),
		MonthlyQuantityUsed:     monthlyUsed.InexactFloat64(),
		MonthlyConsumptionValue: monthlyUsed.Mul(unitCost).Round(2).InexactFloat64(),
	}
	row.StockStatus = stockStatus(row.CurrentStock, item.SafetyStock, item.ReorderPoint)

	return row
}

// averageUnitCost pondera por todos os lotes com custo do item, independente da data de recebimento
func averageUnitCost(batches []*domain.BatchFact) decimal.Decimal {
	withCost := make([]*domain.BatchFact, 0, len(batches))
	for _, b := range batches {
		if b.UnitCost > 0 {
			withCost = append(withCost, b)
		}
	}
	return weightedAverage(withCost)
}

// weightedAverage é Σ(custo×qtd)/Σqtd, ou a média aritmética dos custos quando Σqtd é zero
func weightedAverage(batches []*domain.BatchFact) decimal.Decimal {
	if len(batches) == 0 {
		return decimal.Zero
	}

	sumQty := decimal.Zero
	sumCost := decimal.Zero
	sumWeighted := decimal.Zero
	for _, b := range batches {
		qty := decimal.NewFromFloat(b.Quantity)
		cost := decimal.NewFromFloat(b.UnitCost)
		sumQty = sumQty.Add(qty)
		sumCost = sumCost.Add(cost)
		sumWeighted = sumWeighted.Add(cost.Mul(qty))
	}

	if sumQty.IsZero() {
		return sumCost.Div(decimal.NewFromInt(int64(len(batches))))
	}
	return sumWeighted.Div(sumQty)
}

// latestUnitCost usa o lote recebido mais recentemente, vencido ou não
func latestUnitCost(batches []*domain.BatchFact) decimal.Decimal {
	var latest *domain.BatchFact
	for _, b := range batches {
		if latest == nil || !b.ReceivedDate.Before(latest.ReceivedDate) {
			latest = b
		}
	}
	if latest == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(latest.UnitCost)
}

func currentStock(batches []*domain.BatchFact, out domain.StockOutTotals, today time.Time) decimal.Decimal {
	day := domain.Day(today)

	onHand := decimal.Zero
	for _, b := range batches {
		if b.ExpiryDate != nil && domain.Day(*b.ExpiryDate).Before(day) {
			continue
		}
		onHand = onHand.Add(decimal.NewFromFloat(b.Quantity))
	}

	stock := onHand.Sub(decimal.NewFromFloat(out.Usage)).Sub(decimal.NewFromFloat(out.Waste))
	if stock.IsNegative() {
		return decimal.Zero
	}
	return stock
}

func stockStatus(stock, safetyStock, reorderPoint float64) domain.StockStatus {
	if safetyStock > 0 && stock <= safetyStock {
		return domain.StockStatusCritical
	}
	if reorderPoint > 0 && stock <= reorderPoint {
		return domain.StockStatusLow
	}
	return domain.StockStatusSufficient
}

func qualifies(row domain.ConsumptionRow, persisted domain.PersistedCategories) bool {
	return row.TotalQuantityUsed != 0 ||
		row.AvgUnitCost != 0 ||
		row.LatestUnitCost != 0 ||
		persisted.Has(row.ItemID)
}

func formatPeriod(p domain.Period) string {
	return fmt.Sprintf("%s..%s", p.StartDate(), p.EndDate())
}
