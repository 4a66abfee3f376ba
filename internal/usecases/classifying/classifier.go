package classifying

import (
	"math"
	"regexp"
	"sort"

	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
	"github.com/vfg2006/restaurant-inventory-api/pkg/utils"
)

const (
	paretoThresholdA = 80.0
	paretoThresholdB = 95.0

	rankThresholdA = 0.20
	rankThresholdB = 0.50

	perishabilityBaseDays      = 30.0
	perishabilityAttentionMark = 70.0

	// Com pelo menos esse número de candidatos C, promove até maxSyntheticB itens
	syntheticBWideThreshold = 6
	maxSyntheticB           = 3
)

// Itens de demonstração/seed não devem ocupar a categoria B sozinhos
var demoNamePattern = regexp.MustCompile(`(?i)(^|[^a-z])(demo|test|teste|sample|dummy|exemplo)([^a-z]|$)`)

func isDemoName(name string) bool {
	return demoNamePattern.MatchString(name)
}

// Classify ordena as linhas por valor de consumo e atribui as categorias.
// Não acessa banco nem relógio: o mesmo input gera sempre o mesmo output.
func Classify(rows []domain.ConsumptionRow, persisted domain.PersistedCategories) []domain.ClassifiedItem {
	items := make([]domain.ClassifiedItem, len(rows))
	for i, row := range rows {
		items[i] = domain.ClassifiedItem{ConsumptionRow: row}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ConsumptionValue > items[j].ConsumptionValue
	})

	total := 0.0
	for _, item := range items {
		total += item.ConsumptionValue
	}

	running := 0.0
	count := float64(len(items))
	for i := range items {
		item := &items[i]
		running += item.ConsumptionValue

		if total > 0 {
			item.PercentageOfTotal = item.ConsumptionValue / total * 100
			item.RunningPercentage = running / total * 100
		}

		item.Category, item.CategorySource = resolveCategory(item, persisted, total, float64(i+1)/count)
		item.PerishabilityScore = perishabilityScore(item.TracksExpiry, item.ShelfLifeDays)
		item.NeedsAttention = needsAttention(*item)
	}

	// a atenção reflete a categoria antes da promoção sintética
	ensureCategoryB(items)

	return items
}

func resolveCategory(item *domain.ClassifiedItem, persisted domain.PersistedCategories, total, position float64) (domain.Category, string) {
	if category, ok := persisted.Exact[item.ItemID]; ok {
		return category, domain.CategorySourceSticky
	}
	if category, ok := persisted.Latest[item.ItemID]; ok {
		return category, domain.CategorySourceFallback
	}

	if total == 0 {
		return rankCategory(position), domain.CategorySourceComputed
	}
	return paretoCategory(item.RunningPercentage), domain.CategorySourceComputed
}

func rankCategory(position float64) domain.Category {
	switch {
	case position <= rankThresholdA:
		return domain.CategoryA
	case position <= rankThresholdB:
		return domain.CategoryB
	default:
		return domain.CategoryC
	}
}

// paretoCategory tolera o erro de ponto flutuante da soma acumulada
func paretoCategory(runningPercentage float64) domain.Category {
	const epsilon = 1e-9
	switch {
	case runningPercentage <= paretoThresholdA+epsilon:
		return domain.CategoryA
	case runningPercentage <= paretoThresholdB+epsilon:
		return domain.CategoryB
	default:
		return domain.CategoryC
	}
}

func perishabilityScore(tracksExpiry bool, shelfLifeDays *int) float64 {
	if !tracksExpiry || shelfLifeDays == nil || *shelfLifeDays <= 0 {
		return 0
	}
	score := perishabilityBaseDays / float64(*shelfLifeDays) * 100
	return math.Min(100, math.Max(0, score))
}

func needsAttention(item domain.ClassifiedItem) bool {
	if item.Category == domain.CategoryC && item.PerishabilityScore > perishabilityAttentionMark {
		return true
	}
	return item.ConsumptionValue > 0 && item.TotalQuantityUsed > 2*item.ReorderPoint
}

// ensureCategoryB garante ao menos um item B, promovendo itens C quando necessário
func ensureCategoryB(items []domain.ClassifiedItem) {
	hasB := false
	onlyDemoB := true
	for _, item := range items {
		if item.Category != domain.CategoryB {
			continue
		}
		hasB = true
		if !isDemoName(item.ItemName) {
			onlyDemoB = false
		}
	}

	if hasB && !onlyDemoB {
		return
	}

	nonDemo, demo := promotionCandidates(items)

	if hasB {
		if len(nonDemo) > 0 {
			promote(items, nonDemo[:1])
		}
		return
	}

	candidates := append(nonDemo, demo...)
	if len(candidates) == 0 {
		return
	}

	limit := 1
	if len(candidates) >= syntheticBWideThreshold {
		limit = maxSyntheticB
	}
	promote(items, candidates[:limit])
}

// promotionCandidates devolve os índices dos itens C, separados em reais e de demonstração, por valor decrescente
func promotionCandidates(items []domain.ClassifiedItem) (nonDemo, demo []int) {
	for i, item := range items {
		if item.Category != domain.CategoryC {
			continue
		}
		if isDemoName(item.ItemName) {
			demo = append(demo, i)
		} else {
			nonDemo = append(nonDemo, i)
		}
	}

	byValue := func(indexes []int) {
		sort.SliceStable(indexes, func(a, b int) bool {
			return items[indexes[a]].ConsumptionValue > items[indexes[b]].ConsumptionValue
		})
	}
	byValue(nonDemo)
	byValue(demo)

	return nonDemo, demo
}

func promote(items []domain.ClassifiedItem, indexes []int) {
	for _, i := range indexes {
		items[i].Category = domain.CategoryB
		items[i].SyntheticB = true
	}
}

// summarize agrega contagem, valor e participação por categoria
func summarize(items []domain.ClassifiedItem, total float64) map[domain.Category]domain.CategorySummary {
	summary := make(map[domain.Category]domain.CategorySummary, len(domain.Categories))
	for _, category := range domain.Categories {
		summary[category] = domain.CategorySummary{}
	}

	for _, item := range items {
		s := summary[item.Category]
		s.Count++
		s.Value += item.ConsumptionValue
		summary[item.Category] = s
	}

	for category, s := range summary {
		s.Value = utils.RoundWithTwoDecimalPlace(s.Value)
		if total > 0 {
			s.Percentage = utils.RoundWithTwoDecimalPlace(s.Value / total * 100)
		}
		summary[category] = s
	}

	return summary
}
