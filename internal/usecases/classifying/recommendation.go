package classifying

import "github.com/vfg2006/restaurant-inventory-api/internal/domain"

const (
	priorityHigh   = "alta"
	priorityMedium = "media"
	priorityLow    = "baixa"
)

var priorityRank = map[string]int{
	priorityHigh:   0,
	priorityMedium: 1,
	priorityLow:    2,
}

// recommend é apenas apresentação sobre dados persistidos, sem regra de negócio
func recommend(result *domain.ClassificationResult, row domain.ConsumptionRow) domain.Recommendation {
	perishability := perishabilityScore(row.TracksExpiry, row.ShelfLifeDays)

	rec := domain.Recommendation{
		ItemID:             result.ItemID,
		ItemName:           row.ItemName,
		Category:           result.Category,
		StockStatus:        row.StockStatus,
		CurrentStock:       row.CurrentStock,
		PerishabilityScore: perishability,
	}
	if rec.ItemName == "" {
		rec.ItemName = result.ItemName
	}

	switch {
	case result.Category == domain.CategoryA && row.StockStatus == domain.StockStatusCritical:
		rec.Priority = priorityHigh
		rec.Recommendation = "Item A com estoque crítico: repor imediatamente"
	case result.Category == domain.CategoryA && row.StockStatus == domain.StockStatusLow:
		rec.Priority = priorityHigh
		rec.Recommendation = "Item A abaixo do ponto de pedido: programar reposição"
	case result.Category == domain.CategoryC && perishability > perishabilityAttentionMark:
		rec.Priority = priorityMedium
		rec.Recommendation = "Item perecível de baixo giro: reduzir o tamanho dos pedidos"
	case result.Category == domain.CategoryB && row.StockStatus != domain.StockStatusSufficient:
		rec.Priority = priorityMedium
		rec.Recommendation = "Item B abaixo do ponto de pedido: revisar quantidade de compra"
	case result.Category == domain.CategoryA:
		rec.Priority = priorityLow
		rec.Recommendation = "Controle rigoroso: conferir estoque semanalmente"
	case result.Category == domain.CategoryB:
		rec.Priority = priorityLow
		rec.Recommendation = "Controle moderado: conferir estoque a cada quinze dias"
	default:
		rec.Priority = priorityLow
		rec.Recommendation = "Controle simples: conferir estoque mensalmente e comprar sob demanda"
	}

	return rec
}
