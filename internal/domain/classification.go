package domain

import "time"

// ClassificationResult é o registro durável por (business, item, período)
type ClassificationResult struct {
	ID                    string    `json:"id"`
	BusinessID            string    `json:"business_id"`
	ItemID                string    `json:"item_id"`
	ItemName              string    `json:"item_name,omitempty"`
	PeriodStart           time.Time `json:"period_start"`
	PeriodEnd             time.Time `json:"period_end"`
	TotalConsumptionValue float64   `json:"total_consumption_value"`
	Category              Category  `json:"abc_category"`
	CreatedAt             time.Time `json:"created_at"`
}

// ClassifiedItem é uma linha de consumo anotada pelo classificador
type ClassifiedItem struct {
	ConsumptionRow
	PercentageOfTotal  float64  `json:"percentage_of_total"`
	RunningPercentage  float64  `json:"running_percentage"`
	Category           Category `json:"abc_category"`
	CategorySource     string   `json:"category_source"`
	PerishabilityScore float64  `json:"perishability_score"`
	NeedsAttention     bool     `json:"needs_attention"`
	SyntheticB         bool     `json:"synthetic_b,omitempty"`
}

// Origem da categoria atribuída
const (
	CategorySourceSticky   = "sticky"
	CategorySourceFallback = "fallback"
	CategorySourceComputed = "computed"
)

type CategorySummary struct {
	Count      int     `json:"count"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// ABCReport é o payload completo de uma classificação
type ABCReport struct {
	BusinessID            string                       `json:"business_id"`
	PeriodStart           string                       `json:"period_start"`
	PeriodEnd             string                       `json:"period_end"`
	TotalConsumptionValue float64                      `json:"total_consumption_value"`
	TotalItems            int                          `json:"total_items"`
	Summary               map[Category]CategorySummary `json:"summary"`
	Items                 []ClassifiedItem             `json:"items"`
	GeneratedAt           time.Time                    `json:"generated_at"`
}

// CacheStatus informa a procedência da resposta (cabeçalho X-Cache)
type CacheStatus string

const (
	CacheHit    CacheStatus = "HIT"
	CacheMiss   CacheStatus = "MISS"
	CacheBypass CacheStatus = "BYPASS"
)

// CachedReport carrega o payload serializado, idêntico byte a byte entre HITs
type CachedReport struct {
	Payload []byte
	Status  CacheStatus
}

// HistoryFilter filtra a listagem do histórico persistido
type HistoryFilter struct {
	BusinessID string
	ItemID     *string
	StartDate  *time.Time
	EndDate    *time.Time
}

// ListFilter filtra a listagem servida a partir do cache
type ListFilter struct {
	BusinessID string
	Period     Period
	Category   *Category
}

type ListResponse struct {
	PeriodStart string           `json:"period_start"`
	PeriodEnd   string           `json:"period_end"`
	Category    *Category        `json:"category,omitempty"`
	Items       []ClassifiedItem `json:"items"`
	Total       int              `json:"total"`
}
