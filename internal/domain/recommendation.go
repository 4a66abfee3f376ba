package domain

type Recommendation struct {
	ItemID             string      `json:"item_id"`
	ItemName           string      `json:"item_name"`
	Category           Category    `json:"abc_category"`
	StockStatus        StockStatus `json:"stock_status"`
	CurrentStock       float64     `json:"current_stock"`
	PerishabilityScore float64     `json:"perishability_score"`
	Priority           string      `json:"priority"`
	Recommendation     string      `json:"recommendation"`
}
