package domain

type StockStatus string

const (
	StockStatusCritical   StockStatus = "critical"
	StockStatusLow        StockStatus = "low"
	StockStatusSufficient StockStatus = "sufficient"
)

// ConsumptionRow é calculado a cada requisição e nunca persistido
type ConsumptionRow struct {
	ItemID                  string      `json:"item_id"`
	ItemName                string      `json:"item_name"`
	Unit                    string      `json:"unit"`
	RecipeQuantityUsed      float64     `json:"recipe_quantity_used"`
	DirectQuantityUsed      float64     `json:"direct_quantity_used"`
	TotalQuantityUsed       float64     `json:"total_quantity_used"`
	AvgUnitCost             float64     `json:"avg_unit_cost"`
	LatestUnitCost          float64     `json:"latest_unit_cost"`
	ConsumptionValue        float64     `json:"consumption_value"`
	CurrentStock            float64     `json:"current_stock"`
	ReorderPoint            float64     `json:"reorder_point"`
	SafetyStock             float64     `json:"safety_stock"`
	TracksExpiry            bool        `json:"tracks_expiry"`
	ShelfLifeDays           *int        `json:"shelf_life_days"`
	WasteQuantity           float64     `json:"waste_quantity"`
	WasteValue              float64     `json:"waste_value"`
	WastePercentage         float64     `json:"waste_percentage"`
	MonthlyQuantityUsed     float64     `json:"monthly_quantity_used"`
	MonthlyConsumptionValue float64     `json:"monthly_consumption_value"`
	StockStatus             StockStatus `json:"stock_status"`
}
