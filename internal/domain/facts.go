package domain

import "time"

// Fatos lidos das tabelas de outros subsistemas (somente leitura)

type InventoryItemFact struct {
	ID            string
	Name          string
	Unit          string
	ReorderPoint  float64
	SafetyStock   float64
	TracksExpiry  bool
	ShelfLifeDays *int
}

type BatchFact struct {
	ItemID       string
	Quantity     float64
	UnitCost     float64
	ReceivedDate time.Time
	ExpiryDate   *time.Time
}

type StockOutTotals struct {
	Usage float64
	Waste float64
}

type WasteFact struct {
	Quantity float64
	Value    float64
}

// FactFilter delimita a leitura dos fatos de consumo
type FactFilter struct {
	BusinessID string
	ItemID     *string
}
