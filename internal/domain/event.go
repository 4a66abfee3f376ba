package domain

const (
	EventHello      = "hello"
	EventPing       = "ping"
	EventInvalidate = "abc.invalidate"
)

// InvalidationEvent é efêmero: não é persistido e é entregue no máximo uma vez
type InvalidationEvent struct {
	BusinessID  string    `json:"business_id"`
	ItemID      string    `json:"item_id"`
	NewCategory *Category `json:"new_category"`
}
