package streaming

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type helloPayload struct {
	BusinessID   string `json:"business_id"`
	SubscriberID string `json:"subscriber_id"`
}

type pingPayload struct {
	Timestamp int64 `json:"ts"`
}

type invalidatePayload struct {
	ItemID      string           `json:"item_id"`
	NewCategory *domain.Category `json:"new_category"`
}

func HelloMessage(businessID, subscriberID string) Message {
	data, _ := json.Marshal(helloPayload{BusinessID: businessID, SubscriberID: subscriberID})
	return Message{Event: domain.EventHello, Data: data}
}

func PingMessage(now time.Time) Message {
	data, _ := json.Marshal(pingPayload{Timestamp: now.UnixMilli()})
	return Message{Event: domain.EventPing, Data: data}
}

// InvalidateMessage carrega só item_id e new_category; new_category é null em um reset
func InvalidateMessage(event domain.InvalidationEvent) Message {
	data, _ := json.Marshal(invalidatePayload{ItemID: event.ItemID, NewCategory: event.NewCategory})
	return Message{Event: domain.EventInvalidate, Data: data}
}
