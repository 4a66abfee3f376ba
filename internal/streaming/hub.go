// Package streaming mantém as conexões SSE por negócio e entrega os eventos de invalidação
package streaming

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/restaurant-inventory-api/pkg/metrics"
)

var ErrConnectionClosed = errors.New("conexão de streaming encerrada")

// Message é um evento SSE já serializado
type Message struct {
	Event string
	Data  []byte
}

// Subscriber representa uma conexão aberta de um painel
type Subscriber interface {
	ID() string
	Send(msg Message) error
}

// Hub é o registro local de assinantes, indexado por business_id
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[string]Subscriber
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]map[string]Subscriber)}
}

func (h *Hub) Subscribe(businessID string, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.subscribers[businessID]
	if !ok {
		subs = make(map[string]Subscriber)
		h.subscribers[businessID] = subs
	}
	if _, exists := subs[sub.ID()]; !exists {
		metrics.StreamSubscribers.Inc()
	}
	subs[sub.ID()] = sub
}

// Unsubscribe é idempotente; o negócio sai do mapa quando fica sem conexões
func (h *Hub) Unsubscribe(businessID, subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.subscribers[businessID]
	if !ok {
		return
	}
	if _, exists := subs[subscriberID]; !exists {
		return
	}

	delete(subs, subscriberID)
	metrics.StreamSubscribers.Dec()
	if len(subs) == 0 {
		delete(h.subscribers, businessID)
	}
}

func (h *Hub) Count(businessID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[businessID])
}

// Broadcast dispara a entrega em uma goroutine por conexão e retorna sem esperar.
// Falhas de escrita removem a conexão do registro.
func (h *Hub) Broadcast(businessID string, msg Message) int {
	h.mu.RLock()
	targets := make([]Subscriber, 0, len(h.subscribers[businessID]))
	for _, sub := range h.subscribers[businessID] {
		targets = append(targets, sub)
	}
	h.mu.RUnlock()

	for _, sub := range targets {
		go h.deliver(businessID, sub, msg)
	}

	return len(targets)
}

func (h *Hub) deliver(businessID string, sub Subscriber, msg Message) {
	if err := sub.Send(msg); err != nil {
		metrics.StreamDeliveries.WithLabelValues(msg.Event, "failed").Inc()
		logrus.WithFields(logrus.Fields{
			"business_id":   businessID,
			"subscriber_id": sub.ID(),
			"event":         msg.Event,
			"error":         err.Error(),
		}).Debug("Falha ao entregar evento, removendo conexão")
		h.Unsubscribe(businessID, sub.ID())
		return
	}
	metrics.StreamDeliveries.WithLabelValues(msg.Event, "delivered").Inc()
}
