package streaming

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
)

const channelPrefix = "abc:invalidate:"

// PubSub publica eventos de invalidação para todas as conexões do negócio
type PubSub interface {
	Publish(ctx context.Context, event domain.InvalidationEvent) error
}

// LocalPubSub entrega direto no Hub do processo
type LocalPubSub struct {
	hub *Hub
}

func NewLocalPubSub(hub *Hub) *LocalPubSub {
	return &LocalPubSub{hub: hub}
}

func (p *LocalPubSub) Publish(_ context.Context, event domain.InvalidationEvent) error {
	p.hub.Broadcast(event.BusinessID, InvalidateMessage(event))
	return nil
}

// RedisPubSub publica no canal do negócio; Run repassa o que chega de qualquer instância ao Hub local
type RedisPubSub struct {
	client redis.UniversalClient
	hub    *Hub
}

func NewRedisPubSub(client redis.UniversalClient, hub *Hub) *RedisPubSub {
	return &RedisPubSub{client: client, hub: hub}
}

func (p *RedisPubSub) Publish(ctx context.Context, event domain.InvalidationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("erro ao serializar evento de invalidação: %w", err)
	}

	if err := p.client.Publish(ctx, channelPrefix+event.BusinessID, payload).Err(); err != nil {
		return fmt.Errorf("erro ao publicar evento no redis: %w", err)
	}
	return nil
}

// Run bloqueia até o contexto ser cancelado
func (p *RedisPubSub) Run(ctx context.Context) error {
	sub := p.client.PSubscribe(ctx, channelPrefix+"*")
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("erro ao assinar canais de invalidação: %w", err)
	}

	logrus.Info("Assinatura de invalidações no redis iniciada")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			logrus.Info("Assinatura de invalidações no redis encerrada")
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			p.relay(msg)
		}
	}
}

func (p *RedisPubSub) relay(msg *redis.Message) {
	var event domain.InvalidationEvent
	if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
		logrus.WithError(err).WithField("channel", msg.Channel).Warn("Evento de invalidação inválido ignorado")
		return
	}

	if event.BusinessID == "" {
		event.BusinessID = strings.TrimPrefix(msg.Channel, channelPrefix)
	}

	p.hub.Broadcast(event.BusinessID, InvalidateMessage(event))
}
