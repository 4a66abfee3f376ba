package streaming

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
)

func TestLocalPubSub_Publish(t *testing.T) {
	hub := NewHub()
	sub := &fakeSubscriber{id: "a"}
	hub.Subscribe("biz-1", sub)

	err := NewLocalPubSub(hub).Publish(context.Background(), domain.InvalidationEvent{BusinessID: "biz-1", ItemID: "i1"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return len(sub.messages()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, domain.EventInvalidate, sub.messages()[0].Event)
}

func TestRedisPubSub_RelaysToLocalHub(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer rdb.Close()

	hub := NewHub()
	sub := &fakeSubscriber{id: "a"}
	hub.Subscribe("biz-1", sub)

	ps := NewRedisPubSub(rdb, hub)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- ps.Run(ctx) }()

	category := domain.CategoryA
	event := domain.InvalidationEvent{BusinessID: "biz-1", ItemID: "i1", NewCategory: &category}

	// a assinatura é assíncrona; publica até o evento chegar
	assert.Eventually(t, func() bool {
		if err := ps.Publish(context.Background(), event); err != nil {
			return false
		}
		return len(sub.messages()) > 0
	}, 2*time.Second, 50*time.Millisecond)

	assert.JSONEq(t, `{"item_id":"i1","new_category":"A"}`, string(sub.messages()[0].Data))

	cancel()
	select {
	case err := <-runErr:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run não encerrou após o cancelamento")
	}
}

type failingPubSub struct{}

func (failingPubSub) Publish(context.Context, domain.InvalidationEvent) error {
	return errors.New("redis indisponível")
}

func TestNotifier_NotifyAsync(t *testing.T) {
	tests := []struct {
		name    string
		pubsub  PubSub
		wantErr bool
	}{
		{
			name:   "Publicação local deve reportar sucesso",
			pubsub: NewLocalPubSub(NewHub()),
		},
		{
			name:    "Falha do barramento deve ser observável",
			pubsub:  failingPubSub{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			result := NewNotifier(tt.pubsub).NotifyAsync(ctx, domain.InvalidationEvent{BusinessID: "b", ItemID: "i"})
			// o cancelamento da requisição não deve interromper a publicação
			cancel()

			select {
			case err := <-result:
				if tt.wantErr {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
				}
			case <-time.After(time.Second):
				t.Fatal("resultado da notificação não chegou")
			}
		})
	}
}
