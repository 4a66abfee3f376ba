package streaming

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
)

type fakeSubscriber struct {
	id   string
	fail bool

	mu       sync.Mutex
	received []Message
}

func (f *fakeSubscriber) ID() string { return f.id }

func (f *fakeSubscriber) Send(msg Message) error {
	if f.fail {
		return errors.New("broken pipe")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.received = append(f.received, msg)
	return nil
}

func (f *fakeSubscriber) messages() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Message(nil), f.received...)
}

func TestHub_BroadcastOnlyToBusiness(t *testing.T) {
	hub := NewHub()
	a := &fakeSubscriber{id: "a"}
	b := &fakeSubscriber{id: "b"}
	other := &fakeSubscriber{id: "c"}

	hub.Subscribe("biz-1", a)
	hub.Subscribe("biz-1", b)
	hub.Subscribe("biz-2", other)

	category := domain.CategoryA
	sent := hub.Broadcast("biz-1", InvalidateMessage(domain.InvalidationEvent{
		BusinessID:  "biz-1",
		ItemID:      "item-1",
		NewCategory: &category,
	}))
	assert.Equal(t, 2, sent)

	assert.Eventually(t, func() bool {
		return len(a.messages()) == 1 && len(b.messages()) == 1
	}, time.Second, 10*time.Millisecond)

	msg := a.messages()[0]
	assert.Equal(t, domain.EventInvalidate, msg.Event)
	assert.JSONEq(t, `{"item_id":"item-1","new_category":"A"}`, string(msg.Data))
	assert.Empty(t, other.messages())
}

func TestHub_FailedDeliveryRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	healthy := &fakeSubscriber{id: "ok"}
	dead := &fakeSubscriber{id: "dead", fail: true}

	hub.Subscribe("biz-1", healthy)
	hub.Subscribe("biz-1", dead)

	hub.Broadcast("biz-1", InvalidateMessage(domain.InvalidationEvent{BusinessID: "biz-1", ItemID: "x"}))

	assert.Eventually(t, func() bool {
		return hub.Count("biz-1") == 1
	}, time.Second, 10*time.Millisecond)

	msg := healthy.messages()[0]
	assert.JSONEq(t, `{"item_id":"x","new_category":null}`, string(msg.Data))
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub()
	hub.Subscribe("biz-1", &fakeSubscriber{id: "a"})

	hub.Unsubscribe("biz-1", "a")
	hub.Unsubscribe("biz-1", "a")
	hub.Unsubscribe("biz-9", "zzz")

	assert.Equal(t, 0, hub.Count("biz-1"))
	assert.Equal(t, 0, hub.Broadcast("biz-1", PingMessage(time.Now())))
}

func TestHub_ServeSendsHelloAndDeregisters(t *testing.T) {
	hub := NewHub()
	rec := httptest.NewRecorder()
	conn, err := NewConnection(rec)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Serve(ctx, "biz-1", conn, 20*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return hub.Count("biz-1") == 1 }, time.Second, 5*time.Millisecond)

	// espera ao menos um heartbeat
	time.Sleep(60 * time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, 0, hub.Count("biz-1"))

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "event: hello\n"), body)
	assert.Contains(t, body, "event: ping\n")

	assert.ErrorIs(t, conn.Send(PingMessage(time.Now())), ErrConnectionClosed)
}
