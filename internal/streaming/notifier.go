package streaming

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
	"github.com/vfg2006/restaurant-inventory-api/pkg/metrics"
)

const defaultNotifyTimeout = 5 * time.Second

// OutboundNotifier publica fora do caminho da requisição.
// O canal devolvido recebe exatamente um resultado e é fechado em seguida.
type OutboundNotifier interface {
	NotifyAsync(ctx context.Context, event domain.InvalidationEvent) <-chan error
}

type Notifier struct {
	pubsub  PubSub
	timeout time.Duration
}

func NewNotifier(pubsub PubSub) *Notifier {
	return &Notifier{pubsub: pubsub, timeout: defaultNotifyTimeout}
}

func (n *Notifier) NotifyAsync(ctx context.Context, event domain.InvalidationEvent) <-chan error {
	result := make(chan error, 1)

	// O fim da requisição não pode cancelar a publicação
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)

	go func() {
		defer close(result)
		defer cancel()

		err := n.pubsub.Publish(pubCtx, event)

		fields := logrus.Fields{
			"business_id": event.BusinessID,
			"item_id":     event.ItemID,
		}
		if err != nil {
			metrics.Notifications.WithLabelValues("failed").Inc()
			logrus.WithFields(fields).WithError(err).Warn("Falha ao publicar invalidação")
		} else {
			metrics.Notifications.WithLabelValues("published").Inc()
			logrus.WithFields(fields).Debug("Invalidação publicada")
		}

		result <- err
	}()

	return result
}
