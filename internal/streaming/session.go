package streaming

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Serve registra a conexão, envia hello e mantém o heartbeat até o cliente desconectar
func (h *Hub) Serve(ctx context.Context, businessID string, conn *Connection, heartbeat time.Duration) {
	h.Subscribe(businessID, conn)
	defer func() {
		conn.Close()
		h.Unsubscribe(businessID, conn.ID())
		logrus.WithFields(logrus.Fields{
			"business_id":   businessID,
			"subscriber_id": conn.ID(),
		}).Debug("Conexão de streaming encerrada")
	}()

	if err := conn.Send(HelloMessage(businessID, conn.ID())); err != nil {
		return
	}

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := conn.Send(PingMessage(now)); err != nil {
				return
			}
		}
	}
}
