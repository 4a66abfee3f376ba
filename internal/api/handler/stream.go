package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/restaurant-inventory-api/internal/streaming"
	"github.com/vfg2006/restaurant-inventory-api/pkg/apiErrors"
	"github.com/vfg2006/restaurant-inventory-api/pkg/log"
)

// Stream mantém o canal SSE aberto até o cliente desconectar
func Stream(hub *streaming.Hub, heartbeat time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		businessID, ok := resolveBusinessID(w, r, r.URL.Query().Get("businessId"))
		if !ok {
			return
		}
		if businessID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "businessId é obrigatório", nil)
			return
		}

		conn, err := streaming.NewConnection(w)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("stream: conexão não suporta streaming")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Streaming não suportado", nil)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		log.ForContext(r.Context()).WithFields(log.Fields{
			"business_id":   businessID,
			"subscriber_id": conn.ID(),
		}).Info("stream: cliente conectado")

		hub.Serve(r.Context(), businessID, conn, heartbeat)
	})
}
