package streaming

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

var ErrStreamingUnsupported = errors.New("o servidor não suporta streaming")

// Connection escreve eventos SSE em um http.ResponseWriter.
// Heartbeat e broadcast escrevem de goroutines diferentes, então toda escrita passa pelo mutex.
type Connection struct {
	id      string
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	closed  bool
}

func NewConnection(w http.ResponseWriter) (*Connection, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da conexão: %w", err)
	}

	return &Connection{id: id, w: w, flusher: flusher}, nil
}

func (c *Connection) ID() string {
	return c.id
}

func (c *Connection) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnectionClosed
	}

	if _, err := fmt.Fprintf(c.w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data); err != nil {
		return err
	}
	c.flusher.Flush()
	return nil
}

// Close impede novas escritas depois que o handler retornou
func (c *Connection) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}
