// Package cache guarda os payloads completos de classificação por (negócio, período)
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
)

const keyPrefix = "abc:cache"

// Key nunca inclui item_id: consultas de um único item não passam pelo cache
type Key struct {
	BusinessID  string
	PeriodStart string
	PeriodEnd   string
}

func NewKey(businessID string, period domain.Period) Key {
	return Key{
		BusinessID:  businessID,
		PeriodStart: period.StartDate(),
		PeriodEnd:   period.EndDate(),
	}
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, k.BusinessID, k.PeriodStart, k.PeriodEnd)
}

type Entry struct {
	Payload  []byte
	StoredAt time.Time
}

// Store é o cache de resultados com TTL. Get devolve nil quando a entrada não existe ou expirou.
type Store interface {
	Get(ctx context.Context, key Key) (*Entry, error)
	Set(ctx context.Context, key Key, payload []byte) error
	DeleteBusiness(ctx context.Context, businessID string) (int, error)
	Sweep(ctx context.Context) (int, error)
}

func businessPattern(businessID string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return fmt.Sprintf("%s:%s:*", keyPrefix, replacer.Replace(businessID))
}
