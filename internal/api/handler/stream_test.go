package handler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/restaurant-inventory-api/internal/api/handler/router"
	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
	"github.com/vfg2006/restaurant-inventory-api/internal/streaming"
	"github.com/vfg2006/restaurant-inventory-api/pkg/apiErrors"
	"github.com/vfg2006/restaurant-inventory-api/pkg/middleware"
)

// readEvent lê linhas até encontrar o evento pedido e devolve a linha de dados
func readEvent(t *testing.T, reader *bufio.Reader, event string) string {
	t.Helper()
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.TrimSpace(line) != "event: "+event {
			continue
		}
		data, err := reader.ReadString('\n')
		require.NoError(t, err)
		return strings.TrimPrefix(strings.TrimSpace(data), "data: ")
	}
}

func TestStream_HelloInvalidateAndDisconnect(t *testing.T) {
	hub := streaming.NewHub()
	srv := httptest.NewServer(router.New(router.WithRoutes(Streaming(hub, time.Hour)...)))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/inventory/abc/stream?businessId=biz-1", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	hello := readEvent(t, reader, domain.EventHello)
	assert.Contains(t, hello, `"business_id":"biz-1"`)
	assert.Equal(t, 1, hub.Count("biz-1"))

	category := domain.CategoryA
	hub.Broadcast("biz-1", streaming.InvalidateMessage(domain.InvalidationEvent{BusinessID: "biz-1", ItemID: "item-1", NewCategory: &category}))

	invalidate := readEvent(t, reader, domain.EventInvalidate)
	assert.JSONEq(t, `{"item_id":"item-1","new_category":"A"}`, invalidate)

	cancel()
	assert.Eventually(t, func() bool { return hub.Count("biz-1") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStream_RequiresBusiness(t *testing.T) {
	hub := streaming.NewHub()
	rec := httptest.NewRecorder()

	router.New(router.WithRoutes(Streaming(hub, time.Hour)...)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/inventory/abc/stream", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrMissingRequiredData)
	assert.Equal(t, 0, hub.Count(""))
}

func TestStream_RejectsForeignBusiness(t *testing.T) {
	hub := streaming.NewHub()
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodGet, "/v1/inventory/abc/stream?businessId=biz-2", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, &domain.Claims{UserID: 1, UserRoleID: middleware.RoleStaff, BusinessID: "biz-1"}))
	router.New(router.WithRoutes(Streaming(hub, time.Hour)...)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInsufficientPrivilege)
	assert.Equal(t, 0, hub.Count("biz-2"))
}
