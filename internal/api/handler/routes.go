package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/restaurant-inventory-api/internal/api/handler/router"
	"github.com/vfg2006/restaurant-inventory-api/internal/streaming"
	"github.com/vfg2006/restaurant-inventory-api/internal/usecases/classifying"
	"github.com/vfg2006/restaurant-inventory-api/pkg/middleware"
)

const abcPrefix = "/v1/inventory/abc"

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: MetricsHandler(),
		},
	}
}

func Classification(service classifying.ClassificationService) []router.Route {
	return []router.Route{
		{
			Path:        abcPrefix + "/calculate",
			Method:      http.MethodGet,
			Handler:     Calculate(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        abcPrefix + "/item/:itemId",
			Method:      http.MethodGet,
			Handler:     ItemClassification(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        abcPrefix + "/history",
			Method:      http.MethodGet,
			Handler:     History(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        abcPrefix + "/recommendations",
			Method:      http.MethodGet,
			Handler:     Recommendations(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        abcPrefix + "/list",
			Method:      http.MethodGet,
			Handler:     List(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Overrides(service classifying.OverrideService) []router.Route {
	return []router.Route{
		{
			Path:        abcPrefix + "/manual-category",
			Method:      http.MethodPut,
			Handler:     ManualCategory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOrManager()},
		},
		{
			Path:        abcPrefix + "/manual-category/:itemId",
			Method:      http.MethodDelete,
			Handler:     ResetManualCategory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOrManager()},
		},
		{
			Path:        abcPrefix + "/promote",
			Method:      http.MethodPost,
			Handler:     Promote(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOrManager()},
		},
	}
}

func Streaming(hub *streaming.Hub, heartbeat time.Duration) []router.Route {
	return []router.Route{
		{
			Path:        abcPrefix + "/stream",
			Method:      http.MethodGet,
			Handler:     Stream(hub, heartbeat),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOrManager()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOrManager()},
		},
	}
}
