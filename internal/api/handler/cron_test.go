package handler

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/restaurant-inventory-api/internal/api/handler/router"
	"github.com/vfg2006/restaurant-inventory-api/pkg/apiErrors"
)

type fakeCronJob struct {
	triggered atomic.Int32
}

func (f *fakeCronJob) TriggerManualSync() {
	f.triggered.Add(1)
}

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"sweep_enabled": true}
}

func TestRunCronJob(t *testing.T) {
	tests := []struct {
		name              string
		cronType          string
		services          func(job *fakeCronJob) CronJobServices
		expectedStatus    int
		expectedCode      string
		expectedTriggered int32
	}{
		{
			name:              "Dispara a limpeza do cache",
			cronType:          CronJobTypeCacheSweep,
			services:          func(job *fakeCronJob) CronJobServices { return CronJobServices{CacheSweepService: job} },
			expectedStatus:    http.StatusAccepted,
			expectedTriggered: 1,
		},
		{
			name:              "all dispara todas as jobs",
			cronType:          CronJobTypeAll,
			services:          func(job *fakeCronJob) CronJobServices { return CronJobServices{CacheSweepService: job} },
			expectedStatus:    http.StatusAccepted,
			expectedTriggered: 1,
		},
		{
			name:           "Tipo desconhecido",
			cronType:       "meta",
			services:       func(job *fakeCronJob) CronJobServices { return CronJobServices{CacheSweepService: job} },
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name:           "Serviço não configurado",
			cronType:       CronJobTypeCacheSweep,
			services:       func(*fakeCronJob) CronJobServices { return CronJobServices{} },
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &fakeCronJob{}
			rt := router.New(router.WithRoutes(CronJobs(tt.services(job))...))

			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cron/"+tt.cronType+"/run", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedTriggered, job.triggered.Load())
			if tt.expectedCode != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedCode)
			}
		})
	}
}

func TestGetCronStatus(t *testing.T) {
	rt := router.New(router.WithRoutes(CronJobs(CronJobServices{CacheSweepService: &fakeCronJob{}})...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"cache-sweep":{"sweep_enabled":true}}}`, rec.Body.String())
}
