// Package scheduler contém os serviços agendados da aplicação
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/cache"
	"github.com/vfg2006/restaurant-inventory-api/internal/config"
	"github.com/vfg2006/restaurant-inventory-api/pkg/metrics"
)

type CacheSweepConfig struct {
	CronSchedule string
	Enabled      bool
}

// CacheSweepService remove periodicamente as entradas expiradas do cache de classificação.
// No backend Redis a expiração é nativa e a varredura não remove nada.
type CacheSweepService struct {
	scheduler          *gocron.Scheduler
	store              cache.Store
	config             CacheSweepConfig
	running            bool
	mutex              sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastRemoved        int
}

func NewCacheSweepService(store cache.Store, cfg *config.Config) *CacheSweepService {
	sweepConfig := CacheSweepConfig{
		CronSchedule: cfg.CacheSweep.CronSchedule,
		Enabled:      cfg.CacheSweep.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": sweepConfig.CronSchedule,
		"enabled":       sweepConfig.Enabled,
	}).Info("Configuração da limpeza do cache carregada")

	return &CacheSweepService{
		scheduler: gocron.NewScheduler(time.Local),
		store:     store,
		config:    sweepConfig,
	}
}

func (s *CacheSweepService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza do cache desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.Sweep(ctx); err != nil {
			logrus.WithError(err).Error("Erro na limpeza do cache")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza do cache: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de limpeza do cache")
		s.scheduler.Stop()
	}()

	return nil
}

// Sweep executa uma varredura; chamadas concorrentes são ignoradas
func (s *CacheSweepService) Sweep(ctx context.Context) (int, error) {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		logrus.Warn("Limpeza do cache já está em execução")
		return 0, nil
	}
	s.running = true
	s.lastRunStartedAt = time.Now()
	s.mutex.Unlock()

	removed, err := s.store.Sweep(ctx)

	s.mutex.Lock()
	s.running = false
	s.lastRunCompletedAt = time.Now()
	if err == nil {
		s.lastRemoved = removed
	}
	s.mutex.Unlock()

	if err != nil {
		return 0, err
	}

	if removed > 0 {
		metrics.CacheEvictions.Add(float64(removed))
		logrus.WithField("removed", removed).Debug("Entradas expiradas removidas do cache")
	}

	return removed, nil
}

// TriggerManualSync dispara uma varredura fora do agendamento
func (s *CacheSweepService) TriggerManualSync() {
	logrus.Info("Iniciando limpeza manual do cache")
	go func() {
		if _, err := s.Sweep(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na limpeza manual do cache")
		}
	}()
}

func (s *CacheSweepService) GetStatus() map[string]any {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return map[string]any{
		"sweep_enabled":         s.config.Enabled,
		"sweep_cron":            s.config.CronSchedule,
		"running":               s.running,
		"last_removed":          s.lastRemoved,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
	}
}
