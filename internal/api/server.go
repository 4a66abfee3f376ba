package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/restaurant-inventory-api/internal/api/handler"
	"github.com/vfg2006/restaurant-inventory-api/internal/api/handler/router"
	"github.com/vfg2006/restaurant-inventory-api/internal/config"
	"github.com/vfg2006/restaurant-inventory-api/internal/scheduler"
	"github.com/vfg2006/restaurant-inventory-api/internal/streaming"
	"github.com/vfg2006/restaurant-inventory-api/internal/usecases/authenticating"
	"github.com/vfg2006/restaurant-inventory-api/internal/usecases/classifying"
	"github.com/vfg2006/restaurant-inventory-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
	// cancela o contexto base das requisições para encerrar os streams abertos no desligamento
	cancelRequests context.CancelFunc
}

func New(
	config *config.Config,
	classificationService classifying.ClassificationService,
	overrideService classifying.OverrideService,
	authenticator authenticating.Authenticator,
	hub *streaming.Hub,
	cacheSweepService *scheduler.CacheSweepService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		CacheSweepService: cacheSweepService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Classification(classificationService)...),
		router.WithRoutes(handler.Overrides(overrideService)...),
		router.WithRoutes(handler.Streaming(hub, config.Stream.HeartbeatInterval)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	baseCtx, cancel := context.WithCancel(context.Background())

	// Sem WriteTimeout: as conexões SSE ficam abertas indefinidamente
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return baseCtx },
		},
		cancelRequests: cancel,
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	s.cancelRequests()

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
