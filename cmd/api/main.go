package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/cache"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/database/postgres"
	"github.com/vfg2006/restaurant-inventory-api/infrastructure/repository"
	"github.com/vfg2006/restaurant-inventory-api/internal/api"
	"github.com/vfg2006/restaurant-inventory-api/internal/config"
	"github.com/vfg2006/restaurant-inventory-api/internal/scheduler"
	"github.com/vfg2006/restaurant-inventory-api/internal/streaming"
	"github.com/vfg2006/restaurant-inventory-api/internal/usecases/authenticating"
	"github.com/vfg2006/restaurant-inventory-api/internal/usecases/classifying"
	"github.com/vfg2006/restaurant-inventory-api/pkg/clock"
	"github.com/vfg2006/restaurant-inventory-api/pkg/metrics"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	metrics.Register(prometheus.DefaultRegisterer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	factRepo := repository.NewConsumptionFactRepository()
	classificationRepo := repository.NewClassificationRepository()

	authenticator, err := authenticating.NewService(cfg.Auth)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar a validação de tokens")
	}

	var redisClient *redis.Client
	if cfg.Cache.Backend == config.BackendRedis || cfg.Stream.Backend == config.BackendRedis {
		redisClient = redisconn(ctx, cfg.Redis)
		defer redisClient.Close()
	}

	clk := clock.SystemClock{}

	var cacheStore cache.Store
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		cacheStore = cache.NewRedisStore(redisClient, cfg.Cache.TTL)
	default:
		cacheStore = cache.NewMemoryStore(cfg.Cache.TTL, clk)
	}
	logrus.WithFields(logrus.Fields{
		"backend": cfg.Cache.Backend,
		"ttl":     cfg.Cache.TTL,
	}).Info("Cache de classificação configurado")

	hub := streaming.NewHub()

	var pubsub streaming.PubSub
	switch cfg.Stream.Backend {
	case config.BackendRedis:
		redisPubSub := streaming.NewRedisPubSub(redisClient, hub)
		go func() {
			if err := redisPubSub.Run(ctx); err != nil {
				logrus.WithError(err).Error("Relay de invalidações via Redis encerrado com erro")
			}
		}()
		pubsub = redisPubSub
	default:
		pubsub = streaming.NewLocalPubSub(hub)
	}
	logrus.WithField("backend", cfg.Stream.Backend).Info("Barramento de invalidação configurado")

	notifier := streaming.NewNotifier(pubsub)

	windowDays := cfg.Classification.DefaultWindowDays
	classificationService := classifying.NewService(pgConn, factRepo, classificationRepo, cacheStore, clk, windowDays)
	overrideManager := classifying.NewOverrideManager(pgConn, factRepo, classificationRepo, cacheStore, notifier, clk, windowDays)

	cacheSweepService := scheduler.NewCacheSweepService(cacheStore, cfg)
	if err := cacheSweepService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza do cache")
	} else {
		logrus.Info("Agendador de limpeza do cache iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		classificationService,
		overrideManager,
		authenticator,
		hub,
		cacheSweepService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// redisconn cria o cliente Redis usado pelo cache e pelo barramento de invalidação
func redisconn(ctx context.Context, redisConfig config.Redis) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Addr,
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}

	logrus.Info("Conexão com Redis estabelecida com sucesso")
	return client
}
