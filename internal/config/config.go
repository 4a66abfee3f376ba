package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	Cache          Cache          `mapstructure:",squash"`
	Redis          Redis          `mapstructure:",squash"`
	Stream         Stream         `mapstructure:",squash"`
	Classification Classification `mapstructure:",squash"`
	CacheSweep     CacheSweep     `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Auth contém o segredo compartilhado com o serviço de autenticação que emite os tokens
type Auth struct {
	Secret   string `mapstructure:"auth_secret"`
	Disabled bool   `mapstructure:"auth_disabled"`
}

type Cache struct {
	Backend string        `mapstructure:"cache_backend"`
	TTL     time.Duration `mapstructure:"-"`
	TTLMs   int           `mapstructure:"cache_ttl_ms"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type Stream struct {
	Backend           string        `mapstructure:"stream_backend"`
	HeartbeatSeconds  int           `mapstructure:"stream_heartbeat_seconds"`
	HeartbeatInterval time.Duration `mapstructure:"-"`
}

type Classification struct {
	DefaultWindowDays int `mapstructure:"abc_default_window_days"`
}

type CacheSweep struct {
	CronSchedule string `mapstructure:"cache_sweep_cron"`
	Enabled      bool   `mapstructure:"cache_sweep_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/restaurant?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_DISABLED", false)

	viper.SetDefault("CACHE_BACKEND", BackendMemory)
	viper.SetDefault("CACHE_TTL_MS", 5000) // 5 segundos

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("STREAM_BACKEND", BackendMemory)
	viper.SetDefault("STREAM_HEARTBEAT_SECONDS", 25)

	viper.SetDefault("ABC_DEFAULT_WINDOW_DAYS", 14)

	viper.SetDefault("CACHE_SWEEP_CRON", "*/1 * * * *") // A cada minuto
	viper.SetDefault("CACHE_SWEEP_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Normalize()

	return config, nil
}

// Normalize preenche os campos derivados e corrige valores fora do intervalo aceito
func (c *Config) Normalize() {
	if c.Cache.TTLMs <= 0 {
		c.Cache.TTLMs = 5000
	}
	c.Cache.TTL = time.Duration(c.Cache.TTLMs) * time.Millisecond

	if c.Stream.HeartbeatSeconds <= 0 {
		c.Stream.HeartbeatSeconds = 25
	}
	c.Stream.HeartbeatInterval = time.Duration(c.Stream.HeartbeatSeconds) * time.Second

	if c.Classification.DefaultWindowDays <= 0 {
		c.Classification.DefaultWindowDays = 14
	}

	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendMemory
	}
	if c.Stream.Backend == "" {
		c.Stream.Backend = BackendMemory
	}

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
