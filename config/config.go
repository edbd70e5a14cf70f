package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	Database   Database
	Redis      Redis
	Queue      Queue
	Auth       Auth
	JWT        JWT
	Realtime   Realtime
	Social     Social
	LoggerMode LoggerMode `mapstructure:"logger"`
}

type Server struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Database selects the storage driver. Driver "memory" keeps everything in
// process and ignores URL.
type Database struct {
	Driver   string
	URL      string
	MaxConns int32 `mapstructure:"max_conns"`
}

// Redis is optional; without a URL presence is written straight to the
// database and no background worker runs.
type Redis struct {
	URL string
}

type Queue struct {
	Concurrency int
	Queues      string
}

type Auth struct {
	Mode string
}

type JWT struct {
	Secret string
}

type Realtime struct {
	EventsPerSecond int           `mapstructure:"events_per_second"`
	SendBuffer      int           `mapstructure:"send_buffer"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	HandlerTimeout  time.Duration `mapstructure:"handler_timeout"`
}

type Social struct {
	AcceptMaxRetries uint64 `mapstructure:"accept_max_retries"`
}

type LoggerMode struct {
	Development bool
	Level       string
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	AuthModeJWT   = "jwt"
	AuthModeQuery = "query"
)

// envBindings keeps the environment variable names the deployment already uses.
var envBindings = map[string]string{
	"server.port":                "PORT",
	"server.environment":         "APP_ENV",
	"database.driver":            "DB_DRIVER",
	"database.url":               "DB_URL",
	"database.max_conns":         "DB_MAX_CONNS",
	"redis.url":                  "REDIS_URL",
	"queue.concurrency":          "ASYNQ_CONCURRENCY",
	"queue.queues":               "ASYNQ_QUEUES",
	"auth.mode":                  "AUTH_MODE",
	"jwt.secret":                 "JWT_SECRET",
	"realtime.events_per_second": "REALTIME_EVENTS_PER_SECOND",
	"realtime.send_buffer":       "REALTIME_SEND_BUFFER",
	"realtime.read_timeout":      "REALTIME_READ_TIMEOUT",
	"realtime.handler_timeout":   "REALTIME_HANDLER_TIMEOUT",
	"social.accept_max_retries":  "SOCIAL_ACCEPT_MAX_RETRIES",
	"logger.development":         "LOG_DEVELOPMENT",
	"logger.level":               "LOG_LEVEL",
	"server.shutdown_timeout":    "SERVER_SHUTDOWN_TIMEOUT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("queue.concurrency", 10)
	v.SetDefault("queue.queues", "default=1,presence=2")
	v.SetDefault("auth.mode", AuthModeJWT)
	v.SetDefault("realtime.events_per_second", 20)
	v.SetDefault("realtime.send_buffer", 128)
	v.SetDefault("realtime.read_timeout", 60*time.Second)
	v.SetDefault("realtime.handler_timeout", 5*time.Second)
	v.SetDefault("social.accept_max_retries", 3)
	v.SetDefault("logger.level", "info")
}

// LoadConfig reads .env (if present), then config/<filename>.yaml (if present),
// then the environment. Later sources win.
func LoadConfig(filename string) (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if filename == "" {
		return v, nil
	}
	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	err := v.Unmarshal(&c)
	if err != nil {
		slog.Error("Unable to unmarshal config", "err", err)
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Database.URL) == "" {
			return errors.New("config: DB_URL is required for the postgres driver")
		}
	default:
		return errors.New("config: unknown database driver " + c.Database.Driver)
	}
	switch c.Auth.Mode {
	case AuthModeQuery:
	case AuthModeJWT:
		if c.JWT.Secret == "" {
			return errors.New("config: JWT_SECRET is required when auth mode is jwt")
		}
	default:
		return errors.New("config: unknown auth mode " + c.Auth.Mode)
	}
	return nil
}

// Load is LoadConfig followed by ParseConfig.
func Load(filename string) (*Config, error) {
	v, err := LoadConfig(filename)
	if err != nil {
		return nil, err
	}
	return ParseConfig(v)
}

func (c *Config) IsDevelopment() bool {
	return c.LoggerMode.Development || c.Server.Environment == "development"
}
