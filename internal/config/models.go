package config

import (
	"errors"
	"fmt"
	"time"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Server   ServerConfig   `mapstructure:"server"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Leave    LeaveConfig    `mapstructure:"leave"`
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Postgres.Host == "" || c.Postgres.User == "" || c.Postgres.DBName == "" {
		return errors.New("postgres host, user and db_name are required")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	if c.Leave.DefaultCasual < 0 || c.Leave.DefaultSick < 0 || c.Leave.DefaultAnnual < 0 {
		return errors.New("leave default balances must not be negative")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
}

type PostgresConfig struct {
	Host           string        `mapstructure:"host"`
	Port           string        `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	DBName         string        `mapstructure:"db_name"`
	SSLMode        string        `mapstructure:"ssl_mode"`
	MaxRetries     int           `mapstructure:"max_retries"`
	MigrateTimeout time.Duration `mapstructure:"migrate_timeout"`
}

// DSN returns a Postgres connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		p.Host, p.User, p.Password, p.DBName, p.Port, p.SSLMode,
	)
}

type RedisConfig struct {
	Addr           string        `mapstructure:"addr"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RoleCacheTTL   time.Duration `mapstructure:"role_cache_ttl"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
}

type KafkaConfig struct {
	Broker       string        `mapstructure:"broker"`
	GroupID      string        `mapstructure:"group_id"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// LeaveConfig holds the balances granted to newly registered employees.
type LeaveConfig struct {
	DefaultCasual int `mapstructure:"default_casual"`
	DefaultSick   int `mapstructure:"default_sick"`
	DefaultAnnual int `mapstructure:"default_annual"`
}
