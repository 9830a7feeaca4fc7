// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = ".env"

// Load reads .env (without overriding real environment variables) and
// decodes the result into Config with typed defaults.
func Load() (*Config, error) {
	v := viper.New()
	if envMap, err := godotenv.Read(envFile); err == nil {
		for k, val := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, val)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("logging.level", "debug")

	v.SetDefault("server.port", "3000")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.rate_limit_rps", 20)
	v.SetDefault("server.rate_limit_burst", 40)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.db_name", "hr_approvals")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.max_retries", 5)
	v.SetDefault("postgres.migrate_timeout", 30*time.Second)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.max_retries", 5)
	v.SetDefault("redis.role_cache_ttl", 5*time.Minute)
	v.SetDefault("redis.idempotency_ttl", 24*time.Hour)

	v.SetDefault("kafka.broker", "")
	v.SetDefault("kafka.group_id", "hr-approvals-audit")
	v.SetDefault("kafka.poll_interval", 3*time.Second)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 24*time.Hour)

	v.SetDefault("leave.default_casual", 12)
	v.SetDefault("leave.default_sick", 10)
	v.SetDefault("leave.default_annual", 15)
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"app.env",
		"logging.level",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.rate_limit_rps",
		"server.rate_limit_burst",
		"postgres.host",
		"postgres.port",
		"postgres.user",
		"postgres.password",
		"postgres.db_name",
		"postgres.ssl_mode",
		"postgres.max_retries",
		"postgres.migrate_timeout",
		"redis.addr",
		"redis.max_retries",
		"redis.role_cache_ttl",
		"redis.idempotency_ttl",
		"kafka.broker",
		"kafka.group_id",
		"kafka.poll_interval",
		"jwt.secret",
		"jwt.ttl",
		"leave.default_casual",
		"leave.default_sick",
		"leave.default_annual",
	}

	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}
