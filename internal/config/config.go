package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env             string `mapstructure:"env"`
	Port            int    `mapstructure:"port"`
	ReadTimeoutSec  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSec int    `mapstructure:"write_timeout_seconds"`
	IdleTimeoutSec  int    `mapstructure:"idle_timeout_seconds"`
	ShutdownSec     int    `mapstructure:"shutdown_seconds"`
}

type JWTConf struct {
	AccessSecret     string `mapstructure:"access_secret"`
	RefreshSecret    string `mapstructure:"refresh_secret"`
	AccessTTLMinutes int    `mapstructure:"access_ttl_minutes"`
	RefreshTTLDays   int    `mapstructure:"refresh_ttl_days"`
}

type MongoConf struct {
	URI               string `mapstructure:"uri"`
	Database          string `mapstructure:"database"`
	UserCollection    string `mapstructure:"user_collection"`
	ProductCollection string `mapstructure:"product_collection"`
	ConnectTimeoutSec int    `mapstructure:"connect_timeout_seconds"`
}

type RedisConf struct {
	Addr           string `mapstructure:"addr"`
	Password       string `mapstructure:"password"`
	DB             int    `mapstructure:"db"`
	DialTimeoutSec int    `mapstructure:"dial_timeout_seconds"`
}

type SecurityConf struct {
	PasswordHashCost       int `mapstructure:"password_hash_cost"`
	RateLimitRequests      int `mapstructure:"rate_limit_requests"`
	RateLimitWindowMinutes int `mapstructure:"rate_limit_window_minutes"`
}

type Config struct {
	App      AppConf      `mapstructure:"app"`
	JWT      JWTConf      `mapstructure:"jwt"`
	Mongo    MongoConf    `mapstructure:"mongodb"`
	Redis    RedisConf    `mapstructure:"redis"`
	Security SecurityConf `mapstructure:"security"`

	// derived
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	RateLimitWindow time.Duration
}

// Load reads config.yaml and applies environment overrides. Secrets and
// connection strings normally arrive through the environment; the yaml
// file carries the defaults safe to commit.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	override := func(env string, apply func(string)) {
		if val := os.Getenv(env); val != "" {
			apply(val)
		}
	}
	override("APP_ENV", func(s string) { cfg.App.Env = s })
	override("APP_PORT", func(s string) {
		if n, err := strconv.Atoi(s); err == nil {
			cfg.App.Port = n
		}
	})
	override("JWT_ACCESS_SECRET", func(s string) { cfg.JWT.AccessSecret = s })
	override("JWT_REFRESH_SECRET", func(s string) { cfg.JWT.RefreshSecret = s })
	override("JWT_ACCESS_TTL_MINUTES", func(s string) {
		if n, err := strconv.Atoi(s); err == nil {
			cfg.JWT.AccessTTLMinutes = n
		}
	})
	override("JWT_REFRESH_TTL_DAYS", func(s string) {
		if n, err := strconv.Atoi(s); err == nil {
			cfg.JWT.RefreshTTLDays = n
		}
	})
	override("MONGO_URI", func(s string) { cfg.Mongo.URI = s })
	override("MONGO_DB", func(s string) { cfg.Mongo.Database = s })
	override("REDIS_ADDR", func(s string) { cfg.Redis.Addr = s })
	override("REDIS_PASSWORD", func(s string) { cfg.Redis.Password = s })
	override("PASSWORD_HASH_COST", func(s string) {
		if n, err := strconv.Atoi(s); err == nil {
			cfg.Security.PasswordHashCost = n
		}
	})

	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		return nil, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}
	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGO_URI is required")
	}

	applyDefaults(&cfg)

	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSec) * time.Second
	cfg.ReadTimeout = time.Duration(cfg.App.ReadTimeoutSec) * time.Second
	cfg.WriteTimeout = time.Duration(cfg.App.WriteTimeoutSec) * time.Second
	cfg.IdleTimeout = time.Duration(cfg.App.IdleTimeoutSec) * time.Second
	cfg.AccessTTL = time.Duration(cfg.JWT.AccessTTLMinutes) * time.Minute
	cfg.RefreshTTL = time.Duration(cfg.JWT.RefreshTTLDays) * 24 * time.Hour
	cfg.RateLimitWindow = time.Duration(cfg.Security.RateLimitWindowMinutes) * time.Minute
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Port == 0 {
		cfg.App.Port = 5000
	}
	if cfg.App.ShutdownSec == 0 {
		cfg.App.ShutdownSec = 10
	}
	if cfg.App.ReadTimeoutSec == 0 {
		cfg.App.ReadTimeoutSec = 15
	}
	if cfg.App.WriteTimeoutSec == 0 {
		cfg.App.WriteTimeoutSec = 15
	}
	if cfg.App.IdleTimeoutSec == 0 {
		cfg.App.IdleTimeoutSec = 60
	}
	if cfg.JWT.AccessTTLMinutes == 0 {
		cfg.JWT.AccessTTLMinutes = 15
	}
	if cfg.JWT.RefreshTTLDays == 0 {
		cfg.JWT.RefreshTTLDays = 7
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "marketplace"
	}
	if cfg.Mongo.UserCollection == "" {
		cfg.Mongo.UserCollection = "users"
	}
	if cfg.Mongo.ProductCollection == "" {
		cfg.Mongo.ProductCollection = "products"
	}
	if cfg.Mongo.ConnectTimeoutSec == 0 {
		cfg.Mongo.ConnectTimeoutSec = 15
	}
	if cfg.Redis.DialTimeoutSec == 0 {
		cfg.Redis.DialTimeoutSec = 5
	}
	if cfg.Security.RateLimitRequests == 0 {
		cfg.Security.RateLimitRequests = 100
	}
	if cfg.Security.RateLimitWindowMinutes == 0 {
		cfg.Security.RateLimitWindowMinutes = 15
	}
}
