package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Pass      PassConfig
	Redis     RedisConfig
	RabbitMQ  RabbitMQConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name       string
	Port       string
	Debug      bool
	LogPath    string
	BcryptCost int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours  int
	CookieSecure bool
}

// Expiry is the lifetime of a login session.
func (s SessionConfig) Expiry() time.Duration {
	return time.Duration(s.ExpiryHours) * time.Hour
}

// PassConfig signs the ticket passes encoded in QR codes.
type PassConfig struct {
	Secret      string
	ExpiryHours int
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	CacheTTL  time.Duration
	KeyPrefix string
}

type RabbitMQConfig struct {
	URL string
}

type RateLimitConfig struct {
	PerMinute int
}

// LoadConfig reads .env from the working directory, then the environment.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom is LoadConfig with an explicit dotenv path. A missing file is
// not an error; every key can come from the process environment instead.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "movie-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("SESSION_EXPIRY_HOURS", 24)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("PASS_EXPIRY_HOURS", 72)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL_SECONDS", 60)
	v.SetDefault("REDIS_PREFIX", "movie-booking:")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 20)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:       v.GetString("APP_NAME"),
			Port:       v.GetString("PORT"),
			Debug:      v.GetBool("DEBUG"),
			LogPath:    v.GetString("LOG_PATH"),
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours:  v.GetInt("SESSION_EXPIRY_HOURS"),
			CookieSecure: v.GetBool("COOKIE_SECURE"),
		},
		Pass: PassConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("PASS_EXPIRY_HOURS"),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("REDIS_ADDR"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			CacheTTL:  time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,
			KeyPrefix: v.GetString("REDIS_PREFIX"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: v.GetString("RABBITMQ_URL"),
		},
		RateLimit: RateLimitConfig{
			PerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
	}

	if config.Pass.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}
