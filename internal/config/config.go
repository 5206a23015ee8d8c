package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config is the sandbox API server configuration
type Config struct {
	Server    ServerConfig    `env:",prefix=SERVER_"`
	Postgres  PostgresConfig  `env:",prefix=POSTGRES_"`
	Redis     RedisConfig     `env:",prefix=REDIS_"`
	JWT       JWTConfig       `env:",prefix=JWT_"`
	Security  SecurityConfig  `env:",prefix="`
	CORS      CORSConfig      `env:",prefix=CORS_"`
	BasicAuth BasicAuthConfig `env:",prefix=BASIC_AUTH_"`
	Sandbox   SandboxConfig   `env:",prefix=SANDBOX_"`
	Env       string          `env:"ENV,default=development"`
	LogLevel  string          `env:"LOG_LEVEL"`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8080"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	BasePath     string   `env:"BASE_PATH,default=/v1"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=15s"`
	MaxUploadMB  int64    `env:"MAX_UPLOAD_MB,default=10"`

	// TrustedProxies lists the proxies whose X-Forwarded-For is believed; empty trusts none
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// PostgresConfig is optional; the sandbox keeps vendors in memory when Host is empty
type PostgresConfig struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT,default=5432"`
	User     string `env:"USER,default=seller_portal"`
	Password string `env:"PASSWORD,default=seller_portal_password"`
	DBName   string `env:"DB,default=seller_portal_db"`
	SSLMode  string `env:"SSLMODE,default=disable"`
}

// RedisConfig is optional; rate limits and the token blacklist stay in process when Host is empty
type RedisConfig struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD,default="`
	DB       int    `env:"DB,default=0"`
}

type JWTConfig struct {
	Secret            string   `env:"SECRET,required"`
	AccessTokenExpiry Duration `env:"ACCESS_TOKEN_EXPIRY,default=24h"`
}

type SecurityConfig struct {
	BCryptCost        int      `env:"BCRYPT_COST,default=12"`
	RateLimitRequests int      `env:"RATE_LIMIT_REQUESTS,default=10"`
	RateLimitWindow   Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization,X-Request-ID"`
}

// BasicAuthConfig guards the public endpoints; disabled when User is empty
type BasicAuthConfig struct {
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
}

type SandboxConfig struct {
	SeedOrders bool `env:"SEED_ORDERS,default=true"`
}

// Enabled reports whether a Postgres host is configured
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// Enabled reports whether a Redis host is configured
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Address returns Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// Load loads the sandbox server configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(config.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	return &config, nil
}
