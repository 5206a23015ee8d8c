package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Session backends for the client credential store
const (
	SessionMemory = "memory"
	SessionFile   = "file"
	SessionRedis  = "redis"
)

// ClientConfig configures the API client and its credential store
type ClientConfig struct {
	API       APIConfig       `env:",prefix=API_"`
	BasicAuth BasicAuthConfig `env:",prefix=API_BASIC_AUTH_"`
	Session   SessionConfig   `env:",prefix=SESSION_"`
	Env       string          `env:"ENV,default=development"`
	LogLevel  string          `env:"LOG_LEVEL"`
}

// APIConfig locates the seller API. An empty Host picks the default for Env.
type APIConfig struct {
	Protocol string   `env:"PROTOCOL"`
	Host     string   `env:"HOST"`
	Version  string   `env:"VERSION,default=v1"`
	Timeout  Duration `env:"TIMEOUT,default=30s"`
}

type SessionConfig struct {
	Backend string      `env:"BACKEND,default=file"`
	Path    string      `env:"PATH"`
	TTL     Duration    `env:"TTL,default=0s"`
	Redis   RedisConfig `env:",prefix=REDIS_"`
}

const (
	devAPIHost  = "localhost:8080"
	prodAPIHost = "api.sellerportal.ng"
)

// BaseURL returns <protocol>://<host>/<version>
func (c ClientConfig) BaseURL() string {
	protocol, host := c.API.Protocol, c.API.Host
	if host == "" {
		host = devAPIHost
		if c.Env == "production" {
			host = prodAPIHost
		}
	}
	if protocol == "" {
		protocol = "http"
		if c.Env == "production" {
			protocol = "https"
		}
	}

	base := fmt.Sprintf("%s://%s", protocol, strings.TrimRight(host, "/"))
	if v := strings.Trim(c.API.Version, "/"); v != "" {
		base += "/" + v
	}
	return base
}

// LoadClient loads the client configuration from environment variables
func LoadClient(ctx context.Context) (*ClientConfig, error) {
	var config ClientConfig

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load client configuration: %w", err)
	}

	switch config.Session.Backend {
	case SessionMemory, SessionFile:
	case SessionRedis:
		if !config.Session.Redis.Enabled() {
			return nil, fmt.Errorf("SESSION_REDIS_HOST is required for the redis session backend")
		}
	default:
		return nil, fmt.Errorf("unknown SESSION_BACKEND %q", config.Session.Backend)
	}

	return &config, nil
}
