package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth      AuthConfig
	Gate      GateConfig
	RateLimit RateLimitConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	LLM       LLMConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=30m"`
}

type GateConfig struct {
	// DefaultDeny rejects routes that appear in neither the policy table nor
	// the public allow-list. Disable only to restore the legacy
	// default-permissive behaviour.
	DefaultDeny  bool  `env:"AUTH_DEFAULT_DENY, default=true"`
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES,    default=10485760"`
}

type RateLimitConfig struct {
	// FailOpen admits requests when the counter store is unreachable.
	// The default fails closed: store errors surface as 503.
	FailOpen   bool `env:"RATE_LIMIT_FAIL_OPEN,   default=false"`
	DefaultRPM int  `env:"RATE_LIMIT_DEFAULT_RPM, default=100"`
	AuthRPM    int  `env:"RATE_LIMIT_AUTH_RPM,    default=1000"`
	ChatRPM    int  `env:"RATE_LIMIT_CHAT_RPM,    default=50"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=amega_ai"`
}

type RedisConfig struct {
	// Addr may be empty, in which case the rate limiter falls back to the
	// in-process counter store.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type LLMConfig struct {
	// BaseURL of an OpenAI-compatible API. Empty selects the static backend.
	BaseURL string        `env:"LLM_BASE_URL"`
	Model   string        `env:"LLM_MODEL,   default=llama2"`
	APIKey  string        `env:"LLM_API_KEY"`
	Timeout time.Duration `env:"LLM_TIMEOUT, default=60s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
