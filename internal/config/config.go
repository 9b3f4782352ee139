package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	Env        string `mapstructure:"APP_ENV"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	Timezone   string `mapstructure:"APP_TIMEZONE"`

	DBUrl          string `mapstructure:"DATABASE_URL"`
	AdminJWTSecret string `mapstructure:"ADMIN_JWT_SECRET"`
	CORSOrigins    string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	// memory | redis
	TokenStore    string `mapstructure:"TOKEN_STORE"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPrefix   string `mapstructure:"REDIS_PREFIX"`

	Salesforce Salesforce `mapstructure:",squash"`
}

// Salesforce holds the connected-app and scheduling settings.
type Salesforce struct {
	PrivateKey  string        `mapstructure:"SF_PRIVATE_KEY"`
	ConsumerKey string        `mapstructure:"SF_CONSUMER_KEY"`
	Username    string        `mapstructure:"SF_USERNAME"`
	Audience    string        `mapstructure:"SF_TOKEN_AUDIENCE"`
	GrantType   string        `mapstructure:"SF_CONNECTED_APP_GRANT_TYPE"`
	BaseURL     string        `mapstructure:"SF_BASE_URL"`
	TokenPath   string        `mapstructure:"SF_TOKEN_URL"`
	HTTPTimeout time.Duration `mapstructure:"SF_HTTP_TIMEOUT"`
	TokenMaxAge time.Duration `mapstructure:"SF_TOKEN_MAX_AGE"`
	PolicyID    string        `mapstructure:"SCHEDULE_POLICY_ID"`
	WorkTypeID  string        `mapstructure:"WORKTYPE_ID"`
	TerritoryID string        `mapstructure:"TERRITORY_ID"`
}

var keys = []string{
	"SERVER_PORT", "APP_ENV", "LOG_LEVEL", "APP_TIMEZONE",
	"DATABASE_URL", "ADMIN_JWT_SECRET", "CORS_ALLOWED_ORIGINS",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	"TOKEN_STORE", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_PREFIX",
	"SF_PRIVATE_KEY", "SF_CONSUMER_KEY", "SF_USERNAME", "SF_TOKEN_AUDIENCE",
	"SF_CONNECTED_APP_GRANT_TYPE", "SF_BASE_URL", "SF_TOKEN_URL",
	"SF_HTTP_TIMEOUT", "SF_TOKEN_MAX_AGE",
	"SCHEDULE_POLICY_ID", "WORKTYPE_ID", "TERRITORY_ID",
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_TIMEZONE", "UTC")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("TOKEN_STORE", "memory")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PREFIX", "fieldservice")
	v.SetDefault("SF_CONNECTED_APP_GRANT_TYPE", "urn:ietf:params:oauth:grant-type:jwt-bearer")
	v.SetDefault("SF_HTTP_TIMEOUT", "30s")
	v.SetDefault("SF_TOKEN_MAX_AGE", "0s")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	switch cfg.TokenStore {
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("unsupported TOKEN_STORE %q", cfg.TokenStore)
	}

	return &cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AllowedOrigins returns the CORS allow list; empty means any origin.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// PrivateKeyPEM returns the key material with escaped newlines restored,
// the form it takes when stored in a single-line environment variable.
func (s Salesforce) PrivateKeyPEM() string {
	return strings.ReplaceAll(s.PrivateKey, `\n`, "\n")
}

// TokenURL is the absolute OAuth token endpoint.
func (s Salesforce) TokenURL() string {
	return s.BaseURL + s.TokenPath
}
