// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Payment providers.
const (
	ProviderStripe = "stripe"
	ProviderOmise  = "omise"
)

// Config is the full process configuration.
type Config struct {
	Port string `default:"5000"`

	AccessTokenSecret string        `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	TokenTTL          time.Duration `envconfig:"TOKEN_TTL" default:"1h"`
	TokenRateLimit    float64       `envconfig:"TOKEN_RATE_LIMIT" default:"5"`
	TokenRateBurst    int           `envconfig:"TOKEN_RATE_BURST" default:"10"`

	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"postgres"`
	DB            DB     `envconfig:"DB"`

	PaymentProvider  string `envconfig:"PAYMENT_PROVIDER" default:"stripe"`
	PaymentSecretKey string `envconfig:"PAYMENT_SECRET_KEY"`
	PaymentPublicKey string `envconfig:"PAYMENT_PUBLIC_KEY"`
	PaymentCurrency  string `envconfig:"PAYMENT_CURRENCY" default:"usd"`

	RedisURL     string        `envconfig:"REDIS_URL"`
	RoleCacheTTL time.Duration `envconfig:"ROLE_CACHE_TTL" default:"5m"`

	CORSOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// DB holds PostgreSQL connection settings, read from DB_HOST, DB_PORT and so on.
type DB struct {
	Host     string `default:"localhost"`
	Port     string `default:"5432"`
	User     string `default:"postgres"`
	Password string `default:"postgres"`
	Name     string `default:"sportsacademy"`
	SSLMode  string `default:"disable"`
	Migrate  bool   `default:"true"`
}

// DSN builds a libpq-compatible connection string.
func (c DB) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dsnValue(c.Host), dsnValue(c.Port), dsnValue(c.User),
		dsnValue(c.Password), dsnValue(c.Name), dsnValue(c.SSLMode),
	)
}

// dsnValue single-quotes a keyword/value pair value when it is empty or holds
// spaces, quotes or backslashes.
func dsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " '\\") {
		return v
	}
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v) + "'"
}

// URL builds the postgres URL form used by the migration driver. Credentials
// are percent-encoded.
func (c DB) URL(scheme string) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.StorageDriver {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch c.PaymentProvider {
	case ProviderStripe, ProviderOmise:
	default:
		return fmt.Errorf("unknown PAYMENT_PROVIDER %q", c.PaymentProvider)
	}
	if c.AccessTokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}
