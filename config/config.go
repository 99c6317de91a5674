package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Black-And-White-Club/guildkeeper/internal/observability"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Observability ObservabilityConfig `yaml:"observability"`
	// AllowedLangs are the language codes guilds may choose from.
	AllowedLangs []string `yaml:"allowed_langs"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
	// AutoMigrate applies pending migrations at startup.
	AutoMigrate bool `yaml:"auto_migrate"`
}

// NATSConfig holds NATS configuration. An empty URL keeps events in-process.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the API server configuration.
type HTTPConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// JWTSecret signs service tokens accepted on mutating routes.
	// Empty disables bearer auth.
	JWTSecret string  `yaml:"jwt_secret"`
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
	// RateLimitIdle drops a client's bucket after this long without requests.
	RateLimitIdle time.Duration `yaml:"rate_limit_idle"`
	// RateLimitMaxClients is the table size that triggers a pruning pass.
	RateLimitMaxClients int `yaml:"rate_limit_max_clients"`
	// GuildWriteRate and GuildWriteBurst bound mutating requests per guild,
	// across all callers.
	GuildWriteRate  float64 `yaml:"guild_write_rate"`
	GuildWriteBurst int     `yaml:"guild_write_burst"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
	MetricsPath string `yaml:"metrics_path"`
	// OTLPEndpoint enables span export over OTLP/gRPC when set.
	OTLPEndpoint     string  `yaml:"otlp_endpoint"`
	OTLPInsecure     bool    `yaml:"otlp_insecure"`
	TraceSampleRatio float64 `yaml:"trace_sample_ratio"`
}

// LoadConfig loads the configuration from a YAML file. Values from the
// environment (and a .env file, when present) override the file.
func LoadConfig(filename string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	data, err := os.ReadFile(filename)
	if err != nil {
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("AUTO_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid AUTO_MIGRATE value: %w", err)
		}
		cfg.Postgres.AutoMigrate = b
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.HTTP.JWTSecret = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid HTTP_RATE_LIMIT value: %w", err)
		}
		cfg.HTTP.RateLimit = f
	}
	if v := os.Getenv("HTTP_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_RATE_BURST value: %w", err)
		}
		cfg.HTTP.RateBurst = n
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_IDLE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_RATE_LIMIT_IDLE value: %w", err)
		}
		cfg.HTTP.RateLimitIdle = d
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_MAX_CLIENTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_RATE_LIMIT_MAX_CLIENTS value: %w", err)
		}
		cfg.HTTP.RateLimitMaxClients = n
	}
	if v := os.Getenv("HTTP_GUILD_WRITE_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid HTTP_GUILD_WRITE_RATE value: %w", err)
		}
		cfg.HTTP.GuildWriteRate = f
	}
	if v := os.Getenv("HTTP_GUILD_WRITE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_GUILD_WRITE_BURST value: %w", err)
		}
		cfg.HTTP.GuildWriteBurst = n
	}
	if v := os.Getenv("ALLOWED_LANGS"); v != "" {
		cfg.AllowedLangs = splitList(v)
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.Observability.OTLPEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid OTEL_EXPORTER_OTLP_INSECURE value: %w", err)
		}
		cfg.Observability.OTLPInsecure = b
	}
	if v := os.Getenv("TRACE_SAMPLE_RATIO"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid TRACE_SAMPLE_RATIO value: %w", err)
		}
		cfg.Observability.TraceSampleRatio = f
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("METRICS_PATH"); v != "" {
		cfg.Observability.MetricsPath = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.RateLimit <= 0 {
		c.HTTP.RateLimit = 20
	}
	if c.HTTP.RateBurst <= 0 {
		c.HTTP.RateBurst = 40
	}
	if c.HTTP.RateLimitIdle <= 0 {
		c.HTTP.RateLimitIdle = 10 * time.Minute
	}
	if c.HTTP.RateLimitMaxClients <= 0 {
		c.HTTP.RateLimitMaxClients = 500
	}
	if c.HTTP.GuildWriteRate <= 0 {
		c.HTTP.GuildWriteRate = 5
	}
	if c.HTTP.GuildWriteBurst <= 0 {
		c.HTTP.GuildWriteBurst = 10
	}
	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "info"
	}
	if c.Observability.MetricsPath == "" {
		c.Observability.MetricsPath = "/metrics"
	}
}

// ToObsConfig maps the application config onto the observability setup.
func ToObsConfig(appCfg *Config) observability.Config {
	return observability.Config{
		Environment:      appCfg.Observability.Environment,
		LogLevel:         appCfg.Observability.LogLevel,
		OTLPEndpoint:     appCfg.Observability.OTLPEndpoint,
		OTLPInsecure:     appCfg.Observability.OTLPInsecure,
		TraceSampleRatio: appCfg.Observability.TraceSampleRatio,
	}
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
