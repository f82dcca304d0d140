// Package config loads service settings from the environment and an
// optional YAML file for the scoring and calculator tables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"finhealth/internal/calculator"
	"finhealth/internal/scoring"
)

type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	Port          string

	JWTSecret     string
	AdminUsername string
	AdminPassword string
	SessionTTL    time.Duration

	GeoIPPath      string
	TrustedProxies []string

	CORSOrigins []string
	CORSMethods []string
	CORSHeaders []string

	LogLevel  string
	LogFormat string

	Chat ChatConfig
	Mail MailConfig

	Weights     scoring.WeightSet
	Thresholds  scoring.Thresholds
	Calculators map[string]calculator.Rate
}

// fileConfig is the shape of the YAML file named by CONFIG_FILE
type fileConfig struct {
	Scoring struct {
		Weights    *scoring.WeightSet  `yaml:"weights"`
		Thresholds *scoring.Thresholds `yaml:"thresholds"`
	} `yaml:"scoring"`
	Calculators map[string]calculator.Rate `yaml:"calculators"`
}

// Load reads the environment, then overlays CONFIG_FILE when set
func Load() (*Config, error) {
	cfg := &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DB", "finhealth"),
		RedisAddr:     strings.TrimPrefix(getEnv("REDIS_URI", "localhost:6379"), "redis://"),
		Port:          getEnv("PORT", "8080"),

		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		AdminUsername: getEnv("HOST_USERNAME", "admin"),
		AdminPassword: getEnv("HOST_PASSWORD", "admin"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),

		GeoIPPath:      getEnv("GEOIP_DB", ""),
		TrustedProxies: getEnvList("TRUSTED_PROXIES", nil),

		CORSOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		CORSMethods: getEnvList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		CORSHeaders: getEnvList("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		Chat: defaultChatConfig(),
		Mail: defaultMailConfig(),

		Weights:     scoring.DefaultWeights(),
		Thresholds:  scoring.DefaultThresholds(),
		Calculators: calculator.DefaultRates(),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Tables are the scoring and calculator settings used by offline tools
type Tables struct {
	Weights     scoring.WeightSet
	Thresholds  scoring.Thresholds
	Calculators map[string]calculator.Rate
}

// LoadTables returns the default tables overlaid with the YAML file at
// path. An empty path yields the defaults.
func LoadTables(path string) (*Tables, error) {
	cfg := &Config{
		Weights:     scoring.DefaultWeights(),
		Thresholds:  scoring.DefaultThresholds(),
		Calculators: calculator.DefaultRates(),
	}
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.validateTables(); err != nil {
		return nil, err
	}
	return &Tables{
		Weights:     cfg.Weights,
		Thresholds:  cfg.Thresholds,
		Calculators: cfg.Calculators,
	}, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := c.applyYAML(data); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyYAML(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}
	if fc.Scoring.Weights != nil {
		c.Weights = *fc.Scoring.Weights
	}
	if fc.Scoring.Thresholds != nil {
		c.Thresholds = *fc.Scoring.Thresholds
	}
	// file entries override or add calculators, defaults stay otherwise
	for name, rate := range fc.Calculators {
		c.Calculators[name] = rate
	}
	return nil
}

func (c *Config) validateTables() error {
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("scoring weights: %w", err)
	}
	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("scoring thresholds: %w", err)
	}
	return nil
}

// Validate checks the scoring tables and required settings
func (c *Config) Validate() error {
	if err := c.validateTables(); err != nil {
		return err
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
