package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cypherlabdev/match-signal-service/internal/models"
)

// Config holds all configuration for match-signal-service
type Config struct {
	Server  ServerConfig        `mapstructure:"server"`
	Kafka   KafkaConfig         `mapstructure:"kafka"`
	Redis   RedisConfig         `mapstructure:"redis"`
	Engine  EngineConfig        `mapstructure:"engine"`
	Tenant  models.TenantConfig `mapstructure:"tenant"`
	Logging LoggingConfig       `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"` // Topic to consume from (match_snapshots)
	GroupID string   `mapstructure:"group_id"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// EngineConfig holds classification parameters and request defaults
type EngineConfig struct {
	DefaultProfile        string   `mapstructure:"default_profile"`
	DefaultBankroll       float64  `mapstructure:"default_bankroll"`
	Timezone              string   `mapstructure:"timezone"` // IANA name used for day badges
	LeagueOrder           []string `mapstructure:"league_order"`
	ReliabilityMinSamples int      `mapstructure:"reliability_min_samples"`
	TenantFile            string   `mapstructure:"tenant_file"` // optional YAML file replacing the tenant section
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// DefaultLeagueOrder is the display order of the leagues the product knows about
var DefaultLeagueOrder = []string{
	"serie_a",
	"premier_league",
	"la_liga",
	"bundesliga",
	"ligue_1",
	"serie_b",
	"champions_league",
	"europa_league",
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("kafka.enabled", true)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "match_snapshots")
	v.SetDefault("kafka.group_id", "match-signal")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 30*time.Minute)

	v.SetDefault("engine.default_profile", string(models.ProfileBalanced))
	v.SetDefault("engine.default_bankroll", 100.0)
	v.SetDefault("engine.timezone", "Europe/Rome")
	v.SetDefault("engine.league_order", DefaultLeagueOrder)
	v.SetDefault("engine.reliability_min_samples", 80)
	v.SetDefault("engine.tenant_file", "")

	v.SetDefault("tenant.filters.min_confidence", 0.0)
	v.SetDefault("tenant.filters.active_markets", []string{})
	v.SetDefault("tenant.features.disabled_profiles", []string{})
	v.SetDefault("tenant.compliance.educational_only", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("MATCH_SIGNAL")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Engine.TenantFile != "" {
		tenant, err := LoadTenantFile(config.Engine.TenantFile)
		if err != nil {
			return nil, err
		}
		config.Tenant = tenant
	}

	return &config, nil
}

// LoadTenantFile reads a standalone tenant YAML file
func LoadTenantFile(path string) (models.TenantConfig, error) {
	var tenant models.TenantConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return tenant, fmt.Errorf("failed to read tenant file: %w", err)
	}
	if err := yaml.Unmarshal(data, &tenant); err != nil {
		return tenant, fmt.Errorf("failed to parse tenant file: %w", err)
	}
	if err := ValidateTenant(tenant); err != nil {
		return tenant, err
	}

	return tenant, nil
}

// ValidateTenant rejects tenant rules the engine cannot apply
func ValidateTenant(t models.TenantConfig) error {
	if t.Filters.MinConfidence < 0 || t.Filters.MinConfidence > 1 {
		return fmt.Errorf("tenant min_confidence %v outside 0-1", t.Filters.MinConfidence)
	}
	disabled := make(map[models.Profile]bool, len(t.Features.DisabledProfiles))
	for _, p := range t.Features.DisabledProfiles {
		parsed, ok := models.ParseProfile(string(p))
		if !ok {
			return fmt.Errorf("tenant disables unknown profile %q", p)
		}
		disabled[parsed] = true
	}
	if len(disabled) == len(models.Profiles) {
		return fmt.Errorf("tenant disables every profile")
	}
	return nil
}

// ToEngineParams converts config to engine parameters
func (c *Config) ToEngineParams() (models.EngineParams, error) {
	loc, err := time.LoadLocation(c.Engine.Timezone)
	if err != nil {
		return models.EngineParams{}, fmt.Errorf("invalid engine timezone %q: %w", c.Engine.Timezone, err)
	}
	if err := ValidateTenant(c.Tenant); err != nil {
		return models.EngineParams{}, err
	}

	tenant := c.Tenant
	disabled := make([]models.Profile, 0, len(tenant.Features.DisabledProfiles))
	for _, p := range tenant.Features.DisabledProfiles {
		parsed, _ := models.ParseProfile(string(p))
		disabled = append(disabled, parsed)
	}
	tenant.Features.DisabledProfiles = disabled

	return models.EngineParams{
		Tenant:                tenant,
		LeagueOrder:           c.Engine.LeagueOrder,
		ReliabilityMinSamples: c.Engine.ReliabilityMinSamples,
		Location:              loc,
	}, nil
}

// DefaultUser returns the profile and bankroll used when a request or message carries none
func (c *EngineConfig) DefaultUser() (models.UserContext, error) {
	profile, ok := models.ParseProfile(c.DefaultProfile)
	if !ok {
		return models.UserContext{}, fmt.Errorf("invalid default profile %q", c.DefaultProfile)
	}
	if c.DefaultBankroll < 0 {
		return models.UserContext{}, fmt.Errorf("default bankroll %v is negative", c.DefaultBankroll)
	}
	return models.UserContext{Profile: profile, Bankroll: c.DefaultBankroll}, nil
}
