package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mealmatch/backend/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Foods     FoodsConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Profiles  []ProfileConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FoodsConfig points at the food nutrition table
type FoodsConfig struct {
	Path  string `mapstructure:"path"`
	Debug bool   `mapstructure:"debug"`
}

// CacheConfig holds plan cache configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds per-client rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// ProfileConfig is a user profile seeded into the index at startup
type ProfileConfig struct {
	Name                string   `mapstructure:"name"`
	Age                 int      `mapstructure:"age"`
	DietaryPreference   string   `mapstructure:"dietary_preference"`
	CalorieRequirement  float64  `mapstructure:"calorie_requirement"`
	DietaryRestrictions []string `mapstructure:"dietary_restrictions"`
}

// ToProfile converts the seed into a validated domain profile
func (p ProfileConfig) ToProfile() (domain.UserProfile, error) {
	restrictions := make([]domain.Category, 0, len(p.DietaryRestrictions))
	for _, label := range p.DietaryRestrictions {
		c, err := domain.ParseCategory(label)
		if err != nil {
			return domain.UserProfile{}, fmt.Errorf("profile %q: %w", p.Name, err)
		}
		restrictions = append(restrictions, c)
	}

	profile := domain.UserProfile{
		Name:                p.Name,
		Age:                 p.Age,
		DietaryPreference:   p.DietaryPreference,
		CalorieRequirement:  p.CalorieRequirement,
		DietaryRestrictions: restrictions,
	}
	if err := profile.Validate(); err != nil {
		return domain.UserProfile{}, fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return profile, nil
}

// Load loads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	// .env is optional; variables already set in the environment win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/mealmatch/")

	// Environment variable settings: server.port -> MEALMATCH_SERVER_PORT
	v.SetEnvPrefix("MEALMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Food table defaults
	v.SetDefault("foods.path", "data/foods.csv")
	v.SetDefault("foods.debug", false)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.burst", 20)

	// Demo profiles
	v.SetDefault("profiles", []map[string]interface{}{
		{
			"name": "Sathwik", "age": 25, "dietary_preference": "Vegan",
			"calorie_requirement": 1000, "dietary_restrictions": []string{"Vegan"},
		},
		{
			"name": "Dheeraj", "age": 22, "dietary_preference": "Vegetarian",
			"calorie_requirement": 1500, "dietary_restrictions": []string{"Vegetarian"},
		},
		{
			"name": "Deekshith", "age": 28, "dietary_preference": "Vegan",
			"calorie_requirement": 1800, "dietary_restrictions": []string{"Vegan", "Vegetarian"},
		},
	})
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set MEALMATCH_SERVER_PORT)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Cache.TTL < 0 {
		return fmt.Errorf("cache TTL must not be negative, got: %s", config.Cache.TTL)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("rate limit per IP must be positive, got: %d", config.RateLimit.PerIP)
	}

	if config.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit burst must be positive, got: %d", config.RateLimit.Burst)
	}

	for _, p := range config.Profiles {
		if _, err := p.ToProfile(); err != nil {
			return err
		}
	}

	return nil
}
