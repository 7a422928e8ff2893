package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Cart    CartConfig    `mapstructure:"cart"`
	Message MessageConfig `mapstructure:"message"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// StoreConfig holds storefront identity settings
type StoreConfig struct {
	Name           string `mapstructure:"name"`
	WhatsAppNumber string `mapstructure:"whatsapp_number"` // digits only, no + or spaces
}

// CatalogConfig holds catalog origin settings
type CatalogConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRetries           int    `mapstructure:"max_retries"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	PageSize             int    `mapstructure:"page_size"`
}

// CartConfig holds cart persistence settings
type CartConfig struct {
	Key     string `mapstructure:"key"`
	Backend string `mapstructure:"backend"` // file, redis or memory
	Dir     string `mapstructure:"dir"`
}

// MessageConfig holds order message limits
type MessageConfig struct {
	SoftLimit    int `mapstructure:"soft_limit"`
	CompactItems int `mapstructure:"compact_items"`
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// Load loads configuration from YAML file with environment variable overrides.
// A missing config.yaml is fine; defaults cover everything.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("store.name", "Tu Emprendimiento")
	viper.SetDefault("store.whatsapp_number", "5491112345678")

	viper.SetDefault("catalog.base_url", "http://localhost:8080/data")
	viper.SetDefault("catalog.timeout", 30)
	viper.SetDefault("catalog.max_retries", 3)
	viper.SetDefault("catalog.max_requests_per_second", 5)
	viper.SetDefault("catalog.page_size", 48)

	viper.SetDefault("cart.key", "boutique_cart_v1")
	viper.SetDefault("cart.backend", "file")
	viper.SetDefault("cart.dir", ".")

	viper.SetDefault("message.soft_limit", 1400)
	viper.SetDefault("message.compact_items", 24)

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)
}
