package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"pcbanai/core/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Database  DatabaseConfig   `mapstructure:"database"`
	Redis     RedisConfig      `mapstructure:"redis"`
	Catalog   CatalogConfig    `mapstructure:"catalog"`
	Scraper   ScraperConfig    `mapstructure:"scraper"`
	Retailers []RetailerConfig `mapstructure:"retailers"`
}

// ServerConfig holds the HTTP surface configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DatabaseConfig holds the component store connection details
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// RedisConfig holds redis connection details for the component cache and the
// scrape task queue
type RedisConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	Database      int    `mapstructure:"database"`
	ConsumerGroup string `mapstructure:"consumer_group"`
	MinIdleTime   int    `mapstructure:"min_idle_time"`
}

// CatalogConfig tunes the aggregation layer
type CatalogConfig struct {
	// CacheTTL is the component list revalidation window in seconds.
	CacheTTL int `mapstructure:"cache_ttl"`
}

// ScraperConfig holds the batch scrape pipeline settings
type ScraperConfig struct {
	Timeout              int      `mapstructure:"timeout"`
	MaxRetries           int      `mapstructure:"max_retries"`
	MaxWorkers           int      `mapstructure:"max_workers"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	SaveInterval         int      `mapstructure:"save_interval"`
	Proxies              []string `mapstructure:"proxies"`
}

// RetailerConfig describes one listing source: its identity for the
// normalizer plus the scrape endpoints for each raw category.
type RetailerConfig struct {
	ID            string            `mapstructure:"id"`
	Name          string            `mapstructure:"name"`
	TableSuffix   string            `mapstructure:"table_suffix"`
	BaseURL       string            `mapstructure:"base_url"`
	CategoryPaths map[string]string `mapstructure:"category_paths"`
}

// Retailer projects the config entry down to the domain descriptor used by
// normalization and aggregation.
func (r RetailerConfig) Retailer() domain.Retailer {
	return domain.Retailer{
		ID:          r.ID,
		Name:        r.Name,
		TableSuffix: r.TableSuffix,
	}
}

// DomainRetailers returns the domain descriptors for every configured retailer.
func (c *Config) DomainRetailers() []domain.Retailer {
	retailers := make([]domain.Retailer, 0, len(c.Retailers))
	for _, r := range c.Retailers {
		retailers = append(retailers, r.Retailer())
	}
	return retailers
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config.yaml file not found in current directory")
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "pcbanai")
	viper.SetDefault("database.user", "pcbanai_user")
	viper.SetDefault("database.password", "pcbanai_pass")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)
	viper.SetDefault("redis.consumer_group", "pcbanai_consumer")
	viper.SetDefault("redis.min_idle_time", 120)

	viper.SetDefault("catalog.cache_ttl", 1800)

	viper.SetDefault("scraper.timeout", 30)
	viper.SetDefault("scraper.max_retries", 3)
	viper.SetDefault("scraper.max_workers", 10)
	viper.SetDefault("scraper.max_requests_per_second", 2)
	viper.SetDefault("scraper.save_interval", 5)

	viper.SetDefault("retailers", []map[string]any{
		{
			"id":       "startech",
			"name":     "StarTech",
			"base_url": "https://www.startech.com.bd",
			"category_paths": map[string]string{
				"cpu":          "/component/processor",
				"motherboard":  "/component/motherboard",
				"ram":          "/component/ram",
				"gpu":          "/component/graphics-card",
				"storage_ssd":  "/ssd",
				"storage_hdd":  "/component/hard-disk-drive",
				"psu":          "/component/power-supply",
				"case":         "/component/casing",
				"cooling_cpu":  "/component/CPU-Cooler",
				"cooling_case": "/component/casing-cooler",
			},
		},
		{"id": "techland", "name": "Techland BD", "table_suffix": "_techland"},
		{"id": "ultratech", "name": "Ultratech BD", "table_suffix": "_ultratech"},
		{"id": "skyland", "name": "Skyland BD", "table_suffix": "_skyland"},
	})
}
