package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration. An empty address disables the notification cache.
	RedisAddr            string        `mapstructure:"REDIS_ADDR"`
	RedisPassword        string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int           `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int           `mapstructure:"REDIS_REMINDER_DB"`
	NotificationCacheTTL time.Duration `mapstructure:"NOTIFICATION_CACHE_TTL"`

	// Gemini configuration. Without a key notifications use the local templates.
	GeminiAPIKey        string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel         string        `mapstructure:"GEMINI_MODEL"`
	NotificationTimeout time.Duration `mapstructure:"NOTIFICATION_TIMEOUT"`

	// Mock identities used when a client sends no X-User-Name header.
	DefaultCustomerName string `mapstructure:"DEFAULT_CUSTOMER_NAME"`
	DefaultPorterName   string `mapstructure:"DEFAULT_PORTER_NAME"`

	// Locations lists the permitted delivery locations.
	Locations []string `mapstructure:"LOCATIONS"`
}

var AppConfig Config

// DefaultLocations are the campus hostels requests may be delivered to.
var DefaultLocations = []string{
	"Hostel A",
	"Hostel B",
	"Hostel C",
	"Hostel D",
	"Girls Hostel 1",
	"Girls Hostel 2",
}

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_DB", 1)
	viper.SetDefault("NOTIFICATION_CACHE_TTL", "30m")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("NOTIFICATION_TIMEOUT", "8s")
	viper.SetDefault("DEFAULT_CUSTOMER_NAME", "Alex Doe")
	viper.SetDefault("DEFAULT_PORTER_NAME", "Porter Pete")
	viper.SetDefault("LOCATIONS", DefaultLocations)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
