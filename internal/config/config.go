package config

import (
	"fmt"

	"committee-backend/internal/models"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Store    StoreConfig
	JWT      JWTConfig
	SMS      SMSConfig
	Scheme   SchemeConfig
	Admin    AdminConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// StoreConfig selects the ledger store backend
type StoreConfig struct {
	// InMemory runs the whole engine against the in-memory store; meant for
	// local development without a MongoDB instance.
	InMemory bool
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// SMSConfig holds SMS gateway-specific configuration
type SMSConfig struct {
	BaseURL        string
	APIKey         string
	SenderName     string
	MockSMSGateway bool
}

// SchemeConfig holds the committee scheme parameters
type SchemeConfig struct {
	// Months is the ordered list of the 16 month identifiers the scheme runs
	// over; the first element is the starting month.
	Months        []string
	MonthlyAmount float64
}

// AdminConfig holds the seed admin account used in in-memory store mode
type AdminConfig struct {
	Email    string
	Password string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if the config file is not found, we'll use environment
		// variables and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if len(config.Scheme.Months) != models.SchemeLength {
		return nil, fmt.Errorf("Scheme.Months must list exactly %d month identifiers, got %d", models.SchemeLength, len(config.Scheme.Months))
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "committee")
	viper.SetDefault("Store.InMemory", false)
	viper.SetDefault("JWT.Secret", "change-me")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("SMS.SenderName", "COMMITTEE")
	viper.SetDefault("SMS.MockSMSGateway", true)
	viper.SetDefault("Scheme.Months", []string{
		"september_2025", "october_2025", "november_2025", "december_2025",
		"january_2026", "february_2026", "march_2026", "april_2026",
		"may_2026", "june_2026", "july_2026", "august_2026",
		"september_2026", "october_2026", "november_2026", "december_2026",
	})
	viper.SetDefault("Scheme.MonthlyAmount", 5000.0)
	viper.SetDefault("Admin.Email", "admin@committee.local")
	viper.SetDefault("Admin.Password", "admin")
	viper.SetDefault("LogLevel", "info")
}
