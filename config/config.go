package config

import (
	"fmt"
	"os"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// HTTP configuration
	ListenAddr     string
	AllowedOrigins string

	// Auth configuration
	JWTSecret string

	// Optional admin account seeded at startup
	AdminUsername string
	AdminPassword string

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Mailgun configuration (optional; receipts are skipped when unset)
	MailgunDomain  string
	MailgunAPIKey  string
	MailgunFrom    string

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		ListenAddr:     os.Getenv("LISTEN_ADDR"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		MailgunDomain: os.Getenv("MAILGUN_DOMAIN"),
		MailgunAPIKey: os.Getenv("MAILGUN_API_KEY"),
		MailgunFrom:   os.Getenv("MAILGUN_FROM"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if config.ListenAddr == "" {
		config.ListenAddr = ":8080"
	}
	if config.MailgunFrom == "" && config.MailgunDomain != "" {
		config.MailgunFrom = fmt.Sprintf("InovaTrust <noreply@%s>", config.MailgunDomain)
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}

// MailConfigured reports whether outbound email can be sent
func (c *Config) MailConfigured() bool {
	return c.MailgunDomain != "" && c.MailgunAPIKey != ""
}
