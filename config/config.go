package config

import (
	"os"
	"strings"

	"vaultx-api/internal/domain"
)

// AppwriteConfig holds the identity/database provider settings.
type AppwriteConfig struct {
	Endpoint         string // Appwrite REST endpoint, e.g. https://cloud.appwrite.io/v1
	Project          string // project identifier
	APIKey           string // server API key (admin scope)
	DatabaseID       string
	UserCollectionID string
	BankCollectionID string
}

// PlaidConfig holds the bank-link aggregator settings.
type PlaidConfig struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
}

// DwollaConfig holds the payment-network settings.
type DwollaConfig struct {
	Key         string
	Secret      string
	Environment string // sandbox or production
}

// Config is the full service configuration, built once at startup and
// injected into gateways and usecases. Nothing reads the environment after
// Load returns.
type Config struct {
	Port     string
	LogLevel string

	Appwrite AppwriteConfig
	Plaid    PlaidConfig
	Dwolla   DwollaConfig
}

// Load reads configuration from environment variables and validates it.
// A missing or malformed value fails here, not at first use.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Appwrite: AppwriteConfig{
			Endpoint:         getEnv("APPWRITE_ENDPOINT", ""),
			Project:          getEnv("APPWRITE_PROJECT", ""),
			APIKey:           getEnv("APPWRITE_API_KEY", ""),
			DatabaseID:       getEnv("APPWRITE_DATABASE_ID", ""),
			UserCollectionID: getEnv("APPWRITE_USER_COLLECTION_ID", ""),
			BankCollectionID: getEnv("APPWRITE_BANK_COLLECTION_ID", ""),
		},
		Plaid: PlaidConfig{
			ClientID:    getEnv("PLAID_CLIENT_ID", ""),
			Secret:      getEnv("PLAID_SECRET", ""),
			Environment: getEnv("PLAID_ENV", "sandbox"),
		},
		Dwolla: DwollaConfig{
			Key:         getEnv("DWOLLA_KEY", ""),
			Secret:      getEnv("DWOLLA_SECRET", ""),
			Environment: getEnv("DWOLLA_ENV", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks presence of every required value and the enumerated
// environment names.
func (c *Config) Validate() error {
	required := map[string]string{
		"APPWRITE_ENDPOINT":           c.Appwrite.Endpoint,
		"APPWRITE_PROJECT":            c.Appwrite.Project,
		"APPWRITE_API_KEY":            c.Appwrite.APIKey,
		"APPWRITE_DATABASE_ID":        c.Appwrite.DatabaseID,
		"APPWRITE_USER_COLLECTION_ID": c.Appwrite.UserCollectionID,
		"APPWRITE_BANK_COLLECTION_ID": c.Appwrite.BankCollectionID,
		"PLAID_CLIENT_ID":             c.Plaid.ClientID,
		"PLAID_SECRET":                c.Plaid.Secret,
		"DWOLLA_KEY":                  c.Dwolla.Key,
		"DWOLLA_SECRET":               c.Dwolla.Secret,
		"DWOLLA_ENV":                  c.Dwolla.Environment,
	}

	// Deterministic order for error messages.
	for _, key := range []string{
		"APPWRITE_ENDPOINT", "APPWRITE_PROJECT", "APPWRITE_API_KEY",
		"APPWRITE_DATABASE_ID", "APPWRITE_USER_COLLECTION_ID", "APPWRITE_BANK_COLLECTION_ID",
		"PLAID_CLIENT_ID", "PLAID_SECRET",
		"DWOLLA_KEY", "DWOLLA_SECRET", "DWOLLA_ENV",
	} {
		if required[key] == "" {
			return &domain.ConfigError{Key: key, Reason: "value is required"}
		}
	}

	switch c.Dwolla.Environment {
	case "sandbox", "production":
	default:
		return &domain.ConfigError{Key: "DWOLLA_ENV", Reason: "must be either `sandbox` or `production`"}
	}

	switch c.Plaid.Environment {
	case "sandbox", "production":
	default:
		return &domain.ConfigError{Key: "PLAID_ENV", Reason: "must be either `sandbox` or `production`"}
	}

	return nil
}

// getEnv retrieves an environment variable or returns a fallback value.
// A KEY_FILE variant pointing at a file takes precedence, for secrets
// mounted by the container runtime.
func getEnv(key, fallback string) string {
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
