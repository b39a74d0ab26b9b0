package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the environment-supplied settings shared by every Lambda in
// this repo. Each binary only uses the subset it needs; handler constructors
// reject a missing setting they depend on.
type Config struct {
	LogLevel    string `envconfig:"APP_LOG_LEVEL" default:"info"`
	Environment string `envconfig:"ENVIRONMENT" default:"dev"`
	AWSRegion   string `envconfig:"AWS_REGION"`

	UserPoolID       string `envconfig:"USER_POOL_ID"`
	UserPoolClientID string `envconfig:"USER_POOL_CLIENT_ID"`

	UsersTable         string `envconfig:"USERS_TABLE"`
	SubscriptionsTable string `envconfig:"SUBSCRIPTIONS_TABLE"`

	DebugEnabled  bool   `envconfig:"APP_DEBUG_ENABLED"`
	DebugDataPath string `envconfig:"APP_DEBUG_DATA_PATH"`

	EmailVerificationEnabled   bool     `envconfig:"APP_EMAIL_VERIFICATION_ENABLED"`
	EmailVerificationWhitelist []string `envconfig:"APP_EMAIL_VERIFICATION_WHITELIST"`
	SendGridAPIHost            string   `envconfig:"APP_SENDGRID_API_HOST" default:"https://api.sendgrid.com"`
	SendGridAPIKey             string   `envconfig:"APP_SENDGRID_EMAIL_VERIFICATION_API_KEY"`
}

func New() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.DebugEnabled {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// ChangesTable is the price-change log table derived from the subscriptions
// table name.
func (c *Config) ChangesTable() string {
	return c.SubscriptionsTable + "-changes"
}

// AutoConfirm reports whether new accounts skip email confirmation. Only
// non-production deployments do.
func (c *Config) AutoConfirm() bool {
	return c.Environment == "dev"
}
