// Package config loads the application configuration from environment
// variables, with an optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"ENV" envDefault:"development"`

	DatabaseURL string `env:"DATABASE_URL,required"`

	// TokenSecret signs session tokens; CodeSecret keys the HMAC
	// commitments of one-time codes. Rotating TokenSecret invalidates all
	// outstanding sessions.
	TokenSecret string `env:"TOKEN_SECRET,required"`
	CodeSecret  string `env:"HMAC_CODE_SECRET,required"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"12"`

	// MailDriver selects the outbound mail adapter: "postmark" or "dev".
	MailDriver           string `env:"MAIL_DRIVER" envDefault:"dev"`
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL"`
}

// Load reads the optional .env file and parses the environment. Missing
// required variables abort startup.
func Load() (*Config, error) {
	// The .env file might not exist and that's ok.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Production reports whether secure cookie flags should be enabled.
func (c *Config) Production() bool {
	return c.Env == "production"
}
